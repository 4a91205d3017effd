package tables

import (
	"testing"

	parm "github.com/rmera/goparm"
	"gonum.org/v1/gonum/stat/combin"
)

func loadSelection(Te *testing.T) (*Set, *SelectionIndex) {
	f, p, atoms, s := loadSet(Te, "../testdata/small.prmtop")
	idx, err := BuildSelectionIndex(f, p, atoms)
	if err != nil {
		Te.Fatal(err)
	}
	return s, idx
}

func TestSelectAtomTypeCycling(Te *testing.T) {
	s, idx := loadSelection(Te)
	row := s.AtomTypes[0] //type 1: atoms 1, 4 and 5
	want := []int{1, 4, 5}
	for cursor := 0; cursor < 6; cursor++ {
		sel, err := idx.SelectAtomType(row, cursor)
		if err != nil {
			Te.Fatal(err)
		}
		if sel.Total != 3 || sel.Index != cursor%3 {
			Te.Errorf("cursor %d: index %d total %d", cursor, sel.Index, sel.Total)
		}
		if len(sel.Serials) != 1 || sel.Serials[0] != want[cursor%3] {
			Te.Errorf("cursor %d selected %v", cursor, sel.Serials)
		}
	}
	//Negative cursors walk backwards from the end.
	sel, err := idx.SelectAtomType(row, -1)
	if err != nil || sel.Index != 2 {
		Te.Errorf("cursor -1: %+v %v", sel, err)
	}
}

func TestSelectBondOccurrences(Te *testing.T) {
	s, idx := loadSelection(Te)
	row := s.Bonds[0] //(CT,CA) param 1: bonds 1-2 and 3-4
	first, err := idx.SelectBond(row, 0)
	if err != nil {
		Te.Fatal(err)
	}
	second, err := idx.SelectBond(row, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if first.Total != 2 || second.Total != 2 {
		Te.Errorf("totals %d %d", first.Total, second.Total)
	}
	if first.Serials[0] != 1 || first.Serials[1] != 2 {
		Te.Errorf("first occurrence %v", first.Serials)
	}
	if second.Serials[0] != 3 || second.Serials[1] != 4 {
		Te.Errorf("second occurrence %v", second.Serials)
	}
	wrapped, err := idx.SelectBond(row, 2)
	if err != nil || wrapped.Index != 0 {
		Te.Errorf("cursor 2 wrapped to %+v (%v)", wrapped, err)
	}
}

func TestSelectDihedralByOrdinal(Te *testing.T) {
	s, idx := loadSelection(Te)
	sel, err := idx.SelectDihedral(s.Dihedrals[0])
	if err != nil {
		Te.Fatal(err)
	}
	if sel.Mode != parm.ModeDihedral || sel.Total != 1 {
		Te.Errorf("selection %+v", sel)
	}
	if len(sel.Serials) != 4 || sel.Serials[0] != 1 || sel.Serials[3] != 4 {
		Te.Errorf("serials %v", sel.Serials)
	}
}

//Within one type the cursor must enumerate every unordered pair
//exactly once before wrapping.
func TestSelectNonbondedSameType(Te *testing.T) {
	s, idx := loadSelection(Te)
	row := s.Nonbonded[0] //(1,1): atoms 1, 4 and 5
	if total := idx.NonbondedTotal(row); total != 3 {
		Te.Fatalf("same-type total %d, want C(3,2)=3", total)
	}
	seen := make(map[[2]int]bool)
	for cursor := 0; cursor < 3; cursor++ {
		sel, err := idx.SelectNonbonded(row, cursor)
		if err != nil {
			Te.Fatal(err)
		}
		if sel.Serials[0] == sel.Serials[1] {
			Te.Errorf("cursor %d paired an atom with itself", cursor)
		}
		seen[[2]int{sel.Serials[0], sel.Serials[1]}] = true
	}
	if len(seen) != 3 {
		Te.Errorf("enumerated %d distinct pairs, want 3: %v", len(seen), seen)
	}
	wrapped, err := idx.SelectNonbonded(row, 3)
	if err != nil || wrapped.Index != 0 {
		Te.Errorf("cursor 3 wrapped to %+v (%v)", wrapped, err)
	}
}

//Across two types the cycle is the full cross product.
func TestSelectNonbondedCrossType(Te *testing.T) {
	s, idx := loadSelection(Te)
	row := s.Nonbonded[1] //(1,2): 3 CT atoms against 2 CA atoms
	if total := idx.NonbondedTotal(row); total != 6 {
		Te.Fatalf("cross-type total %d, want 6", total)
	}
	seen := make(map[[2]int]bool)
	for cursor := 0; cursor < 6; cursor++ {
		sel, err := idx.SelectNonbonded(row, cursor)
		if err != nil {
			Te.Fatal(err)
		}
		seen[[2]int{sel.Serials[0], sel.Serials[1]}] = true
	}
	if len(seen) != 6 {
		Te.Errorf("enumerated %d distinct pairs, want 6", len(seen))
	}
}

//The same-type cursor relies on index-to-combination unranking being a
//bijection onto the unordered pairs; check it exhaustively for several
//population sizes.
func TestPairUnrankingCovers(Te *testing.T) {
	for _, n := range []int{2, 3, 5, 8, 13} {
		total := n * (n - 1) / 2
		seen := make(map[[2]int]bool)
		for idx := 0; idx < total; idx++ {
			pair := combin.IndexToCombination(nil, idx, n, 2)
			if len(pair) != 2 || pair[0] >= pair[1] || pair[1] >= n {
				Te.Fatalf("n=%d idx=%d unranked to %v", n, idx, pair)
			}
			seen[[2]int{pair[0], pair[1]}] = true
		}
		if len(seen) != total {
			Te.Errorf("n=%d covered %d of %d pairs", n, len(seen), total)
		}
	}
}

func TestSelectNotFound(Te *testing.T) {
	_, idx := loadSelection(Te)
	_, err := idx.SelectBond(BondTypeRow{TypeA: 9, TypeB: 9, ParamIndex: 9}, 0)
	if err == nil {
		Te.Fatal("bogus bond row selected something")
	}
	if !IsNotFound(err) {
		Te.Errorf("selection miss is not a NotFoundError: %v", err)
	}
	_, err = idx.SelectDihedral(DihedralTermRow{Ordinal: 99})
	if !IsNotFound(err) {
		Te.Errorf("bogus ordinal: %v", err)
	}
}
