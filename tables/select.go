package tables

import (
	"errors"
	"fmt"

	parm "github.com/rmera/goparm"
	"gonum.org/v1/gonum/stat/combin"
)

//Selection is one concrete pick for a table row: the atom serials to
//show, plus where the pick sits in the cycle of all occurrences of
//that row.
type Selection struct {
	Mode    parm.Mode
	Serials []int
	Index   int
	Total   int
}

//NotFoundError reports that a table row has no selectable occurrence
//in the current topology. It is not a parse failure: tables and
//selection index are built from the same file, but a row can still
//come from a stale table after a reload, or name a type no atom
//carries.
type NotFoundError struct {
	mode parm.Mode
	what string
	deco []string
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("goparm: no %s selection for %s", err.mode, err.what)
}

func (err *NotFoundError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//IsNotFound reports whether err is a selection miss rather than a real
//failure.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func notFound(mode parm.Mode, format string, args ...interface{}) error {
	return &NotFoundError{mode: mode, what: fmt.Sprintf(format, args...)}
}

type pairKey struct {
	a, b, param int
}

type angleKey struct {
	i, j, k, param int
}

//SelectionIndex maps table rows back to the concrete atom tuples they
//were aggregated from, so a row can be stepped through its occurrences
//one cursor position at a time.
type SelectionIndex struct {
	serialsByType      map[int][]int
	bondsByKey         map[pairKey][][2]int
	anglesByKey        map[angleKey][][3]int
	dihedralsByOrdinal map[int][4]int
	oneFourByKey       map[pairKey][][2]int
}

//BuildSelectionIndex derives the selection index from an already
//parsed topology.
func BuildSelectionIndex(f *parm.File, p *parm.PointerSet, atoms []parm.Atom) (*SelectionIndex, error) {
	idx := &SelectionIndex{
		serialsByType:      make(map[int][]int),
		bondsByKey:         make(map[pairKey][][2]int),
		anglesByKey:        make(map[angleKey][][3]int),
		dihedralsByOrdinal: make(map[int][4]int),
		oneFourByKey:       make(map[pairKey][][2]int),
	}
	for _, a := range atoms {
		if a.TypeIndex > 0 {
			idx.serialsByType[a.TypeIndex] = append(idx.serialsByType[a.TypeIndex], a.Serial)
		}
	}
	bonds, err := parm.Bonds(f, p)
	if err != nil {
		return nil, err
	}
	for _, b := range bonds {
		ta, tb := typeOf(atoms, b.I), typeOf(atoms, b.J)
		if ta <= 0 || tb <= 0 {
			continue
		}
		ta, tb = sortedPair(ta, tb)
		key := pairKey{ta, tb, b.ParamIndex}
		idx.bondsByKey[key] = append(idx.bondsByKey[key], [2]int{b.I, b.J})
	}
	angles, err := parm.Angles(f, p)
	if err != nil {
		return nil, err
	}
	for _, a := range angles {
		ti, tj, tk := typeOf(atoms, a.I), typeOf(atoms, a.J), typeOf(atoms, a.K)
		if ti <= 0 || tj <= 0 || tk <= 0 {
			continue
		}
		ti, tk = sortedPair(ti, tk)
		key := angleKey{ti, tj, tk, a.ParamIndex}
		idx.anglesByKey[key] = append(idx.anglesByKey[key], [3]int{a.I, a.J, a.K})
	}
	dihedrals, err := parm.Dihedrals(f, p)
	if err != nil {
		return nil, err
	}
	for _, d := range dihedrals {
		idx.dihedralsByOrdinal[d.Ordinal] = [4]int{d.I, d.J, d.K, d.L}
		if d.Ignore14 || d.Improper {
			continue
		}
		ti, tl := typeOf(atoms, d.I), typeOf(atoms, d.L)
		if ti <= 0 || tl <= 0 {
			continue
		}
		ta, tb := sortedPair(ti, tl)
		key := pairKey{ta, tb, d.ParamIndex}
		idx.oneFourByKey[key] = append(idx.oneFourByKey[key], [2]int{d.I, d.L})
	}
	return idx, nil
}

//mod maps any cursor onto a valid occurrence index, so callers can
//step forever in either direction.
func mod(cursor, total int) int {
	m := cursor % total
	if m < 0 {
		m += total
	}
	return m
}

//SelectAtomType cycles through the atoms carrying the row's type.
func (S *SelectionIndex) SelectAtomType(row AtomTypeRow, cursor int) (Selection, error) {
	serials := S.serialsByType[row.TypeIndex]
	if len(serials) == 0 {
		return Selection{}, notFound(parm.ModeAtom, "type %d", row.TypeIndex)
	}
	i := mod(cursor, len(serials))
	return Selection{Mode: parm.ModeAtom, Serials: []int{serials[i]}, Index: i, Total: len(serials)}, nil
}

//SelectBond cycles through the bond records that collapsed into the
//row's class.
func (S *SelectionIndex) SelectBond(row BondTypeRow, cursor int) (Selection, error) {
	occ := S.bondsByKey[pairKey{row.TypeA, row.TypeB, row.ParamIndex}]
	if len(occ) == 0 {
		return Selection{}, notFound(parm.ModeBond, "types (%d,%d) param %d", row.TypeA, row.TypeB, row.ParamIndex)
	}
	i := mod(cursor, len(occ))
	return Selection{Mode: parm.ModeBond, Serials: []int{occ[i][0], occ[i][1]}, Index: i, Total: len(occ)}, nil
}

//SelectAngle cycles through the angle records of the row's class.
func (S *SelectionIndex) SelectAngle(row AngleTypeRow, cursor int) (Selection, error) {
	occ := S.anglesByKey[angleKey{row.TypeI, row.TypeJ, row.TypeK, row.ParamIndex}]
	if len(occ) == 0 {
		return Selection{}, notFound(parm.ModeAngle, "types (%d,%d,%d) param %d",
			row.TypeI, row.TypeJ, row.TypeK, row.ParamIndex)
	}
	i := mod(cursor, len(occ))
	return Selection{Mode: parm.ModeAngle, Serials: []int{occ[i][0], occ[i][1], occ[i][2]},
		Index: i, Total: len(occ)}, nil
}

//selectByOrdinal resolves a torsion term row; each term is one
//concrete quartet, so the cycle has a single position.
func (S *SelectionIndex) selectByOrdinal(mode parm.Mode, ordinal int) (Selection, error) {
	quartet, ok := S.dihedralsByOrdinal[ordinal]
	if !ok {
		return Selection{}, notFound(mode, "term %d", ordinal)
	}
	return Selection{Mode: mode, Serials: []int{quartet[0], quartet[1], quartet[2], quartet[3]},
		Index: 0, Total: 1}, nil
}

//SelectDihedral resolves a torsion term row to its quartet. Rows that
//describe improper terms select in improper mode.
func (S *SelectionIndex) SelectDihedral(row DihedralTermRow) (Selection, error) {
	mode := parm.ModeDihedral
	if row.Improper {
		mode = parm.ModeImproper
	}
	return S.selectByOrdinal(mode, row.Ordinal)
}

//SelectImproper resolves an improper term row to its quartet.
func (S *SelectionIndex) SelectImproper(row ImproperTermRow) (Selection, error) {
	return S.selectByOrdinal(parm.ModeImproper, row.Ordinal)
}

//SelectOneFour cycles through the (i,l) pairs of the row's 1-4 class.
func (S *SelectionIndex) SelectOneFour(row OneFourRow, cursor int) (Selection, error) {
	occ := S.oneFourByKey[pairKey{row.TypeA, row.TypeB, row.ParamIndex}]
	if len(occ) == 0 {
		return Selection{}, notFound(parm.ModeOneFourNonbonded, "types (%d,%d) param %d",
			row.TypeA, row.TypeB, row.ParamIndex)
	}
	i := mod(cursor, len(occ))
	return Selection{Mode: parm.ModeOneFourNonbonded, Serials: []int{occ[i][0], occ[i][1]},
		Index: i, Total: len(occ)}, nil
}

//NonbondedTotal returns how many distinct atom pairs the row's type
//pair spans: C(n,2) within one type, the full cross product between
//two.
func (S *SelectionIndex) NonbondedTotal(row NonbondedRow) int {
	a := S.serialsByType[row.TypeA]
	if row.TypeA == row.TypeB {
		return len(a) * (len(a) - 1) / 2
	}
	return len(a) * len(S.serialsByType[row.TypeB])
}

//SelectNonbonded cycles through every atom pair of the row's type
//pair. Within one type the cursor walks the C(n,2) combinations in
//lexicographic order; across two types it walks the cross product row
//by row.
func (S *SelectionIndex) SelectNonbonded(row NonbondedRow, cursor int) (Selection, error) {
	a := S.serialsByType[row.TypeA]
	b := S.serialsByType[row.TypeB]
	total := S.NonbondedTotal(row)
	if total <= 0 {
		return Selection{}, notFound(parm.ModeNonBonded, "types (%d,%d)", row.TypeA, row.TypeB)
	}
	i := mod(cursor, total)
	var sa, sb int
	if row.TypeA == row.TypeB {
		pair := combin.IndexToCombination(nil, i, len(a), 2)
		sa, sb = a[pair[0]], a[pair[1]]
	} else {
		sa = a[i/len(b)]
		sb = b[i%len(b)]
	}
	return Selection{Mode: parm.ModeNonBonded, Serials: []int{sa, sb}, Index: i, Total: total}, nil
}
