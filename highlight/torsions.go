package highlight

import (
	"math"
	"sort"

	parm "github.com/rmera/goparm"
)

var torsionParamSections = []string{
	"DIHEDRAL_FORCE_CONSTANT",
	"DIHEDRAL_PERIODICITY",
	"DIHEDRAL_PHASE",
	"SCEE_SCALE_FACTOR",
	"SCNB_SCALE_FACTOR",
}

func (E *Engine) torsionSpans(s *spanSet, rec parm.DihedralRecord) {
	E.recordSpans(s, rec.Section, rec.Index, 5)
	for _, name := range torsionParamSections {
		E.addParam(s, name, rec.ParamIndex)
	}
}

func (E *Engine) torsionMatch(rec parm.DihedralRecord, serials [4]int) DihedralMatch {
	return DihedralMatch{
		Serials:       serials,
		ParamIndex:    rec.ParamIndex,
		ForceConstant: E.paramValue("DIHEDRAL_FORCE_CONSTANT", rec.ParamIndex),
		Periodicity:   E.paramValue("DIHEDRAL_PERIODICITY", rec.ParamIndex),
		Phase:         E.paramValue("DIHEDRAL_PHASE", rec.ParamIndex),
		Scee:          E.paramValue("SCEE_SCALE_FACTOR", rec.ParamIndex),
		Scnb:          E.paramValue("SCNB_SCALE_FACTOR", rec.ParamIndex),
	}
}

//dihedralMode matches a bonded a-b-c-d chain against the torsion
//records, in the selected order or its full reverse. Partial rotations
//of the selection never match: a torsion's atom order is its meaning.
func (E *Engine) dihedralMode(s *spanSet, serials []int) *Interaction {
	if len(serials) < 4 {
		return nil
	}
	a, b, c, d := serials[0], serials[1], serials[2], serials[3]
	if !E.graph.Bonded(a, b) || !E.graph.Bonded(b, c) || !E.graph.Bonded(c, d) {
		return nil
	}
	var matches []DihedralMatch
	for _, rec := range E.dihedrals {
		forward := rec.I == a && rec.J == b && rec.K == c && rec.L == d
		reverse := rec.I == d && rec.J == c && rec.K == b && rec.L == a
		if !forward && !reverse {
			continue
		}
		E.torsionSpans(s, rec)
		matches = append(matches, E.torsionMatch(rec, [4]int{rec.I, rec.J, rec.K, rec.L}))
	}
	if matches == nil {
		return nil
	}
	return &Interaction{Mode: parm.ModeDihedral, Dihedrals: matches}
}

//improperCentral infers the central atom of an improper selection: the
//atom bonded to the other three. When several qualify (possible in
//small rings) the lowest serial wins, deterministically.
func (E *Engine) improperCentral(serials []int) (int, bool) {
	central := 0
	for _, candidate := range serials[:4] {
		ok := true
		for _, other := range serials[:4] {
			if other != candidate && !E.graph.Bonded(candidate, other) {
				ok = false
				break
			}
		}
		if ok && (central == 0 || candidate < central) {
			central = candidate
		}
	}
	return central, central != 0
}

//improperMode matches a star-shaped selection against the torsion
//records by atom set. Improper records store their atoms in no
//canonical order, so the match is set equality, re-checked against the
//topology: the inferred central atom must be bonded to the record's
//other three.
func (E *Engine) improperMode(s *spanSet, serials []int) *Interaction {
	if len(serials) < 4 {
		return nil
	}
	central, ok := E.improperCentral(serials)
	if !ok {
		return nil
	}
	ordered := [4]int{central}
	next := 1
	for _, serial := range serials[:4] {
		if serial != central && next < 4 {
			ordered[next] = serial
			next++
		}
	}
	sort.Ints(ordered[1:])
	target := sortedKey(serials[:4])
	var matches []DihedralMatch
	for _, rec := range E.dihedrals {
		if sortedKey([]int{rec.I, rec.J, rec.K, rec.L}) != target {
			continue
		}
		adjacent := true
		for _, other := range []int{rec.I, rec.J, rec.K, rec.L} {
			if other != central && !E.graph.Bonded(central, other) {
				adjacent = false
				break
			}
		}
		if !adjacent {
			continue
		}
		E.torsionSpans(s, rec)
		matches = append(matches, E.torsionMatch(rec, ordered))
	}
	if matches == nil {
		return nil
	}
	return &Interaction{Mode: parm.ModeImproper, Dihedrals: matches}
}

//oneFourMode matches a pair of atoms three bonds apart against the
//terminal atoms of the proper torsion records that carry its 1-4
//interaction. The matched pair also gets its nonbonded parameter
//spans: the 1-4 term scales exactly those.
func (E *Engine) oneFourMode(s *spanSet, serials []int) *Interaction {
	if len(serials) < 2 {
		return nil
	}
	a, b := serials[0], serials[1]
	if E.graph.Distance(a, b, 3) != 3 {
		return nil
	}
	var matches []OneFourMatch
	for _, rec := range E.dihedrals {
		if rec.Ignore14 || rec.Improper {
			continue
		}
		if !(rec.I == a && rec.L == b) && !(rec.I == b && rec.L == a) {
			continue
		}
		E.recordSpans(s, rec.Section, rec.Index, 5)
		E.addParam(s, "SCEE_SCALE_FACTOR", rec.ParamIndex)
		E.addParam(s, "SCNB_SCALE_FACTOR", rec.ParamIndex)
		matches = append(matches, OneFourMatch{
			Serials:     [2]int{rec.I, rec.L},
			TypeIndices: [2]int{E.typeOf(rec.I), E.typeOf(rec.L)},
			ParamIndex:  rec.ParamIndex,
			Scee:        E.paramValue("SCEE_SCALE_FACTOR", rec.ParamIndex),
			Scnb:        E.paramValue("SCNB_SCALE_FACTOR", rec.ParamIndex),
		})
	}
	if matches == nil {
		return nil
	}
	E.pairLJSpans(s, a, b)
	return &Interaction{
		Mode:      parm.ModeOneFourNonbonded,
		OneFour:   matches,
		Nonbonded: E.nonbondedInfo(a, b),
	}
}

//nonbondedMode handles pairs interacting only through the nonbonded
//potential: atoms closer than four bonds apart interact through bonded
//terms (or the scaled 1-4 path) instead, so they never match here.
func (E *Engine) nonbondedMode(s *spanSet, serials []int) *Interaction {
	if len(serials) < 2 {
		return nil
	}
	a, b := serials[0], serials[1]
	if a == b || E.graph.Distance(a, b, 3) != -1 {
		return nil
	}
	info := E.nonbondedInfo(a, b)
	if info == nil || info.NbIndex == 0 {
		return nil
	}
	E.pairLJSpans(s, a, b)
	return &Interaction{Mode: parm.ModeNonBonded, Nonbonded: info}
}

//pairLJSpans adds the nonbonded parameter tokens of an atom pair: both
//storage orders of its NONBONDED_PARM_INDEX cell and the coefficient
//entries the index selects. A hydrogen-bond index additionally brings
//the 10-12 cutoff token along.
func (E *Engine) pairLJSpans(s *spanSet, a, b int) {
	ta, tb := E.typeOf(a), E.typeOf(b)
	if ta <= 0 || tb <= 0 {
		return
	}
	sec := E.file.Section("NONBONDED_PARM_INDEX")
	if sec == nil {
		return
	}
	direct, transposed := E.lj.PairIndexCells(ta, tb)
	s.addToken(sec, direct)
	s.addToken(sec, transposed)
	nb := E.lj.Index(ta, tb)
	if nb > 0 {
		E.addParam(s, "LENNARD_JONES_ACOEF", nb)
		E.addParam(s, "LENNARD_JONES_BCOEF", nb)
	} else if nb < 0 {
		E.addParam(s, "HBOND_ACOEF", -nb)
		E.addParam(s, "HBOND_BCOEF", -nb)
		if hbcut := E.file.Section("HBCUT"); hbcut != nil {
			s.addToken(hbcut, 0)
		}
	}
}

//nonbondedInfo derives the pair Lennard-Jones payload for an atom
//pair, or nil when either atom lacks a type.
func (E *Engine) nonbondedInfo(a, b int) *NonbondedMatch {
	ta, tb := E.typeOf(a), E.typeOf(b)
	if ta <= 0 || tb <= 0 {
		return nil
	}
	info := &NonbondedMatch{
		Serials:     [2]int{a, b},
		TypeIndices: [2]int{ta, tb},
		NbIndex:     E.lj.Index(ta, tb),
		ACoef:       math.NaN(),
		BCoef:       math.NaN(),
		Rmin:        math.NaN(),
		Epsilon:     math.NaN(),
	}
	if pair, ok := E.lj.ValuesFor(info.NbIndex); ok {
		info.ACoef, info.BCoef = pair.A, pair.B
		info.Rmin, info.Epsilon = pair.Rmin, pair.Epsilon
	}
	return info
}

//sortedKey is a comparable set key for up to four serials.
func sortedKey(serials []int) [4]int {
	var out [4]int
	copy(out[:], serials)
	sort.Ints(out[:len(serials)])
	return out
}
