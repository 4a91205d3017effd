package tables

import (
	"math"
	"sort"

	parm "github.com/rmera/goparm"
)

func buildDihedralTerms(records []parm.DihedralRecord, atoms []parm.Atom, rotatable map[[2]int]bool,
	force, period, phase, scee, scnb []float64) []DihedralTermRow {
	out := make([]DihedralTermRow, 0, len(records))
	idByQuartet := make(map[[4]int]int)
	for _, r := range records {
		quartet := [4]int{r.I, r.J, r.K, r.L}
		id, seen := idByQuartet[quartet]
		if !seen {
			id = len(idByQuartet) + 1
			idByQuartet[quartet] = id
		}
		ja, ka := sortedPair(r.J, r.K)
		out = append(out, DihedralTermRow{
			ID:      id,
			Ordinal: r.Ordinal,
			Serials: quartet,
			Names: [4]string{nameOf(atoms, r.I), nameOf(atoms, r.J),
				nameOf(atoms, r.K), nameOf(atoms, r.L)},
			Types: [4]string{typeLabelOf(atoms, r.I), typeLabelOf(atoms, r.J),
				typeLabelOf(atoms, r.K), typeLabelOf(atoms, r.L)},
			Improper:      r.Improper,
			Rotatable:     rotatable[[2]int{ja, ka}],
			ForceConstant: paramAt(force, r.ParamIndex),
			Periodicity:   paramAt(period, r.ParamIndex),
			Phase:         paramAt(phase, r.ParamIndex),
			Scee:          paramAt(scee, r.ParamIndex),
			Scnb:          paramAt(scnb, r.ParamIndex),
		})
	}
	return out
}

//buildImproperTerms extracts the improper subset of the term rows,
//renumbering IDs over the distinct improper quartets while keeping the
//global ordinals.
func buildImproperTerms(terms []DihedralTermRow) []ImproperTermRow {
	var out []ImproperTermRow
	idByQuartet := make(map[[4]int]int)
	for _, t := range terms {
		if !t.Improper {
			continue
		}
		id, seen := idByQuartet[t.Serials]
		if !seen {
			id = len(idByQuartet) + 1
			idByQuartet[t.Serials] = id
		}
		out = append(out, ImproperTermRow{
			ID:            id,
			Ordinal:       t.Ordinal,
			Serials:       t.Serials,
			Names:         t.Names,
			Types:         t.Types,
			ForceConstant: t.ForceConstant,
			Periodicity:   t.Periodicity,
			Phase:         t.Phase,
			Scee:          t.Scee,
			Scnb:          t.Scnb,
		})
	}
	return out
}

type oneFourKey struct {
	a, b, param, pairIdx                int
	scee, scnb, acoef, bcoef, rmin, eps uint64
	fromHbond                           bool
}

//buildOneFour collapses the 1-4 interactions of the torsion list into
//type-pair classes. Terms whose third or fourth raw pointer is
//negative carry no 1-4 pair: the third marks a pair already counted by
//another term, the fourth an improper.
func buildOneFour(records []parm.DihedralRecord, atoms []parm.Atom, lj *parm.LJParams,
	scee, scnb []float64, names map[int]string) []OneFourRow {
	byKey := make(map[oneFourKey]*OneFourRow)
	for _, r := range records {
		if r.Ignore14 || r.Improper {
			continue
		}
		ti, tl := typeOf(atoms, r.I), typeOf(atoms, r.L)
		if ti <= 0 || tl <= 0 {
			continue
		}
		ta, tb := sortedPair(ti, tl)
		se := paramAt(scee, r.ParamIndex)
		sn := paramAt(scnb, r.ParamIndex)
		pairIdx := lj.Index(ti, tl)
		acoef, bcoef, rmin, eps := math.NaN(), math.NaN(), math.NaN(), math.NaN()
		fromHbond := false
		if pair, ok := lj.ValuesFor(pairIdx); ok {
			acoef, bcoef, rmin, eps = pair.A, pair.B, pair.Rmin, pair.Epsilon
			fromHbond = pair.FromHbond
		}
		key := oneFourKey{ta, tb, r.ParamIndex, pairIdx,
			fbits(se), fbits(sn), fbits(acoef), fbits(bcoef), fbits(rmin), fbits(eps), fromHbond}
		row := byKey[key]
		if row == nil {
			row = &OneFourRow{TypeA: ta, TypeB: tb, NameA: names[ta], NameB: names[tb],
				ParamIndex: r.ParamIndex, Scee: se, Scnb: sn, PairIndex: pairIdx,
				ACoef: acoef, BCoef: bcoef, Rmin: rmin, Epsilon: eps, FromHbond: fromHbond}
			byKey[key] = row
		}
		row.Count++
	}
	out := make([]OneFourRow, 0, len(byKey))
	for _, row := range byKey {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TypeA != out[j].TypeA {
			return out[i].TypeA < out[j].TypeA
		}
		if out[i].TypeB != out[j].TypeB {
			return out[i].TypeB < out[j].TypeB
		}
		return out[i].ParamIndex < out[j].ParamIndex
	})
	return out
}

//buildNonbonded enumerates the whole upper triangle of the type-pair
//matrix. Pairs are listed whether or not any atom pair is currently at
//nonbonded distance; the table describes the parameter space, not the
//geometry.
func buildNonbonded(lj *parm.LJParams, names map[int]string) []NonbondedRow {
	n := lj.NTypes()
	out := make([]NonbondedRow, 0, n*(n+1)/2)
	for a := 1; a <= n; a++ {
		for b := a; b <= n; b++ {
			row := NonbondedRow{TypeA: a, TypeB: b, NameA: names[a], NameB: names[b],
				PairIndex: lj.DirectIndex(a, b),
				ACoef:     math.NaN(), BCoef: math.NaN(),
				Rmin: math.NaN(), Epsilon: math.NaN()}
			if pair, ok := lj.ValuesFor(row.PairIndex); ok {
				row.ACoef, row.BCoef = pair.A, pair.B
				row.Rmin, row.Epsilon = pair.Rmin, pair.Epsilon
				row.FromHbond = pair.FromHbond
			}
			out = append(out, row)
		}
	}
	return out
}
