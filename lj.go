/*
 * lj.go, part of goparm.
 *
 *
 * Copyright 2025 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * goParm is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package parm

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

//LJMinCoef is the threshold under which a Lennard-Jones coefficient is
//treated as zero. Topologies encode "no interaction" as coefficients
//that are exactly or nearly zero, and deriving rmin/epsilon from those
//would divide by (almost) nothing.
const LJMinCoef = 1e-10

//TypeLJ holds the self-interaction Lennard-Jones parameters of one
//atom type. When the diagonal entry is absent or its coefficients are
//below LJMinCoef, Defined is false and RminHalf and Epsilon stay zero.
type TypeLJ struct {
	TypeIndex int //1-based
	RminHalf  float64
	Epsilon   float64
	Defined   bool
}

//PairLJ holds the interaction parameters of one type pair. For a
//regular 6-12 entry, Rmin is the full minimum-energy distance (not the
//half value used for self entries). A negative parm index selects a
//10-12 hydrogen-bond entry instead; those carry no 6-12 rmin/epsilon,
//so both read as NaN and FromHbond is set.
type PairLJ struct {
	A         float64
	B         float64
	Rmin      float64
	Epsilon   float64
	FromHbond bool
}

//LJParams indexes the nonbonded parameter arrays of one topology: the
//NONBONDED_PARM_INDEX matrix, the triangular ACOEF/BCOEF arrays and
//the optional 10-12 hydrogen-bond arrays.
type LJParams struct {
	ntypes  int
	nbIndex []int
	acoef   []float64
	bcoef   []float64
	hbondA  []float64
	hbondB  []float64
}

//NewLJParams builds the Lennard-Jones index for f. When p is non-nil
//its NTYPES and NPHB counts size the section checks; otherwise the
//type count is inferred from the arrays themselves via InferNTypes.
func NewLJParams(f *File, p *PointerSet) (*LJParams, error) {
	var ntypes int
	if p != nil {
		ntypes = p.Ntypes
	} else {
		var err error
		ntypes, err = InferNTypes(f)
		if err != nil {
			return nil, errDecorate(err, "NewLJParams")
		}
	}
	triangular := ntypes * (ntypes + 1) / 2
	nbIndex, err := f.Ints("NONBONDED_PARM_INDEX", ntypes*ntypes)
	if err != nil {
		return nil, errDecorate(err, "NewLJParams")
	}
	acoef, err := f.Floats("LENNARD_JONES_ACOEF", triangular)
	if err != nil {
		return nil, errDecorate(err, "NewLJParams")
	}
	bcoef, err := f.Floats("LENNARD_JONES_BCOEF", triangular)
	if err != nil {
		return nil, errDecorate(err, "NewLJParams")
	}
	nphb := 0
	if p != nil {
		nphb = p.Nphb
	} else if sec := f.Section("HBOND_ACOEF"); sec != nil {
		nphb = len(sec.Tokens)
	}
	hbondA, err := f.Floats("HBOND_ACOEF", nphb)
	if err != nil {
		return nil, errDecorate(err, "NewLJParams")
	}
	hbondB, err := f.Floats("HBOND_BCOEF", nphb)
	if err != nil {
		return nil, errDecorate(err, "NewLJParams")
	}
	return &LJParams{ntypes: ntypes, nbIndex: nbIndex, acoef: acoef,
		bcoef: bcoef, hbondA: hbondA, hbondB: hbondB}, nil
}

//InferNTypes recovers the atom-type count without the POINTERS table.
//It tries, in order: the square root of the NONBONDED_PARM_INDEX
//length, the maximum ATOM_TYPE_INDEX value, and the inversion of the
//triangular LENNARD_JONES_ACOEF length.
func InferNTypes(f *File) (int, error) {
	if sec := f.Section("NONBONDED_PARM_INDEX"); sec != nil && len(sec.Tokens) > 0 {
		n := int(math.Round(math.Sqrt(float64(len(sec.Tokens)))))
		if n*n == len(sec.Tokens) {
			return n, nil
		}
	}
	indices, err := f.SectionInts("ATOM_TYPE_INDEX")
	if err != nil {
		return 0, errDecorate(err, "InferNTypes")
	}
	max := 0
	for _, v := range indices {
		if v > max {
			max = v
		}
	}
	if max > 0 {
		return max, nil
	}
	if sec := f.Section("LENNARD_JONES_ACOEF"); sec != nil && len(sec.Tokens) > 0 {
		//len = n(n+1)/2, so n = (sqrt(8*len+1)-1)/2.
		n := int(math.Round((math.Sqrt(8*float64(len(sec.Tokens))+1) - 1) / 2))
		if n*(n+1)/2 == len(sec.Tokens) {
			return n, nil
		}
	}
	return 0, NewParseError("NONBONDED_PARM_INDEX", -1, "unable to infer the atom-type count")
}

//NTypes returns the number of distinct Lennard-Jones atom types.
func (L *LJParams) NTypes() int { return L.ntypes }

//rawIndex looks up the signed parm index for the (a,b) type pair,
//1-based both ways. Some topologies only fill one triangle of the
//matrix, so a zero direct entry falls back to the transposed one.
func (L *LJParams) rawIndex(a, b int) int {
	if a < 1 || b < 1 || a > L.ntypes || b > L.ntypes {
		return 0
	}
	idx := (a-1)*L.ntypes + (b - 1)
	raw := L.nbIndex[idx]
	if raw == 0 {
		raw = L.nbIndex[(b-1)*L.ntypes+(a-1)]
	}
	return raw
}

//PairIndexCells returns the 0-based offsets into NONBONDED_PARM_INDEX
//for the (a,b) pair in both storage orders. Highlighting wants both
//cells even when only one was consulted.
func (L *LJParams) PairIndexCells(a, b int) (direct, transposed int) {
	return (a-1)*L.ntypes + (b - 1), (b-1)*L.ntypes + (a - 1)
}

//Self returns the self-interaction parameters of the 1-based type t.
func (L *LJParams) Self(t int) TypeLJ {
	out := TypeLJ{TypeIndex: t}
	raw := L.rawIndex(t, t)
	if raw <= 0 || raw > len(L.acoef) {
		return out
	}
	a, b := L.acoef[raw-1], L.bcoef[raw-1]
	if a < LJMinCoef || b < LJMinCoef {
		return out
	}
	out.RminHalf = 0.5 * math.Pow(2*a/b, 1.0/6.0)
	out.Epsilon = b * b / (4 * a)
	out.Defined = true
	return out
}

//Index returns the signed parm index for the 1-based type pair (a,b),
//after the transposed-entry fallback, or 0 when the pair has no entry.
func (L *LJParams) Index(a, b int) int { return L.rawIndex(a, b) }

//DirectIndex returns the matrix entry in (a,b) storage order only,
//without the fallback.
func (L *LJParams) DirectIndex(a, b int) int {
	if a < 1 || b < 1 || a > L.ntypes || b > L.ntypes {
		return 0
	}
	return L.nbIndex[(a-1)*L.ntypes+(b-1)]
}

//Coefs returns the 6-12 coefficients selected by a positive parm
//index.
func (L *LJParams) Coefs(raw int) (a, b float64, ok bool) {
	if raw < 1 || raw > len(L.acoef) || raw > len(L.bcoef) {
		return 0, 0, false
	}
	return L.acoef[raw-1], L.bcoef[raw-1], true
}

//Pair returns the interaction parameters of the 1-based type pair
//(a,b), and whether any parameter entry exists for it. A negative parm
//index selects the 10-12 hydrogen-bond arrays.
func (L *LJParams) Pair(a, b int) (PairLJ, bool) {
	return L.ValuesFor(L.rawIndex(a, b))
}

//ValuesFor derives the pair parameters selected by a signed parm
//index, exactly as Pair does after its matrix lookup.
func (L *LJParams) ValuesFor(raw int) (PairLJ, bool) {
	if raw == 0 {
		return PairLJ{}, false
	}
	if raw < 0 {
		h := -raw
		if h > len(L.hbondA) || h > len(L.hbondB) {
			return PairLJ{}, false
		}
		return PairLJ{A: L.hbondA[h-1], B: L.hbondB[h-1],
			Rmin: math.NaN(), Epsilon: math.NaN(), FromHbond: true}, true
	}
	if raw > len(L.acoef) || raw > len(L.bcoef) {
		return PairLJ{}, false
	}
	A, B := L.acoef[raw-1], L.bcoef[raw-1]
	out := PairLJ{A: A, B: B, Rmin: math.NaN(), Epsilon: math.NaN()}
	if A > 0 && B > 0 {
		out.Rmin = math.Pow(2*A/B, 1.0/6.0)
		out.Epsilon = B * B / (4 * A)
	}
	return out, true
}

//HbondEntry returns the 10-12 coefficients for the 1-based entry h.
func (L *LJParams) HbondEntry(h int) (a, b float64, ok bool) {
	if h < 1 || h > len(L.hbondA) || h > len(L.hbondB) {
		return 0, 0, false
	}
	return L.hbondA[h-1], L.hbondB[h-1], true
}

//PairMatrices assembles the full rmin and epsilon matrices over all
//type pairs as symmetric gonum matrices. Entries without a defined
//6-12 interaction (absent, zero-coefficient or hydrogen-bond pairs)
//hold NaN.
func (L *LJParams) PairMatrices() (rmin, epsilon *mat.SymDense) {
	rmin = mat.NewSymDense(L.ntypes, nil)
	epsilon = mat.NewSymDense(L.ntypes, nil)
	for i := 1; i <= L.ntypes; i++ {
		for j := i; j <= L.ntypes; j++ {
			pair, ok := L.Pair(i, j)
			if !ok {
				rmin.SetSym(i-1, j-1, math.NaN())
				epsilon.SetSym(i-1, j-1, math.NaN())
				continue
			}
			rmin.SetSym(i-1, j-1, pair.Rmin)
			epsilon.SetSym(i-1, j-1, pair.Epsilon)
		}
	}
	return rmin, epsilon
}
