/*
 * lj_test.go, part of goparm.
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
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func loadSmallLJ(Te *testing.T) *LJParams {
	f, err := ReadFile("testdata/small.prmtop")
	if err != nil {
		Te.Fatal(err)
	}
	p, err := ParsePointers(f)
	if err != nil {
		Te.Fatal(err)
	}
	lj, err := NewLJParams(f, p)
	if err != nil {
		Te.Fatal(err)
	}
	return lj
}

func TestSelfLJ(Te *testing.T) {
	lj := loadSmallLJ(Te)
	a, b := 9.71708117e+05, 6.75612247e+02
	self := lj.Self(1)
	if !self.Defined {
		Te.Fatal("type 1 self entry undefined")
	}
	wantRminHalf := 0.5 * math.Pow(2*a/b, 1.0/6.0)
	wantEps := b * b / (4 * a)
	if !scalar.EqualWithinAbs(self.RminHalf, wantRminHalf, 1e-9) {
		Te.Errorf("rmin/2 = %v, want %v", self.RminHalf, wantRminHalf)
	}
	if !scalar.EqualWithinAbs(self.Epsilon, wantEps, 1e-12) {
		Te.Errorf("epsilon = %v, want %v", self.Epsilon, wantEps)
	}
}

//The cross pair keeps the full minimum-energy distance, twice the
//half value reported for self entries.
func TestPairLJFullRmin(Te *testing.T) {
	lj := loadSmallLJ(Te)
	a, b := 8.82619071e+05, 6.53361429e+02
	pair, ok := lj.Pair(1, 2)
	if !ok || pair.FromHbond {
		Te.Fatalf("pair (1,2): ok=%v hbond=%v", ok, pair.FromHbond)
	}
	wantRmin := math.Pow(2*a/b, 1.0/6.0)
	if !scalar.EqualWithinAbs(pair.Rmin, wantRmin, 1e-9) {
		Te.Errorf("rmin = %v, want %v", pair.Rmin, wantRmin)
	}
	if !scalar.EqualWithinAbs(pair.Epsilon, b*b/(4*a), 1e-12) {
		Te.Errorf("epsilon = %v", pair.Epsilon)
	}
}

const ljTestText = `%FLAG NONBONDED_PARM_INDEX
%FORMAT(10I8)
       0       2       0       3
%FLAG LENNARD_JONES_ACOEF
%FORMAT(5E16.8)
  1.00000000E+05  2.00000000E+05  1.00000000E-12
%FLAG LENNARD_JONES_BCOEF
%FORMAT(5E16.8)
  5.00000000E+02  6.00000000E+02  1.00000000E-12
`

func TestPairLookupFallback(Te *testing.T) {
	f, err := ParseString(ljTestText)
	if err != nil {
		Te.Fatal(err)
	}
	lj, err := NewLJParams(f, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if lj.NTypes() != 2 {
		Te.Fatalf("inferred %d types, want 2", lj.NTypes())
	}
	//(2,1) is zero in storage order; the transposed cell must serve.
	if got := lj.Index(2, 1); got != 2 {
		Te.Errorf("fallback index = %d, want 2", got)
	}
	if got := lj.DirectIndex(2, 1); got != 0 {
		Te.Errorf("direct index = %d, want 0", got)
	}
	if _, ok := lj.Pair(1, 1); ok {
		Te.Error("pair without any matrix entry reported parameters")
	}
}

//Coefficients below the threshold cannot be inverted into rmin and
//epsilon; the type reads as undefined instead of exploding.
func TestNearZeroCoefficients(Te *testing.T) {
	f, err := ParseString(ljTestText)
	if err != nil {
		Te.Fatal(err)
	}
	lj, err := NewLJParams(f, nil)
	if err != nil {
		Te.Fatal(err)
	}
	self := lj.Self(2)
	if self.Defined || self.RminHalf != 0 || self.Epsilon != 0 {
		Te.Errorf("near-zero self entry %+v", self)
	}
}

func TestHbondPair(Te *testing.T) {
	f, err := ReadFile("testdata/star.prmtop")
	if err != nil {
		Te.Fatal(err)
	}
	p, err := ParsePointers(f)
	if err != nil {
		Te.Fatal(err)
	}
	lj, err := NewLJParams(f, p)
	if err != nil {
		Te.Fatal(err)
	}
	pair, ok := lj.Pair(1, 1)
	if !ok || !pair.FromHbond {
		Te.Fatalf("hbond pair: ok=%v hbond=%v", ok, pair.FromHbond)
	}
	if pair.A != 7.5e+03 || pair.B != 1.5e+03 {
		Te.Errorf("hbond coefficients %v %v", pair.A, pair.B)
	}
	if !math.IsNaN(pair.Rmin) || !math.IsNaN(pair.Epsilon) {
		Te.Error("10-12 pair reported 6-12 rmin/epsilon")
	}
	self := lj.Self(1)
	if self.Defined {
		Te.Error("negative diagonal entry reported a defined 6-12 self term")
	}
}

func TestInferNTypesTriangular(Te *testing.T) {
	text := `%FLAG LENNARD_JONES_ACOEF
%FORMAT(5E16.8)
  1.00000000E+00  1.00000000E+00  1.00000000E+00  1.00000000E+00  1.00000000E+00
  1.00000000E+00
`
	f, err := ParseString(text)
	if err != nil {
		Te.Fatal(err)
	}
	n, err := InferNTypes(f)
	if err != nil || n != 3 {
		Te.Errorf("inferred %d types (%v), want 3", n, err)
	}
}

func TestPairMatrices(Te *testing.T) {
	lj := loadSmallLJ(Te)
	rmin, eps := lj.PairMatrices()
	if rmin.SymmetricDim() != 2 || eps.SymmetricDim() != 2 {
		Te.Fatalf("matrix dims %d %d", rmin.SymmetricDim(), eps.SymmetricDim())
	}
	if rmin.At(0, 1) != rmin.At(1, 0) {
		Te.Error("rmin matrix not symmetric")
	}
	pair, _ := lj.Pair(1, 2)
	if rmin.At(0, 1) != pair.Rmin {
		Te.Errorf("matrix entry %v, pair rmin %v", rmin.At(0, 1), pair.Rmin)
	}
}
