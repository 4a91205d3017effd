/*
 * records.go, part of goparm.
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

//Interaction record sections come in pairs, one for records involving
//hydrogen and one for the rest. Decoding flattens both into one slice,
//hydrogen records first, keeping each record's section and in-section
//index so consumers can recover the exact tokens that encode it.

//Section names of the paired record arrays.
const (
	SecBondsH       = "BONDS_INC_HYDROGEN"
	SecBondsNoH     = "BONDS_WITHOUT_HYDROGEN"
	SecAnglesH      = "ANGLES_INC_HYDROGEN"
	SecAnglesNoH    = "ANGLES_WITHOUT_HYDROGEN"
	SecDihedralsH   = "DIHEDRALS_INC_HYDROGEN"
	SecDihedralsNoH = "DIHEDRALS_WITHOUT_HYDROGEN"
)

//BondRecord is one decoded bond: two 1-based atom serials and the
//1-based index into the bond parameter arrays. Section and Index
//locate the record's three raw tokens.
type BondRecord struct {
	I, J       int
	ParamIndex int
	Section    string
	Index      int
}

//AngleRecord is one decoded angle; J is the central atom.
type AngleRecord struct {
	I, J, K    int
	ParamIndex int
	Section    string
	Index      int
}

//DihedralRecord is one decoded torsion term. A negative raw fourth
//pointer marks the term improper; a negative raw third pointer marks
//its 1-4 interaction already counted elsewhere. Ordinal numbers the
//term 1-based across both sections, impropers included, and is the
//stable identity used to select individual terms.
type DihedralRecord struct {
	I, J, K, L int
	ParamIndex int
	Improper   bool
	Ignore14   bool
	Section    string
	Index      int
	Ordinal    int
}

//Bonds decodes both bond sections of f, hydrogen bonds first. Each
//record is three integers: two atom pointers and a parameter index.
func Bonds(f *File, p *PointerSet) ([]BondRecord, error) {
	out := make([]BondRecord, 0, p.Nbonh+p.Mbona)
	for _, part := range []struct {
		name  string
		count int
	}{{SecBondsH, p.Nbonh}, {SecBondsNoH, p.Mbona}} {
		raw, err := f.Ints(part.name, part.count*3)
		if err != nil {
			return nil, errDecorate(err, "Bonds")
		}
		for i := 0; i < part.count; i++ {
			out = append(out, BondRecord{
				I:          SerialFromPointer(raw[i*3]),
				J:          SerialFromPointer(raw[i*3+1]),
				ParamIndex: abs(raw[i*3+2]),
				Section:    part.name,
				Index:      i,
			})
		}
	}
	return out, nil
}

//Angles decodes both angle sections of f; each record is four
//integers, three atom pointers and a parameter index.
func Angles(f *File, p *PointerSet) ([]AngleRecord, error) {
	out := make([]AngleRecord, 0, p.Ntheth+p.Mtheta)
	for _, part := range []struct {
		name  string
		count int
	}{{SecAnglesH, p.Ntheth}, {SecAnglesNoH, p.Mtheta}} {
		raw, err := f.Ints(part.name, part.count*4)
		if err != nil {
			return nil, errDecorate(err, "Angles")
		}
		for i := 0; i < part.count; i++ {
			out = append(out, AngleRecord{
				I:          SerialFromPointer(raw[i*4]),
				J:          SerialFromPointer(raw[i*4+1]),
				K:          SerialFromPointer(raw[i*4+2]),
				ParamIndex: abs(raw[i*4+3]),
				Section:    part.name,
				Index:      i,
			})
		}
	}
	return out, nil
}

//Dihedrals decodes both torsion sections of f; each record is five
//integers, four atom pointers and a parameter index. Sign conventions:
//raw[2] < 0 means the 1-4 pair is skipped, raw[3] < 0 means improper.
func Dihedrals(f *File, p *PointerSet) ([]DihedralRecord, error) {
	out := make([]DihedralRecord, 0, p.Nphih+p.Mphia)
	ordinal := 0
	for _, part := range []struct {
		name  string
		count int
	}{{SecDihedralsH, p.Nphih}, {SecDihedralsNoH, p.Mphia}} {
		raw, err := f.Ints(part.name, part.count*5)
		if err != nil {
			return nil, errDecorate(err, "Dihedrals")
		}
		for i := 0; i < part.count; i++ {
			ordinal++
			out = append(out, DihedralRecord{
				I:          SerialFromPointer(raw[i*5]),
				J:          SerialFromPointer(raw[i*5+1]),
				K:          SerialFromPointer(raw[i*5+2]),
				L:          SerialFromPointer(raw[i*5+3]),
				ParamIndex: abs(raw[i*5+4]),
				Ignore14:   raw[i*5+2] < 0,
				Improper:   raw[i*5+3] < 0,
				Section:    part.name,
				Index:      i,
				Ordinal:    ordinal,
			})
		}
	}
	return out, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
