/*
 * atoms.go, part of goparm.
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

//Atom is the per-atom metadata of one topology entry. Serial is
//1-based, as are TypeIndex and ResidueIndex. Charge stays in the
//file's internal units (electron charge times 18.2223). AtomicNumber
//is zero when the topology predates the ATOMIC_NUMBER section.
type Atom struct {
	Serial       int
	Name         string
	Type         string //AMBER atom type label
	TypeIndex    int
	Charge       float64
	Mass         float64
	AtomicNumber int
	ResidueIndex int
	ResidueLabel string
}

//BuildAtoms decodes the per-atom and per-residue sections of f into a
//slice indexed by serial-1. Residue membership comes from
//RESIDUE_POINTER: each entry is the serial of the first atom of that
//residue, so an atom belongs to the last residue whose pointer does
//not exceed its serial.
func BuildAtoms(f *File, p *PointerSet) ([]Atom, error) {
	names, err := f.Strings("ATOM_NAME", p.Natom)
	if err != nil {
		return nil, errDecorate(err, "BuildAtoms")
	}
	charges, err := f.Floats("CHARGE", p.Natom)
	if err != nil {
		return nil, errDecorate(err, "BuildAtoms")
	}
	masses, err := f.Floats("MASS", p.Natom)
	if err != nil {
		return nil, errDecorate(err, "BuildAtoms")
	}
	typeIndices, err := f.Ints("ATOM_TYPE_INDEX", p.Natom)
	if err != nil {
		return nil, errDecorate(err, "BuildAtoms")
	}
	types, err := f.Strings("AMBER_ATOM_TYPE", p.Natom)
	if err != nil {
		return nil, errDecorate(err, "BuildAtoms")
	}
	var atomicNumbers []int
	if f.HasSection("ATOMIC_NUMBER") {
		atomicNumbers, err = f.Ints("ATOMIC_NUMBER", p.Natom)
		if err != nil {
			return nil, errDecorate(err, "BuildAtoms")
		}
	}
	resLabels, err := f.Strings("RESIDUE_LABEL", p.Nres)
	if err != nil {
		return nil, errDecorate(err, "BuildAtoms")
	}
	resPointers, err := f.Ints("RESIDUE_POINTER", p.Nres)
	if err != nil {
		return nil, errDecorate(err, "BuildAtoms")
	}
	atoms := make([]Atom, p.Natom)
	res := 0
	for i := range atoms {
		serial := i + 1
		for res+1 < len(resPointers) && resPointers[res+1] <= serial {
			res++
		}
		atoms[i] = Atom{
			Serial:    serial,
			Name:      names[i],
			Type:      types[i],
			TypeIndex: typeIndices[i],
			Charge:    charges[i],
			Mass:      masses[i],
		}
		if atomicNumbers != nil {
			atoms[i].AtomicNumber = atomicNumbers[i]
		}
		if len(resLabels) > 0 {
			atoms[i].ResidueIndex = res + 1
			atoms[i].ResidueLabel = resLabels[res]
		}
	}
	return atoms, nil
}
