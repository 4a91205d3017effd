/*
 * pointers.go, part of goparm.
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

//pointerNames lists the POINTERS fields in file order. NCOPY is the
//optional 32nd field written by newer programs.
var pointerNames = []string{
	"NATOM", "NTYPES", "NBONH", "MBONA", "NTHETH", "MTHETA",
	"NPHIH", "MPHIA", "NHPARM", "NPARM", "NNB", "NRES",
	"NBONA", "NTHETA", "NPHIA", "NUMBND", "NUMANG", "NPTRA",
	"NATYP", "NPHB", "IFPERT", "NBPER", "NGPER", "NDPER",
	"MBPER", "MGPER", "MDPER", "IFBOX", "NMXRS", "IFCAP",
	"NUMEXTRA", "NCOPY",
}

//PointerSet holds the decoded POINTERS section: the count table that
//sizes every other section of the topology. Field names follow the
//format's own nomenclature.
type PointerSet struct {
	Natom    int //atoms
	Ntypes   int //distinct Lennard-Jones atom types
	Nbonh    int //bonds involving hydrogen
	Mbona    int //bonds not involving hydrogen
	Ntheth   int //angles involving hydrogen
	Mtheta   int //angles not involving hydrogen
	Nphih    int //dihedrals involving hydrogen
	Mphia    int //dihedrals not involving hydrogen
	Nhparm   int
	Nparm    int
	Nnb      int //excluded-atom list length
	Nres     int //residues
	Nbona    int
	Ntheta   int
	Nphia    int
	Numbnd   int //unique bond types
	Numang   int //unique angle types
	Nptra    int //unique dihedral types
	Natyp    int //atom types in parameter file
	Nphb     int //distinct 10-12 hydrogen-bond pair types
	Ifpert   int
	Nbper    int
	Ngper    int
	Ndper    int
	Mbper    int
	Mgper    int
	Mdper    int
	Ifbox    int //box type flag
	Nmxrs    int //atoms in the largest residue
	Ifcap    int
	Numextra int //extra points
	Ncopy    int //PIMD slices, only in 32-field files
	HasNcopy bool
}

//ParsePointers decodes the POINTERS section of f. Exactly 31 or 32
//integer values are accepted; any other count, an unparsable token, or
//a negative count is a *ParseError. A negative count can never be
//valid here, and letting one through would corrupt every downstream
//length check.
func ParsePointers(f *File) (*PointerSet, error) {
	sec := f.Section("POINTERS")
	if sec == nil || len(sec.Tokens) == 0 {
		return nil, NewParseError("POINTERS", -1, "required section missing")
	}
	n := len(sec.Tokens)
	if n != 31 && n != 32 {
		return nil, NewParseError("POINTERS", sec.FlagLine, "expected 31 or 32 values, got %d", n)
	}
	values, err := f.SectionInts("POINTERS")
	if err != nil {
		return nil, errDecorate(err, "ParsePointers")
	}
	for i, v := range values {
		if v < 0 {
			return nil, NewParseError("POINTERS", sec.Tokens[i].Line, "negative count %d for %s", v, pointerNames[i])
		}
	}
	p := &PointerSet{
		Natom: values[0], Ntypes: values[1], Nbonh: values[2], Mbona: values[3],
		Ntheth: values[4], Mtheta: values[5], Nphih: values[6], Mphia: values[7],
		Nhparm: values[8], Nparm: values[9], Nnb: values[10], Nres: values[11],
		Nbona: values[12], Ntheta: values[13], Nphia: values[14], Numbnd: values[15],
		Numang: values[16], Nptra: values[17], Natyp: values[18], Nphb: values[19],
		Ifpert: values[20], Nbper: values[21], Ngper: values[22], Ndper: values[23],
		Mbper: values[24], Mgper: values[25], Mdper: values[26], Ifbox: values[27],
		Nmxrs: values[28], Ifcap: values[29], Numextra: values[30],
	}
	if n == 32 {
		p.Ncopy = values[31]
		p.HasNcopy = true
	}
	return p, nil
}
