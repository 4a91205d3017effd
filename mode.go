/*
 * mode.go, part of goparm.
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

//Mode identifies one interaction category. The set is closed: every
//derived table and every highlight request is in exactly one of these.
type Mode int

const (
	ModeAtom Mode = iota
	ModeBond
	ModeAngle
	ModeDihedral
	ModeImproper
	ModeOneFourNonbonded
	ModeNonBonded
)

//NAtoms returns how many atom serials a selection in this mode
//carries.
func (M Mode) NAtoms() int {
	switch M {
	case ModeAtom:
		return 1
	case ModeBond, ModeOneFourNonbonded, ModeNonBonded:
		return 2
	case ModeAngle:
		return 3
	case ModeDihedral, ModeImproper:
		return 4
	}
	return 0
}

func (M Mode) String() string {
	switch M {
	case ModeAtom:
		return "atom"
	case ModeBond:
		return "bond"
	case ModeAngle:
		return "angle"
	case ModeDihedral:
		return "dihedral"
	case ModeImproper:
		return "improper"
	case ModeOneFourNonbonded:
		return "one_four_nonbonded"
	case ModeNonBonded:
		return "non_bonded"
	}
	return "unknown"
}

//ParseMode maps a mode name (as produced by String) back to its Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "atom":
		return ModeAtom, true
	case "bond":
		return ModeBond, true
	case "angle":
		return ModeAngle, true
	case "dihedral":
		return ModeDihedral, true
	case "improper":
		return ModeImproper, true
	case "one_four_nonbonded":
		return ModeOneFourNonbonded, true
	case "non_bonded":
		return ModeNonBonded, true
	}
	return ModeAtom, false
}
