package tables

import parm "github.com/rmera/goparm"

//massCutoff separates hydrogens (and lone pairs or dummies) from heavy
//atoms. Tritium is just above 3 amu, so the cut sits at 3.1.
const massCutoff = 3.1

//rotatableBonds applies a purely topological rotatability heuristic to
//the bond list. A bond qualifies when both its atoms are heavy, it is
//the central bond of at least one proper torsion term, and the
//terminal atoms seen around each endpoint share no atom, which rules
//out rings closed through a short path.
func rotatableBonds(bonds []parm.BondRecord, dihedrals []parm.DihedralRecord, atoms []parm.Atom) map[[2]int]bool {
	heavy := make(map[[2]int]bool)
	for _, b := range bonds {
		a, c := sortedPair(b.I, b.J)
		if a < 1 || c > len(atoms) {
			continue
		}
		if atoms[a-1].Mass > massCutoff && atoms[c-1].Mass > massCutoff {
			heavy[[2]int{a, c}] = true
		}
	}

	//Only proper terms make a bond central: impropers put their third
	//atom in the middle of a star, not of a chain.
	central := make(map[[2]int]bool)
	triplets := make(map[int][][3]int)
	for _, d := range dihedrals {
		if !d.Improper {
			j, k := sortedPair(d.J, d.K)
			central[[2]int{j, k}] = true
		}
		triplets[d.I] = append(triplets[d.I], [3]int{d.J, d.K, d.L})
		triplets[d.L] = append(triplets[d.L], [3]int{d.I, d.J, d.K})
	}

	out := make(map[[2]int]bool)
	for pair := range heavy {
		if !central[pair] {
			continue
		}
		a, b := pair[0], pair[1]
		seenA := gatherTerminalNeighbors(triplets[a], b)
		seenB := gatherTerminalNeighbors(triplets[b], a)
		disjoint := true
		for atom := range seenA {
			if seenB[atom] {
				disjoint = false
				break
			}
		}
		if disjoint {
			out[pair] = true
		}
	}
	return out
}

//gatherTerminalNeighbors collects the atoms of every triplet that does
//not contain the other bond endpoint. Triplets through the bond itself
//say nothing about ring closure, so they are skipped.
func gatherTerminalNeighbors(triplets [][3]int, other int) map[int]bool {
	out := make(map[int]bool)
	for _, t := range triplets {
		if t[0] == other || t[1] == other || t[2] == other {
			continue
		}
		out[t[0]] = true
		out[t[1]] = true
		out[t[2]] = true
	}
	return out
}
