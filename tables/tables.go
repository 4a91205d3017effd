//Package tables derives the aggregated interaction tables of one
//topology: per-type atom rows, deduplicated bond and angle type rows,
//per-term dihedral and improper rows, 1-4 pair rows and the full
//nonbonded type-pair matrix. Rows are value types; a built Set is
//immutable and safe for concurrent readers.
package tables

import (
	"math"
	"sort"
	"strings"

	parm "github.com/rmera/goparm"
)

//Set holds every derived table of one topology, plus the shared
//type-name map and the rotatable-bond set the dihedral rows were
//flagged against.
type Set struct {
	AtomTypes []AtomTypeRow
	Bonds     []BondTypeRow
	Angles    []AngleTypeRow
	Dihedrals []DihedralTermRow
	Impropers []ImproperTermRow
	OneFour   []OneFourRow
	Nonbonded []NonbondedRow

	TypeNames map[int]string
	Rotatable map[[2]int]bool
}

//AtomTypeRow describes one Lennard-Jones atom type: which AMBER type
//labels map to it, how many atoms carry it, and its self-interaction
//parameters. ACoef and BCoef are NaN when the diagonal entry is
//absent; RminHalf and Epsilon stay zero when the coefficients are too
//small to invert.
type AtomTypeRow struct {
	TypeIndex int
	Names     string //sorted unique AMBER type labels, comma separated
	AtomCount int
	PairIndex int
	ACoef     float64
	BCoef     float64
	RminHalf  float64
	Epsilon   float64
	Defined   bool
}

//BondTypeRow is one deduplicated bond class: an order-insensitive type
//pair plus parameter index, with the number of bond records that
//collapsed into it.
type BondTypeRow struct {
	TypeA, TypeB  int //TypeA <= TypeB
	NameA, NameB  string
	ParamIndex    int
	ForceConstant float64
	EquilValue    float64
	Count         int
}

//AngleTypeRow is one deduplicated angle class. The outer types are
//stored sorted; the central type keeps its place.
type AngleTypeRow struct {
	TypeI, TypeJ, TypeK int //TypeI <= TypeK, TypeJ central
	NameI, NameJ, NameK string
	ParamIndex          int
	ForceConstant       float64
	EquilValue          float64
	Count               int
}

//DihedralTermRow is one torsion term instance, impropers included.
//Ordinal numbers the term across both dihedral sections; ID numbers
//the distinct (i,j,k,l) quartets in order of first appearance, so
//multi-term torsions share an ID.
type DihedralTermRow struct {
	ID            int
	Ordinal       int
	Serials       [4]int
	Names         [4]string
	Types         [4]string
	Improper      bool
	Rotatable     bool
	ForceConstant float64
	Periodicity   float64
	Phase         float64
	Scee          float64
	Scnb          float64
}

//ImproperTermRow is one improper torsion term.
type ImproperTermRow struct {
	ID            int
	Ordinal       int
	Serials       [4]int
	Names         [4]string
	Types         [4]string
	ForceConstant float64
	Periodicity   float64
	Phase         float64
	Scee          float64
	Scnb          float64
}

//OneFourRow is one deduplicated 1-4 nonbonded class: the sorted type
//pair of the (i,l) atoms of proper torsion terms whose 1-4 pair is not
//skipped, with the scaling factors and pair Lennard-Jones parameters.
type OneFourRow struct {
	TypeA, TypeB int //TypeA <= TypeB
	NameA, NameB string
	ParamIndex   int
	Scee         float64
	Scnb         float64
	PairIndex    int
	ACoef        float64
	BCoef        float64
	Rmin         float64
	Epsilon      float64
	FromHbond    bool
	Count        int
}

//NonbondedRow is one entry of the upper triangle of the type-pair
//matrix. Every type pair appears whether or not any atom pair actually
//interacts through it.
type NonbondedRow struct {
	TypeA, TypeB int //TypeA <= TypeB
	NameA, NameB string
	PairIndex    int
	ACoef        float64
	BCoef        float64
	Rmin         float64
	Epsilon      float64
	FromHbond    bool
}

//Build derives all tables from an already parsed topology. The atoms
//slice and LJ index are taken as inputs so one load can share them
//with the other consumers.
func Build(f *parm.File, p *parm.PointerSet, atoms []parm.Atom, lj *parm.LJParams) (*Set, error) {
	s := &Set{TypeNames: typeNameMap(atoms, lj.NTypes())}
	bonds, err := parm.Bonds(f, p)
	if err != nil {
		return nil, err
	}
	angles, err := parm.Angles(f, p)
	if err != nil {
		return nil, err
	}
	dihedrals, err := parm.Dihedrals(f, p)
	if err != nil {
		return nil, err
	}
	bondForce, err := f.Floats("BOND_FORCE_CONSTANT", p.Numbnd)
	if err != nil {
		return nil, err
	}
	bondEquil, err := f.Floats("BOND_EQUIL_VALUE", p.Numbnd)
	if err != nil {
		return nil, err
	}
	angleForce, err := f.Floats("ANGLE_FORCE_CONSTANT", p.Numang)
	if err != nil {
		return nil, err
	}
	angleEquil, err := f.Floats("ANGLE_EQUIL_VALUE", p.Numang)
	if err != nil {
		return nil, err
	}
	dihForce, err := f.Floats("DIHEDRAL_FORCE_CONSTANT", p.Nptra)
	if err != nil {
		return nil, err
	}
	dihPeriod, err := f.Floats("DIHEDRAL_PERIODICITY", p.Nptra)
	if err != nil {
		return nil, err
	}
	dihPhase, err := f.Floats("DIHEDRAL_PHASE", p.Nptra)
	if err != nil {
		return nil, err
	}
	scee, err := f.OptionalFloats("SCEE_SCALE_FACTOR", p.Nptra)
	if err != nil {
		return nil, err
	}
	scnb, err := f.OptionalFloats("SCNB_SCALE_FACTOR", p.Nptra)
	if err != nil {
		return nil, err
	}
	s.Rotatable = rotatableBonds(bonds, dihedrals, atoms)
	s.AtomTypes = buildAtomTypes(atoms, lj, s.TypeNames)
	s.Bonds = buildBondTypes(bonds, atoms, bondForce, bondEquil, s.TypeNames)
	s.Angles = buildAngleTypes(angles, atoms, angleForce, angleEquil, s.TypeNames)
	s.Dihedrals = buildDihedralTerms(dihedrals, atoms, s.Rotatable, dihForce, dihPeriod, dihPhase, scee, scnb)
	s.Impropers = buildImproperTerms(s.Dihedrals)
	s.OneFour = buildOneFour(dihedrals, atoms, lj, scee, scnb, s.TypeNames)
	s.Nonbonded = buildNonbonded(lj, s.TypeNames)
	return s, nil
}

//typeNameMap joins the sorted unique AMBER type labels carried by each
//1-based type index. Indexes no atom uses map to the empty string.
func typeNameMap(atoms []parm.Atom, ntypes int) map[int]string {
	labels := make(map[int]map[string]bool)
	for _, a := range atoms {
		if a.TypeIndex <= 0 || a.Type == "" {
			continue
		}
		if labels[a.TypeIndex] == nil {
			labels[a.TypeIndex] = make(map[string]bool)
		}
		labels[a.TypeIndex][a.Type] = true
	}
	out := make(map[int]string, ntypes)
	for t := 1; t <= ntypes; t++ {
		out[t] = ""
	}
	for t, set := range labels {
		names := make([]string, 0, len(set))
		for name := range set {
			names = append(names, name)
		}
		sort.Strings(names)
		out[t] = strings.Join(names, ", ")
	}
	return out
}

func buildAtomTypes(atoms []parm.Atom, lj *parm.LJParams, names map[int]string) []AtomTypeRow {
	counts := make(map[int]int)
	for _, a := range atoms {
		counts[a.TypeIndex]++
	}
	out := make([]AtomTypeRow, 0, lj.NTypes())
	for t := 1; t <= lj.NTypes(); t++ {
		row := AtomTypeRow{
			TypeIndex: t,
			Names:     names[t],
			AtomCount: counts[t],
			PairIndex: lj.DirectIndex(t, t),
			ACoef:     math.NaN(),
			BCoef:     math.NaN(),
		}
		if a, b, ok := lj.Coefs(row.PairIndex); ok {
			row.ACoef, row.BCoef = a, b
		}
		self := lj.Self(t)
		row.RminHalf = self.RminHalf
		row.Epsilon = self.Epsilon
		row.Defined = self.Defined
		out = append(out, row)
	}
	return out
}

//float keys for grouping must survive NaN, which compares unequal to
//itself; the bit pattern does not.
func fbits(v float64) uint64 { return math.Float64bits(v) }

func sortedPair(a, b int) (int, int) {
	if a <= b {
		return a, b
	}
	return b, a
}

//paramAt indexes a 1-based parameter array, yielding NaN for indexes
//outside it or for an absent (nil) array.
func paramAt(values []float64, idx int) float64 {
	if idx < 1 || idx > len(values) {
		return math.NaN()
	}
	return values[idx-1]
}

type bondClassKey struct {
	a, b, param  int
	force, equil uint64
}

func buildBondTypes(bonds []parm.BondRecord, atoms []parm.Atom, force, equil []float64, names map[int]string) []BondTypeRow {
	byKey := make(map[bondClassKey]*BondTypeRow)
	for _, b := range bonds {
		ta, tb := typeOf(atoms, b.I), typeOf(atoms, b.J)
		if ta <= 0 || tb <= 0 {
			continue
		}
		ta, tb = sortedPair(ta, tb)
		fc := paramAt(force, b.ParamIndex)
		eq := paramAt(equil, b.ParamIndex)
		key := bondClassKey{ta, tb, b.ParamIndex, fbits(fc), fbits(eq)}
		row := byKey[key]
		if row == nil {
			row = &BondTypeRow{TypeA: ta, TypeB: tb, NameA: names[ta], NameB: names[tb],
				ParamIndex: b.ParamIndex, ForceConstant: fc, EquilValue: eq}
			byKey[key] = row
		}
		row.Count++
	}
	out := make([]BondTypeRow, 0, len(byKey))
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

type angleClassKey struct {
	i, j, k, param int
	force, equil   uint64
}

func buildAngleTypes(angles []parm.AngleRecord, atoms []parm.Atom, force, equil []float64, names map[int]string) []AngleTypeRow {
	byKey := make(map[angleClassKey]*AngleTypeRow)
	for _, a := range angles {
		ti, tj, tk := typeOf(atoms, a.I), typeOf(atoms, a.J), typeOf(atoms, a.K)
		if ti <= 0 || tj <= 0 || tk <= 0 {
			continue
		}
		ti, tk = sortedPair(ti, tk)
		fc := paramAt(force, a.ParamIndex)
		eq := paramAt(equil, a.ParamIndex)
		key := angleClassKey{ti, tj, tk, a.ParamIndex, fbits(fc), fbits(eq)}
		row := byKey[key]
		if row == nil {
			row = &AngleTypeRow{TypeI: ti, TypeJ: tj, TypeK: tk,
				NameI: names[ti], NameJ: names[tj], NameK: names[tk],
				ParamIndex: a.ParamIndex, ForceConstant: fc, EquilValue: eq}
			byKey[key] = row
		}
		row.Count++
	}
	out := make([]AngleTypeRow, 0, len(byKey))
	for _, row := range byKey {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.TypeI != b.TypeI:
			return a.TypeI < b.TypeI
		case a.TypeJ != b.TypeJ:
			return a.TypeJ < b.TypeJ
		case a.TypeK != b.TypeK:
			return a.TypeK < b.TypeK
		}
		return a.ParamIndex < b.ParamIndex
	})
	return out
}

//typeOf returns the 1-based type index of an atom serial, or 0 when
//the serial falls outside the atom list.
func typeOf(atoms []parm.Atom, serial int) int {
	if serial < 1 || serial > len(atoms) {
		return 0
	}
	return atoms[serial-1].TypeIndex
}

func nameOf(atoms []parm.Atom, serial int) string {
	if serial < 1 || serial > len(atoms) {
		return ""
	}
	return atoms[serial-1].Name
}

func typeLabelOf(atoms []parm.Atom, serial int) string {
	if serial < 1 || serial > len(atoms) {
		return ""
	}
	return atoms[serial-1].Type
}
