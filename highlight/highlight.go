//Package highlight computes, for a selected interaction, the exact
//character spans of every token in the topology text that encodes it:
//the interaction record itself plus the parameter-array entries it
//points to. Connectivity decides what a selection can mean, so each
//mode checks the selected atoms against the bond graph before any
//record is matched; a selection that fails its mode's constraint
//yields no interaction, which is not an error.
package highlight

import (
	"errors"
	"fmt"
	"math"

	parm "github.com/rmera/goparm"
	"github.com/rmera/goparm/bondgraph"
)

//Span is one highlighted token: its section and its exact character
//range on a line of the original text.
type Span struct {
	Section string
	Line    int
	Start   int
	End     int
}

//Result is the outcome of one highlight request. Spans always covers
//the per-atom metadata tokens of the selected serials; the mode's
//record and parameter spans are added when a matching interaction
//exists, in which case Interaction describes it. A nil Interaction
//means the selection matched nothing in the requested mode.
type Result struct {
	Spans       []Span
	Interaction *Interaction
}

//Interaction is the decoded payload of a matched selection. Only the
//fields of the requested mode are filled.
type Interaction struct {
	Mode      parm.Mode
	Bonds     []BondMatch
	Angles    []AngleMatch
	Dihedrals []DihedralMatch
	OneFour   []OneFourMatch
	Nonbonded *NonbondedMatch
}

//BondMatch is one bond record matched by a selection. Parameter values
//are NaN when their array does not cover the index.
type BondMatch struct {
	Serials       [2]int
	TypeIndices   [2]int
	ParamIndex    int
	ForceConstant float64
	EquilValue    float64
}

//AngleMatch is one angle record matched by a selection.
type AngleMatch struct {
	Serials       [3]int
	TypeIndices   [3]int
	ParamIndex    int
	ForceConstant float64
	EquilValue    float64
}

//DihedralMatch is one torsion term matched by a selection. For
//improper selections Serials comes back central-first.
type DihedralMatch struct {
	Serials       [4]int
	ParamIndex    int
	ForceConstant float64
	Periodicity   float64
	Phase         float64
	Scee          float64
	Scnb          float64
}

//OneFourMatch is one 1-4 pair matched by a selection.
type OneFourMatch struct {
	Serials     [2]int
	TypeIndices [2]int
	ParamIndex  int
	Scee        float64
	Scnb        float64
}

//NonbondedMatch is the pair Lennard-Jones data of a selection. NbIndex
//is the signed parm index; a negative one points into the 10-12
//hydrogen-bond arrays, and then ACoef and BCoef hold those
//coefficients while Rmin and Epsilon are NaN.
type NonbondedMatch struct {
	Serials     [2]int
	TypeIndices [2]int
	NbIndex     int
	ACoef       float64
	BCoef       float64
	Rmin        float64
	Epsilon     float64
}

//SerialError reports a highlight request naming atom serials the
//topology does not have.
type SerialError struct {
	serials []int
	deco    []string
}

func (err *SerialError) Error() string {
	return fmt.Sprintf("goparm: atom serial(s) %v not found", err.serials)
}

func (err *SerialError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//IsSerialError reports whether err is a bad-serial request.
func IsSerialError(err error) bool {
	var se *SerialError
	return errors.As(err, &se)
}

//Engine answers highlight requests against one loaded topology. It is
//immutable after construction and safe for concurrent use.
type Engine struct {
	file      *parm.File
	atoms     []parm.Atom
	lj        *parm.LJParams
	graph     *bondgraph.Graph
	bonds     []parm.BondRecord
	angles    []parm.AngleRecord
	dihedrals []parm.DihedralRecord
}

//New builds an engine over an already parsed topology. The bond graph
//is taken as input so one load can share it with the other consumers.
func New(f *parm.File, p *parm.PointerSet, atoms []parm.Atom, lj *parm.LJParams, g *bondgraph.Graph) (*Engine, error) {
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
	return &Engine{file: f, atoms: atoms, lj: lj, graph: g,
		bonds: bonds, angles: angles, dihedrals: dihedrals}, nil
}

//spanSet accumulates spans, deduplicating by exact character range so
//a token referenced through several paths is highlighted once.
type spanSet struct {
	seen  map[Span]bool
	spans []Span
}

func newSpanSet() *spanSet {
	return &spanSet{seen: make(map[Span]bool)}
}

func (s *spanSet) addToken(section *parm.Section, i int) {
	tok, ok := section.Token(i)
	if !ok {
		return
	}
	span := Span{Section: section.Name, Line: tok.Line, Start: tok.Start, End: tok.End}
	if s.seen[span] {
		return
	}
	s.seen[span] = true
	s.spans = append(s.spans, span)
}

//addParam highlights the 1-based entry of a parameter section.
func (E *Engine) addParam(s *spanSet, name string, paramIndex int) {
	if paramIndex <= 0 {
		return
	}
	if sec := E.file.Section(name); sec != nil {
		s.addToken(sec, paramIndex-1)
	}
}

//paramValue reads the 1-based entry of a float parameter section,
//yielding NaN when the section or the entry is absent.
func (E *Engine) paramValue(name string, paramIndex int) float64 {
	if paramIndex <= 0 {
		return math.NaN()
	}
	values, err := E.file.SectionFloats(name)
	if err != nil || paramIndex > len(values) {
		return math.NaN()
	}
	return values[paramIndex-1]
}

func (E *Engine) typeOf(serial int) int {
	if serial < 1 || serial > len(E.atoms) {
		return 0
	}
	return E.atoms[serial-1].TypeIndex
}

//atomSections are the per-atom metadata arrays, indexed serial-1.
var atomSections = []string{
	"ATOM_NAME",
	"CHARGE",
	"ATOMIC_NUMBER",
	"MASS",
	"ATOM_TYPE_INDEX",
	"AMBER_ATOM_TYPE",
}

var residueSections = []string{"RESIDUE_LABEL", "RESIDUE_POINTER"}

//atomSpans adds the metadata tokens of one serial: its entry in every
//per-atom section plus its residue's label and pointer.
func (E *Engine) atomSpans(s *spanSet, serial int) {
	for _, name := range atomSections {
		if sec := E.file.Section(name); sec != nil {
			s.addToken(sec, serial-1)
		}
	}
	resIndex := E.atoms[serial-1].ResidueIndex - 1
	if resIndex < 0 {
		return
	}
	for _, name := range residueSections {
		if sec := E.file.Section(name); sec != nil {
			s.addToken(sec, resIndex)
		}
	}
}

//selfLJSpans adds the diagonal Lennard-Jones entry of the atom's type,
//or the hydrogen-bond entry a negative diagonal index points to.
func (E *Engine) selfLJSpans(s *spanSet, serial int) {
	t := E.typeOf(serial)
	if t <= 0 {
		return
	}
	nb := E.lj.DirectIndex(t, t)
	if nb > 0 {
		E.addParam(s, "LENNARD_JONES_ACOEF", nb)
	} else if nb < 0 {
		E.addParam(s, "HBOND_ACOEF", -nb)
	}
}

//Highlight computes the spans and interaction payload for a selection.
//Serials the topology does not have make the request fail; a selection
//that does not satisfy the mode's connectivity constraint, or matches
//no record, returns the base atom spans with a nil Interaction.
func (E *Engine) Highlight(mode parm.Mode, serials []int) (*Result, error) {
	if len(serials) == 0 {
		return &Result{}, nil
	}
	var missing []int
	for _, serial := range serials {
		if serial < 1 || serial > len(E.atoms) {
			missing = append(missing, serial)
		}
	}
	if len(missing) > 0 {
		return nil, &SerialError{serials: missing}
	}
	s := newSpanSet()
	for _, serial := range serials {
		E.atomSpans(s, serial)
	}
	var interaction *Interaction
	switch mode {
	case parm.ModeAtom:
		for _, serial := range serials {
			E.selfLJSpans(s, serial)
		}
	case parm.ModeBond:
		interaction = E.bondMode(s, serials)
	case parm.ModeAngle:
		interaction = E.angleMode(s, serials)
	case parm.ModeDihedral:
		interaction = E.dihedralMode(s, serials)
	case parm.ModeImproper:
		interaction = E.improperMode(s, serials)
	case parm.ModeOneFourNonbonded:
		interaction = E.oneFourMode(s, serials)
	case parm.ModeNonBonded:
		interaction = E.nonbondedMode(s, serials)
	}
	return &Result{Spans: s.spans, Interaction: interaction}, nil
}

//recordSpans adds the n consecutive tokens of one record.
func (E *Engine) recordSpans(s *spanSet, section string, index, n int) {
	sec := E.file.Section(section)
	if sec == nil {
		return
	}
	for i := 0; i < n; i++ {
		s.addToken(sec, index*n+i)
	}
}

//bondMode matches the selection against the bond records, order
//insensitively: a bond has no direction.
func (E *Engine) bondMode(s *spanSet, serials []int) *Interaction {
	if len(serials) < 2 {
		return nil
	}
	a, b := serials[0], serials[1]
	var matches []BondMatch
	for _, rec := range E.bonds {
		if !(rec.I == a && rec.J == b) && !(rec.I == b && rec.J == a) {
			continue
		}
		E.recordSpans(s, rec.Section, rec.Index, 3)
		E.addParam(s, "BOND_FORCE_CONSTANT", rec.ParamIndex)
		E.addParam(s, "BOND_EQUIL_VALUE", rec.ParamIndex)
		matches = append(matches, BondMatch{
			Serials:       [2]int{rec.I, rec.J},
			TypeIndices:   [2]int{E.typeOf(rec.I), E.typeOf(rec.J)},
			ParamIndex:    rec.ParamIndex,
			ForceConstant: E.paramValue("BOND_FORCE_CONSTANT", rec.ParamIndex),
			EquilValue:    E.paramValue("BOND_EQUIL_VALUE", rec.ParamIndex),
		})
	}
	if matches == nil {
		return nil
	}
	return &Interaction{Mode: parm.ModeBond, Bonds: matches}
}

//angleMode matches a bonded i-j-k path against the angle records. The
//path constraint comes first: three atoms that do not form one are not
//an angle no matter what the record list says. Records match in the
//selected order or its full reverse; the central atom is never
//ambiguous.
func (E *Engine) angleMode(s *spanSet, serials []int) *Interaction {
	if len(serials) < 3 {
		return nil
	}
	a, b, c := serials[0], serials[1], serials[2]
	if !E.graph.Bonded(a, b) || !E.graph.Bonded(b, c) {
		return nil
	}
	var matches []AngleMatch
	for _, rec := range E.angles {
		ordered := rec.I == a && rec.J == b && rec.K == c
		reversed := rec.I == c && rec.J == b && rec.K == a
		if !ordered && !reversed {
			continue
		}
		E.recordSpans(s, rec.Section, rec.Index, 4)
		E.addParam(s, "ANGLE_FORCE_CONSTANT", rec.ParamIndex)
		E.addParam(s, "ANGLE_EQUIL_VALUE", rec.ParamIndex)
		matches = append(matches, AngleMatch{
			Serials:       [3]int{rec.I, rec.J, rec.K},
			TypeIndices:   [3]int{E.typeOf(rec.I), E.typeOf(rec.J), E.typeOf(rec.K)},
			ParamIndex:    rec.ParamIndex,
			ForceConstant: E.paramValue("ANGLE_FORCE_CONSTANT", rec.ParamIndex),
			EquilValue:    E.paramValue("ANGLE_EQUIL_VALUE", rec.ParamIndex),
		})
	}
	if matches == nil {
		return nil
	}
	return &Interaction{Mode: parm.ModeAngle, Angles: matches}
}
