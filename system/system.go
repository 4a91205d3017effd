//Package system bundles everything derived from one topology load into
//a Generation: the parsed file and its eagerly decoded core (pointers,
//atoms, Lennard-Jones index) plus lazily built artifacts (tables,
//selection index, bond graph, highlight engine). A Generation is
//immutable once loaded; reloading builds a new one and swaps it into a
//Store atomically, so readers of the previous generation keep a fully
//consistent view until they let go of it.
package system

import (
	"io"
	"sync"
	"sync/atomic"

	parm "github.com/rmera/goparm"
	"github.com/rmera/goparm/bondgraph"
	"github.com/rmera/goparm/highlight"
	"github.com/rmera/goparm/tables"
)

//Generation is one immutable topology load. The lazy artifacts are
//built at most once each; a build error is returned but not cached, so
//a failed artifact can be retried without reloading the file.
type Generation struct {
	file     *parm.File
	pointers *parm.PointerSet
	atoms    []parm.Atom
	lj       *parm.LJParams

	mu       sync.Mutex
	tables   *tables.Set
	selIndex *tables.SelectionIndex
	graph    *bondgraph.Graph
	engine   *highlight.Engine
}

//Load builds a Generation from an already lexed file. The pointer
//table, atom metadata and Lennard-Jones index are decoded eagerly:
//they are cheap, and any error in them must fail the whole load before
//the generation becomes visible to anyone.
func Load(f *parm.File) (*Generation, error) {
	p, err := parm.ParsePointers(f)
	if err != nil {
		return nil, err
	}
	atoms, err := parm.BuildAtoms(f, p)
	if err != nil {
		return nil, err
	}
	lj, err := parm.NewLJParams(f, p)
	if err != nil {
		return nil, err
	}
	return &Generation{file: f, pointers: p, atoms: atoms, lj: lj}, nil
}

//Open reads, lexes and loads a topology file. Compressed files are
//handled as in parm.ReadFile.
func Open(path string) (*Generation, error) {
	f, err := parm.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(f)
}

//Read lexes and loads a topology from r.
func Read(r io.Reader) (*Generation, error) {
	f, err := parm.Read(r)
	if err != nil {
		return nil, err
	}
	return Load(f)
}

//File returns the parsed topology.
func (G *Generation) File() *parm.File { return G.file }

//Pointers returns the decoded POINTERS table.
func (G *Generation) Pointers() *parm.PointerSet { return G.pointers }

//Atoms returns the per-atom metadata, indexed serial-1. Callers must
//not modify the returned slice.
func (G *Generation) Atoms() []parm.Atom { return G.atoms }

//LJ returns the Lennard-Jones parameter index.
func (G *Generation) LJ() *parm.LJParams { return G.lj }

//Graph returns the bond graph, building it on first use.
func (G *Generation) Graph() (*bondgraph.Graph, error) {
	G.mu.Lock()
	defer G.mu.Unlock()
	return G.graphLocked()
}

func (G *Generation) graphLocked() (*bondgraph.Graph, error) {
	if G.graph != nil {
		return G.graph, nil
	}
	g, err := bondgraph.FromFile(G.file, G.pointers)
	if err != nil {
		return nil, err
	}
	G.graph = g
	return g, nil
}

//Tables returns the derived interaction tables, building them on first
//use.
func (G *Generation) Tables() (*tables.Set, error) {
	G.mu.Lock()
	defer G.mu.Unlock()
	if G.tables != nil {
		return G.tables, nil
	}
	s, err := tables.Build(G.file, G.pointers, G.atoms, G.lj)
	if err != nil {
		return nil, err
	}
	G.tables = s
	return s, nil
}

//SelectionIndex returns the row-to-atoms selection index, building it
//on first use.
func (G *Generation) SelectionIndex() (*tables.SelectionIndex, error) {
	G.mu.Lock()
	defer G.mu.Unlock()
	if G.selIndex != nil {
		return G.selIndex, nil
	}
	idx, err := tables.BuildSelectionIndex(G.file, G.pointers, G.atoms)
	if err != nil {
		return nil, err
	}
	G.selIndex = idx
	return idx, nil
}

//Engine returns the highlight engine, building it (and the bond graph
//it needs) on first use.
func (G *Generation) Engine() (*highlight.Engine, error) {
	G.mu.Lock()
	defer G.mu.Unlock()
	if G.engine != nil {
		return G.engine, nil
	}
	g, err := G.graphLocked()
	if err != nil {
		return nil, err
	}
	e, err := highlight.New(G.file, G.pointers, G.atoms, G.lj, g)
	if err != nil {
		return nil, err
	}
	G.engine = e
	return e, nil
}

//Prefetch builds every lazy artifact now, so interactive use after a
//load never pays the derivation cost. The first error stops it.
func (G *Generation) Prefetch() error {
	if _, err := G.Graph(); err != nil {
		return err
	}
	if _, err := G.Tables(); err != nil {
		return err
	}
	if _, err := G.SelectionIndex(); err != nil {
		return err
	}
	_, err := G.Engine()
	return err
}

//Store publishes the current Generation to any number of concurrent
//readers, replacing it wholesale on reload. Readers always observe one
//consistent generation; there is no partially reloaded state.
type Store struct {
	current atomic.Value //*Generation
}

//Current returns the published generation, or nil before the first
//load.
func (S *Store) Current() *Generation {
	g, _ := S.current.Load().(*Generation)
	return g
}

//Replace publishes g as the current generation.
func (S *Store) Replace(g *Generation) {
	S.current.Store(g)
}

//Open loads the topology at path and publishes it. A failed load
//leaves the previously published generation in place.
func (S *Store) Open(path string) (*Generation, error) {
	g, err := Open(path)
	if err != nil {
		return nil, err
	}
	S.Replace(g)
	return g, nil
}
