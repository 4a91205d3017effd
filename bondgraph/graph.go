//Package bondgraph holds the covalent connectivity of a topology as an
//undirected graph over atom serials, and answers the small set of
//questions the interaction indexes need: adjacency, neighbor sets and
//bounded shortest-path distance.
package bondgraph

import (
	"sort"

	parm "github.com/rmera/goparm"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

//Graph is the bond network of one topology. Nodes are 1-based atom
//serials. The graph is immutable after construction and safe for
//concurrent readers.
type Graph struct {
	g      *simple.UndirectedGraph
	natoms int
}

//New builds an empty graph holding natoms isolated atoms. Atoms with
//no bonds still need nodes, or distance queries against them would be
//indistinguishable from queries against serials the topology does not
//have.
func New(natoms int) *Graph {
	g := simple.NewUndirectedGraph()
	for s := 1; s <= natoms; s++ {
		g.AddNode(simple.Node(int64(s)))
	}
	return &Graph{g: g, natoms: natoms}
}

//FromPairs builds the graph from explicit serial pairs.
func FromPairs(natoms int, pairs [][2]int) *Graph {
	G := New(natoms)
	for _, p := range pairs {
		G.addBond(p[0], p[1])
	}
	return G
}

//FromFile builds the graph from both bond sections of f.
func FromFile(f *parm.File, p *parm.PointerSet) (*Graph, error) {
	bonds, err := parm.Bonds(f, p)
	if err != nil {
		return nil, err
	}
	G := New(p.Natom)
	for _, b := range bonds {
		G.addBond(b.I, b.J)
	}
	return G, nil
}

func (G *Graph) addBond(a, b int) {
	if a == b || a < 1 || b < 1 || a > G.natoms || b > G.natoms {
		return
	}
	G.g.SetEdge(G.g.NewEdge(simple.Node(int64(a)), simple.Node(int64(b))))
}

//NAtoms returns the number of atoms the graph was built for.
func (G *Graph) NAtoms() int { return G.natoms }

//Has reports whether serial a is a node of the graph.
func (G *Graph) Has(a int) bool {
	return G.g.Node(int64(a)) != nil
}

//Bonded reports whether a and b are directly bonded.
func (G *Graph) Bonded(a, b int) bool {
	return G.g.HasEdgeBetween(int64(a), int64(b))
}

//Neighbors returns the serials directly bonded to a, sorted.
func (G *Graph) Neighbors(a int) []int {
	it := G.g.From(int64(a))
	var out []int
	for it.Next() {
		out = append(out, int(it.Node().ID()))
	}
	sort.Ints(out)
	return out
}

//Distance returns the number of bonds on the shortest path between a
//and b, or -1 when no path of at most max bonds exists. With max < 0
//the search is unbounded. The interaction indexes only ever need
//distances up to three, so the breadth-first walk is cut off as soon
//as the frontier passes max.
func (G *Graph) Distance(a, b, max int) int {
	if a == b {
		return 0
	}
	na := G.g.Node(int64(a))
	if na == nil || G.g.Node(int64(b)) == nil {
		return -1
	}
	depth := -1
	bfs := traverse.BreadthFirst{}
	bfs.Walk(G.g, na, func(n graph.Node, d int) bool {
		if max >= 0 && d > max {
			return true
		}
		if n.ID() == int64(b) {
			depth = d
			return true
		}
		return false
	})
	return depth
}
