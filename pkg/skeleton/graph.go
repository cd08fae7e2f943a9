package skeleton

import (
	"sort"

	"github.com/anchorplan/anchorplan/pkg/geo"
)

// Graph is the stitched skeleton graph. Nodes live in an arena and are
// addressed by index; adjacency is kept as sorted neighbor lists. The
// zero value is an empty graph.
type Graph struct {
	nodes []geo.Point
	adj   [][]int
}

// NumNodes returns the number of nodes in the arena.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// Pos returns the position of node id.
func (g *Graph) Pos(id int) geo.Point {
	return g.nodes[id]
}

// Degree returns the number of distinct neighbors of node id.
func (g *Graph) Degree(id int) int {
	return len(g.adj[id])
}

// Neighbors returns the sorted neighbor ids of node id. The slice is
// shared with the graph and must not be mutated.
func (g *Graph) Neighbors(id int) []int {
	return g.adj[id]
}

// NumEdges returns the number of undirected edges.
func (g *Graph) NumEdges() int {
	total := 0
	for _, n := range g.adj {
		total += len(n)
	}
	return total / 2
}

// graphBuilder accumulates Voronoi segments into a Graph, snapping
// endpoints within tolerance onto shared nodes.
type graphBuilder struct {
	index *geo.SnapIndex
	edges map[[2]int]struct{}
	order [][2]int
}

func newGraphBuilder(tol float64) *graphBuilder {
	return &graphBuilder{
		index: geo.NewSnapIndex(tol),
		edges: make(map[[2]int]struct{}),
	}
}

// addSegment registers an undirected edge between the nodes at a and b.
// Segments that collapse onto a single node are dropped.
func (b *graphBuilder) addSegment(a, p geo.Point) {
	u := b.index.Add(a)
	v := b.index.Add(p)
	if u == v {
		return
	}
	if u > v {
		u, v = v, u
	}
	key := [2]int{u, v}
	if _, dup := b.edges[key]; dup {
		return
	}
	b.edges[key] = struct{}{}
	b.order = append(b.order, key)
}

// build finalizes the graph with sorted adjacency lists.
func (b *graphBuilder) build() *Graph {
	g := &Graph{
		nodes: b.index.Points(),
		adj:   make([][]int, b.index.Len()),
	}
	for _, e := range b.order {
		g.adj[e[0]] = append(g.adj[e[0]], e[1])
		g.adj[e[1]] = append(g.adj[e[1]], e[0])
	}
	for _, n := range g.adj {
		sort.Ints(n)
	}
	return g
}
