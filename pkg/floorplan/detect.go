package floorplan

import (
	"math"
	"sort"

	"github.com/anchorplan/anchorplan/pkg/geo"
)

// DetectRooms reconstructs the enclosed rooms of a floor plan. Wall
// endpoints within snapTol pixels merge into shared corners, the merged
// segments form a planar graph, and each bounded face of that graph
// becomes one room. The returned rooms are sorted canonically (bounding
// box, then area) so downstream processing is independent of wall input
// order.
//
// Open wall runs, duplicate walls, and zero-length walls are tolerated
// and simply do not close any face. No walls, or walls forming no loop,
// return an empty slice.
func DetectRooms(walls []Wall, snapTol float64) []Room {
	g := buildWallGraph(walls, snapTol)
	if g == nil {
		return nil
	}

	minArea := math.Max(1e-9, snapTol*snapTol)
	var rooms []Room
	for _, face := range g.faces() {
		poly := g.polygon(face)
		if len(poly) < 3 || poly.Area() <= minArea {
			continue
		}
		rooms = append(rooms, Room{Polygon: poly})
	}

	sortRooms(rooms)
	for i := range rooms {
		rooms[i].Index = i
	}
	return rooms
}

func sortRooms(rooms []Room) {
	sort.SliceStable(rooms, func(i, j int) bool {
		mi, _ := rooms[i].Polygon.BBox()
		mj, _ := rooms[j].Polygon.BBox()
		if mi.X != mj.X {
			return mi.X < mj.X
		}
		if mi.Y != mj.Y {
			return mi.Y < mj.Y
		}
		return rooms[i].Polygon.AbsArea() > rooms[j].Polygon.AbsArea()
	})
}

// wallGraph is the planar graph of merged wall segments. Neighbor lists
// are sorted by the angle of the outgoing edge, which is what the face
// walk rotates through.
type wallGraph struct {
	index *geo.SnapIndex
	adj   [][]int
}

func buildWallGraph(walls []Wall, snapTol float64) *wallGraph {
	if len(walls) == 0 {
		return nil
	}
	index := geo.NewSnapIndex(snapTol)
	edges := make(map[[2]int]struct{}, len(walls))
	for _, w := range walls {
		u := index.Add(w.Start)
		v := index.Add(w.End)
		if u == v {
			continue
		}
		if u > v {
			u, v = v, u
		}
		edges[[2]int{u, v}] = struct{}{}
	}
	if len(edges) == 0 {
		return nil
	}

	g := &wallGraph{
		index: index,
		adj:   make([][]int, index.Len()),
	}
	for e := range edges {
		g.adj[e[0]] = append(g.adj[e[0]], e[1])
		g.adj[e[1]] = append(g.adj[e[1]], e[0])
	}
	for u, ns := range g.adj {
		pu := index.At(u)
		sort.Slice(ns, func(i, j int) bool {
			ai, aj := g.angleFrom(pu, ns[i]), g.angleFrom(pu, ns[j])
			if ai != aj {
				return ai < aj
			}
			return ns[i] < ns[j]
		})
	}
	return g
}

func (g *wallGraph) angleFrom(from geo.Point, to int) float64 {
	d := g.index.At(to).Sub(from)
	return math.Atan2(d.Y, d.X)
}

// next continues the face walk: having arrived at v along the edge from
// u, the walk leaves along the angular predecessor of u around v. With
// neighbor lists sorted by ascending angle this traces every face exactly
// once; in screen coordinates the bounded faces come out with positive
// signed area and the unbounded face negative.
func (g *wallGraph) next(u, v int) int {
	ns := g.adj[v]
	for i, n := range ns {
		if n == u {
			return ns[(i-1+len(ns))%len(ns)]
		}
	}
	return -1
}

// faces traces all faces of the graph. Each face is a cyclic node id
// sequence; spur edges appear as immediate backtracks and are cleaned by
// trimBacktracks.
func (g *wallGraph) faces() [][]int {
	visited := make(map[[2]int]bool)
	numEdges := 0
	for _, ns := range g.adj {
		numEdges += len(ns)
	}
	maxSteps := 2*numEdges + 8

	var out [][]int
	for u := range g.adj {
		for _, v := range g.adj[u] {
			if visited[[2]int{u, v}] {
				continue
			}
			face := g.trace(u, v, visited, maxSteps)
			if face = trimBacktracks(face); len(face) >= 3 {
				out = append(out, face)
			}
		}
	}
	return out
}

func (g *wallGraph) trace(u, v int, visited map[[2]int]bool, maxSteps int) []int {
	start := [2]int{u, v}
	face := []int{u}
	for steps := 0; steps < maxSteps; steps++ {
		visited[[2]int{u, v}] = true
		w := g.next(u, v)
		if w < 0 {
			return nil
		}
		u, v = v, w
		if u == start[0] && v == start[1] {
			return face
		}
		face = append(face, u)
	}
	return nil
}

// trimBacktracks removes out-and-back spur traversals (a, tip, a) from a
// cyclic node sequence, including spurs spanning the wrap-around point.
func trimBacktracks(face []int) []int {
	if len(face) == 0 {
		return nil
	}
	stack := face[:0:0]
	for _, id := range face {
		if len(stack) >= 2 && stack[len(stack)-2] == id {
			stack = stack[:len(stack)-1]
			continue
		}
		stack = append(stack, id)
	}
	for changed := true; changed && len(stack) >= 3; {
		changed = false
		if stack[0] == stack[len(stack)-1] {
			stack = stack[:len(stack)-1]
			changed = true
			continue
		}
		if stack[1] == stack[len(stack)-1] {
			stack = stack[1 : len(stack)-1]
			changed = true
			continue
		}
		// Spur walked right before the wrap: ...,S,tip with S also the
		// head of the cycle.
		if stack[len(stack)-2] == stack[0] {
			stack = stack[:len(stack)-2]
			changed = true
		}
	}
	if len(stack) < 3 {
		return nil
	}
	return stack
}

func (g *wallGraph) polygon(face []int) geo.Polygon {
	poly := make(geo.Polygon, len(face))
	for i, id := range face {
		poly[i] = g.index.At(id)
	}
	return poly
}
