package skeleton

import (
	"math"

	"github.com/anchorplan/anchorplan/pkg/geo"
)

// Branch is a maximal skeleton path between two nodes of degree other than
// two, or a closed loop of degree-two nodes. Nodes and Points run in
// parallel from one endpoint to the other.
type Branch struct {
	Nodes  []int
	Points []geo.Point
	Cycle  bool
}

// From returns the node id at the start of the branch.
func (b Branch) From() int {
	return b.Nodes[0]
}

// To returns the node id at the end of the branch.
func (b Branch) To() int {
	return b.Nodes[len(b.Nodes)-1]
}

// Length returns the polyline length of the branch.
func (b Branch) Length() float64 {
	total := 0.0
	for i := 1; i < len(b.Points); i++ {
		total += b.Points[i].Distance(b.Points[i-1])
	}
	return total
}

// PointAt returns the point at arc length dist from the start of the
// branch, clamped to the endpoints.
func (b Branch) PointAt(dist float64) geo.Point {
	if len(b.Points) == 0 {
		return geo.Point{}
	}
	if dist <= 0 {
		return b.Points[0]
	}
	for i := 1; i < len(b.Points); i++ {
		seg := b.Points[i].Distance(b.Points[i-1])
		if dist <= seg {
			if seg == 0 {
				return b.Points[i]
			}
			return b.Points[i-1].Lerp(b.Points[i], dist/seg)
		}
		dist -= seg
	}
	return b.Points[len(b.Points)-1]
}

// Midpoint returns the point halfway along the branch by arc length.
func (b Branch) Midpoint() geo.Point {
	return b.PointAt(b.Length() / 2)
}

// extractBranches walks the graph and returns every maximal branch.
// Branches are discovered from the lowest-numbered endpoint first, which
// fixes their order and orientation across runs.
func extractBranches(g *Graph) []Branch {
	visited := make(map[[2]int]bool, g.NumEdges())
	edgeKey := func(u, v int) [2]int {
		if u > v {
			u, v = v, u
		}
		return [2]int{u, v}
	}

	var branches []Branch

	walk := func(start, next int) Branch {
		nodes := []int{start, next}
		visited[edgeKey(start, next)] = true
		prev, cur := start, next
		for g.Degree(cur) == 2 && cur != start {
			var step int
			ns := g.Neighbors(cur)
			if ns[0] == prev {
				step = ns[1]
			} else {
				step = ns[0]
			}
			visited[edgeKey(cur, step)] = true
			nodes = append(nodes, step)
			prev, cur = cur, step
		}
		pts := make([]geo.Point, len(nodes))
		for i, id := range nodes {
			pts[i] = g.Pos(id)
		}
		return Branch{Nodes: nodes, Points: pts, Cycle: nodes[0] == nodes[len(nodes)-1]}
	}

	// Open branches start at nodes that are not pass-throughs.
	for id := 0; id < g.NumNodes(); id++ {
		if g.Degree(id) == 2 {
			continue
		}
		for _, n := range g.Neighbors(id) {
			if visited[edgeKey(id, n)] {
				continue
			}
			branches = append(branches, walk(id, n))
		}
	}

	// Whatever is left are pure degree-two loops.
	for id := 0; id < g.NumNodes(); id++ {
		if g.Degree(id) != 2 {
			continue
		}
		for _, n := range g.Neighbors(id) {
			if visited[edgeKey(id, n)] {
				continue
			}
			branches = append(branches, walk(id, n))
		}
	}

	return branches
}

// splitAtBends cuts branches at interior nodes where the polyline turns
// more sharply than threshold degrees. Corridors that meet in an L or T
// without a third edge at the meeting point read as one long branch in the
// graph; the bend node is the junction the topology missed. Returns the
// split branches and the ids of the bend nodes.
func splitAtBends(branches []Branch, threshold float64) ([]Branch, []int) {
	if threshold <= 0 {
		return branches, nil
	}
	limit := threshold * math.Pi / 180

	var out []Branch
	var bends []int
	for _, b := range branches {
		start := 0
		for i := 1; i < len(b.Points)-1; i++ {
			d1 := b.Points[i].Sub(b.Points[i-1])
			d2 := b.Points[i+1].Sub(b.Points[i])
			if turnAngle(d1, d2) <= limit {
				continue
			}
			out = append(out, sliceBranch(b, start, i))
			bends = append(bends, b.Nodes[i])
			start = i
		}
		out = append(out, sliceBranch(b, start, len(b.Points)-1))
	}
	return out, bends
}

func sliceBranch(b Branch, from, to int) Branch {
	return Branch{
		Nodes:  b.Nodes[from : to+1],
		Points: b.Points[from : to+1],
		Cycle:  false,
	}
}

// turnAngle returns the absolute change of direction between consecutive
// segment vectors, in radians.
func turnAngle(d1, d2 geo.Point) float64 {
	l1 := d1.Length()
	l2 := d2.Length()
	if l1 == 0 || l2 == 0 {
		return 0
	}
	cos := d1.Dot(d2) / (l1 * l2)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos)
}
