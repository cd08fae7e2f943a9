package skeleton

import (
	"errors"
	"sort"

	"github.com/anchorplan/anchorplan/pkg/geo"
)

var (
	// ErrInvalidPolygon indicates the input ring cannot support a skeleton.
	ErrInvalidPolygon = errors.New("skeleton: invalid polygon")
)

// Config controls skeleton extraction. All distances are in pixels.
type Config struct {
	// SampleStep is the target spacing between boundary sites. Build
	// widens it when the perimeter would otherwise produce more than
	// MaxSites sites.
	SampleStep float64

	// MaxSites caps the number of boundary sites.
	MaxSites int

	// NeighborGap is the minimum circular site-index distance between the
	// two sites of a Delaunay edge for its Voronoi dual to be kept.
	// Edges between boundary neighbors hug the wall instead of tracing
	// the middle of the room.
	NeighborGap int

	// SnapTolerance is the node clustering distance used when stitching
	// Voronoi segments into the graph.
	SnapTolerance float64

	// BendThreshold is the turn angle in degrees above which a branch is
	// split at an interior node and the node counts as a junction.
	BendThreshold float64
}

// DefaultConfig returns the extraction parameters used when a field is
// left at its zero value.
func DefaultConfig() Config {
	return Config{
		SampleStep:    8,
		MaxSites:      1200,
		NeighborGap:   2,
		SnapTolerance: 3,
		BendThreshold: 45,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SampleStep <= 0 {
		c.SampleStep = d.SampleStep
	}
	if c.MaxSites <= 0 {
		c.MaxSites = d.MaxSites
	}
	if c.NeighborGap <= 0 {
		c.NeighborGap = d.NeighborGap
	}
	if c.SnapTolerance <= 0 {
		c.SnapTolerance = d.SnapTolerance
	}
	if c.BendThreshold <= 0 {
		c.BendThreshold = d.BendThreshold
	}
	return c
}

// Segment is a retained Voronoi edge.
type Segment struct {
	A, B geo.Point
}

// Junction is a node of interest on the skeleton: a point where three or
// more branches meet, a sharp bend, or (via Terminals) a dead end.
type Junction struct {
	Node      int
	Pos       geo.Point
	Degree    int
	Geometric bool
}

// Skeleton is the medial-axis approximation of a room polygon.
type Skeleton struct {
	Polygon  geo.Polygon
	Sites    []geo.Point
	Segments []Segment
	Graph    *Graph
	Branches []Branch

	bendNodes map[int]bool
}

// Build computes the skeleton of poly. A polygon too small or degenerate
// to yield any interior Voronoi structure produces a skeleton with an
// empty graph, not an error; only invalid rings are rejected.
func Build(poly geo.Polygon, cfg Config) (*Skeleton, error) {
	if !poly.Valid() {
		return nil, ErrInvalidPolygon
	}
	cfg = cfg.withDefaults()

	step := cfg.SampleStep
	if per := poly.Perimeter(); per/step > float64(cfg.MaxSites) {
		step = per / float64(cfg.MaxSites)
	}
	sites := jitterSites(poly.Resample(step))

	s := &Skeleton{
		Polygon:   poly,
		Sites:     sites,
		Graph:     &Graph{},
		bendNodes: map[int]bool{},
	}
	if len(sites) < 4 {
		return s, nil
	}

	s.Segments = medialSegments(sites, poly, cfg.NeighborGap)
	if len(s.Segments) == 0 {
		return s, nil
	}

	b := newGraphBuilder(cfg.SnapTolerance)
	for _, seg := range s.Segments {
		b.addSegment(seg.A, seg.B)
	}
	s.Graph = b.build()

	branches, bends := splitAtBends(extractBranches(s.Graph), cfg.BendThreshold)
	s.Branches = branches
	for _, id := range bends {
		s.bendNodes[id] = true
	}
	return s, nil
}

// medialSegments dualizes the Delaunay triangulation of the boundary
// sites and keeps the Voronoi edges that trace the middle of the room:
// the generating sites must not be boundary neighbors (circular index
// distance above gap), both circumcenters must be finite, and the edge
// midpoint must lie inside the polygon.
func medialSegments(sites []geo.Point, poly geo.Polygon, gap int) []Segment {
	tris := triangulate(sites)
	if len(tris) == 0 {
		return nil
	}

	shared := make(map[triEdge][2]int, len(tris)*3)
	var order []triEdge
	for ti, t := range tris {
		for _, e := range [3]triEdge{edgeOf(t.a, t.b), edgeOf(t.b, t.c), edgeOf(t.c, t.a)} {
			pair, seen := shared[e]
			if !seen {
				shared[e] = [2]int{ti, -1}
				order = append(order, e)
				continue
			}
			pair[1] = ti
			shared[e] = pair
		}
	}

	n := len(sites)
	segs := make([]Segment, 0, len(order)/2)
	for _, e := range order {
		pair := shared[e]
		if pair[1] < 0 {
			continue
		}
		if circularDistance(e.u, e.v, n) <= gap {
			continue
		}
		t1, t2 := tris[pair[0]], tris[pair[1]]
		a := geo.Pt(t1.cx, t1.cy)
		c := geo.Pt(t2.cx, t2.cy)
		if !a.IsFinite() || !c.IsFinite() {
			continue
		}
		if a.Distance(c) < 1e-9 {
			continue
		}
		if !poly.Contains(a.Lerp(c, 0.5)) {
			continue
		}
		segs = append(segs, Segment{A: a, B: c})
	}
	return segs
}

// circularDistance returns the distance between site indices i and j on
// the boundary ring of n sites.
func circularDistance(i, j, n int) int {
	d := i - j
	if d < 0 {
		d = -d
	}
	if n-d < d {
		d = n - d
	}
	return d
}

// Junctions returns the skeleton nodes where three or more branches meet,
// plus bend nodes promoted by branch splitting, sorted by node id.
func (s *Skeleton) Junctions() []Junction {
	var out []Junction
	for id := 0; id < s.Graph.NumNodes(); id++ {
		deg := s.Graph.Degree(id)
		if deg >= 3 {
			out = append(out, Junction{Node: id, Pos: s.Graph.Pos(id), Degree: deg})
		} else if s.bendNodes[id] {
			out = append(out, Junction{Node: id, Pos: s.Graph.Pos(id), Degree: deg, Geometric: true})
		}
	}
	return out
}

// Terminals returns the dead-end nodes of the skeleton, sorted by node id.
func (s *Skeleton) Terminals() []Junction {
	var out []Junction
	for id := 0; id < s.Graph.NumNodes(); id++ {
		if s.Graph.Degree(id) == 1 {
			out = append(out, Junction{Node: id, Pos: s.Graph.Pos(id), Degree: 1})
		}
	}
	return out
}

// LongestBranch returns the branch with the greatest arc length.
func (s *Skeleton) LongestBranch() (Branch, bool) {
	if len(s.Branches) == 0 {
		return Branch{}, false
	}
	best := 0
	bestLen := s.Branches[0].Length()
	for i, b := range s.Branches[1:] {
		if l := b.Length(); l > bestLen {
			best = i + 1
			bestLen = l
		}
	}
	return s.Branches[best], true
}

// TotalLength returns the summed arc length of all branches.
func (s *Skeleton) TotalLength() float64 {
	total := 0.0
	for _, b := range s.Branches {
		total += b.Length()
	}
	return total
}

// NearestJunction returns the junction closest to p and its distance, or
// false when the skeleton has no junctions.
func (s *Skeleton) NearestJunction(p geo.Point) (Junction, float64, bool) {
	js := s.Junctions()
	if len(js) == 0 {
		return Junction{}, 0, false
	}
	best := js[0]
	bestDist := p.Distance(best.Pos)
	for _, j := range js[1:] {
		if d := p.Distance(j.Pos); d < bestDist {
			best = j
			bestDist = d
		}
	}
	return best, bestDist, true
}

// SortJunctionsByDegree orders junctions by descending degree, breaking
// ties by node id. Higher-degree junctions are better anchor sites.
func SortJunctionsByDegree(js []Junction) {
	sort.SliceStable(js, func(i, j int) bool {
		if js[i].Degree != js[j].Degree {
			return js[i].Degree > js[j].Degree
		}
		return js[i].Node < js[j].Node
	})
}
