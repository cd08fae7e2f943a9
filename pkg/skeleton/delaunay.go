// Package skeleton derives a medial-axis approximation for a room polygon.
//
// The pipeline: resample the boundary into ordered sites, Delaunay
// triangulate them (Bowyer-Watson), dualize to Voronoi edges, keep the
// edges that trace the middle of the room, then stitch the surviving
// segments into a graph of junctions, terminals, and branches.
package skeleton

import (
	"math"

	"github.com/anchorplan/anchorplan/pkg/geo"
)

// triangle references three site indices and caches its circumcircle.
// Indices at or above the real site count belong to the super-triangle.
type triangle struct {
	a, b, c int
	cx, cy  float64
	r2      float64
}

func (t triangle) circumContains(p geo.Point) bool {
	dx := p.X - t.cx
	dy := p.Y - t.cy
	return dx*dx+dy*dy <= t.r2*(1+1e-12)
}

func (t triangle) hasVertexAtOrAbove(n int) bool {
	return t.a >= n || t.b >= n || t.c >= n
}

func newTriangle(a, b, c int, pts []geo.Point) triangle {
	t := triangle{a: a, b: b, c: c}
	pa, pb, pc := pts[a], pts[b], pts[c]

	d := 2 * (pa.X*(pb.Y-pc.Y) + pb.X*(pc.Y-pa.Y) + pc.X*(pa.Y-pb.Y))
	if math.Abs(d) < 1e-12 {
		// Collinear sites have no circumcircle. An infinite radius makes
		// the triangle swallow the next insertion and disappear.
		t.r2 = math.Inf(1)
		return t
	}
	la := pa.LengthSquared()
	lb := pb.LengthSquared()
	lc := pc.LengthSquared()
	t.cx = (la*(pb.Y-pc.Y) + lb*(pc.Y-pa.Y) + lc*(pa.Y-pb.Y)) / d
	t.cy = (la*(pc.X-pb.X) + lb*(pa.X-pc.X) + lc*(pb.X-pa.X)) / d
	dx := pa.X - t.cx
	dy := pa.Y - t.cy
	t.r2 = dx*dx + dy*dy
	return t
}

type triEdge struct {
	u, v int // u < v
}

func edgeOf(a, b int) triEdge {
	if a > b {
		a, b = b, a
	}
	return triEdge{u: a, v: b}
}

// triangulate computes the Delaunay triangulation of pts by incremental
// insertion. Sites are inserted in slice order, which keeps the result
// deterministic. Triangles touching the synthetic super-triangle are
// stripped from the output.
func triangulate(pts []geo.Point) []triangle {
	n := len(pts)
	if n < 3 {
		return nil
	}

	all := make([]geo.Point, n, n+3)
	copy(all, pts)

	min, max := boundsOf(pts)
	cx := (min.X + max.X) / 2
	cy := (min.Y + max.Y) / 2
	d := math.Max(max.X-min.X, max.Y-min.Y)
	if d == 0 {
		d = 1
	}
	all = append(all,
		geo.Pt(cx-20*d, cy-d),
		geo.Pt(cx+20*d, cy-d),
		geo.Pt(cx, cy+20*d),
	)

	tris := []triangle{newTriangle(n, n+1, n+2, all)}

	for i := 0; i < n; i++ {
		p := all[i]

		// Collect the cavity: triangles whose circumcircle contains p.
		bad := tris[:0:0]
		keep := tris[:0:0]
		for _, t := range tris {
			if t.circumContains(p) {
				bad = append(bad, t)
			} else {
				keep = append(keep, t)
			}
		}

		// The cavity boundary is every edge that appears in exactly one
		// bad triangle. Order is preserved from the bad slice so the
		// output stays deterministic.
		counts := make(map[triEdge]int, len(bad)*3)
		var order []triEdge
		for _, t := range bad {
			for _, e := range [3]triEdge{edgeOf(t.a, t.b), edgeOf(t.b, t.c), edgeOf(t.c, t.a)} {
				if counts[e] == 0 {
					order = append(order, e)
				}
				counts[e]++
			}
		}

		tris = keep
		for _, e := range order {
			if counts[e] != 1 {
				continue
			}
			tris = append(tris, newTriangle(e.u, e.v, i, all))
		}
	}

	out := tris[:0:0]
	for _, t := range tris {
		if !t.hasVertexAtOrAbove(n) {
			out = append(out, t)
		}
	}
	return out
}

func boundsOf(pts []geo.Point) (geo.Point, geo.Point) {
	min, max := pts[0], pts[0]
	for _, p := range pts[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// jitterSites displaces each site by a deterministic sub-millimeter amount.
// Resampled boundaries of rectangular rooms put four or more sites on a
// common circle, which makes the triangulation ambiguous; the jitter breaks
// those ties identically on every run.
func jitterSites(sites []geo.Point) []geo.Point {
	out := make([]geo.Point, len(sites))
	for i, s := range sites {
		hx := uint32(i)*2654435761 + 1
		hy := uint32(i)*2246822519 + 7
		out[i] = geo.Pt(
			s.X+(float64(hx%1024)/1024-0.5)*1e-3,
			s.Y+(float64(hy%1024)/1024-0.5)*1e-3,
		)
	}
	return out
}
