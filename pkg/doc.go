// Package pkg provides the core libraries for Anchorplan device placement.
//
// # Overview
//
// Anchorplan reconstructs rooms from raw wall segments and computes anchor
// positions for indoor positioning hardware, matched to each room's size and
// shape. The pkg directory is organized into four main areas:
//
//  1. Geometry ([geo], [skeleton]) - points, polygons, offsets, medial axes
//  2. Domain ([floorplan], [placement], [tuning]) - rooms, strategies, anchors
//  3. Infrastructure ([cache], [pipeline], [planio]) - caching, orchestration, documents
//  4. Cross-cutting ([errors], [observability], [buildinfo]) - codes, hooks, version
//
// # Architecture
//
// The typical data flow through Anchorplan:
//
//	Wall segments (plan document)
//	         ↓
//	    [floorplan] package (snap endpoints, extract room faces, classify)
//	         ↓
//	    [skeleton] package (resample boundary, Voronoi medial axis, branches)
//	         ↓
//	    [placement] package (per-class strategies, arbitration, density pass)
//	         ↓
//	    Anchor list (plan document / HTTP response)
//
// # Quick Start
//
// Detect rooms and place anchors on a wall set:
//
//	import (
//	    "github.com/anchorplan/anchorplan/pkg/placement"
//	)
//
//	opts := placement.Options{ScaleRatio: 10} // pixels per meter
//	anchors, err := placement.Place(walls, opts, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range anchors {
//	    fmt.Printf("%s at (%.1f, %.1f) room %d\n", a.ID, a.X, a.Y, a.RoomIndex)
//	}
//
// # Main Packages
//
// ## Geometry
//
// [geo] - Points, polygons (area, centroid, containment, bounding boxes),
// the inward/outward polygon offset primitive, and a snap-tolerant spatial
// index used by room detection and skeleton clustering.
//
// [skeleton] - Medial-axis approximation: boundary resampling, Bowyer-Watson
// Delaunay triangulation with a Voronoi dual, edge retention filters, an
// arena graph with integer node ids, branch stitching, and junction
// classification. Includes DOT output and Graphviz SVG rendering for
// debugging.
//
// ## Domain
//
// [floorplan] - Room reconstruction from wall segments (planar graph, minimal
// closed faces) and room classification into compact, extended, and large.
//
// [placement] - The placement engine: per-class strategies over offset rings
// and skeletons, priority arbitration with conflict radii, and the
// independent density-reduction pass. Pure functions over snapshots; a
// logger travels in the options.
//
// [tuning] - Every numeric threshold of the engine as a named, documented
// field, with defaults and TOML profile loading for calibration.
//
// ## Infrastructure
//
// [pipeline] - Runner orchestrating detect and place with per-stage
// content-hash caching and execution stats. Shared by the CLI and the HTTP
// API so both surfaces behave identically.
//
// [cache] - Cache interface with file, Redis, and null backends, sha256
// content hashing, scoped keys for shared deployments, and retry with
// backoff for transient backend failures.
//
// [planio] - The JSON plan document (scale, walls, anchors, placement area)
// the shell reads and writes. The engine itself takes in-memory slices only.
//
// ## Cross-cutting
//
// [errors] - Coded errors (code, message, cause) for the CLI and HTTP
// surfaces, plus shared option validation.
//
// [observability] - Hook registry for engine, cache, and store events with
// no-op defaults. Keeps metrics imports out of the engine; the HTTP facade
// registers Prometheus-backed hooks.
//
// [buildinfo] - Version information injected at build time.
//
// # Common Workflows
//
// Classify a detected room:
//
//	class := floorplan.ClassifyRoom(room.Polygon, scale, junctions, rules)
//	fmt.Println(class.Class, class.AreaM2)
//
// Inspect a room's skeleton:
//
//	skel, _ := skeleton.Build(room.Polygon, cfg)
//	dot := skeleton.ToDOT(skel, skeleton.DOTOptions{Labels: true})
//
// Thin an over-dense anchor set:
//
//	kept, _ := placement.OptimizeDensity(anchors, walls, placement.DensityOptions{
//	    Threshold:  3,
//	    ScaleRatio: 10,
//	})
//
// Run the cached pipeline:
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	res, _ := runner.Execute(ctx, walls, nil, pipeline.Options{
//	    Placement: placement.Options{ScaleRatio: 10},
//	})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/placement/... # Specific package
//	go test -run Example        # Examples only
//
// [geo]: https://pkg.go.dev/github.com/anchorplan/anchorplan/pkg/geo
// [skeleton]: https://pkg.go.dev/github.com/anchorplan/anchorplan/pkg/skeleton
// [floorplan]: https://pkg.go.dev/github.com/anchorplan/anchorplan/pkg/floorplan
// [placement]: https://pkg.go.dev/github.com/anchorplan/anchorplan/pkg/placement
// [tuning]: https://pkg.go.dev/github.com/anchorplan/anchorplan/pkg/tuning
// [pipeline]: https://pkg.go.dev/github.com/anchorplan/anchorplan/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/anchorplan/anchorplan/pkg/cache
// [planio]: https://pkg.go.dev/github.com/anchorplan/anchorplan/pkg/planio
// [errors]: https://pkg.go.dev/github.com/anchorplan/anchorplan/pkg/errors
// [observability]: https://pkg.go.dev/github.com/anchorplan/anchorplan/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/anchorplan/anchorplan/pkg/buildinfo
package pkg
