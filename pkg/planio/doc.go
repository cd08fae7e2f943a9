// Package planio reads and writes the JSON floor-plan documents exchanged
// by the CLI and the HTTP API.
//
// # Overview
//
// The placement engine itself works on in-memory slices; this package owns
// the document format around it. A single document type, [Plan], covers
// every exchange:
//
//   - placement input: walls plus the pixel scale
//   - placement output: the computed anchors (walls echoed for round-trips)
//   - density-reduction input and output: anchors, optionally with walls
//     for room-scoped passes
//
// A placement output is therefore directly usable as a density-reduction
// input, and documents survive an import, process, export cycle unchanged
// apart from the fields the operation rewrites.
//
// # JSON Format
//
//	{
//	  "scale_ratio": 10,
//	  "walls": [
//	    {"start": {"x": 0, "y": 0}, "end": {"x": 400, "y": 0}, "thickness": 2, "material": "concrete"},
//	    {"start": {"x": 400, "y": 0}, "end": {"x": 400, "y": 300}}
//	  ],
//	  "anchors": [
//	    {"id": "…", "x": 200, "y": 150, "radius_m": 8, "auto": true, "room_index": 0}
//	  ],
//	  "placement_area": [
//	    {"x": 0, "y": 0}, {"x": 400, "y": 0}, {"x": 400, "y": 300}, {"x": 0, "y": 300}
//	  ]
//	}
//
// All coordinates are pixels in the drawing's space (y grows down);
// "scale_ratio" is pixels per meter and applies to the whole document.
// Per-wall "thickness" (pixels) and "material" are optional annotations;
// room detection works on the centerline endpoints only.
// Every field is optional at the format level so partial documents stay
// valid; each operation checks for the fields it actually needs.
//
// Unknown fields are ignored on read, so documents produced by newer
// versions or annotated by other tools still import.
package planio
