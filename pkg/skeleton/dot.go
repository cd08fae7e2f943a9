package skeleton

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// DOTOptions configures skeleton diagram rendering.
type DOTOptions struct {
	// Labels includes node ids and degrees in the output. When false,
	// nodes are drawn as bare dots.
	Labels bool
}

// ToDOT converts a skeleton to Graphviz DOT format for debugging. Node
// positions are pinned to their pixel coordinates (y flipped, Graphviz
// grows upward) so the rendered graph overlays the floor plan. The
// resulting DOT string can be rendered with [RenderSVG].
//
// Junctions are drawn red, bend junctions orange, terminals blue.
func ToDOT(s *Skeleton, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("graph skeleton {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=point, width=0.08, color=grey40];\n")
	buf.WriteString("  edge [color=grey25];\n")
	buf.WriteString("\n")

	for id := 0; id < s.Graph.NumNodes(); id++ {
		p := s.Graph.Pos(id)
		attrs := fmt.Sprintf("pos=\"%.2f,%.2f!\"", p.X, -p.Y)
		if opts.Labels {
			attrs += fmt.Sprintf(", xlabel=\"%d/%d\"", id, s.Graph.Degree(id))
		}
		if style := nodeStyle(s, id); style != "" {
			attrs += ", " + style
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", id, attrs)
	}

	buf.WriteString("\n")
	for id := 0; id < s.Graph.NumNodes(); id++ {
		for _, n := range s.Graph.Neighbors(id) {
			if n > id {
				fmt.Fprintf(&buf, "  n%d -- n%d;\n", id, n)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeStyle(s *Skeleton, id int) string {
	switch {
	case s.Graph.Degree(id) >= 3:
		return "color=red, width=0.16"
	case s.bendNodes[id]:
		return "color=orange, width=0.14"
	case s.Graph.Degree(id) == 1:
		return "color=blue, width=0.12"
	}
	return ""
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
