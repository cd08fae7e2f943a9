package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/anchorplan/anchorplan/pkg/pipeline"
	"github.com/anchorplan/anchorplan/pkg/placement"
	"github.com/anchorplan/anchorplan/pkg/planio"
	"github.com/anchorplan/anchorplan/pkg/skeleton"
)

// skeletonOpts holds the command-line flags for the skeleton command.
type skeletonOpts struct {
	room       int     // room index to export
	output     string  // DOT output file path (stdout if empty)
	render     string  // SVG output file path (no SVG if empty)
	labels     bool    // label nodes with id and degree
	scale      float64 // pixels per meter, overrides the plan's scale_ratio
	tuningFile string  // TOML tuning profile path
	noCache    bool    // disable caching
}

// skeletonCommand creates the skeleton command.
func (c *CLI) skeletonCommand() *cobra.Command {
	opts := skeletonOpts{}

	cmd := &cobra.Command{
		Use:   "skeleton <plan.json>",
		Short: "Export a room's medial-axis skeleton as DOT",
		Long: `Export a room's medial-axis skeleton as Graphviz DOT.

The skeleton traces the middle of the room and drives placement in
corridors and rooms with wings. Node positions are pinned to floor-plan
pixels, so the rendered graph overlays the plan. Junction nodes are
drawn red, bends orange, dead ends blue.

Use --render to produce an SVG directly:

  anchorplan skeleton floor2.json --room 3 --render room3.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSkeleton(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().IntVar(&opts.room, "room", 0, "room index to export")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "DOT output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.render, "render", "", "render an SVG to this file")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label nodes with id and degree")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "pixels per meter (overrides the plan's scale_ratio)")
	cmd.Flags().StringVar(&opts.tuningFile, "tuning", "", "TOML tuning profile")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runSkeleton detects the rooms, builds the requested room's skeleton,
// and writes it out as DOT and optionally SVG.
func (c *CLI) runSkeleton(ctx context.Context, input string, opts *skeletonOpts) error {
	ctx = withLogger(ctx, c.Logger)

	plan, err := planio.ImportPlan(input)
	if err != nil {
		return err
	}

	scale, prof, err := resolveProfile(plan, opts.scale, opts.tuningFile)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	logger.Infof("Extracting skeleton for room %d", opts.room)

	prog := newProgress(logger)
	rooms, err := runner.Detect(ctx, plan.Walls, pipeline.Options{
		Placement: placement.Options{ScaleRatio: scale, Tuning: &prof},
	})
	if err != nil {
		return err
	}
	if opts.room < 0 || opts.room >= len(rooms) {
		return fmt.Errorf("room %d: plan has %d rooms", opts.room, len(rooms))
	}

	skel, err := skeleton.Build(rooms[opts.room].Polygon, skeletonConfig(&prof, scale))
	if err != nil {
		return fmt.Errorf("room %d: %w", opts.room, err)
	}
	prog.done("Extracted %d nodes and %d branches", skel.Graph.NumNodes(), len(skel.Branches))
	if skel.Graph.NumNodes() == 0 {
		printWarning("Room %d is too small for an interior skeleton", opts.room)
	}

	dot := skeleton.ToDOT(skel, skeleton.DOTOptions{Labels: opts.labels})

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(out, dot); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Wrote skeleton DOT")
		printFile(opts.output)
		printDetail("%d nodes, %d branches", skel.Graph.NumNodes(), len(skel.Branches))
	}

	if opts.render != "" {
		printInline("Rendering %s...", opts.render)
		svg, err := skeleton.RenderSVG(dot)
		if err != nil {
			printNewline()
			return fmt.Errorf("render svg: %w", err)
		}
		if err := os.WriteFile(opts.render, svg, 0o644); err != nil {
			printNewline()
			return err
		}
		printNewline()
		printSuccess("Rendered skeleton")
		printFile(opts.render)
	}

	return nil
}
