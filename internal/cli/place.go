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
	"github.com/anchorplan/anchorplan/pkg/tuning"
)

// placeOpts holds the command-line flags for the place command.
// These options mirror the placement engine options; flags win over
// values carried in the plan document.
type placeOpts struct {
	output     string  // output file path (stdout if empty)
	noCache    bool    // disable caching
	refresh    bool    // bypass cache reads
	scale      float64 // pixels per meter, overrides the plan's scale_ratio
	radius     float64 // coverage radius in meters
	shape      string  // coverage shape tag
	showRadius bool    // display flag copied onto anchors
	scope      string  // room scope: all, small, large
	coverage   float64 // coverage target percentage
	minSignal  float64 // signal floor in dBm
	spacing    float64 // spacing factor override
	offsetStep float64 // ring offset step override in meters
	tuningFile string  // TOML tuning profile path
}

// placeCommand creates the place command.
func (c *CLI) placeCommand() *cobra.Command {
	opts := placeOpts{}

	cmd := &cobra.Command{
		Use:   "place <plan.json>",
		Short: "Compute anchor positions for a floor plan",
		Long: `Compute anchor positions for a floor plan.

The command reads a plan document (wall segments plus optional
pre-existing anchors), reconstructs the enclosed rooms, and places
anchors matched to each room's size and shape. Pre-existing anchors are
kept and respected as obstructions. The output is the same document
with the placed anchors appended.

Results are cached locally for faster subsequent runs.

Examples:
  anchorplan place floor2.json                      # anchors to stdout
  anchorplan place floor2.json -o floor2.out.json   # write a new plan
  anchorplan place floor2.json --scope large        # halls only
  anchorplan place floor2.json --coverage 80        # denser placement`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlace(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "pixels per meter (overrides the plan's scale_ratio)")
	cmd.Flags().Float64Var(&opts.radius, "radius", placement.DefaultRadiusM, "anchor coverage radius in meters")
	cmd.Flags().StringVar(&opts.shape, "shape", placement.DefaultShape, "coverage shape tag")
	cmd.Flags().BoolVar(&opts.showRadius, "show-radius", false, "mark anchors to display their coverage radius")
	cmd.Flags().StringVar(&opts.scope, "scope", string(placement.ScopeAll), "room scope: all, small, large")
	cmd.Flags().Float64Var(&opts.coverage, "coverage", placement.DefaultCoverageTarget, "coverage target percentage (50-100)")
	cmd.Flags().Float64Var(&opts.minSignal, "min-signal", placement.DefaultMinSignal, "signal floor in dBm (-90..-40)")
	cmd.Flags().Float64Var(&opts.spacing, "spacing-factor", 0, "spacing factor override (0 = derive from coverage)")
	cmd.Flags().Float64Var(&opts.offsetStep, "offset-step", 0, "ring offset step in meters for large rooms (0 = profile default)")
	cmd.Flags().StringVar(&opts.tuningFile, "tuning", "", "TOML tuning profile")

	return cmd
}

// runPlace loads the plan, runs detection and placement, and writes the
// plan back with the new anchors appended.
func (c *CLI) runPlace(ctx context.Context, input string, opts *placeOpts) error {
	ctx = withLogger(ctx, c.Logger)

	plan, err := planio.ImportPlan(input)
	if err != nil {
		return err
	}
	if len(plan.Walls) == 0 {
		return fmt.Errorf("%s: plan has no walls", input)
	}

	pOpts, err := opts.placementOptions(plan)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Placing anchors...")
	spinner.Start()

	res, err := runner.Execute(ctx, plan.Walls, plan.Anchors, pipeline.Options{
		Placement: pOpts,
		Refresh:   opts.refresh,
	})
	if err != nil {
		spinner.StopWithError("Placement failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out := *plan
	out.ScaleRatio = pOpts.ScaleRatio
	out.Anchors = append(append([]placement.Anchor{}, plan.Anchors...), res.Anchors...)

	if err := writePlan(&out, opts.output, loggerFromContext(ctx)); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Placed %d anchors in %d rooms", len(res.Anchors), res.Stats.RoomCount)
		printFile(opts.output)
		printStats(res.Stats.RoomCount, res.Stats.AnchorCount, res.CacheInfo.PlacementHit)
		printNewline()
		printNextStep("Thin dense spots", appName+" optimize "+opts.output)
	}

	return nil
}

// placementOptions combines plan values and flag overrides into engine
// options.
func (o *placeOpts) placementOptions(plan *planio.Plan) (placement.Options, error) {
	scale, prof, err := resolveProfile(plan, o.scale, o.tuningFile)
	if err != nil {
		return placement.Options{}, err
	}

	p := placement.Options{
		ScaleRatio:     scale,
		RadiusM:        o.radius,
		Shape:          o.shape,
		ShowRadius:     o.showRadius,
		SpacingFactor:  o.spacing,
		TargetScope:    placement.Scope(o.scope),
		CoverageTarget: o.coverage,
		MinSignal:      o.minSignal,
		OffsetStepM:    o.offsetStep,
		Tuning:         &prof,
	}
	if len(plan.PlacementArea) >= 3 {
		p.PlacementArea = plan.PlacementArea
		p.PlacementAreaEnabled = true
	}
	return p, nil
}

// =============================================================================
// Shared Helpers
// =============================================================================

// resolveProfile picks the scale and tuning profile for a command:
// flags win over the document, and an explicit profile file wins over
// the stock profile.
func resolveProfile(plan *planio.Plan, scaleFlag float64, tuningFile string) (float64, tuning.Tuning, error) {
	scale := plan.ScaleRatio
	if scaleFlag > 0 {
		scale = scaleFlag
	}
	prof := tuning.Default()
	if tuningFile != "" {
		t, err := tuning.Load(tuningFile)
		if err != nil {
			return 0, tuning.Tuning{}, fmt.Errorf("load tuning %s: %w", tuningFile, err)
		}
		prof = t
	}
	return scale, prof, nil
}

// writePlan serializes the plan as JSON to the specified path (or stdout if empty).
// The logger is notified on success with the output path.
func writePlan(p *planio.Plan, path string, logger interface{ Infof(string, ...any) }) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := planio.WritePlan(p, out); err != nil {
		return err
	}
	if path != "" {
		logger.Infof("Wrote plan to %s", path)
	}
	return nil
}

// openOutput returns a WriteCloser for the given path.
// If path is empty, stdout is returned wrapped in a no-op closer.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }
