package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anchorplan/anchorplan/pkg/placement"
	"github.com/anchorplan/anchorplan/pkg/planio"
)

// optimizeOpts holds the command-line flags for the optimize command.
type optimizeOpts struct {
	output    string  // output file path (stdout if empty)
	threshold int     // overlap count at which an anchor becomes removable
	scale     float64 // pixels per meter, overrides the plan's scale_ratio
	radius    float64 // fallback coverage radius in meters
	scope     string  // room scope: all, small, large
}

// optimizeCommand creates the optimize command.
func (c *CLI) optimizeCommand() *cobra.Command {
	opts := optimizeOpts{threshold: 3}

	cmd := &cobra.Command{
		Use:   "optimize <plan.json>",
		Short: "Remove anchors from over-covered spots",
		Long: `Remove anchors from over-covered spots.

The command reads a plan document and repeatedly drops the worst
offender among automatically placed anchors whose coverage circle
overlaps too many neighbors. Manually positioned, locked, and corner
anchors are never removed. The pass runs on whatever anchors the
document carries; it does not re-run placement.

Examples:
  anchorplan optimize floor2.out.json -o floor2.thin.json
  anchorplan optimize floor2.out.json --threshold 2 --scope large`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOptimize(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().IntVar(&opts.threshold, "threshold", opts.threshold, "overlap count at which an anchor becomes removable")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "pixels per meter (overrides the plan's scale_ratio)")
	cmd.Flags().Float64Var(&opts.radius, "radius", 0, "fallback coverage radius in meters (0 = engine default)")
	cmd.Flags().StringVar(&opts.scope, "scope", string(placement.ScopeAll), "room scope: all, small, large")

	return cmd
}

// runOptimize loads the plan, runs the density pass, and writes the
// plan back with the surviving anchors.
func (c *CLI) runOptimize(ctx context.Context, input string, opts *optimizeOpts) error {
	ctx = withLogger(ctx, c.Logger)

	plan, err := planio.ImportPlan(input)
	if err != nil {
		return err
	}
	if len(plan.Anchors) == 0 {
		printInfo("Plan has no anchors")
		return nil
	}

	scale := plan.ScaleRatio
	if opts.scale > 0 {
		scale = opts.scale
	}
	dOpts := placement.DensityOptions{
		Threshold:     opts.threshold,
		ScaleRatio:    scale,
		RadiusM:       opts.radius,
		TargetScope:   placement.Scope(opts.scope),
		PlacementArea: plan.PlacementArea,
	}

	// The density pass is never cached; scope resolution re-detects
	// rooms from the plan's walls on the fly.
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Thinning anchors...")
	spinner.Start()

	kept, err := runner.Optimize(ctx, plan.Anchors, plan.Walls, dOpts)
	if err != nil {
		spinner.StopWithError("Optimization failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	removed := len(plan.Anchors) - len(kept)

	out := *plan
	out.Anchors = kept
	if err := writePlan(&out, opts.output, loggerFromContext(ctx)); err != nil {
		return err
	}

	if opts.output != "" {
		if removed == 0 {
			printInfo("No anchor exceeded the overlap threshold")
		} else {
			printSuccess("Removed %d of %d anchors", removed, len(plan.Anchors))
		}
		printFile(opts.output)
	}

	return nil
}
