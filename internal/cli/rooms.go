package cli

import (
	"context"
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/anchorplan/anchorplan/pkg/floorplan"
	"github.com/anchorplan/anchorplan/pkg/pipeline"
	"github.com/anchorplan/anchorplan/pkg/placement"
	"github.com/anchorplan/anchorplan/pkg/planio"
	"github.com/anchorplan/anchorplan/pkg/skeleton"
	"github.com/anchorplan/anchorplan/pkg/tuning"
)

// roomsOpts holds the command-line flags for the rooms command.
type roomsOpts struct {
	scale       float64 // pixels per meter, overrides the plan's scale_ratio
	noCache     bool    // disable caching
	refresh     bool    // bypass cache reads
	interactive bool    // browse rooms in a TUI
	tuningFile  string  // TOML tuning profile path
}

// roomsCommand creates the rooms command.
func (c *CLI) roomsCommand() *cobra.Command {
	opts := roomsOpts{}

	cmd := &cobra.Command{
		Use:   "rooms <plan.json>",
		Short: "List the rooms detected in a floor plan",
		Long: `List the rooms detected in a floor plan.

The command reconstructs the rooms enclosed by the plan's walls and
prints one row per room with its size class, area, span, and skeleton
stats. With --interactive the list opens in a browsable view; selecting
a room prints its full detail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRooms(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "pixels per meter (overrides the plan's scale_ratio)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse rooms interactively")
	cmd.Flags().StringVar(&opts.tuningFile, "tuning", "", "TOML tuning profile")

	return cmd
}

// runRooms detects the rooms and prints or browses the listing.
func (c *CLI) runRooms(ctx context.Context, input string, opts *roomsOpts) error {
	ctx = withLogger(ctx, c.Logger)

	plan, err := planio.ImportPlan(input)
	if err != nil {
		return err
	}

	rows, err := c.roomRows(ctx, plan, opts)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		printInfo("No rooms detected")
		return nil
	}

	if opts.interactive {
		return browseRooms(rows, input)
	}

	fmt.Println(renderRoomTable(rows, -1, 0, len(rows)))
	printDetail("%d rooms", len(rows))
	return nil
}

// roomRows detects the rooms and derives the classification and
// skeleton stats for each.
func (c *CLI) roomRows(ctx context.Context, plan *planio.Plan, opts *roomsOpts) ([]RoomRow, error) {
	scale, prof, err := resolveProfile(plan, opts.scale, opts.tuningFile)
	if err != nil {
		return nil, err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	logger.Infof("Detecting rooms in %d wall segments", len(plan.Walls))

	prog := newProgress(logger)
	rooms, err := runner.Detect(ctx, plan.Walls, pipeline.Options{
		Placement: placement.Options{ScaleRatio: scale, Tuning: &prof},
		Refresh:   opts.refresh,
	})
	if err != nil {
		return nil, err
	}

	cfg := skeletonConfig(&prof, scale)
	rows := make([]RoomRow, 0, len(rooms))
	for _, room := range rooms {
		skel, err := skeleton.Build(room.Polygon, cfg)
		if err != nil {
			return nil, fmt.Errorf("room %d: %w", room.Index, err)
		}
		topo := 0
		for _, j := range skel.Junctions() {
			if !j.Geometric {
				topo++
			}
		}
		cls := floorplan.ClassifyRoom(room.Polygon, scale, topo, prof.Classify)
		rows = append(rows, RoomRow{
			Index:     room.Index,
			Class:     cls.Class,
			AreaM2:    cls.AreaM2,
			SpanM:     cls.SpanM,
			Junctions: cls.Junctions,
			Vertices:  len(room.Polygon),
			Complex:   cls.ComplexTopology,
		})
	}
	prog.done("Classified %d rooms", len(rows))

	return rows, nil
}

// browseRooms opens the interactive room list and prints the detail of
// the selected room, if any.
func browseRooms(rows []RoomRow, input string) error {
	p := tea.NewProgram(NewRoomListModel(rows))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("interactive browser: %w", err)
	}

	m, ok := final.(RoomListModel)
	if !ok || m.Selected == nil {
		return nil
	}

	printRoomDetail(m.Selected.Row, input)
	return nil
}

// printRoomDetail prints the full stats for one room.
func printRoomDetail(r RoomRow, input string) {
	printNewline()
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Room %d", r.Index)))
	printKeyValue("Class", r.Class.String())
	printKeyValue("Area", fmt.Sprintf("%.1f m²", r.AreaM2))
	printKeyValue("Span", fmt.Sprintf("%.1f m", r.SpanM))
	printKeyValue("Junctions", fmt.Sprintf("%d", r.Junctions))
	printKeyValue("Vertices", fmt.Sprintf("%d", r.Vertices))
	if r.Complex {
		printKeyValue("Topology", "complex")
	}
	printNewline()
	printNextStep("Inspect the skeleton", fmt.Sprintf("%s skeleton %s --room %d", appName, input, r.Index))
}

// skeletonConfig mirrors the extraction parameters the placement engine
// uses, so the rooms and skeleton commands see the same geometry.
func skeletonConfig(t *tuning.Tuning, scale float64) skeleton.Config {
	return skeleton.Config{
		SampleStep:    math.Max(t.Skeleton.SampleStepMinPx, t.Skeleton.SampleStepM*scale),
		MaxSites:      t.Skeleton.MaxSites,
		NeighborGap:   t.Skeleton.NeighborGap,
		SnapTolerance: t.Skeleton.SnapTolerancePx,
		BendThreshold: t.Skeleton.BendThresholdDeg,
	}
}
