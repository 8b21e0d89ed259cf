package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nekogravitycat/flight-schedule-grid/internal/grid"
	"github.com/nekogravitycat/flight-schedule-grid/internal/render"
	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
	"github.com/nekogravitycat/flight-schedule-grid/internal/schedule"
)

var (
	renderView       string
	renderDate       string
	renderKind       string
	renderResources  []string
	renderOut        string
	renderTitle      string
	renderThumbWidth int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a day or week grid to an image",
	Long: `Render the grid for a date as PNG, or as a JPEG thumbnail with --thumb-width.

Examples:
  # Whole fleet, week containing 10 March 2026
  gridctl render --view week --date 2026-03-10 --kind aircraft --out week.png

  # Two instructors on one day, scaled to 600px
  gridctl render --view day --date 2026-03-10 --kind instructor \
    --resource 0b6c... --resource 5d1e... --thumb-width 600 --out day.jpg
`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderView, "view", "week", "day or week")
	renderCmd.Flags().StringVar(&renderDate, "date", "", "Date to show, YYYY-MM-DD (default today)")
	renderCmd.Flags().StringVar(&renderKind, "kind", "aircraft", "aircraft or instructor")
	renderCmd.Flags().StringSliceVar(&renderResources, "resource", nil, "Resource ids to show (default all of the kind)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "grid.png", "Output file")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "Title drawn above the grid")
	renderCmd.Flags().IntVar(&renderThumbWidth, "thumb-width", 0, "Scale to this width as JPEG")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	container, pool, err := openContainer(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	mode, err := grid.ParseViewMode(renderView)
	if err != nil {
		return err
	}
	kind, err := resource.ParseKind(renderKind)
	if err != nil {
		return err
	}
	now := time.Now()
	date, err := parseDay(renderDate, container.Schedule, now)
	if err != nil {
		return err
	}

	q := schedule.Query{Mode: mode, Date: date, Kind: kind, ResourceIDs: renderResources}
	data, err := container.Schedule.Render(ctx, q, now, render.Options{Title: renderTitle})
	if err != nil {
		return err
	}
	if renderThumbWidth > 0 {
		if data, err = schedule.Thumbnail(data, renderThumbWidth); err != nil {
			return err
		}
	}

	if err := os.WriteFile(renderOut, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", renderOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", renderOut, len(data))
	return nil
}

// parseDay reads YYYY-MM-DD in the grid's zone, defaulting to today.
func parseDay(value string, svc schedule.Service, now time.Time) (time.Time, error) {
	loc := svc.Slots().Location()
	if value == "" {
		return now.In(loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}
