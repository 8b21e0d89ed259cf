package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nekogravitycat/flight-schedule-grid/internal/month"
	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
)

var (
	monthValue    string
	monthResource string
	monthKind     string
)

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Print a resource's month availability",
	Long: `Print booked hours and the availability tier of each day in a month.

Example:
  gridctl month --month 2026-03 --resource 0b6c... --kind aircraft
`,
	RunE: runMonth,
}

func init() {
	monthCmd.Flags().StringVar(&monthValue, "month", "", "Month to show, YYYY-MM (default this month)")
	monthCmd.Flags().StringVar(&monthResource, "resource", "", "Resource id")
	monthCmd.Flags().StringVar(&monthKind, "kind", "aircraft", "aircraft or instructor")
	_ = monthCmd.MarkFlagRequired("resource")
	rootCmd.AddCommand(monthCmd)
}

func runMonth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	container, pool, err := openContainer(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	kind, err := resource.ParseKind(monthKind)
	if err != nil {
		return err
	}

	loc := container.Schedule.Slots().Location()
	m := time.Now().In(loc)
	if monthValue != "" {
		if m, err = time.ParseInLocation("2006-01", monthValue, loc); err != nil {
			return fmt.Errorf("invalid month %q: %w", monthValue, err)
		}
	}

	cal, r, err := container.Schedule.Month(ctx, m, monthResource, kind)
	if err != nil {
		return err
	}
	return printCalendar(cmd.OutOrStdout(), cal, r)
}

var tierMarks = map[month.Tier]string{
	month.TierAvailable:   " ",
	month.TierLimited:     "~",
	month.TierUnavailable: "#",
}

// printCalendar writes one row per week; each day shows its date, booked hours and a tier mark.
func printCalendar(out io.Writer, cal month.Calendar, r *resource.Resource) error {
	fmt.Fprintf(out, "%s %s  %s %d\n", r.Kind, r.Name, cal.Month, cal.Year)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if len(cal.Weeks) > 0 {
		for _, d := range cal.Weeks[0] {
			fmt.Fprintf(w, "%s\t", d.Date.Weekday().String()[:3])
		}
		fmt.Fprintln(w)
	}
	for _, week := range cal.Weeks {
		for _, d := range week {
			if !d.InMonth {
				fmt.Fprint(w, ".\t")
				continue
			}
			fmt.Fprintf(w, "%2d %4.1fh%s\t", d.Date.Day(), d.BookedHours, tierMarks[d.Tier])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out, "~ limited  # unavailable")
	return nil
}
