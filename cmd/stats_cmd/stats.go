package stats_cmd

import (
	"errors"
	"fmt"
	"hourbox/calendar"
	"hourbox/cmd/cmd_env"
	L "hourbox/logger"
	"hourbox/session"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func Command(env *cmd_env.Env) *cobra.Command {
	var setTarget float64
	var monthFlag string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show total hours, progress to the target and a month calendar",
		Long:  usageStr,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := env.OpenApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			if cmd.Flags().Changed("set-target") {
				err := a.Sessions.SetTarget(ctx, setTarget)
				if err != nil && !errors.Is(err, session.ErrPersist) {
					return err
				}
				if err != nil {
					L.Warn(fmt.Sprintf("could not save target: %v", err))
				}
			}

			now := time.Now()
			year, month := now.Year(), now.Month()
			if monthFlag != "" {
				t, err := time.Parse("2006-01", monthFlag)
				if err != nil {
					return fmt.Errorf("invalid --month %q, expected YYYY-MM", monthFlag)
				}
				year, month = t.Year(), t.Month()
			}

			total := a.Sessions.TotalNetHours()
			target := a.Sessions.Target()
			progress := calendar.Progress(total, target)
			L.Printf("Total     %s (%.2fh)\n", L.HumanReadableMinutes(a.Sessions.TotalNetMinutes()), total)
			L.Printf("Target    %.0fh\n", target)
			L.Printf("Progress  %s %.1f%%\n", L.ProgressBar(progress), progress)
			if remaining := target - total; remaining > 0 {
				L.Printf("Remaining %.2fh\n", remaining)
			}
			L.Println()

			grid := calendar.Month(year, month, a.Sessions.HoursForDate, now)
			L.Print(RenderMonth(grid))
			return nil
		},
	}
	cmd.Flags().Float64Var(&setTarget, "set-target", 0, "set the hour target")
	cmd.Flags().StringVarP(&monthFlag, "month", "m", "", "month to show as YYYY-MM, defaults to the current one")
	return cmd
}

var levelMarks = [...]string{" ", "░", "▒", "▓", "█"}

// RenderMonth draws grid as plain text, one row per week with the hours
// logged on each day of the month.
func RenderMonth(grid calendar.Grid) string {
	var b strings.Builder
	title := fmt.Sprintf("%s %d", grid.Month, grid.Year)
	fmt.Fprintf(&b, "%s%s\n", strings.Repeat(" ", max(0, (7*7-len(title))/2)), title)
	for _, d := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		fmt.Fprintf(&b, " %-6s", d)
	}
	b.WriteString("\n")
	for _, week := range grid.Cells {
		for _, cell := range week {
			if !cell.InMonth {
				b.WriteString(strings.Repeat(" ", 7))
				continue
			}
			marker := " "
			if cell.IsToday {
				marker = "*"
			}
			fmt.Fprintf(&b, "%s%2d %s  ", marker, cell.Day, levelMarks[cell.Level])
		}
		b.WriteString("\n")
		for _, cell := range week {
			if !cell.InMonth || cell.Hours == 0 {
				b.WriteString(strings.Repeat(" ", 7))
				continue
			}
			fmt.Fprintf(&b, " %-6s", fmt.Sprintf("%.1fh", cell.Hours))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nThis month: %.2fh\n", grid.Total)
	return b.String()
}
