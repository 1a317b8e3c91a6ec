package log_cmd

import (
	"errors"
	"fmt"
	"hourbox/cmd/cmd_env"
	L "hourbox/logger"
	"hourbox/session"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type sessionFlags struct {
	date         string
	start        string
	end          string
	breakMinutes int
	category     string
	note         string
}

func (f *sessionFlags) register(cmd *cobra.Command, defaultDate string) {
	cmd.Flags().StringVarP(&f.date, "date", "d", defaultDate, "date as YYYY-MM-DD")
	cmd.Flags().StringVarP(&f.start, "start", "s", "", "start time as HH:MM")
	cmd.Flags().StringVarP(&f.end, "end", "e", "", "end time as HH:MM")
	cmd.Flags().IntVarP(&f.breakMinutes, "break", "b", 0, "break in minutes")
	cmd.Flags().StringVar(&f.category, "category", "", "category such as Study or Work")
	cmd.Flags().StringVarP(&f.note, "note", "n", "", "optional note")
}

// apply overlays the flags that were set on base.
func (f *sessionFlags) apply(cmd *cobra.Command, base session.Fields) session.Fields {
	changed := cmd.Flags().Changed
	if changed("date") || base.Date == "" {
		base.Date = f.date
	}
	if changed("start") {
		base.StartTime = f.start
	}
	if changed("end") {
		base.EndTime = f.end
	}
	if changed("break") {
		base.BreakMinutes = f.breakMinutes
	}
	if changed("category") {
		base.Category = f.category
	}
	if changed("note") {
		note := f.note
		base.Note = &note
	}
	return base
}

func Command(env *cmd_env.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Add, edit, remove and list work sessions",
		Long:  usageStr,
	}
	cmd.AddCommand(addCommand(env), editCommand(env), rmCommand(env), lsCommand(env), clearCommand(env))
	return cmd
}

func addCommand(env *cmd_env.Env) *cobra.Command {
	flags := &sessionFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a new session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := env.OpenApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			s, err := a.Sessions.AddSession(ctx, flags.apply(cmd, session.Fields{}))
			if err != nil && !errors.Is(err, session.ErrPersist) {
				return err
			}
			cmd_env.ReportSync(a, err)
			L.Printf("Added %s\n%s\n", s.Id, s)
			return nil
		},
	}
	flags.register(cmd, time.Now().Format(session.DATE_FORMAT))
	return cmd
}

func editCommand(env *cmd_env.Env) *cobra.Command {
	flags := &sessionFlags{}
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of a session, unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := env.OpenApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			existing, err := a.Sessions.Get(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			s, err := a.Sessions.UpdateSession(ctx, existing.Id, flags.apply(cmd, existing.Fields()))
			if err != nil && !errors.Is(err, session.ErrPersist) {
				return err
			}
			cmd_env.ReportSync(a, err)
			L.Printf("Updated %s\n%s\n", s.Id, s)
			return nil
		},
	}
	flags.register(cmd, "")
	return cmd
}

func rmCommand(env *cmd_env.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID...",
		Short: "Delete sessions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := env.OpenApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			for _, id := range args {
				if _, err := a.Sessions.Get(id); err != nil {
					L.Warn(fmt.Sprintf("%s: %v", id, err))
					continue
				}
				err := a.Sessions.DeleteSession(ctx, id)
				cmd_env.ReportSync(a, err)
				L.Printf("Deleted %s\n", id)
			}
			return nil
		},
	}
}

func lsCommand(env *cmd_env.Env) *cobra.Command {
	var date, from, to string
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := env.OpenApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			if date != "" {
				from, to = date, date
			}
			if to == "" {
				to = "9999-12-31"
			}
			sessions := slices.DeleteFunc(a.Sessions.Sessions(), func(s session.Session) bool {
				return s.Date < from || s.Date > to
			})
			slices.SortStableFunc(sessions, func(x, y session.Session) int {
				return strings.Compare(x.Date+x.StartTime, y.Date+y.StartTime)
			})
			if len(sessions) == 0 {
				L.Println("No sessions.")
				return nil
			}
			total := 0
			for _, s := range sessions {
				total += s.NetMinutes
				note := ""
				if s.Note != nil {
					note = L.TruncateString(*s.Note, 40, L.TRUNC_RIGHT)
				}
				L.Printf("%-36s  %s  %s-%s  %3dm  %-8s %-12s %s\n",
					s.Id, s.Date, s.StartTime, s.EndTime, s.BreakMinutes,
					L.HumanReadableMinutes(s.NetMinutes), L.TruncateString(s.Category, 12, L.TRUNC_RIGHT), note)
			}
			L.Printf("\n%d sessions, %s\n", len(sessions), L.HumanReadableMinutes(total))
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "only this date")
	cmd.Flags().StringVar(&from, "from", "", "first date, inclusive")
	cmd.Flags().StringVar(&to, "to", "", "last date, inclusive")
	return cmd
}

func clearCommand(env *cmd_env.Env) *cobra.Command {
	var assumeYes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every session, locally and on the remote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !assumeYes {
				return fmt.Errorf("this deletes every session, pass --yes to confirm")
			}
			ctx := cmd.Context()
			a, err := env.OpenApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			count := len(a.Sessions.Sessions())
			err = a.Sessions.Clear(ctx)
			cmd_env.ReportSync(a, err)
			L.Printf("Deleted %d sessions\n", count)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
