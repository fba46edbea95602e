package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/tasktracker/internal/task"
	"github.com/spf13/cobra"
)

type addOptions struct {
	title       string
	due         string
	at          string
	description string
}

func newAddCmd(root *rootOptions) *cobra.Command {
	opts := &addOptions{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task without opening the interactive view",
		Example: `  tasktracker add --title "Write report" --due 2026-10-20 --at 17:30
  tasktracker add --title "Call the bank"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := opts.build(time.Now(), time.Local)
			if err != nil {
				return err
			}

			s, err := root.open(stderrLogger(cmd))
			if err != nil {
				return err
			}
			defer s.Close()

			s.tasks.Add(t)
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s (%s)\n", t.Title, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "task title (required)")
	cmd.Flags().StringVar(&opts.due, "due", "", "due date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&opts.at, "at", "", "due time, HH:MM (default now)")
	cmd.Flags().StringVar(&opts.description, "description", "", "task description")
	return cmd
}

// build turns the flags into a task. Empty date and time default to now.
func (o *addOptions) build(now time.Time, loc *time.Location) (task.Task, error) {
	if strings.TrimSpace(o.title) == "" {
		return task.Task{}, errors.New("--title is required")
	}

	now = now.In(loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if o.due != "" {
		d, err := time.ParseInLocation("2006-01-02", o.due, loc)
		if err != nil {
			return task.Task{}, fmt.Errorf("invalid --due %q: want YYYY-MM-DD", o.due)
		}
		day = d
	}

	hour, minute := now.Hour(), now.Minute()
	if o.at != "" {
		tm, err := time.Parse("15:04", o.at)
		if err != nil {
			return task.Task{}, fmt.Errorf("invalid --at %q: want HH:MM", o.at)
		}
		hour, minute = tm.Hour(), tm.Minute()
	}
	at := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)

	return task.New(o.title, day, at, o.description), nil
}
