package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/sadopc/tasktracker/internal/task"
	"github.com/spf13/cobra"
)

func newListCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every task with its countdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.open(stderrLogger(cmd))
			if err != nil {
				return err
			}
			defer s.Close()

			printTasks(cmd.OutOrStdout(), s.tasks.Tasks(), time.Now(), time.Local)
			return nil
		},
	}
}

func printTasks(w io.Writer, tasks []task.Task, now time.Time, loc *time.Location) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No Tasks")
		return
	}

	for _, t := range tasks {
		fmt.Fprintf(w, "%s %-12s  %s  %-16s  %s\n",
			t.Status.Icon(),
			t.Status,
			t.Deadline(loc).Format("2006-01-02 15:04"),
			task.Remaining(t, now, loc),
			t.Title,
		)
	}

	sum := task.Summarize(tasks)
	fmt.Fprintf(w, "\nTotal Tasks: %d", sum.Total)
	for _, c := range sum.Counts {
		fmt.Fprintf(w, "  %s: %d", c.Status, c.Count)
	}
	fmt.Fprintln(w)
}
