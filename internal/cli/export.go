package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/tasktracker/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the task list as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if !validFormat(format) {
				return fmt.Errorf("unknown format %q (want %s)", format, strings.Join(export.Formats, " or "))
			}

			s, err := root.open(stderrLogger(cmd))
			if err != nil {
				return err
			}
			defer s.Close()

			path := out
			if path == "" {
				path = export.DefaultPath(s.cfg.ExportDir, format, time.Now())
			}
			tasks := s.tasks.Tasks()
			if err := export.Write(format, tasks, path, time.Local); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", len(tasks), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "export format: csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <export_dir>/tasktracker-export-<date>.<format>)")
	return cmd
}

func validFormat(f string) bool {
	for _, known := range export.Formats {
		if f == known {
			return true
		}
	}
	return false
}
