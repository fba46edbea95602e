package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sadopc/tasktracker/internal/task"
)

// Formats lists the supported export formats.
var Formats = []string{"csv", "json"}

// DefaultPath returns dir/tasktracker-export-YYYY-MM-DD.<format>.
func DefaultPath(dir, format string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("tasktracker-export-%s.%s", now.Format("2006-01-02"), strings.ToLower(format)))
}

// Write exports tasks to path in the named format.
func Write(format string, tasks []task.Task, path string, loc *time.Location) error {
	switch strings.ToLower(format) {
	case "csv":
		return ToCSV(tasks, path, loc)
	case "json":
		return ToJSON(tasks, path, loc)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
