package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/tasktracker/internal/task"
)

const dueLayout = "2006-01-02 15:04"

func ToCSV(tasks []task.Task, path string, loc *time.Location) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Title", "Status", "Due", "Done", "Description", "Remarks", "Quick Notes"}); err != nil {
		return err
	}

	for _, t := range tasks {
		row := []string{
			t.ID.String(),
			t.Title,
			t.Status.String(),
			formatDue(t, loc),
			strconv.FormatBool(t.IsDone),
			t.Description,
			t.Remarks,
			t.QuickNotes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatDue(t task.Task, loc *time.Location) string {
	return t.Deadline(loc).Format(dueLayout)
}
