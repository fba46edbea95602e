package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/tasktracker/internal/task"
)

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	Count      int        `json:"count"`
	Tasks      []jsonTask `json:"tasks"`
}

type jsonTask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	Due         string `json:"due"`
	Done        bool   `json:"done"`
	Description string `json:"description,omitempty"`
	Remarks     string `json:"remarks,omitempty"`
	QuickNotes  string `json:"quick_notes,omitempty"`
}

func ToJSON(tasks []task.Task, path string, loc *time.Location) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(tasks),
	}

	for _, t := range tasks {
		export.Tasks = append(export.Tasks, jsonTask{
			ID:          t.ID.String(),
			Title:       t.Title,
			Status:      t.Status.String(),
			Due:         t.Deadline(loc).Format(time.RFC3339),
			Done:        t.IsDone,
			Description: t.Description,
			Remarks:     t.Remarks,
			QuickNotes:  t.QuickNotes,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
