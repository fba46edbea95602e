package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/tasktracker/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command tree against a temp config and database.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	base := []string{
		"--config", filepath.Join(dir, "config.yaml"),
		"--db", filepath.Join(dir, "tasks.db"),
	}
	var out, errOut bytes.Buffer
	cmd := newRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestAddAndList(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "add", "--title", "Write report", "--due", "2099-10-20", "--at", "17:30", "--description", "q4")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Added task Write report"), "add output: %q", out)

	_, err = run(t, dir, "add", "--title", "Book flights", "--due", "2099-10-21")
	require.NoError(t, err)

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 2, out)

	// Newest first.
	assert.True(t, strings.HasSuffix(lines[0], "Book flights"), out)
	assert.True(t, strings.HasSuffix(lines[1], "Write report"), out)
	assert.Contains(t, lines[1], "2099-10-20 17:30")
	assert.Contains(t, out, "Total Tasks: 2")
	assert.Contains(t, out, "Yet to Start: 2")
}

func TestListEmpty(t *testing.T) {
	out, err := run(t, t.TempDir(), "list")
	require.NoError(t, err)
	assert.Equal(t, "No Tasks", strings.TrimSpace(out))
}

func TestAddRequiresTitle(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "add", "--title", "   ")
	require.Error(t, err)

	assert.NoFileExists(t, filepath.Join(dir, "tasks.db"), "validation runs before the database opens")
}

func TestAddRejectsBadDateAndTime(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "add", "--title", "x", "--due", "20/10/2099")
	assert.Error(t, err, "bad --due")

	_, err = run(t, dir, "add", "--title", "x", "--at", "5pm")
	assert.Error(t, err, "bad --at")
}

func TestAddOptionsBuildDefaults(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 41, 27, 0, time.UTC)
	opts := &addOptions{title: "  Pay rent  "}

	tk, err := opts.build(now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "Pay rent", tk.Title)
	assert.True(t, tk.Deadline(time.UTC).Equal(time.Date(2026, 10, 14, 9, 41, 0, 0, time.UTC)))
	assert.Equal(t, task.YetToStart, tk.Status)
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "add", "--title", "Renew passport", "--due", "2099-01-02", "--at", "08:00")
	require.NoError(t, err)

	path := filepath.Join(dir, "out.json")
	out, err := run(t, dir, "export", "--format", "JSON", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 tasks to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc struct {
		Count int `json:"count"`
		Tasks []struct {
			Title string `json:"title"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 1, doc.Count)
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, "Renew passport", doc.Tasks[0].Title)
}

func TestExportUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "export", "--format", "xml", "--out", filepath.Join(dir, "x.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestConfigInitShowPath(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	out, err := run(t, dir, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, cfgPath, strings.TrimSpace(out))

	_, err = run(t, dir, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, cfgPath)

	_, err = run(t, dir, "config", "init")
	assert.Error(t, err, "second init without --force")

	_, err = run(t, dir, "config", "init", "--force")
	assert.NoError(t, err)

	out, err = run(t, dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "save_ack_delay: 1.5s")
	assert.Contains(t, out, "clock_tick: 1m0s")
	assert.Contains(t, out, "db_path: "+filepath.Join(dir, "tasks.db"))
}

func TestPrintTasks(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	due := time.Date(2026, 10, 15, 12, 30, 0, 0, time.UTC)
	done := task.New("Done thing", due, due, "")
	done.Status = task.Completed
	late := task.New("Late thing", now.AddDate(0, 0, -1), now.AddDate(0, 0, -1), "")

	var buf bytes.Buffer
	printTasks(&buf, []task.Task{done, late}, now, time.UTC)
	out := buf.String()

	for _, want := range []string{
		"✓ Completed",
		"2026-10-15 12:30",
		"1d 3h 30m left",
		"Deadline Over",
		"Total Tasks: 2",
		"Completed: 1",
		"Yet to Start: 1",
	} {
		assert.Contains(t, out, want)
	}
}
