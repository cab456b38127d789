package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/waypointhq/waypoint/internal/model"
)

const sampleProject = `
project_id = "launch"

[[tasks]]
id = "design"
name = "Design"
duration_hours = 16.0
start = 2026-03-02T09:00:00Z
percent_complete = 50.0
assignees = ["u1"]

[[tasks]]
name = "Build"
duration_hours = 40.0
start = 2026-03-04T09:00:00Z

[[dependencies]]
id = "d1"
predecessor = "design"
successor = "build"
type = "finish_to_start"
lag_days = 1
`

func writeProjectFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadProjectFile(t *testing.T) {
	t.Parallel()
	pf, err := LoadProjectFile(writeProjectFile(t, sampleProject))
	if err != nil {
		t.Fatalf("LoadProjectFile() error = %v", err)
	}
	if pf.ProjectID != "launch" {
		t.Errorf("ProjectID = %q, want launch", pf.ProjectID)
	}
	if len(pf.Tasks) != 2 || len(pf.Deps) != 1 {
		t.Fatalf("got %d tasks, %d deps; want 2 and 1", len(pf.Tasks), len(pf.Deps))
	}
	if pf.Tasks[0].ID != "design" || pf.Tasks[0].DurationHours != 16 {
		t.Errorf("first task = %+v", pf.Tasks[0])
	}
	if pf.Deps[0].Type != "finish_to_start" || pf.Deps[0].LagDays != 1 {
		t.Errorf("dependency = %+v", pf.Deps[0])
	}
}

func TestLoadProjectFile_MissingProjectID(t *testing.T) {
	t.Parallel()
	_, err := LoadProjectFile(writeProjectFile(t, `[[tasks]]
id = "a"
name = "A"
duration_hours = 8.0
start = 2026-03-02T09:00:00Z
`))
	if err == nil {
		t.Fatal("LoadProjectFile() error = nil, want missing project_id error")
	}
}

func TestLoadProjectFile_Malformed(t *testing.T) {
	t.Parallel()
	if _, err := LoadProjectFile(writeProjectFile(t, "not [valid toml")); err == nil {
		t.Fatal("LoadProjectFile() error = nil, want parse error")
	}
}

func TestImportProject(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	pf, err := LoadProjectFile(writeProjectFile(t, sampleProject))
	if err != nil {
		t.Fatalf("LoadProjectFile() error = %v", err)
	}
	if err := s.ImportProject(ctx, pf); err != nil {
		t.Fatalf("ImportProject() error = %v", err)
	}

	tasks, err := s.Tasks(ctx, "launch")
	if err != nil {
		t.Fatalf("Tasks() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("imported %d tasks, want 2", len(tasks))
	}
	// The unnamed row gets a generated identifier.
	var sawGenerated bool
	for _, task := range tasks {
		if task.ID == "" {
			t.Error("imported task with empty id")
		}
		if task.ID != "design" {
			sawGenerated = true
		}
		if !task.Finish.Equal(task.ComputedFinish()) {
			t.Errorf("task %s finish not derived from start+duration", task.ID)
		}
	}
	if !sawGenerated {
		t.Error("no generated identifier for the id-less task")
	}

	deps, err := s.Dependencies(ctx, "launch")
	if err != nil {
		t.Fatalf("Dependencies() error = %v", err)
	}
	if len(deps) != 1 {
		t.Fatalf("imported %d deps, want 1", len(deps))
	}
	if deps[0].Type != model.FinishToStart {
		t.Errorf("legacy dep type = %q, want canonical FS", deps[0].Type)
	}
	if deps[0].LagDays != 1 {
		t.Errorf("lag = %d, want 1", deps[0].LagDays)
	}
}

func TestImportProject_UnknownDependencyType(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	pf := &ProjectFile{
		ProjectID: "p1",
		Deps: []DependencyEntry{
			{ID: "d1", Predecessor: "a", Successor: "b", Type: "sideways"},
		},
	}
	err := s.ImportProject(context.Background(), pf)
	if !errors.Is(err, model.ErrUnknownDependencyType) {
		t.Errorf("ImportProject() error = %v, want ErrUnknownDependencyType", err)
	}
}
