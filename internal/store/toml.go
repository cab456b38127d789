package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/waypointhq/waypoint/internal/model"
)

// ProjectFile is the on-disk TOML shape of a project fixture: a project
// identifier plus flat task and dependency tables. Dependency types may
// use canonical short codes or legacy long forms.
type ProjectFile struct {
	ProjectID string            `toml:"project_id"`
	Tasks     []TaskEntry       `toml:"tasks"`
	Deps      []DependencyEntry `toml:"dependencies"`
}

// TaskEntry is one task row in a project file.
type TaskEntry struct {
	ID              string    `toml:"id"`
	Name            string    `toml:"name"`
	DurationHours   float64   `toml:"duration_hours"`
	Start           time.Time `toml:"start"`
	PercentComplete float64   `toml:"percent_complete"`
	Assignees       []string  `toml:"assignees"`
}

// DependencyEntry is one dependency row in a project file.
type DependencyEntry struct {
	ID          string `toml:"id"`
	Predecessor string `toml:"predecessor"`
	Successor   string `toml:"successor"`
	Type        string `toml:"type"`
	LagDays     int    `toml:"lag_days"`
}

// LoadProjectFile reads and decodes a TOML project fixture.
func LoadProjectFile(path string) (*ProjectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: reading project file: %w", err)
	}
	var pf ProjectFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("store: parsing project file: %w", err)
	}
	if pf.ProjectID == "" {
		return nil, fmt.Errorf("store: project file %s: missing project_id", path)
	}
	return &pf, nil
}

// ImportProject persists a decoded project file, translating legacy
// dependency type codes and generating UUIDs for rows without an
// identifier. Finish dates are derived from start plus duration.
func (s *Store) ImportProject(ctx context.Context, pf *ProjectFile) error {
	for _, entry := range pf.Tasks {
		t := model.Task{
			ID:              entry.ID,
			ProjectID:       pf.ProjectID,
			Name:            entry.Name,
			DurationHours:   entry.DurationHours,
			Start:           entry.Start,
			PercentComplete: entry.PercentComplete,
			AssigneeIDs:     entry.Assignees,
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		t.Finish = t.ComputedFinish()
		if err := s.SaveTask(ctx, t); err != nil {
			return err
		}
	}

	for _, entry := range pf.Deps {
		depType, err := model.ParseDependencyType(entry.Type)
		if err != nil {
			return fmt.Errorf("store: import dependency %s→%s: %w", entry.Predecessor, entry.Successor, err)
		}
		d := model.Dependency{
			ID:            entry.ID,
			ProjectID:     pf.ProjectID,
			PredecessorID: entry.Predecessor,
			SuccessorID:   entry.Successor,
			Type:          depType,
			LagDays:       entry.LagDays,
		}
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		if err := s.SaveDependency(ctx, d); err != nil {
			return err
		}
	}
	return nil
}
