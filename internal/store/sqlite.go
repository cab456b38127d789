// Package store persists project tasks and dependencies in a local SQLite
// database. It is the data-access seam between the scheduling engine and
// the surrounding record-management layer: the engine reads snapshots
// through it and the cascade rescheduler writes partial schedule updates
// back through it.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/waypointhq/waypoint/internal/model"
)

// ErrNotFound is returned when an update targets a missing task.
var ErrNotFound = errors.New("task not found")

// schema contains the DDL executed on every open. IF NOT EXISTS makes it
// safe to run repeatedly.
const schema = `
CREATE TABLE IF NOT EXISTS tasks (
    id             TEXT PRIMARY KEY,
    project_id     TEXT NOT NULL,
    name           TEXT NOT NULL,
    duration_hours REAL NOT NULL DEFAULT 0,
    start_at       TIMESTAMP NOT NULL,
    finish_at      TIMESTAMP NOT NULL,
    pct_complete   REAL NOT NULL DEFAULT 0,
    assignees      TEXT NOT NULL DEFAULT '',
    critical       INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);

CREATE TABLE IF NOT EXISTS dependencies (
    id             TEXT PRIMARY KEY,
    project_id     TEXT NOT NULL,
    predecessor_id TEXT NOT NULL,
    successor_id   TEXT NOT NULL,
    dep_type       TEXT NOT NULL DEFAULT 'FS',
    lag_days       INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_deps_project ON dependencies(project_id);
`

// Store wraps a SQLite database holding tasks and dependencies.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dbPath, enables WAL mode and a
// busy timeout, and creates the schema if it does not exist.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// SQLite only supports a single writer; one connection avoids
	// SQLITE_BUSY contention between pooled connections that each need
	// their own PRAGMA setup.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Tasks returns all tasks of a project, ordered by identifier.
func (s *Store) Tasks(ctx context.Context, projectID string) ([]model.Task, error) {
	const q = `
		SELECT id, project_id, name, duration_hours, start_at, finish_at, pct_complete, assignees, critical
		FROM tasks WHERE project_id = ? ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, fmt.Errorf("store: query tasks for %q: %w", projectID, err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var (
			t         model.Task
			start     string
			finish    string
			assignees string
			critical  int
		)
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Name, &t.DurationHours, &start, &finish, &t.PercentComplete, &assignees, &critical); err != nil {
			return nil, fmt.Errorf("store: scan task: %w", err)
		}
		if t.Start, err = parseTimestamp(start); err != nil {
			return nil, fmt.Errorf("store: task %s start: %w", t.ID, err)
		}
		if t.Finish, err = parseTimestamp(finish); err != nil {
			return nil, fmt.Errorf("store: task %s finish: %w", t.ID, err)
		}
		t.AssigneeIDs = splitAssignees(assignees)
		t.Critical = critical != 0
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Dependencies returns all dependency records of a project, ordered by
// identifier. Legacy long-form type codes in stored data are translated
// here, at the boundary, so the engine only sees canonical codes.
func (s *Store) Dependencies(ctx context.Context, projectID string) ([]model.Dependency, error) {
	const q = `
		SELECT id, project_id, predecessor_id, successor_id, dep_type, lag_days
		FROM dependencies WHERE project_id = ? ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, fmt.Errorf("store: query dependencies for %q: %w", projectID, err)
	}
	defer rows.Close()

	var deps []model.Dependency
	for rows.Next() {
		var (
			d       model.Dependency
			rawType string
		)
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.PredecessorID, &d.SuccessorID, &rawType, &d.LagDays); err != nil {
			return nil, fmt.Errorf("store: scan dependency: %w", err)
		}
		if d.Type, err = model.ParseDependencyType(rawType); err != nil {
			return nil, fmt.Errorf("store: dependency %s: %w", d.ID, err)
		}
		deps = append(deps, d)
	}
	return deps, rows.Err()
}

// SaveTask upserts a task record.
func (s *Store) SaveTask(ctx context.Context, t model.Task) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("store: save task: %w", err)
	}
	const q = `
		INSERT INTO tasks (id, project_id, name, duration_hours, start_at, finish_at, pct_complete, assignees, critical)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			name = excluded.name,
			duration_hours = excluded.duration_hours,
			start_at = excluded.start_at,
			finish_at = excluded.finish_at,
			pct_complete = excluded.pct_complete,
			assignees = excluded.assignees,
			critical = excluded.critical`
	_, err := s.db.ExecContext(ctx, q,
		t.ID, t.ProjectID, t.Name, t.DurationHours,
		formatTimestamp(t.Start), formatTimestamp(t.ComputedFinish()),
		t.PercentComplete, strings.Join(t.AssigneeIDs, ","), boolToInt(t.Critical))
	if err != nil {
		return fmt.Errorf("store: save task %q: %w", t.ID, err)
	}
	return nil
}

// SaveDependency upserts a dependency record.
func (s *Store) SaveDependency(ctx context.Context, d model.Dependency) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("store: save dependency: %w", err)
	}
	const q = `
		INSERT INTO dependencies (id, project_id, predecessor_id, successor_id, dep_type, lag_days)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			predecessor_id = excluded.predecessor_id,
			successor_id = excluded.successor_id,
			dep_type = excluded.dep_type,
			lag_days = excluded.lag_days`
	_, err := s.db.ExecContext(ctx, q,
		d.ID, d.ProjectID, d.PredecessorID, d.SuccessorID, d.Type.String(), d.LagDays)
	if err != nil {
		return fmt.Errorf("store: save dependency %q: %w", d.ID, err)
	}
	return nil
}

// UpdateTaskSchedule writes only the start and finish fields of one task.
// This is the partial update used by the cascade rescheduler.
func (s *Store) UpdateTaskSchedule(ctx context.Context, taskID string, start, finish time.Time) error {
	const q = `UPDATE tasks SET start_at = ?, finish_at = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, q, formatTimestamp(start), formatTimestamp(finish), taskID)
	if err != nil {
		return fmt.Errorf("store: update schedule for %q: %w", taskID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: update schedule for %q: %w", taskID, err)
	}
	if n == 0 {
		return fmt.Errorf("store: update schedule: %w: %s", ErrNotFound, taskID)
	}
	return nil
}

// MarkCritical persists the critical display flag for the given task IDs
// within a project, clearing it everywhere else.
func (s *Store) MarkCritical(ctx context.Context, projectID string, criticalIDs []string) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE tasks SET critical = 0 WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("store: clear critical flags for %q: %w", projectID, err)
	}
	for _, id := range criticalIDs {
		if _, err := s.db.ExecContext(ctx, `UPDATE tasks SET critical = 1 WHERE id = ?`, id); err != nil {
			return fmt.Errorf("store: mark %q critical: %w", id, err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("store: close: %w", err)
	}
	return nil
}

const timestampLayout = time.RFC3339Nano

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp accepts both the canonical RFC 3339 form written by this
// store and the space-separated form SQLite's CURRENT_TIMESTAMP produces.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{timestampLayout, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func splitAssignees(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
