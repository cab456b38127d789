package store

import (
	"context"
	"time"

	"github.com/waypointhq/waypoint/internal/model"
)

// SnapshotReader supplies the task and dependency snapshot the analysis
// pipeline consumes. The engine never writes through this interface.
type SnapshotReader interface {
	Tasks(ctx context.Context, projectID string) ([]model.Task, error)
	Dependencies(ctx context.Context, projectID string) ([]model.Dependency, error)
}

// ScheduleWriter accepts partial updates to a task's start/finish fields.
// Only the cascade rescheduler writes through this interface.
type ScheduleWriter interface {
	UpdateTaskSchedule(ctx context.Context, taskID string, start, finish time.Time) error
}

var (
	_ SnapshotReader = (*Store)(nil)
	_ ScheduleWriter = (*Store)(nil)
)
