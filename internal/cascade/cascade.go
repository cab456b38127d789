// Package cascade implements dependency-aware rescheduling: a manual date
// or duration change to one task is propagated through all transitive
// successors, writing each touched task back through the store.
//
// The cascade is a saga, not a transaction. Each downstream write succeeds
// or fails individually; a failed write is recorded and reported while
// propagation continues to sibling branches.
package cascade

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/waypointhq/waypoint/internal/model"
	"github.com/waypointhq/waypoint/internal/telemetry"
)

// ErrTaskNotFound is returned when the edited task is not in the project.
var ErrTaskNotFound = errors.New("task not found")

// ErrDepthExceeded marks a propagation branch cut off at the depth bound.
var ErrDepthExceeded = errors.New("cascade depth exceeded")

// DefaultMaxDepth bounds propagation so a pathological dependency chain
// fails closed instead of running unbounded.
const DefaultMaxDepth = 1000

// Store is the read/write seam the rescheduler needs: a task and
// dependency snapshot for the project, and partial schedule updates for
// the write-back.
type Store interface {
	Tasks(ctx context.Context, projectID string) ([]model.Task, error)
	Dependencies(ctx context.Context, projectID string) ([]model.Dependency, error)
	UpdateTaskSchedule(ctx context.Context, taskID string, start, finish time.Time) error
}

// Request describes a single-task edit. NewStart and NewDurationHours are
// optional; a nil field keeps the stored value. When Cascade is false only
// the edited task is updated and dependents are left stale until the next
// full analysis.
type Request struct {
	ProjectID        string
	TaskID           string
	NewStart         *time.Time
	NewDurationHours *float64
	Cascade          bool
}

// WriteFailure records one downstream task whose write-back failed.
type WriteFailure struct {
	TaskID string
	Err    error
}

func (f WriteFailure) Error() string {
	return fmt.Sprintf("cascade: write task %s: %v", f.TaskID, f.Err)
}

func (f WriteFailure) Unwrap() error {
	return f.Err
}

// Result reports the outcome of one reschedule operation.
type Result struct {
	// Task is the edited task with its recomputed start and finish.
	Task model.Task

	// CascadedUpdates counts downstream tasks successfully written.
	CascadedUpdates int

	// Failed lists downstream task identifiers whose write-back failed,
	// sorted. The edits to these tasks were computed but not persisted.
	Failed []string

	// Failures carries the per-task errors behind Failed.
	Failures []WriteFailure

	// DepthLimited is true when at least one branch hit the depth bound
	// and was cut off.
	DepthLimited bool
}

// Rescheduler applies single-task edits with optional cascade propagation.
// Cascades on the same project are serialized; different projects proceed
// concurrently.
type Rescheduler struct {
	store    Store
	emitter  *telemetry.Emitter
	maxDepth int
	locks    projectLocks
}

// Option configures a Rescheduler.
type Option func(*Rescheduler)

// WithMaxDepth overrides the propagation depth bound.
func WithMaxDepth(n int) Option {
	return func(r *Rescheduler) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// WithTelemetry attaches an event emitter. A nil emitter is a no-op.
func WithTelemetry(e *telemetry.Emitter) Option {
	return func(r *Rescheduler) {
		r.emitter = e
	}
}

// New creates a Rescheduler over the given store.
func New(store Store, opts ...Option) *Rescheduler {
	r := &Rescheduler{
		store:    store,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reschedule applies the edit described by req. The edited task's finish
// is recomputed as start plus duration; with Cascade set, every transitive
// successor is shifted to start at its predecessor's new finish plus the
// dependency lag and written back before recursion continues. Downstream
// write failures do not abort the operation; they are aggregated on the
// Result. An error is returned only when the snapshot cannot be loaded,
// the task does not exist, or the edited task itself cannot be written.
func (r *Rescheduler) Reschedule(ctx context.Context, req Request) (*Result, error) {
	unlock := r.locks.lock(req.ProjectID)
	defer unlock()

	tasks, err := r.store.Tasks(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("cascade: load tasks: %w", err)
	}
	byID := make(map[string]model.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	edited, ok := byID[req.TaskID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, req.TaskID)
	}

	if req.NewStart != nil {
		edited.Start = *req.NewStart
	}
	if req.NewDurationHours != nil {
		edited.DurationHours = *req.NewDurationHours
	}
	edited.Finish = edited.ComputedFinish()

	r.emit(telemetry.Event{
		Kind:      telemetry.KindCascadeStart,
		ProjectID: req.ProjectID,
		TaskID:    req.TaskID,
		Data:      map[string]any{"cascade": req.Cascade},
	})

	if err := r.store.UpdateTaskSchedule(ctx, edited.ID, edited.Start, edited.Finish); err != nil {
		return nil, fmt.Errorf("cascade: write task %s: %w", edited.ID, err)
	}
	byID[edited.ID] = edited

	res := &Result{Task: edited}
	if req.Cascade {
		deps, err := r.store.Dependencies(ctx, req.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("cascade: load dependencies: %w", err)
		}
		successors := make(map[string][]model.Dependency, len(deps))
		for _, d := range deps {
			successors[d.PredecessorID] = append(successors[d.PredecessorID], d)
		}
		visited := map[string]bool{edited.ID: true}
		r.propagate(ctx, edited, successors, byID, visited, 0, res)
		sort.Strings(res.Failed)
	}

	r.emit(telemetry.Event{
		Kind:      telemetry.KindCascadeDone,
		ProjectID: req.ProjectID,
		TaskID:    req.TaskID,
		Data: map[string]any{
			"updated": res.CascadedUpdates,
			"failed":  len(res.Failed),
		},
	})
	return res, nil
}

// propagate walks the dependency records where from is the predecessor,
// shifting each successor to start at from's new finish plus the lag, and
// recurses successor-first. Each touched task is written back before its
// own successors are visited. The visited set guards against cyclic data;
// depth guards against unbounded chains.
func (r *Rescheduler) propagate(ctx context.Context, from model.Task, successors map[string][]model.Dependency, byID map[string]model.Task, visited map[string]bool, depth int, res *Result) {
	if depth >= r.maxDepth {
		res.DepthLimited = true
		r.emit(telemetry.Event{
			Kind:      telemetry.KindCascadeDepthLimit,
			ProjectID: from.ProjectID,
			TaskID:    from.ID,
			Data:      map[string]any{"depth": depth},
		})
		return
	}

	for _, dep := range successors[from.ID] {
		succ, ok := byID[dep.SuccessorID]
		if !ok || visited[succ.ID] {
			continue
		}
		visited[succ.ID] = true

		succ.Start = from.Finish.Add(model.Days(dep.LagDays))
		succ.Finish = succ.ComputedFinish()
		byID[succ.ID] = succ

		if err := r.store.UpdateTaskSchedule(ctx, succ.ID, succ.Start, succ.Finish); err != nil {
			res.Failed = append(res.Failed, succ.ID)
			res.Failures = append(res.Failures, WriteFailure{TaskID: succ.ID, Err: err})
			r.emit(telemetry.Event{
				Kind:      telemetry.KindCascadeWriteFailed,
				ProjectID: succ.ProjectID,
				TaskID:    succ.ID,
				Data:      map[string]any{"error": err.Error()},
			})
		} else {
			res.CascadedUpdates++
			r.emit(telemetry.Event{
				Kind:      telemetry.KindCascadeTask,
				ProjectID: succ.ProjectID,
				TaskID:    succ.ID,
				Data: map[string]any{
					"start":  succ.Start,
					"finish": succ.Finish,
				},
			})
		}

		// Propagation continues below a failed write: the dates are
		// computed in memory either way, and siblings of a failed branch
		// must still be reached.
		r.propagate(ctx, succ, successors, byID, visited, depth+1, res)
	}
}

func (r *Rescheduler) emit(evt telemetry.Event) {
	_ = r.emitter.Emit(evt)
}
