// Package model defines the task and dependency records shared by the
// scheduling engine, the cascade rescheduler, and the store. Tasks and
// dependencies are owned by the surrounding CRUD layer; the engine treats
// them as an immutable snapshot per analysis request.
package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTask is returned when a task record fails validation.
var ErrInvalidTask = errors.New("invalid task")

// Task is a single schedulable unit within a project. Finish is derived
// from Start plus DurationHours under the ASAP constraint used here: every
// duration unit is wall-clock, with no calendars or non-working time.
type Task struct {
	ID              string
	ProjectID       string
	Name            string
	DurationHours   float64
	Start           time.Time
	Finish          time.Time
	PercentComplete float64
	AssigneeIDs     []string

	// Critical is an output of analysis, never an input. It is persisted
	// only as a display hint and is overwritten by every analysis run.
	Critical bool
}

// ComputedFinish returns Start plus the task's duration. Stored Finish
// values are advisory; schedule arithmetic always derives finish dates.
func (t Task) ComputedFinish() time.Time {
	return t.Start.Add(Hours(t.DurationHours))
}

// Validate checks structural invariants on the task record.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidTask)
	}
	if t.DurationHours < 0 {
		return fmt.Errorf("%w: %s: negative duration %.2fh", ErrInvalidTask, t.ID, t.DurationHours)
	}
	if t.PercentComplete < 0 || t.PercentComplete > 100 {
		return fmt.Errorf("%w: %s: percent complete %.1f out of range", ErrInvalidTask, t.ID, t.PercentComplete)
	}
	return nil
}

// Hours converts a fractional hour count into a time.Duration.
func Hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

// Days converts a whole-day count into a time.Duration.
func Days(d int) time.Duration {
	return time.Duration(d) * 24 * time.Hour
}
