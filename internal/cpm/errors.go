package cpm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTask is returned when a dependency references a task identifier
// absent from the supplied task list.
var ErrUnknownTask = errors.New("dependency references unknown task")

// ErrCycle is returned when the dependency set is not acyclic.
var ErrCycle = errors.New("cyclic dependency")

// IntegrityError reports a dependency whose endpoint does not exist in the
// task list. The whole analysis fails; no partial result is produced.
type IntegrityError struct {
	DependencyID string
	MissingID    string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("dependency %s references unknown task %s", e.DependencyID, e.MissingID)
}

// Unwrap allows errors.Is(err, ErrUnknownTask).
func (e *IntegrityError) Unwrap() error {
	return ErrUnknownTask
}

// CycleError reports that topological processing could not order every
// task, i.e. the dependency set contains at least one cycle. Remaining
// lists the task identifiers left unordered, sorted.
type CycleError struct {
	Remaining []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic dependency among tasks: %s", strings.Join(e.Remaining, ", "))
}

// Unwrap allows errors.Is(err, ErrCycle).
func (e *CycleError) Unwrap() error {
	return ErrCycle
}
