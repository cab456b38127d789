package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSelfDependency is returned when a dependency links a task to itself.
var ErrSelfDependency = errors.New("self-referencing dependency")

// ErrUnknownDependencyType is returned when a type code cannot be parsed.
var ErrUnknownDependencyType = errors.New("unknown dependency type")

// DependencyType is the closed set of precedence semantics between a
// predecessor and a successor. The short code is the canonical wire form;
// legacy long-form strings are accepted only at parse time.
type DependencyType string

const (
	// FinishToStart: the successor may start once the predecessor finishes.
	FinishToStart DependencyType = "FS"
	// StartToStart: the successor may start once the predecessor starts.
	StartToStart DependencyType = "SS"
	// FinishToFinish: the successor may finish once the predecessor finishes.
	FinishToFinish DependencyType = "FF"
	// StartToFinish: the successor may finish once the predecessor starts.
	StartToFinish DependencyType = "SF"
)

// String returns the canonical short code.
func (dt DependencyType) String() string {
	return string(dt)
}

// IsValid reports whether the type is one of the four known semantics.
func (dt DependencyType) IsValid() bool {
	switch dt {
	case FinishToStart, StartToStart, FinishToFinish, StartToFinish:
		return true
	default:
		return false
	}
}

// legacyTypeCodes maps long-form strings found in older data to canonical
// short codes. Translation happens once, at the boundary; the scheduling
// core only ever sees canonical codes.
var legacyTypeCodes = map[string]DependencyType{
	"finish_to_start":  FinishToStart,
	"start_to_start":   StartToStart,
	"finish_to_finish": FinishToFinish,
	"start_to_finish":  StartToFinish,
}

// ParseDependencyType translates a wire string (canonical short code or
// legacy long form, case-insensitive) into a DependencyType. An empty
// string parses as FinishToStart, the overwhelmingly common default.
func ParseDependencyType(s string) (DependencyType, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return FinishToStart, nil
	}
	if dt := DependencyType(strings.ToUpper(trimmed)); dt.IsValid() {
		return dt, nil
	}
	if dt, ok := legacyTypeCodes[strings.ToLower(trimmed)]; ok {
		return dt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDependencyType, s)
}

// Dependency is a precedence constraint between two tasks of one project.
// Lag is a signed offset in whole days added to the constraint.
type Dependency struct {
	ID            string
	ProjectID     string
	PredecessorID string
	SuccessorID   string
	Type          DependencyType
	LagDays       int
}

// Validate checks structural invariants on the dependency record.
func (d Dependency) Validate() error {
	if d.PredecessorID == "" || d.SuccessorID == "" {
		return fmt.Errorf("dependency %s: missing endpoint", d.ID)
	}
	if d.PredecessorID == d.SuccessorID {
		return fmt.Errorf("%w: %s", ErrSelfDependency, d.PredecessorID)
	}
	if !d.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownDependencyType, d.Type)
	}
	return nil
}
