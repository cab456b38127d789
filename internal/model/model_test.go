package model

import (
	"errors"
	"testing"
	"time"
)

func TestParseDependencyType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		in      string
		want    DependencyType
		wantErr bool
	}{
		{name: "canonical FS", in: "FS", want: FinishToStart},
		{name: "canonical SS", in: "SS", want: StartToStart},
		{name: "canonical FF", in: "FF", want: FinishToFinish},
		{name: "canonical SF", in: "SF", want: StartToFinish},
		{name: "lowercase code", in: "ss", want: StartToStart},
		{name: "legacy finish_to_start", in: "finish_to_start", want: FinishToStart},
		{name: "legacy start_to_start", in: "start_to_start", want: StartToStart},
		{name: "legacy finish_to_finish", in: "finish_to_finish", want: FinishToFinish},
		{name: "legacy start_to_finish", in: "start_to_finish", want: StartToFinish},
		{name: "legacy mixed case", in: "Finish_To_Start", want: FinishToStart},
		{name: "empty defaults to FS", in: "", want: FinishToStart},
		{name: "whitespace only defaults to FS", in: "  ", want: FinishToStart},
		{name: "padded code", in: " FF ", want: FinishToFinish},
		{name: "unknown code", in: "XX", wantErr: true},
		{name: "unknown long form", in: "start_after_start", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDependencyType(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownDependencyType) {
					t.Fatalf("ParseDependencyType(%q) error = %v, want ErrUnknownDependencyType", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDependencyType(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseDependencyType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDependencyTypeIsValid(t *testing.T) {
	t.Parallel()
	for _, dt := range []DependencyType{FinishToStart, StartToStart, FinishToFinish, StartToFinish} {
		if !dt.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", dt)
		}
	}
	for _, dt := range []DependencyType{"", "fs", "XX", "finish_to_start"} {
		if dt.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", dt)
		}
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{name: "valid", task: Task{ID: "t1", DurationHours: 8}},
		{name: "zero duration ok", task: Task{ID: "milestone"}},
		{name: "missing id", task: Task{DurationHours: 8}, wantErr: true},
		{name: "negative duration", task: Task{ID: "t1", DurationHours: -1}, wantErr: true},
		{name: "percent below range", task: Task{ID: "t1", PercentComplete: -5}, wantErr: true},
		{name: "percent above range", task: Task{ID: "t1", PercentComplete: 101}, wantErr: true},
		{name: "percent boundary", task: Task{ID: "t1", PercentComplete: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.task.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTask) {
					t.Fatalf("Validate() error = %v, want ErrInvalidTask", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
		})
	}
}

func TestDependencyValidate(t *testing.T) {
	t.Parallel()
	valid := Dependency{ID: "d1", PredecessorID: "a", SuccessorID: "b", Type: FinishToStart}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	selfLoop := Dependency{ID: "d2", PredecessorID: "a", SuccessorID: "a", Type: FinishToStart}
	if err := selfLoop.Validate(); !errors.Is(err, ErrSelfDependency) {
		t.Errorf("Validate(self-loop) error = %v, want ErrSelfDependency", err)
	}

	badType := Dependency{ID: "d3", PredecessorID: "a", SuccessorID: "b", Type: "XX"}
	if err := badType.Validate(); !errors.Is(err, ErrUnknownDependencyType) {
		t.Errorf("Validate(bad type) error = %v, want ErrUnknownDependencyType", err)
	}

	missing := Dependency{ID: "d4", SuccessorID: "b", Type: FinishToStart}
	if err := missing.Validate(); err == nil {
		t.Error("Validate(missing predecessor) error = nil, want error")
	}
}

func TestComputedFinish(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	task := Task{ID: "t1", DurationHours: 8.5, Start: start}
	want := start.Add(8*time.Hour + 30*time.Minute)
	if got := task.ComputedFinish(); !got.Equal(want) {
		t.Errorf("ComputedFinish() = %v, want %v", got, want)
	}
}

func TestDurationHelpers(t *testing.T) {
	t.Parallel()
	if got := Hours(1.5); got != 90*time.Minute {
		t.Errorf("Hours(1.5) = %v, want 90m", got)
	}
	if got := Days(2); got != 48*time.Hour {
		t.Errorf("Days(2) = %v, want 48h", got)
	}
	if got := Days(-1); got != -24*time.Hour {
		t.Errorf("Days(-1) = %v, want -24h", got)
	}
}
