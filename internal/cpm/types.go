package cpm

import "time"

// Analysis holds the derived schedule values for a single task. It is
// recomputed on every analysis request and is never the system of record.
type Analysis struct {
	TaskID      string    `json:"task_id"`
	EarlyStart  time.Time `json:"early_start"`
	EarlyFinish time.Time `json:"early_finish"`
	LateStart   time.Time `json:"late_start"`
	LateFinish  time.Time `json:"late_finish"`

	TotalFloatHours float64 `json:"total_float_hours"`
	FreeFloatHours  float64 `json:"free_float_hours"`

	Critical bool `json:"critical"`

	// CriticalityIndex is 1.0 for tasks on the critical path; for the rest
	// it is total float over project duration, clamped to [0, 1].
	CriticalityIndex float64 `json:"criticality_index"`
}

// Result is the aggregate output of one analysis run.
type Result struct {
	ProjectID string `json:"project_id"`

	// CriticalPath lists critical task identifiers in topological order.
	// Parallel critical chains appear as concatenated runs; callers must
	// not assume a single unbroken chain.
	CriticalPath []string `json:"critical_path"`

	Tasks map[string]*Analysis `json:"tasks"`

	ProjectStart        time.Time `json:"project_start"`
	ProjectEnd          time.Time `json:"project_end"`
	ProjectDurationDays float64   `json:"project_duration_days"`

	CriticalPathLength int     `json:"critical_path_length"`
	TotalFloatHours    float64 `json:"total_float_hours"`
	HealthScore        float64 `json:"health_score"`
}

// IsCritical reports whether the given task identifier was classified as
// critical in this result.
func (r *Result) IsCritical(taskID string) bool {
	a, ok := r.Tasks[taskID]
	return ok && a.Critical
}
