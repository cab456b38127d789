// Package advisor derives heuristic schedule-compression suggestions from
// a completed CPM analysis. Suggestions are advisory text plus estimated
// savings; nothing here mutates tasks or dependencies.
package advisor

import (
	"fmt"
	"sort"

	"github.com/waypointhq/waypoint/internal/cpm"
	"github.com/waypointhq/waypoint/internal/model"
)

// Suggestion kinds.
const (
	KindFastTrack   = "fast_track"
	KindCrash       = "crash"
	KindParallelize = "parallelize"
)

// Risk levels.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
)

// Tuning constants inherited from the scoring heuristics; preserved for
// compatibility, isolated here so they can be revisited in one place.
const (
	fastTrackSavingsRatio = 0.30
	crashSavingsRatio     = 0.20

	// parallelizeFloatThresholdHours is the minimum total float before a
	// non-critical task is worth rescheduling for resource leveling.
	parallelizeFloatThresholdHours = 24.0
)

// Suggestion is one advisory finding.
type Suggestion struct {
	Kind                  string  `json:"kind"`
	TaskID                string  `json:"task_id"`
	RelatedTaskID         string  `json:"related_task_id,omitempty"`
	Description           string  `json:"description"`
	EstimatedSavingsHours float64 `json:"estimated_savings_hours"`
	FloatAvailableHours   float64 `json:"float_available_hours,omitempty"`
	Risk                  string  `json:"risk"`
}

// Report aggregates the advisory pass output.
type Report struct {
	Analysis              *cpm.Result  `json:"analysis"`
	Suggestions           []Suggestion `json:"suggestions"`
	EstimatedSavingsHours float64      `json:"estimated_savings_hours"`

	// CompressionOpportunities counts suggestions that shorten the
	// critical path (fast-track and crash).
	CompressionOpportunities int `json:"compression_opportunities"`
}

// Optimize runs the advisory heuristics over a completed analysis:
//
//   - fast-track: a critical-path task held by a Finish-to-Start
//     predecessor could overlap it as Start-to-Start, saving roughly 30%
//     of the task's duration (medium risk);
//   - crash: a critical-path task that already has assignees could take
//     more, cutting roughly 20% of its duration (low risk);
//   - parallelize: a non-critical task with more than a day of float can
//     be moved freely for resource leveling (low risk).
func Optimize(res *cpm.Result, tasks []model.Task, deps []model.Dependency) *Report {
	report := &Report{
		Analysis:    res,
		Suggestions: []Suggestion{},
	}

	byID := make(map[string]model.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	for _, d := range deps {
		if d.Type != model.FinishToStart || !res.IsCritical(d.SuccessorID) {
			continue
		}
		task := byID[d.SuccessorID]
		saving := task.DurationHours * fastTrackSavingsRatio
		report.Suggestions = append(report.Suggestions, Suggestion{
			Kind:          KindFastTrack,
			TaskID:        d.SuccessorID,
			RelatedTaskID: d.PredecessorID,
			Description: fmt.Sprintf(
				"Fast-track %q: convert its finish-to-start link from %q to start-to-start and overlap the two tasks",
				task.Name, byID[d.PredecessorID].Name),
			EstimatedSavingsHours: saving,
			Risk:                  RiskMedium,
		})
		report.CompressionOpportunities++
		report.EstimatedSavingsHours += saving
	}

	critical := make([]string, 0, len(res.CriticalPath))
	critical = append(critical, res.CriticalPath...)
	for _, id := range critical {
		task, ok := byID[id]
		if !ok || len(task.AssigneeIDs) == 0 {
			continue
		}
		saving := task.DurationHours * crashSavingsRatio
		report.Suggestions = append(report.Suggestions, Suggestion{
			Kind:   KindCrash,
			TaskID: id,
			Description: fmt.Sprintf(
				"Crash %q: add resources alongside its %d current assignee(s) to shorten the critical path",
				task.Name, len(task.AssigneeIDs)),
			EstimatedSavingsHours: saving,
			Risk:                  RiskLow,
		})
		report.CompressionOpportunities++
		report.EstimatedSavingsHours += saving
	}

	var slack []string
	for id, a := range res.Tasks {
		if !a.Critical && a.TotalFloatHours > parallelizeFloatThresholdHours {
			slack = append(slack, id)
		}
	}
	sort.Strings(slack)
	for _, id := range slack {
		task := byID[id]
		a := res.Tasks[id]
		report.Suggestions = append(report.Suggestions, Suggestion{
			Kind:   KindParallelize,
			TaskID: id,
			Description: fmt.Sprintf(
				"Reschedule %q for resource leveling: %.1fh of float available",
				task.Name, a.TotalFloatHours),
			FloatAvailableHours: a.TotalFloatHours,
			Risk:                RiskLow,
		})
	}

	return report
}
