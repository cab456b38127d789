package cpm

import (
	"time"

	"github.com/waypointhq/waypoint/internal/model"
)

// Analyze runs the full scheduling pipeline for one project snapshot:
// graph build, forward pass, backward pass, float computation, critical
// classification, and health scoring. It is pure and deterministic: the
// same snapshot always yields an identical Result. When the dependency set
// is malformed it returns an *IntegrityError or *CycleError instead of any
// partial result.
func Analyze(projectID string, tasks []model.Task, deps []model.Dependency) (*Result, error) {
	g, err := Build(tasks, deps)
	if err != nil {
		return nil, err
	}
	return analyzeGraph(projectID, g), nil
}

// analyzeGraph runs the passes over an already validated graph.
func analyzeGraph(projectID string, g *Graph) *Result {
	res := &Result{
		ProjectID:    projectID,
		Tasks:        make(map[string]*Analysis, g.Len()),
		CriticalPath: []string{},
		HealthScore:  100,
	}
	if g.Len() == 0 {
		return res
	}

	for _, id := range g.TaskIDs() {
		res.Tasks[id] = &Analysis{TaskID: id}
	}

	forwardPass(g, res.Tasks)

	var projectStart, projectEnd time.Time
	for _, id := range g.TaskIDs() {
		a := res.Tasks[id]
		if projectStart.IsZero() || a.EarlyStart.Before(projectStart) {
			projectStart = a.EarlyStart
		}
		if a.EarlyFinish.After(projectEnd) {
			projectEnd = a.EarlyFinish
		}
	}
	res.ProjectStart = projectStart
	res.ProjectEnd = projectEnd
	durationHours := projectEnd.Sub(projectStart).Hours()
	res.ProjectDurationDays = durationHours / 24

	backwardPass(g, res.Tasks, projectEnd)
	computeFloat(g, res.Tasks)
	classifyCritical(g, res.Tasks, durationHours)

	// Accumulate in sorted ID order: float addition is not associative, so
	// map iteration order would leak into the aggregates.
	criticalCount := 0
	for _, id := range g.TaskIDs() {
		a := res.Tasks[id]
		res.TotalFloatHours += a.TotalFloatHours
		if a.Critical {
			criticalCount++
		}
	}

	res.CriticalPath = criticalPath(g, res.Tasks)
	res.CriticalPathLength = len(res.CriticalPath)
	res.HealthScore = healthScore(res.Tasks, criticalCount)
	return res
}
