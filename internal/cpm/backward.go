package cpm

import (
	"sort"
	"time"

	"github.com/waypointhq/waypoint/internal/model"
)

// backwardPass computes each task's latest start and finish by reverse
// Kahn-style processing anchored at projectEnd, the maximum early finish
// over all tasks. Every task is initialized to late finish = projectEnd,
// which covers both out-degree-zero tasks and any task never reached by
// backward propagation. Candidates are minimum-binding: a predecessor's
// late finish only ever moves earlier.
func backwardPass(g *Graph, out map[string]*Analysis, projectEnd time.Time) {
	outDegree := make(map[string]int, g.Len())
	for _, id := range g.TaskIDs() {
		t, _ := g.Task(id)
		a := out[id]
		a.LateFinish = projectEnd
		a.LateStart = projectEnd.Add(-model.Hours(t.DurationHours))
		outDegree[id] = len(g.Successors(id))
	}

	var queue []string
	for _, id := range g.TaskIDs() {
		if outDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		succ := out[id]

		var freed []string
		for _, e := range g.Predecessors(id) {
			predTask, _ := g.Task(e.TaskID)
			pred := out[e.TaskID]

			candidate := lateFinishCandidate(succ, e, predTask)
			if candidate.Before(pred.LateFinish) {
				pred.LateFinish = candidate
				pred.LateStart = candidate.Add(-model.Hours(predTask.DurationHours))
			}

			outDegree[e.TaskID]--
			if outDegree[e.TaskID] == 0 {
				freed = append(freed, e.TaskID)
			}
		}
		sort.Strings(freed)
		queue = append(queue, freed...)
	}
}

// lateFinishCandidate mirrors earlyStartCandidate: the latest finish the
// predecessor may take without violating this edge's constraint on the
// successor's late dates.
func lateFinishCandidate(succ *Analysis, e Edge, pred model.Task) time.Time {
	lag := model.Days(e.LagDays)
	dur := model.Hours(pred.DurationHours)

	switch e.Type {
	case model.StartToStart:
		// succ.start ≥ pred.start + lag
		return succ.LateStart.Add(-lag).Add(dur)
	case model.FinishToFinish:
		// succ.finish ≥ pred.finish + lag
		return succ.LateFinish.Add(-lag)
	case model.StartToFinish:
		// succ.finish ≥ pred.start + lag
		return succ.LateFinish.Add(-lag).Add(dur)
	default: // FinishToStart: succ.start ≥ pred.finish + lag
		return succ.LateStart.Add(-lag)
	}
}
