package cpm

import (
	"sort"
	"time"

	"github.com/waypointhq/waypoint/internal/model"
)

// forwardPass computes each task's earliest start and finish by Kahn-style
// topological processing over in-degree counts from the reverse adjacency.
// Every task starts from its stored date, so in-degree-zero seeds keep
// their own schedule and unreachable tasks (which cannot occur in a
// connected DAG, but are guarded anyway) simply fall through untouched.
// Each successor is finalized only after all of its predecessors have been
// processed; the max in every formula resolves multiple incoming
// constraints.
func forwardPass(g *Graph, out map[string]*Analysis) {
	inDegree := make(map[string]int, g.Len())
	for _, id := range g.TaskIDs() {
		t, _ := g.Task(id)
		a := out[id]
		a.EarlyStart = t.Start
		a.EarlyFinish = t.Start.Add(model.Hours(t.DurationHours))
		inDegree[id] = len(g.Predecessors(id))
	}

	var queue []string
	for _, id := range g.TaskIDs() {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		pred := out[id]

		var freed []string
		for _, e := range g.Successors(id) {
			succTask, _ := g.Task(e.TaskID)
			succ := out[e.TaskID]

			candidate := earlyStartCandidate(pred, e, succTask)
			if candidate.After(succ.EarlyStart) {
				succ.EarlyStart = candidate
			}
			// Early finish is always derived, never carried over.
			succ.EarlyFinish = succ.EarlyStart.Add(model.Hours(succTask.DurationHours))

			inDegree[e.TaskID]--
			if inDegree[e.TaskID] == 0 {
				freed = append(freed, e.TaskID)
			}
		}
		sort.Strings(freed)
		queue = append(queue, freed...)
	}
}

// earlyStartCandidate applies the dependency-type formula for one incoming
// edge: the earliest start the successor may take given this predecessor's
// early dates, the edge semantics, and the lag offset in whole days.
func earlyStartCandidate(pred *Analysis, e Edge, succ model.Task) time.Time {
	lag := model.Days(e.LagDays)
	dur := model.Hours(succ.DurationHours)

	switch e.Type {
	case model.StartToStart:
		return pred.EarlyStart.Add(lag)
	case model.FinishToFinish:
		return pred.EarlyFinish.Add(lag).Add(-dur)
	case model.StartToFinish:
		return pred.EarlyStart.Add(lag).Add(-dur)
	default: // FinishToStart
		return pred.EarlyFinish.Add(lag)
	}
}
