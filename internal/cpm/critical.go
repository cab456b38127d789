package cpm

import "sort"

// CriticalFloatToleranceHours is the total-float threshold below which a
// task counts as critical. The tolerance is deliberately non-zero to
// absorb floating-point noise from hour-based arithmetic.
const CriticalFloatToleranceHours = 1.0

// classifyCritical marks every task whose total float is within tolerance
// and assigns the criticality index: 1.0 on the critical path, otherwise
// total float over the project duration, clamped to [0, 1].
func classifyCritical(g *Graph, out map[string]*Analysis, projectDurationHours float64) {
	for _, id := range g.TaskIDs() {
		a := out[id]
		if a.TotalFloatHours <= CriticalFloatToleranceHours {
			a.Critical = true
			a.CriticalityIndex = 1.0
			continue
		}
		if projectDurationHours <= 0 {
			a.CriticalityIndex = 0
			continue
		}
		idx := a.TotalFloatHours / projectDurationHours
		if idx > 1 {
			idx = 1
		}
		a.CriticalityIndex = idx
	}
}

// criticalPath orders the critical subset topologically using only edges
// whose endpoints are both critical. A simple DAG yields one ordered
// chain; disconnected critical subsets come out as disjoint topological
// runs concatenated in discovery order. Seeding is sorted by early start
// with identifier as tiebreaker so repeated analyses are identical.
func criticalPath(g *Graph, out map[string]*Analysis) []string {
	critical := make(map[string]bool)
	for _, id := range g.TaskIDs() {
		if out[id].Critical {
			critical[id] = true
		}
	}
	if len(critical) == 0 {
		return nil
	}

	inDegree := make(map[string]int, len(critical))
	for id := range critical {
		for _, e := range g.Predecessors(id) {
			if critical[e.TaskID] {
				inDegree[id]++
			}
		}
	}

	var queue []string
	for id := range critical {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	sortBySchedule(queue, out)

	path := make([]string, 0, len(critical))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		path = append(path, id)

		var freed []string
		for _, e := range g.Successors(id) {
			if !critical[e.TaskID] {
				continue
			}
			inDegree[e.TaskID]--
			if inDegree[e.TaskID] == 0 {
				freed = append(freed, e.TaskID)
			}
		}
		sortBySchedule(freed, out)
		queue = append(queue, freed...)
	}
	return path
}

// sortBySchedule orders ids by early start, then identifier.
func sortBySchedule(ids []string, out map[string]*Analysis) {
	sort.Slice(ids, func(i, j int) bool {
		ei, ej := out[ids[i]].EarlyStart, out[ids[j]].EarlyStart
		if !ei.Equal(ej) {
			return ei.Before(ej)
		}
		return ids[i] < ids[j]
	})
}
