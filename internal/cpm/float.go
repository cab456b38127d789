package cpm

// computeFloat derives total and free float in hours for every task from
// the two scheduling passes.
//
// Total float is late start minus early start, floored at zero. Free float
// is the minimum over all immediate successors of (successor early start −
// this task's early finish), floored at zero and capped by total float; a
// task with no successors has free float equal to its total float.
func computeFloat(g *Graph, out map[string]*Analysis) {
	for _, id := range g.TaskIDs() {
		a := out[id]

		total := a.LateStart.Sub(a.EarlyStart).Hours()
		if total < 0 {
			total = 0
		}
		a.TotalFloatHours = total

		succs := g.Successors(id)
		if len(succs) == 0 {
			a.FreeFloatHours = total
			continue
		}

		free := total
		for _, e := range succs {
			gap := out[e.TaskID].EarlyStart.Sub(a.EarlyFinish).Hours()
			if gap < free {
				free = gap
			}
		}
		if free < 0 {
			free = 0
		}
		a.FreeFloatHours = free
	}
}
