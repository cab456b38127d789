// Package cpm implements Critical Path Method analysis over a project's
// task and dependency snapshot: forward and backward scheduling passes
// across four dependency semantics, float computation, critical-path
// identification, and a composite schedule health score.
//
// The package is pure: Build returns an immutable Graph value and every
// pass takes it explicitly, so analyses of different projects can run in
// parallel with no shared state.
package cpm

import (
	"sort"

	"github.com/waypointhq/waypoint/internal/model"
)

// Edge is one directed precedence constraint as seen from either endpoint.
// In a forward adjacency list TaskID names the successor; in a reverse list
// it names the predecessor.
type Edge struct {
	TaskID  string
	Type    model.DependencyType
	LagDays int
}

// Graph is the immutable dependency graph for one project snapshot.
type Graph struct {
	tasks   map[string]model.Task
	forward map[string][]Edge // predecessor → successors
	reverse map[string][]Edge // successor → predecessors
	ids     []string          // all task IDs, sorted
}

// Build converts a flat task and dependency list into forward and reverse
// adjacency structures. A dependency referencing a task identifier absent
// from the task list fails the whole build with an *IntegrityError; a
// cyclic dependency set fails with a *CycleError. Self-loops and unknown
// dependency type codes are rejected via model validation.
func Build(tasks []model.Task, deps []model.Dependency) (*Graph, error) {
	g := &Graph{
		tasks:   make(map[string]model.Task, len(tasks)),
		forward: make(map[string][]Edge, len(tasks)),
		reverse: make(map[string][]Edge, len(tasks)),
	}
	for _, t := range tasks {
		g.tasks[t.ID] = t
		g.ids = append(g.ids, t.ID)
	}
	sort.Strings(g.ids)

	for _, d := range deps {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, ok := g.tasks[d.PredecessorID]; !ok {
			return nil, &IntegrityError{DependencyID: d.ID, MissingID: d.PredecessorID}
		}
		if _, ok := g.tasks[d.SuccessorID]; !ok {
			return nil, &IntegrityError{DependencyID: d.ID, MissingID: d.SuccessorID}
		}
		g.forward[d.PredecessorID] = append(g.forward[d.PredecessorID], Edge{
			TaskID:  d.SuccessorID,
			Type:    d.Type,
			LagDays: d.LagDays,
		})
		g.reverse[d.SuccessorID] = append(g.reverse[d.SuccessorID], Edge{
			TaskID:  d.PredecessorID,
			Type:    d.Type,
			LagDays: d.LagDays,
		})
	}

	if err := g.checkAcyclic(); err != nil {
		return nil, err
	}
	return g, nil
}

// Task returns the task record for id. The second result is false when the
// identifier is unknown.
func (g *Graph) Task(id string) (model.Task, bool) {
	t, ok := g.tasks[id]
	return t, ok
}

// TaskIDs returns all task identifiers, sorted.
func (g *Graph) TaskIDs() []string {
	return g.ids
}

// Successors returns the outgoing edges of id (id as predecessor).
func (g *Graph) Successors(id string) []Edge {
	return g.forward[id]
}

// Predecessors returns the incoming edges of id (id as successor).
func (g *Graph) Predecessors(id string) []Edge {
	return g.reverse[id]
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.tasks)
}

// checkAcyclic runs a throwaway Kahn sort and reports the unsortable
// remainder as a *CycleError. Both scheduling passes rely on the DAG
// invariant, so a cyclic snapshot must fail before any pass runs.
func (g *Graph) checkAcyclic() error {
	inDegree := make(map[string]int, len(g.tasks))
	for id := range g.tasks {
		inDegree[id] = len(g.reverse[id])
	}

	var queue []string
	for _, id := range g.ids {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		sorted++
		for _, e := range g.forward[id] {
			inDegree[e.TaskID]--
			if inDegree[e.TaskID] == 0 {
				queue = append(queue, e.TaskID)
			}
		}
	}

	if sorted != len(g.tasks) {
		var remaining []string
		for id, deg := range inDegree {
			if deg > 0 {
				remaining = append(remaining, id)
			}
		}
		sort.Strings(remaining)
		return &CycleError{Remaining: remaining}
	}
	return nil
}
