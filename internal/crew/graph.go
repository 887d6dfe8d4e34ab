package crew

import "fmt"

// depGraph tracks the dependency edges of a pipeline's tasks. Tasks are
// nodes; edges point from a task to the tasks it depends on.
type depGraph struct {
	// order preserves task declaration order for deterministic traversal.
	order []string
	nodes map[string]*Task
	edges map[string][]string
}

// newDepGraph builds the graph from the pipeline's tasks. Returns an error
// if task IDs collide, a context edge references an unknown task, or the
// edges form a cycle.
func newDepGraph(tasks []*Task) (*depGraph, error) {
	g := &depGraph{
		nodes: make(map[string]*Task, len(tasks)),
		edges: make(map[string][]string, len(tasks)),
	}

	for _, task := range tasks {
		if _, exists := g.nodes[task.ID]; exists {
			return nil, fmt.Errorf("duplicate task id %q", task.ID)
		}
		g.order = append(g.order, task.ID)
		g.nodes[task.ID] = task
	}

	for _, task := range tasks {
		for _, up := range task.Context {
			if _, exists := g.nodes[up.ID]; !exists {
				return nil, fmt.Errorf("task %s depends on unknown task %s", task.ID, up.ID)
			}
			g.edges[task.ID] = append(g.edges[task.ID], up.ID)
		}
	}

	if g.hasCycle() {
		return nil, ErrCycleDetected
	}

	return g, nil
}

// hasCycle detects a circular dependency using depth-first search with
// coloring to find back edges.
func (g *depGraph) hasCycle() bool {
	// Color states: 0 = white (unvisited), 1 = gray (in progress), 2 = black (done).
	colors := make(map[string]int, len(g.nodes))

	var visit func(id string) bool
	visit = func(id string) bool {
		colors[id] = 1

		for _, depID := range g.edges[id] {
			switch colors[depID] {
			case 1:
				return true
			case 0:
				if visit(depID) {
					return true
				}
			}
		}

		colors[id] = 2
		return false
	}

	for _, id := range g.order {
		if colors[id] == 0 {
			if visit(id) {
				return true
			}
		}
	}

	return false
}

// topoOrder returns task IDs so that every dependency comes before the
// tasks that depend on it. Independent tasks keep declaration order, which
// makes sequential execution deterministic.
func (g *depGraph) topoOrder() []string {
	visited := make(map[string]bool, len(g.nodes))
	result := make([]string, 0, len(g.nodes))

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true

		for _, depID := range g.edges[id] {
			visit(depID)
		}

		result = append(result, id)
	}

	for _, id := range g.order {
		visit(id)
	}

	return result
}

// task returns the node for an ID.
func (g *depGraph) task(id string) *Task {
	return g.nodes[id]
}
