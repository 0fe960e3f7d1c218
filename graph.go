package sheet

// Graph edges are recorded as Position sets on each Cell (see
// cell.go's deps/rdeps fields) rather than raw pointers between
// cells. The Sheet owns every Cell outright; cells never point at
// each other directly, so an edge is just an identifier that gets
// resolved back through a Sheet lookup whenever it's walked. That
// keeps ClearCell/SetCell free to drop or replace a Cell without
// chasing down and fixing up pointers held elsewhere.

func cloneSet(m map[Position]struct{}) map[Position]struct{} {
	out := make(map[Position]struct{}, len(m))
	for p := range m {
		out[p] = struct{}{}
	}
	return out
}

// applyDepDiff rewires rdeps edges so that `at`'s dependencies become
// exactly newDeps, given they were oldDeps a moment ago. Both maps
// must reference cells already present in s (the caller is
// responsible for creating placeholders first).
func applyDepDiff(s *Sheet, at Position, oldDeps, newDeps map[Position]struct{}) {
	for r := range newDeps {
		if _, had := oldDeps[r]; had {
			continue
		}
		if c := s.cells[r]; c != nil {
			c.rdeps[at] = struct{}{}
		}
	}
	for r := range oldDeps {
		if _, has := newDeps[r]; has {
			continue
		}
		if c := s.cells[r]; c != nil {
			delete(c.rdeps, at)
		}
	}
}

// hasCycle runs the DFS cycle check of spec §4.6: starting from
// start's direct dependents, walk the dependents relation and report
// whether start is ever reached again. The visiting set memoizes
// "already explored, doesn't lead back to start" so each node is
// expanded at most once; since the question is pure reachability
// (not enumerating distinct cycles), that's sufficient and keeps the
// walk O(V+E) in the reachable subgraph.
func hasCycle(s *Sheet, start Position) bool {
	visiting := make(map[Position]bool)
	var dfs func(Position) bool
	dfs = func(p Position) bool {
		if p.Equal(start) {
			return true
		}
		if visiting[p] {
			return false
		}
		visiting[p] = true
		c := s.cells[p]
		if c == nil {
			return false
		}
		for rd := range c.rdeps {
			if dfs(rd) {
				return true
			}
		}
		return false
	}
	c := s.cells[start]
	if c == nil {
		return false
	}
	for rd := range c.rdeps {
		if dfs(rd) {
			return true
		}
	}
	return false
}

// invalidateDependents recomputes the cached value of every formula
// cell transitively downstream of start, in an order that guarantees
// a cell is recomputed only after everything it reads already holds
// its fresh value. It walks a DFS postorder over the dependents
// relation (an edge records "this cell must be fresh before that
// one") and reverses it, the standard construction of a topological
// order from a DAG's postorder traversal.
func invalidateDependents(s *Sheet, start Position) {
	visited := map[Position]bool{start: true}
	var order []Position
	var dfs func(Position)
	dfs = func(p Position) {
		c := s.cells[p]
		if c == nil {
			return
		}
		for rd := range c.rdeps {
			if visited[rd] {
				continue
			}
			visited[rd] = true
			dfs(rd)
		}
		order = append(order, p)
	}
	dfs(start)

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	for _, p := range order[1:] {
		c := s.cells[p]
		if c == nil || c.kind != cellFormula {
			continue
		}
		c.cached = c.formula.Evaluate(s)
		if s.OnCellUpdated != nil {
			s.OnCellUpdated(p, c)
		}
	}
}
