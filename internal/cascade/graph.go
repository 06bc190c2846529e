package cascade

import "github.com/dshills/tschart/internal/event/topic"

// feeds reports whether a write of from can trigger to.
func feeds(from, to Rule) bool {
	for _, w := range from.Writes {
		for _, t := range to.Triggers {
			if topic.Overlaps(w, t) {
				return true
			}
		}
	}
	return false
}

// cycleThrough returns the rule names along a cycle that adding r would
// close, starting and ending at r, or nil. The registered rules are acyclic,
// so any new cycle passes through r.
func (e *Engine) cycleThrough(r Rule) []string {
	nodes := make([]Rule, 0, len(e.rules)+1)
	nodes = append(nodes, r)
	for _, reg := range e.rules {
		nodes = append(nodes, reg.rule)
	}

	visited := make([]bool, len(nodes))
	var path []string
	var visit func(i int) bool
	visit = func(i int) bool {
		path = append(path, nodes[i].Name)
		for j := range nodes {
			if !feeds(nodes[i], nodes[j]) {
				continue
			}
			if j == 0 {
				path = append(path, r.Name)
				return true
			}
			if !visited[j] {
				visited[j] = true
				if visit(j) {
					return true
				}
			}
		}
		path = path[:len(path)-1]
		return false
	}

	visited[0] = true
	if visit(0) {
		return path
	}
	return nil
}

// Order returns the rule names in an order where every rule comes after the
// rules that feed it.
func (e *Engine) Order() []string {
	n := len(e.rules)
	indeg := make([]int, n)
	for i := range e.rules {
		for j := range e.rules {
			if feeds(e.rules[i].rule, e.rules[j].rule) {
				indeg[j]++
			}
		}
	}

	var queue, out []int
	for i := range indeg {
		if indeg[i] == 0 {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		out = append(out, i)
		for j := range e.rules {
			if feeds(e.rules[i].rule, e.rules[j].rule) {
				indeg[j]--
				if indeg[j] == 0 {
					queue = append(queue, j)
				}
			}
		}
	}

	names := make([]string, len(out))
	for k, i := range out {
		names[k] = e.rules[i].rule.Name
	}
	return names
}
