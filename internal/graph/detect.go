package graph

// DetectCycles returns every genuine dependency cycle in the graph: each
// strongly connected component with more than one member, plus a length-1
// cycle for every node with an edge to itself. Members of a multi-node cycle
// come out in DFS discovery order, so a simple cycle reads in dependency
// direction; the starting member is an arbitrary rotation point.
func (g *Graph) DetectCycles() [][]string {
	var cycles [][]string

	index := 0
	stack := []string{}
	onStack := make(map[string]bool, len(g.nodes))
	indexByNode := make(map[string]int, len(g.nodes))
	lowLink := make(map[string]int, len(g.nodes))

	var strongConnect func(v string)
	strongConnect = func(v string) {
		indexByNode[v] = index
		lowLink[v] = index
		index++

		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.edges[v] {
			if _, seen := indexByNode[w]; !seen {
				strongConnect(w)
				if lowLink[w] < lowLink[v] {
					lowLink[v] = lowLink[w]
				}
			} else if onStack[w] && indexByNode[w] < lowLink[v] {
				lowLink[v] = indexByNode[w]
			}
		}

		if lowLink[v] != indexByNode[v] {
			return
		}

		component := make([]string, 0)
		for {
			last := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[last] = false
			component = append(component, last)
			if last == v {
				break
			}
		}
		if len(component) > 1 {
			// The stack pops in reverse discovery order; flip it so the
			// members follow the direction of the dependency edges.
			for i, j := 0, len(component)-1; i < j; i, j = i+1, j-1 {
				component[i], component[j] = component[j], component[i]
			}
			cycles = append(cycles, component)
		}
	}

	for _, v := range g.NodeIDs() {
		if _, seen := indexByNode[v]; !seen {
			strongConnect(v)
		}
	}

	// A node depending on itself forms a single-member SCC, which the pass
	// above deliberately drops. Scan for self-loops separately so none are
	// missed.
	for _, v := range g.NodeIDs() {
		if g.HasEdge(v, v) {
			cycles = append(cycles, []string{v})
		}
	}

	return cycles
}
