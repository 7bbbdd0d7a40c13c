package graph

import (
	"slices"
	"sort"
	"strings"
)

// FindCycles runs a depth-first search keeping the current path on a stack.
// Every edge back into the stack yields the stack slice from its target to
// the current node. Cycles are returned rotated so that the smallest id comes
// first, and a cycle reachable under several rotations is reported once.
//
// Nodes and successors are visited in sorted order, which makes the output
// deterministic. An edge from a node to itself yields a one-node cycle.
func FindCycles(nodes []string, successors func(string) []string) [][]string {
	roots := slices.Clone(nodes)
	sort.Strings(roots)
	roots = slices.Compact(roots)

	const (
		unvisited = iota
		onStack
		done
	)

	state := make(map[string]int, len(roots))
	position := make(map[string]int)
	seen := make(map[string]bool)
	var stack []string
	var cycles [][]string

	var visit func(node string)
	visit = func(node string) {
		state[node] = onStack
		position[node] = len(stack)
		stack = append(stack, node)

		next := slices.Clone(successors(node))
		sort.Strings(next)
		for _, succ := range next {
			switch state[succ] {
			case onStack:
				cycle := canonicalRotation(stack[position[succ]:])
				key := strings.Join(cycle, "\x00")
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
			case unvisited:
				visit(succ)
			}
		}

		stack = stack[:len(stack)-1]
		delete(position, node)
		state[node] = done
	}

	for _, root := range roots {
		if state[root] == unvisited {
			visit(root)
		}
	}

	return cycles
}

// canonicalRotation returns a copy of cycle starting at its smallest id
func canonicalRotation(cycle []string) []string {
	start := 0
	for i, id := range cycle {
		if id < cycle[start] {
			start = i
		}
	}
	out := make([]string, 0, len(cycle))
	out = append(out, cycle[start:]...)
	return append(out, cycle[:start]...)
}

// DetectCycles finds the class-level cycles of a graph
func DetectCycles(g *Graph) [][]string {
	return FindCycles(g.ClassIDs(), g.Successors)
}

// CycleMembers returns the distinct ids that take part in any cycle
func CycleMembers(cycles [][]string) map[string]struct{} {
	members := make(map[string]struct{})
	for _, c := range cycles {
		for _, id := range c {
			members[id] = struct{}{}
		}
	}
	return members
}
