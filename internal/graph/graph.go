package graph

import (
	"sort"
	"sync"
)

// Graph is the mutable node and edge set of one build. It is safe for
// concurrent use but a single build only ever touches it from one goroutine.
// Edges connect CLASS nodes; package nodes stand alone.
type Graph struct {
	mu sync.RWMutex

	nodes map[NodeKey]*DependencyNode
	edges map[EdgeKey]*DependencyEdge

	// forward adjacency: source -> targets, any edge type
	forward map[string]map[string]struct{}

	allowSelfLoops bool
}

func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[NodeKey]*DependencyNode),
		edges:   make(map[EdgeKey]*DependencyEdge),
		forward: make(map[string]map[string]struct{}),
	}
}

// AllowSelfLoops lets AddEdge record an edge from a node to itself. The
// builder never enables it; it exists for graphs assembled by hand.
func (g *Graph) AllowSelfLoops() *Graph {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.allowSelfLoops = true
	return g
}

// AddNode is idempotent; the first node registered under a key wins
func (g *Graph) AddNode(id string, nodeType NodeType) *DependencyNode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addNodeLocked(id, nodeType)
}

func (g *Graph) addNodeLocked(id string, nodeType NodeType) *DependencyNode {
	key := NodeKey{ID: id, Type: nodeType}
	if n, ok := g.nodes[key]; ok {
		return n
	}
	n := &DependencyNode{ID: id, Type: nodeType}
	g.nodes[key] = n
	return n
}

// MarkAnalyzed flags a CLASS node as coming from the input class set
func (g *Graph) MarkAnalyzed(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addNodeLocked(id, NodeClass).Analyzed = true
}

// AddEdge records a directed edge between two CLASS nodes, creating either
// endpoint when missing. It reports whether a new edge was added.
func (g *Graph) AddEdge(source, target string, edgeType EdgeType, description string) bool {
	if source == "" || target == "" {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if source == target && !g.allowSelfLoops {
		return false
	}

	key := EdgeKey{Source: source, Target: target, Type: edgeType}
	if _, exists := g.edges[key]; exists {
		return false
	}

	g.addNodeLocked(source, NodeClass)
	g.addNodeLocked(target, NodeClass)

	g.edges[key] = &DependencyEdge{
		Source:      source,
		Target:      target,
		Type:        edgeType,
		Weight:      edgeType.Weight(),
		Description: description,
	}

	targets, ok := g.forward[source]
	if !ok {
		targets = make(map[string]struct{})
		g.forward[source] = targets
	}
	targets[target] = struct{}{}
	return true
}

func (g *Graph) HasNode(id string, nodeType NodeType) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[NodeKey{ID: id, Type: nodeType}]
	return ok
}

func (g *Graph) HasEdge(source, target string, edgeType EdgeType) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.edges[EdgeKey{Source: source, Target: target, Type: edgeType}]
	return ok
}

// Successors returns the distinct targets of source, sorted
func (g *Graph) Successors(source string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	targets := make([]string, 0, len(g.forward[source]))
	for t := range g.forward[source] {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}

// ComputeDegrees recomputes in- and out-degree of every node from the edge set
func (g *Graph) ComputeDegrees() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, n := range g.nodes {
		n.InDegree, n.OutDegree = 0, 0
	}
	for _, e := range g.edges {
		if n, ok := g.nodes[NodeKey{ID: e.Source, Type: NodeClass}]; ok {
			n.OutDegree++
		}
		if n, ok := g.nodes[NodeKey{ID: e.Target, Type: NodeClass}]; ok {
			n.InDegree++
		}
	}
}

// Nodes returns copies of every node sorted by type then id
func (g *Graph) Nodes() []*DependencyNode {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*DependencyNode, 0, len(g.nodes))
	for _, n := range g.nodes {
		c := *n
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Edges returns copies of every edge sorted by source, target then type
func (g *Graph) Edges() []*DependencyEdge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*DependencyEdge, 0, len(g.edges))
	for _, e := range g.edges {
		c := *e
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		if out[i].Target != out[j].Target {
			return out[i].Target < out[j].Target
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// ClassIDs returns the ids of all CLASS nodes, sorted
func (g *Graph) ClassIDs() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var ids []string
	for key := range g.nodes {
		if key.Type == NodeClass {
			ids = append(ids, key.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

// Clear drops all nodes and edges
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = make(map[NodeKey]*DependencyNode)
	g.edges = make(map[EdgeKey]*DependencyEdge)
	g.forward = make(map[string]map[string]struct{})
}
