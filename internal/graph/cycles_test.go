package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adjacency(edges map[string][]string) func(string) []string {
	return func(n string) []string { return edges[n] }
}

func TestFindCycles(t *testing.T) {
	tests := []struct {
		name  string
		nodes []string
		edges map[string][]string
		want  [][]string
	}{
		{
			name:  "acyclic",
			nodes: []string{"a", "b", "c"},
			edges: map[string][]string{"a": {"b"}, "b": {"c"}},
			want:  nil,
		},
		{
			name:  "mutual pair",
			nodes: []string{"b", "a"},
			edges: map[string][]string{"a": {"b"}, "b": {"a"}},
			want:  [][]string{{"a", "b"}},
		},
		{
			name:  "rotation reported once",
			nodes: []string{"c", "b", "a"},
			edges: map[string][]string{"a": {"b"}, "b": {"c"}, "c": {"a"}},
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "canonical rotation starts at smallest id",
			nodes: []string{"m", "z", "b"},
			edges: map[string][]string{"m": {"z"}, "z": {"b"}, "b": {"m"}},
			want:  [][]string{{"b", "m", "z"}},
		},
		{
			name:  "self loop is a one node cycle",
			nodes: []string{"a"},
			edges: map[string][]string{"a": {"a"}},
			want:  [][]string{{"a"}},
		},
		{
			name:  "two disjoint cycles",
			nodes: []string{"a", "b", "x", "y"},
			edges: map[string][]string{"a": {"b"}, "b": {"a"}, "x": {"y"}, "y": {"x"}},
			want:  [][]string{{"a", "b"}, {"x", "y"}},
		},
		{
			name:  "successor outside the node list",
			nodes: []string{"a"},
			edges: map[string][]string{"a": {"ext"}, "ext": {"a"}},
			want:  [][]string{{"a", "ext"}},
		},
		{
			name:  "duplicate roots",
			nodes: []string{"a", "a", "b"},
			edges: map[string][]string{"a": {"b", "b"}, "b": {"a"}},
			want:  [][]string{{"a", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindCycles(tt.nodes, adjacency(tt.edges))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindCycles_Deterministic(t *testing.T) {
	edges := map[string][]string{
		"a": {"d", "b"},
		"b": {"c"},
		"c": {"a"},
		"d": {"a"},
	}

	first := FindCycles([]string{"d", "c", "b", "a"}, adjacency(edges))
	for range 10 {
		assert.Equal(t, first, FindCycles([]string{"a", "b", "c", "d"}, adjacency(edges)))
	}
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"a", "d"}}, first)
}

func TestDetectCycles_HandAssembledSelfLoop(t *testing.T) {
	g := NewGraph()
	assert.False(t, g.AddEdge("com.acme.Node", "com.acme.Node", EdgeComposition, "next"),
		"self loops are rejected by default")
	assert.Empty(t, DetectCycles(g))

	g.AllowSelfLoops()
	require.True(t, g.AddEdge("com.acme.Node", "com.acme.Node", EdgeComposition, "next"))
	assert.Equal(t, [][]string{{"com.acme.Node"}}, DetectCycles(g))
}

func TestCycleMembers(t *testing.T) {
	members := CycleMembers([][]string{{"a", "b"}, {"b", "c", "d"}})
	assert.Len(t, members, 4)
	assert.Contains(t, members, "c")
}
