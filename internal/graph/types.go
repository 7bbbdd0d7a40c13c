package graph

import (
	"fmt"
	"strings"
)

type NodeType string

const (
	NodePackage         NodeType = "PACKAGE"
	NodeClass           NodeType = "CLASS"
	NodeMethod          NodeType = "METHOD"
	NodeField           NodeType = "FIELD"
	NodeExternalLibrary NodeType = "EXTERNAL_LIBRARY"
	NodeSpringComponent NodeType = "SPRING_COMPONENT"
)

type EdgeType string

const (
	EdgeInheritance EdgeType = "INHERITANCE"
	EdgeImplements  EdgeType = "IMPLEMENTS"
	EdgeComposition EdgeType = "COMPOSITION"
	EdgeUses        EdgeType = "USES"
)

// EdgeTypes lists every edge type in display order
var EdgeTypes = []EdgeType{EdgeInheritance, EdgeImplements, EdgeComposition, EdgeUses}

// Weight is the display weight of an edge type, strongest coupling first
func (t EdgeType) Weight() float64 {
	switch t {
	case EdgeInheritance:
		return 1.0
	case EdgeImplements:
		return 0.8
	case EdgeComposition:
		return 0.6
	case EdgeUses:
		return 0.3
	default:
		return 0
	}
}

// NodeKey is the identity of a node
type NodeKey struct {
	ID   string
	Type NodeType
}

// DependencyNode is a vertex of the class-relationship graph. Degrees are
// filled in by ComputeDegrees once construction is finished.
type DependencyNode struct {
	ID        string   `json:"id" yaml:"id" xml:"id,attr"`
	Type      NodeType `json:"type" yaml:"type" xml:"type,attr"`
	InDegree  int      `json:"inDegree" yaml:"inDegree" xml:"inDegree,attr"`
	OutDegree int      `json:"outDegree" yaml:"outDegree" xml:"outDegree,attr"`
	// Analyzed is false for nodes synthesized for referenced types outside the input set
	Analyzed bool `json:"analyzed" yaml:"analyzed" xml:"analyzed,attr"`
}

func (n *DependencyNode) Key() NodeKey {
	return NodeKey{ID: n.ID, Type: n.Type}
}

// EdgeKey is the identity of an edge; weight and description do not take part
type EdgeKey struct {
	Source string
	Target string
	Type   EdgeType
}

type DependencyEdge struct {
	Source      string   `json:"source" yaml:"source" xml:"source,attr"`
	Target      string   `json:"target" yaml:"target" xml:"target,attr"`
	Type        EdgeType `json:"type" yaml:"type" xml:"type,attr"`
	Weight      float64  `json:"weight" yaml:"weight" xml:"weight,attr"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" xml:",chardata"`
}

func (e *DependencyEdge) Key() EdgeKey {
	return EdgeKey{Source: e.Source, Target: e.Target, Type: e.Type}
}

// GraphMetrics are the aggregate figures of one class-relationship graph
type GraphMetrics struct {
	TotalNodes    int              `json:"totalNodes" yaml:"totalNodes" xml:"totalNodes"`
	TotalEdges    int              `json:"totalEdges" yaml:"totalEdges" xml:"totalEdges"`
	PackageNodes  int              `json:"packageNodes" yaml:"packageNodes" xml:"packageNodes"`
	ClassNodes    int              `json:"classNodes" yaml:"classNodes" xml:"classNodes"`
	ExternalNodes int              `json:"externalNodes" yaml:"externalNodes" xml:"externalNodes"`
	AverageDegree float64          `json:"averageDegree" yaml:"averageDegree" xml:"averageDegree"`
	Density       float64          `json:"density" yaml:"density" xml:"density"`
	EdgesByType   map[EdgeType]int `json:"edgesByType" yaml:"edgesByType" xml:"-"`
	Cycles        int              `json:"cycles" yaml:"cycles" xml:"cycles"`
}

// DependencyGraphResult is the terminal output of one graph build
type DependencyGraphResult struct {
	Source               string
	Nodes                []*DependencyNode
	Edges                []*DependencyEdge
	Metrics              GraphMetrics
	CircularDependencies [][]string
	// Notes collects per-class resolution problems that did not stop the build
	Notes        []string
	Successful   bool
	ErrorMessage string
}

func failedResult(source, message string) *DependencyGraphResult {
	return &DependencyGraphResult{
		Source:       source,
		Successful:   false,
		ErrorMessage: message,
		Metrics:      GraphMetrics{EdgesByType: map[EdgeType]int{}},
	}
}

func (r *DependencyGraphResult) IsValid() bool {
	return r.Successful
}

func (r *DependencyGraphResult) GetSummary() string {
	if !r.Successful {
		return fmt.Sprintf("Dependency graph analysis failed: %s", r.ErrorMessage)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Dependency graph: %d nodes (%d classes, %d packages, %d external), %d edges",
		r.Metrics.TotalNodes, r.Metrics.ClassNodes, r.Metrics.PackageNodes, r.Metrics.ExternalNodes,
		r.Metrics.TotalEdges)
	fmt.Fprintf(&sb, ", density %.4f, average degree %.2f", r.Metrics.Density, r.Metrics.AverageDegree)
	fmt.Fprintf(&sb, ", %d class cycles", len(r.CircularDependencies))
	if len(r.Notes) > 0 {
		fmt.Fprintf(&sb, ", %d unresolved", len(r.Notes))
	}
	return sb.String()
}

// NodeByID returns the node with the given id, preferring CLASS nodes
func (r *DependencyGraphResult) NodeByID(id string) (*DependencyNode, bool) {
	var found *DependencyNode
	for _, n := range r.Nodes {
		if n.ID != id {
			continue
		}
		if n.Type == NodeClass {
			return n, true
		}
		found = n
	}
	return found, found != nil
}
