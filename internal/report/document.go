package report

import (
	"encoding/xml"
	"time"

	"github.com/google/uuid"

	"github.com/mabhi256/jarscope/internal/graph"
	"github.com/mabhi256/jarscope/internal/health"
	"github.com/mabhi256/jarscope/internal/spring"
)

// Document is everything one archive analysis produced, in the shape every
// writer renders
type Document struct {
	XMLName xml.Name `json:"-" yaml:"-" xml:"jarscope"`

	RunID       string        `json:"runId" yaml:"runId" xml:"runId,attr"`
	Source      string        `json:"source" yaml:"source" xml:"source,attr"`
	ArchiveKind string        `json:"archiveKind" yaml:"archiveKind" xml:"archiveKind,attr"`
	GeneratedAt time.Time     `json:"generatedAt" yaml:"generatedAt" xml:"generatedAt,attr"`
	Duration    time.Duration `json:"duration" yaml:"duration" xml:"duration,attr"`
	Classes     int           `json:"classes" yaml:"classes" xml:"classes,attr"`
	Libraries   []string      `json:"libraries" yaml:"libraries" xml:"libraries>library"`

	Graph        GraphSection               `json:"graph" yaml:"graph" xml:"graph"`
	Spring       SpringSection              `json:"spring" yaml:"spring" xml:"spring"`
	Architecture health.ArchitectureMetrics `json:"architecture" yaml:"architecture" xml:"architecture"`
	Issues       *health.Issues             `json:"issues" yaml:"issues" xml:"issues"`

	Summary string `json:"summary" yaml:"summary" xml:"summary"`
}

type GraphSection struct {
	Successful   bool                    `json:"successful" yaml:"successful" xml:"successful,attr"`
	ErrorMessage string                  `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty" xml:"errorMessage,omitempty"`
	Metrics      graph.GraphMetrics      `json:"metrics" yaml:"metrics" xml:"metrics"`
	EdgesByType  []Count                 `json:"-" yaml:"-" xml:"edgesByType>count"`
	Cycles       []Cycle                 `json:"cycles" yaml:"cycles" xml:"cycles>cycle"`
	Nodes        []*graph.DependencyNode `json:"nodes" yaml:"nodes" xml:"nodes>node"`
	Edges        []*graph.DependencyEdge `json:"edges" yaml:"edges" xml:"edges>edge"`
	Notes        []string                `json:"notes,omitempty" yaml:"notes,omitempty" xml:"notes>note,omitempty"`
}

type SpringSection struct {
	Successful   bool                               `json:"successful" yaml:"successful" xml:"successful,attr"`
	ErrorMessage string                             `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty" xml:"errorMessage,omitempty"`
	Components   []*spring.SpringComponentInfo      `json:"components" yaml:"components" xml:"components>component"`
	Cycles       []*spring.SpringCircularDependency `json:"cycles" yaml:"cycles" xml:"cycles>cycle"`
	Metrics      health.CycleMetrics                `json:"metrics" yaml:"metrics" xml:"metrics"`
	BySeverity   []Count                            `json:"-" yaml:"-" xml:"bySeverity>count"`
}

// Count is a named tally; XML has no map type
type Count struct {
	Name  string `json:"name" yaml:"name" xml:"name,attr"`
	Value int    `json:"value" yaml:"value" xml:"value,attr"`
}

type Cycle struct {
	Members []string `json:"members" yaml:"members" xml:"member"`
}

// Input are the results a Document is assembled from
type Input struct {
	Source      string
	ArchiveKind string
	Classes     int
	Libraries   []string
	Started     time.Time
	Graph       *graph.DependencyGraphResult
	Spring      *spring.SpringCircularDependencyResult
}

// NewDocument scores the results and assembles the document. Missing
// results are rendered as unsuccessful sections.
func NewDocument(in Input) *Document {
	doc := &Document{
		RunID:       uuid.NewString(),
		Source:      in.Source,
		ArchiveKind: in.ArchiveKind,
		GeneratedAt: time.Now(),
		Classes:     in.Classes,
		Libraries:   in.Libraries,
	}
	if !in.Started.IsZero() {
		doc.Duration = time.Since(in.Started)
	}

	doc.Graph = graphSection(in.Graph)
	doc.Spring = springSection(in.Spring)
	doc.Architecture = health.EvaluateArchitecture(in.Graph)
	doc.Issues = health.GetRecommendations(doc.Spring.Metrics, doc.Architecture)

	summary := ""
	if in.Spring != nil {
		summary = in.Spring.Summary()
	}
	if in.Graph != nil {
		summary += "\n" + in.Graph.GetSummary() + "\n"
	}
	doc.Summary = summary

	return doc
}

func graphSection(result *graph.DependencyGraphResult) GraphSection {
	if result == nil {
		return GraphSection{ErrorMessage: "dependency graph was not built"}
	}

	section := GraphSection{
		Successful:   result.Successful,
		ErrorMessage: result.ErrorMessage,
		Metrics:      result.Metrics,
		Nodes:        result.Nodes,
		Edges:        result.Edges,
		Notes:        result.Notes,
	}
	for _, t := range graph.EdgeTypes {
		section.EdgesByType = append(section.EdgesByType, Count{Name: string(t), Value: result.Metrics.EdgesByType[t]})
	}
	for _, c := range result.CircularDependencies {
		section.Cycles = append(section.Cycles, Cycle{Members: c})
	}
	return section
}

func springSection(result *spring.SpringCircularDependencyResult) SpringSection {
	if result == nil {
		return SpringSection{
			ErrorMessage: "spring analysis was not run",
			Metrics:      health.EvaluateCycles(nil, 0, health.DefaultWeights()),
		}
	}

	section := SpringSection{
		Successful:   result.Successful,
		ErrorMessage: result.ErrorMessage,
		Components:   result.Components,
		Cycles:       result.CircularDependencies,
		Metrics:      result.Metrics,
	}
	for _, s := range health.Severities {
		section.BySeverity = append(section.BySeverity, Count{Name: s.String(), Value: result.Metrics.Count(s)})
	}
	return section
}

func (d *Document) IsValid() bool {
	return d.Graph.Successful && d.Spring.Successful
}

func (d *Document) GetSummary() string {
	return d.Summary
}

// Worst is the most severe Spring cycle, 0 when there is none
func (d *Document) Worst() health.Severity {
	var worst health.Severity
	for _, c := range d.Spring.Cycles {
		if c.Severity > worst {
			worst = c.Severity
		}
	}
	return worst
}
