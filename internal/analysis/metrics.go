package analysis

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mabhi256/jarscope/internal/health"
	"github.com/mabhi256/jarscope/internal/report"
)

const metricsNamespace = "jarscope"

// Metrics are per-archive gauges, written as a node-exporter textfile so CI
// runs can be scraped and compared over time
type Metrics struct {
	registry *prometheus.Registry

	SpringComponents  *prometheus.GaugeVec
	SpringCycles      *prometheus.GaugeVec
	SpringHealthScore *prometheus.GaugeVec
	ArchitectureScore *prometheus.GaugeVec
	GraphNodes        *prometheus.GaugeVec
	GraphEdges        *prometheus.GaugeVec
	ClassCycles       *prometheus.GaugeVec
	DurationSeconds   *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	gauge := func(subsystem, name, help string, labels ...string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		}, append([]string{"archive"}, labels...))
	}

	m := &Metrics{
		registry:          prometheus.NewRegistry(),
		SpringComponents:  gauge("spring", "components", "Spring components found in the archive."),
		SpringCycles:      gauge("spring", "cycles", "Spring circular dependencies by severity.", "severity"),
		SpringHealthScore: gauge("spring", "health_score", "Spring dependency health score, 0 to 100."),
		ArchitectureScore: gauge("graph", "architecture_score", "Package architecture score, 0 to 100."),
		GraphNodes:        gauge("graph", "nodes", "Nodes in the class dependency graph."),
		GraphEdges:        gauge("graph", "edges", "Edges in the class dependency graph."),
		ClassCycles:       gauge("graph", "cycles", "Cycles among analyzed classes."),
		DurationSeconds:   gauge("", "analysis_duration_seconds", "Wall time of the analysis."),
	}
	m.registry.MustRegister(
		m.SpringComponents, m.SpringCycles, m.SpringHealthScore, m.ArchitectureScore,
		m.GraphNodes, m.GraphEdges, m.ClassCycles, m.DurationSeconds,
	)
	return m
}

func (m *Metrics) Record(doc *report.Document) {
	archive := doc.Source

	m.SpringComponents.WithLabelValues(archive).Set(float64(len(doc.Spring.Components)))
	for _, s := range health.Severities {
		m.SpringCycles.WithLabelValues(archive, s.String()).Set(float64(doc.Spring.Metrics.Count(s)))
	}
	m.SpringHealthScore.WithLabelValues(archive).Set(doc.Spring.Metrics.HealthScore)
	if doc.Architecture.Evaluated {
		m.ArchitectureScore.WithLabelValues(archive).Set(doc.Architecture.HealthScore)
	}
	m.GraphNodes.WithLabelValues(archive).Set(float64(doc.Graph.Metrics.TotalNodes))
	m.GraphEdges.WithLabelValues(archive).Set(float64(doc.Graph.Metrics.TotalEdges))
	m.ClassCycles.WithLabelValues(archive).Set(float64(len(doc.Graph.Cycles)))
	m.DurationSeconds.WithLabelValues(archive).Set(doc.Duration.Seconds())
}

func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

// WriteMetricsFile records docs and writes them to path in the Prometheus
// text format
func WriteMetricsFile(path string, docs []*report.Document) error {
	m := NewMetrics()
	for _, doc := range docs {
		m.Record(doc)
	}
	return m.WriteFile(path)
}
