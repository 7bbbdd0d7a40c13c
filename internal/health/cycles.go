package health

import (
	"math"

	"github.com/samber/lo"
)

// Finding is the part of a detected cycle the scorer needs
type Finding struct {
	Components []string
	Severity   Severity
	Complex    bool
}

// CycleMetrics aggregates the Spring cycles of one analysis
type CycleMetrics struct {
	TotalCycles             int              `json:"totalCycles" yaml:"totalCycles" xml:"totalCycles"`
	AffectedComponents      int              `json:"affectedComponents" yaml:"affectedComponents" xml:"affectedComponents"`
	TotalComponents         int              `json:"totalComponents" yaml:"totalComponents" xml:"totalComponents"`
	CircularDependencyRatio float64          `json:"circularDependencyRatio" yaml:"circularDependencyRatio" xml:"circularDependencyRatio"`
	BySeverity              map[Severity]int `json:"bySeverity" yaml:"bySeverity" xml:"-"`
	ComplexCycles           int              `json:"complexCycles" yaml:"complexCycles" xml:"complexCycles"`
	HealthScore             float64          `json:"healthScore" yaml:"healthScore" xml:"healthScore"`
	Grade                   string           `json:"grade" yaml:"grade" xml:"grade"`
}

func (m CycleMetrics) Count(s Severity) int {
	return m.BySeverity[s]
}

// EvaluateCycles scores already-classified cycles. The health score starts
// at 100 and loses the severity weight of every cycle, floored at 0.
func EvaluateCycles(findings []Finding, totalComponents int, w Weights) CycleMetrics {
	m := CycleMetrics{
		TotalCycles:     len(findings),
		TotalComponents: totalComponents,
		BySeverity:      make(map[Severity]int, len(Severities)),
	}

	affected := make(map[string]struct{})
	deduction := 0.0
	for _, f := range findings {
		for _, c := range f.Components {
			affected[c] = struct{}{}
		}
		m.BySeverity[f.Severity]++
		if f.Complex {
			m.ComplexCycles++
		}
		deduction += w.For(f.Severity)
	}

	m.AffectedComponents = len(affected)
	if totalComponents > 0 {
		m.CircularDependencyRatio = float64(m.AffectedComponents) / float64(totalComponents)
	}

	m.HealthScore = round1(math.Max(0, 100-deduction))
	m.Grade = Grade(m.HealthScore)
	return m
}

// WorstSeverity returns the most severe finding, 0 when there are none
func WorstSeverity(findings []Finding) Severity {
	if len(findings) == 0 {
		return 0
	}
	return lo.MaxBy(findings, func(a, b Finding) bool {
		return a.Severity > b.Severity
	}).Severity
}

// Grade maps a 0-100 score to a letter
func Grade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 75:
		return "B"
	case score >= 60:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
