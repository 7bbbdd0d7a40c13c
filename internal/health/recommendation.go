package health

import (
	"fmt"
	"strings"
)

// Issue is one architecture finding with the suggested remedies
type Issue struct {
	Type           string   `json:"type" yaml:"type" xml:"type"`
	Severity       string   `json:"severity" yaml:"severity" xml:"severity"` // "critical", "warning", "info"
	Description    string   `json:"description" yaml:"description" xml:"description"`
	Recommendation []string `json:"recommendation" yaml:"recommendation" xml:"recommendation"`
}

type Issues struct {
	Critical []Issue `json:"critical" yaml:"critical" xml:"critical"`
	Warning  []Issue `json:"warning" yaml:"warning" xml:"warning"`
	Info     []Issue `json:"info" yaml:"info" xml:"info"`
}

func (i *Issues) Total() int {
	return len(i.Critical) + len(i.Warning) + len(i.Info)
}

func GetRecommendations(cycles CycleMetrics, arch ArchitectureMetrics) *Issues {
	var issues []Issue

	// ===== CRITICAL ISSUES =====
	if n := cycles.Count(SeverityCritical); n > 0 {
		issues = append(issues, getFieldInjectionCycleRec(n))
	}

	if n := cycles.Count(SeverityHigh); n > 0 {
		issues = append(issues, getHighSeverityCycleRec(n))
	}

	if arch.Evaluated && arch.CircularDependencyRatio > 0.25 {
		issues = append(issues, getClassCycleRec(arch, "critical"))
	}

	// ===== WARNING ISSUES =====
	if n := cycles.Count(SeverityMedium); n > 0 {
		issues = append(issues, getMixedInjectionCycleRec(n))
	}

	if cycles.ComplexCycles > 0 {
		issues = append(issues, getComplexCycleRec(cycles.ComplexCycles))
	}

	if arch.Evaluated && arch.CircularDependencyRatio > 0.1 && arch.CircularDependencyRatio <= 0.25 {
		issues = append(issues, getClassCycleRec(arch, "warning"))
	}

	if arch.Evaluated && arch.CouplingIndex > CouplingCeiling/2 {
		issues = append(issues, getHighCouplingRec(arch))
	}

	// ===== INFO ISSUES =====
	if n := cycles.Count(SeverityLow); n > 0 {
		issues = append(issues, getLazyCycleRec(n))
	}

	if arch.Evaluated && len(arch.Packages) > 1 && arch.Cohesion < 0.5 {
		issues = append(issues, getLowCohesionRec(arch))
	}

	if unstable := unstableDependedOnPackages(arch); len(unstable) > 0 {
		issues = append(issues, getUnstablePackageRec(unstable))
	}

	return groupIssuesBySeverity(issues)
}

func getFieldInjectionCycleRec(count int) Issue {
	return Issue{
		Type:        "Field Injection Cycles",
		Severity:    "critical",
		Description: fmt.Sprintf("%d circular dependenc%s wired purely through field injection", count, plural(count, "y is", "ies are")),
		Recommendation: []string{
			"Replace @Autowired fields with constructor parameters so the container can report the cycle at startup",
			"Extract the shared behaviour into a third component both sides depend on",
			"Publish an application event instead of calling back into the other component",
		},
	}
}

func getHighSeverityCycleRec(count int) Issue {
	return Issue{
		Type:        "Eager Constructor Cycles",
		Severity:    "critical",
		Description: fmt.Sprintf("%d high severity circular dependenc%s will fail context startup", count, plural(count, "y", "ies")),
		Recommendation: []string{
			"Mark one constructor parameter of each cycle with @Lazy to defer resolution",
			"Depend on a narrower interface so one side no longer needs the concrete component",
			"Move the optional collaborator to setter injection",
		},
	}
}

func getMixedInjectionCycleRec(count int) Issue {
	return Issue{
		Type:        "Mixed Injection Cycles",
		Severity:    "warning",
		Description: fmt.Sprintf("%d cycle%s combine constructor and setter injection", count, plural(count, "", "s")),
		Recommendation: []string{
			"Setter injection lets the container finish, but the design still couples both components",
			"Consider event-driven decoupling for the back reference",
		},
	}
}

func getComplexCycleRec(count int) Issue {
	return Issue{
		Type:        "Complex Cycles",
		Severity:    "warning",
		Description: fmt.Sprintf("%d cycle%s span more than two components", count, plural(count, "", "s")),
		Recommendation: []string{
			"Break the cycle at the edge with the weakest injection first",
			"Review whether the components belong to the same module",
		},
	}
}

func getLazyCycleRec(count int) Issue {
	return Issue{
		Type:        "Lazily Resolved Cycles",
		Severity:    "info",
		Description: fmt.Sprintf("%d cycle%s only survive%s because of lazy resolution or setter injection", count, plural(count, "", "s"), plural(count, "s", "")),
		Recommendation: []string{
			"Lazy proxies hide the coupling; segregate an interface to remove it",
		},
	}
}

func getClassCycleRec(arch ArchitectureMetrics, severity string) Issue {
	return Issue{
		Type:     "Class Dependency Cycles",
		Severity: severity,
		Description: fmt.Sprintf("%.0f%% of analysed classes take part in a class-level dependency cycle",
			arch.CircularDependencyRatio*100),
		Recommendation: []string{
			"Invert the dependency with an interface owned by the lower-level package",
			"Move shared types into a common package",
		},
	}
}

func getHighCouplingRec(arch ArchitectureMetrics) Issue {
	return Issue{
		Type:        "High Coupling",
		Severity:    "warning",
		Description: fmt.Sprintf("Classes depend on %.1f other classes on average", arch.CouplingIndex),
		Recommendation: []string{
			"Split classes that coordinate many collaborators",
			"Hide groups of collaborators behind a facade",
		},
	}
}

func getLowCohesionRec(arch ArchitectureMetrics) Issue {
	return Issue{
		Type:        "Low Package Cohesion",
		Severity:    "info",
		Description: fmt.Sprintf("Only %.0f%% of dependencies stay inside their package", arch.Cohesion*100),
		Recommendation: []string{
			"Group classes that change together into the same package",
		},
	}
}

func getUnstablePackageRec(packages []string) Issue {
	return Issue{
		Type:        "Unstable Shared Packages",
		Severity:    "info",
		Description: fmt.Sprintf("Packages depended on by others but mostly depending outward: %s", strings.Join(packages, ", ")),
		Recommendation: []string{
			"Stable packages should depend on abstractions, not on volatile implementation packages",
		},
	}
}

// unstableDependedOnPackages violates the stable dependencies principle:
// others rely on the package while it mostly depends outward
func unstableDependedOnPackages(arch ArchitectureMetrics) []string {
	var names []string
	for _, p := range arch.Packages {
		if p.Afferent > 0 && p.Instability > 0.8 {
			names = append(names, p.Name)
		}
	}
	return names
}

func groupIssuesBySeverity(allIssues []Issue) *Issues {
	var grouped Issues

	for _, issue := range allIssues {
		switch issue.Severity {
		case "critical":
			grouped.Critical = append(grouped.Critical, issue)
		case "warning":
			grouped.Warning = append(grouped.Warning, issue)
		default:
			grouped.Info = append(grouped.Info, issue)
		}
	}

	return &grouped
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
