package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/jarscope/internal/health"
	"github.com/mabhi256/jarscope/internal/spring"
	"github.com/mabhi256/jarscope/utils"
)

// WriteCLI prints the terminal report: a summary, or with detailed set the
// cycles, packages and recommendations as well
func WriteCLI(w io.Writer, doc *Document, detailed bool) error {
	p := &printer{w: w}

	if detailed {
		p.printDetailed(doc)
		p.printRecommendations(doc.Issues)
	} else {
		p.printSummary(doc)
	}
	return p.err
}

// printer keeps the first write error so the print helpers stay linear
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, args...)
}

func (p *printer) printSummary(doc *Document) {
	// Header
	p.printf("🔍 Spring Dependency Analysis\n")
	p.printf("Archive: %s (%s)  |  Classes: %d  |  Duration: %s\n",
		doc.Source, doc.ArchiveKind, doc.Classes, utils.FormatDuration(doc.Duration))
	p.println(strings.Repeat("═", 65))

	p.printGraphOverview(doc)
	p.printSpringOverview(doc)

	for i, c := range doc.Spring.Cycles {
		if i == 3 {
			p.printf("   … %d more, use -o cli-more for the full list\n", len(doc.Spring.Cycles)-3)
			break
		}
		p.printf("%s %s\n", severityIcon(c.Severity), c.Description())
	}

	p.printf("\n🎯 Spring Health: %s  |  Architecture: %s\n",
		scoreLabel(doc.Spring.Metrics.HealthScore, doc.Spring.Metrics.Grade),
		architectureLabel(doc.Architecture))
}

func (p *printer) printGraphOverview(doc *Document) {
	p.println("\n📦 CLASS GRAPH")
	p.println(strings.Repeat("─", 35))

	if !doc.Graph.Successful {
		p.printf("🔴 %s\n", doc.Graph.ErrorMessage)
		return
	}

	m := doc.Graph.Metrics
	p.printf("Nodes: %d (%d classes, %d packages, %d external)  |  Edges: %d\n",
		m.TotalNodes, m.ClassNodes, m.PackageNodes, m.ExternalNodes, m.TotalEdges)
	p.printf("Density: %.4f  |  Average degree: %.2f\n", m.Density, m.AverageDegree)

	icon := "✅"
	if len(doc.Graph.Cycles) > 0 {
		icon = "⚠️ "
	}
	p.printf("%s Class cycles: %d\n", icon, len(doc.Graph.Cycles))
	if len(doc.Graph.Notes) > 0 {
		p.printf("   %s\n", utils.MutedStyle.Render(fmt.Sprintf("%d classes only partially resolved", len(doc.Graph.Notes))))
	}
}

func (p *printer) printSpringOverview(doc *Document) {
	p.println("\n🌱 SPRING COMPONENTS")
	p.println(strings.Repeat("─", 35))

	if !doc.Spring.Successful {
		p.printf("🔴 %s\n", doc.Spring.ErrorMessage)
		return
	}

	m := doc.Spring.Metrics
	p.printf("Components: %d  |  Affected by cycles: %d (%.1f%%)\n",
		m.TotalComponents, m.AffectedComponents, m.CircularDependencyRatio*100)
	p.printf("Circular dependencies found: %d\n", m.TotalCycles)
	if m.TotalCycles == 0 {
		return
	}

	counts := make([]string, 0, len(health.Severities))
	for _, s := range health.Severities {
		if n := m.Count(s); n > 0 {
			counts = append(counts, severityStyle(s).Render(fmt.Sprintf("%s %d", s, n)))
		}
	}
	p.printf("%s\n\n", strings.Join(counts, "  "))
}

func (p *printer) printDetailed(doc *Document) {
	p.println("═══════════════════════════════════════════════════════════════════")
	p.println("🔍             COMPREHENSIVE SPRING DEPENDENCY ANALYSIS              ")
	p.println("═══════════════════════════════════════════════════════════════════")
	p.println()

	// Archive
	p.println("⚙️  ARCHIVE")
	p.println(strings.Repeat("─", 50))
	p.printf("Path:               %s\n", doc.Source)
	p.printf("Type:               %s\n", doc.ArchiveKind)
	p.printf("Classes analyzed:   %d\n", doc.Classes)
	p.printf("Bundled libraries:  %d\n", len(doc.Libraries))
	p.printf("Run:                %s (%s)\n", doc.RunID, utils.FormatDuration(doc.Duration))

	p.printGraphOverview(doc)
	if doc.Graph.Successful {
		for _, c := range doc.Graph.EdgesByType {
			p.printf("   %-12s %d\n", c.Name, c.Value)
		}
		for i, cycle := range doc.Graph.Cycles {
			p.printf("   %d. %s\n", i+1, strings.Join(append(append([]string{}, cycle.Members...), cycle.Members[0]), " → "))
		}
	}

	p.printSpringOverview(doc)
	for i, c := range doc.Spring.Cycles {
		p.printCycle(i+1, c)
	}

	p.printArchitecture(doc.Architecture)

	p.println()
	p.println(doc.Summary)
}

func (p *printer) printCycle(n int, c *spring.SpringCircularDependency) {
	p.printf("%s %d. %s\n", severityIcon(c.Severity), n, severityStyle(c.Severity).Render(c.Severity.String()))
	p.printf("   Path:  %s\n", c.Path())
	p.printf("   Type:  %s", c.Type)
	if c.HasLazyResolution {
		p.printf(" (lazy resolution present)")
	}
	p.println()
	for _, e := range c.Edges {
		lazy := ""
		if e.Lazy {
			lazy = " @Lazy"
		}
		p.printf("          %s → %s via %s %s%s\n", e.Source, e.Target, e.Injection, e.Member, lazy)
	}
	p.println("   Strategies:")
	for _, s := range c.Strategies {
		p.printf("   %d. %s: %s\n", s.Rank, s.Type, s.Description)
	}
	p.println()
}

func (p *printer) printArchitecture(arch health.ArchitectureMetrics) {
	p.println("🏗️  ARCHITECTURE")
	p.println(strings.Repeat("─", 50))
	if !arch.Evaluated {
		p.println("Architecture metrics unavailable")
		return
	}

	p.printf("Coupling index:     %.2f\n", arch.CouplingIndex)
	p.printf("Package cohesion:   %.0f%%\n", arch.Cohesion*100)
	p.printf("Classes on cycles:  %.0f%%\n", arch.CircularDependencyRatio*100)
	p.printf("Score:              %s\n", architectureLabel(arch))

	if len(arch.Packages) > 0 {
		p.println()
		p.printf("   %-40s %5s %4s %4s %6s\n", "PACKAGE", "CLS", "Ca", "Ce", "I")
		for _, pkg := range arch.Packages {
			name := pkg.Name
			if name == "" {
				name = "(default)"
			}
			p.printf("   %-40s %5d %4d %4d %6.2f\n", name, pkg.Classes, pkg.Afferent, pkg.Efferent, pkg.Instability)
		}
	}
}

func (p *printer) printRecommendations(issues *health.Issues) {
	if issues == nil || issues.Total() == 0 {
		p.println("\n💡 RECOMMENDATIONS")
		p.println(strings.Repeat("─", 50))
		p.println("✅ No dependency issues detected.")
		return
	}

	p.println("\n🚀 RECOMMENDATIONS")
	p.println(strings.Repeat("─", 50))

	if len(issues.Critical) > 0 {
		p.println("\n🚩 CRITICAL ISSUES - Immediate attention required:")
		for _, issue := range issues.Critical {
			p.printf("\n🔴 %s\n", issue.Type)
			p.printf("   Issue: %s\n", issue.Description)
			p.println("   Recommended actions:")
			p.printFormattedRecommendations(issue.Recommendation)
		}
	}

	if len(issues.Warning) > 0 {
		p.println("\n⚠️  WARNINGS - Address when possible:")
		for _, issue := range issues.Warning {
			p.printf("\n🟡 %s\n", issue.Type)
			p.printf("   Concern: %s\n", issue.Description)
			p.println("   Suggested improvements:")
			p.printFormattedRecommendations(issue.Recommendation)
		}
	}

	if len(issues.Info) > 0 {
		p.println("\n📈 IMPROVEMENT OPPORTUNITIES:")
		for _, issue := range issues.Info {
			p.printf("\n💡 %s\n", issue.Type)
			p.printf("   Note: %s\n", issue.Description)
			p.printFormattedRecommendations(issue.Recommendation)
		}
	}
}

func (p *printer) printFormattedRecommendations(recommendations []string) {
	for _, rec := range recommendations {
		trimmed := strings.TrimSpace(rec)
		if trimmed == "" {
			continue
		}
		p.printf("   • %s\n", trimmed)
	}
}

func severityStyle(s health.Severity) lipgloss.Style {
	switch s {
	case health.SeverityCritical:
		return utils.CriticalStyle
	case health.SeverityHigh:
		return utils.WarningStyle
	case health.SeverityMedium:
		return utils.WarningLightStyle
	default:
		return utils.InfoStyle
	}
}

func severityIcon(s health.Severity) string {
	switch s {
	case health.SeverityCritical:
		return "🔴"
	case health.SeverityHigh:
		return "🟠"
	case health.SeverityMedium:
		return "🟡"
	default:
		return "🔵"
	}
}

func scoreLabel(score float64, grade string) string {
	label := fmt.Sprintf("%.1f (%s)", score, grade)
	switch {
	case score >= 75:
		return utils.GoodStyle.Render(label)
	case score >= 40:
		return utils.WarningStyle.Render(label)
	default:
		return utils.CriticalStyle.Render(label)
	}
}

func architectureLabel(arch health.ArchitectureMetrics) string {
	if !arch.Evaluated {
		return utils.MutedStyle.Render("n/a")
	}
	return scoreLabel(arch.HealthScore, arch.Grade)
}
