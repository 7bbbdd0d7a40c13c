package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/jarscope/internal/health"
	"github.com/mabhi256/jarscope/internal/report"
	"github.com/mabhi256/jarscope/utils"
)

// RenderDashboard renders the dashboard view
func RenderDashboard(doc *report.Document, width, height int) string {
	if doc == nil {
		return "Loading dashboard..."
	}

	archiveInfo := fmt.Sprintf("Archive: %s (%s)  Classes: %d  Libraries: %d  Analyzed in %s",
		doc.Source, doc.ArchiveKind, doc.Classes, len(doc.Libraries), utils.FormatDuration(doc.Duration))
	headerLine := utils.MutedStyle.Render(utils.TruncateString(archiveInfo, width))

	// Calculate layout - split into two columns
	leftWidth := width/2 - 2
	rightWidth := width - leftWidth - 4

	leftColumn := strings.Join([]string{
		renderHealthOverview(doc, leftWidth),
		"", // spacing
		renderGraphOverview(doc, leftWidth),
	}, "\n")
	rightColumn := strings.Join([]string{
		renderSeverityChart(doc.Spring.Metrics, rightWidth, max(6, height/2)),
		"", // spacing
		renderIssuesSummary(doc.Issues, doc.Spring.Successful),
	}, "\n")

	columnsContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftColumn,
		"  ", // spacing
		rightColumn,
	)

	return lipgloss.JoinVertical(lipgloss.Left, headerLine, "", columnsContent)
}

func renderHealthOverview(doc *report.Document, width int) string {
	title := utils.TitleStyle.Render("Health")
	barWidth := max(4, width-24)

	var lines []string
	if !doc.Spring.Successful {
		lines = append(lines, utils.CriticalStyle.Render("🔴 "+doc.Spring.ErrorMessage))
	}

	m := doc.Spring.Metrics
	lines = append(lines,
		fmt.Sprintf("Spring        %s %5.1f %s", utils.CreateProgressBar(m.HealthScore/100, barWidth, scoreColor(m.HealthScore)),
			m.HealthScore, gradeLabel(m.Grade)),
	)

	arch := doc.Architecture
	if arch.Evaluated {
		lines = append(lines,
			fmt.Sprintf("Architecture  %s %5.1f %s", utils.CreateProgressBar(arch.HealthScore/100, barWidth, scoreColor(arch.HealthScore)),
				arch.HealthScore, gradeLabel(arch.Grade)),
		)
	} else {
		lines = append(lines, utils.MutedStyle.Render("Architecture  n/a"))
	}

	lines = append(lines, "",
		fmt.Sprintf("• Components: %d", m.TotalComponents),
		fmt.Sprintf("• In cycles: %d (%.1f%%)", m.AffectedComponents, m.CircularDependencyRatio*100),
		fmt.Sprintf("• Spring cycles: %d (%d complex)", m.TotalCycles, m.ComplexCycles),
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"))
}

func renderGraphOverview(doc *report.Document, width int) string {
	title := utils.TitleStyle.Render("Class Graph")
	if !doc.Graph.Successful {
		return lipgloss.JoinVertical(lipgloss.Left, title, utils.CriticalStyle.Render("🔴 "+doc.Graph.ErrorMessage))
	}

	gm := doc.Graph.Metrics
	arch := doc.Architecture
	lines := []string{
		fmt.Sprintf("• Nodes: %d (%d classes, %d packages, %d external)", gm.TotalNodes, gm.ClassNodes, gm.PackageNodes, gm.ExternalNodes),
		fmt.Sprintf("• Edges: %d  Density: %.4f", gm.TotalEdges, gm.Density),
		fmt.Sprintf("• Class cycles: %d", len(doc.Graph.Cycles)),
	}
	if arch.Evaluated {
		lines = append(lines,
			fmt.Sprintf("• Coupling index: %.2f", arch.CouplingIndex),
			fmt.Sprintf("• Package cohesion: %.0f%%", arch.Cohesion*100),
		)
	}
	for i := range lines {
		lines[i] = utils.TruncateString(lines[i], width)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"))
}

// renderSeverityChart draws one bar per severity, most severe first
func renderSeverityChart(m health.CycleMetrics, width, height int) string {
	title := utils.TitleStyle.Render("Cycles by Severity")
	if m.TotalCycles == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, utils.GoodStyle.Render("✅ No circular dependencies"))
	}

	data := make([]barchart.BarData, 0, len(health.Severities))
	for _, s := range health.Severities {
		data = append(data, barchart.BarData{
			Label: s.String()[:1],
			Values: []barchart.BarValue{{
				Name:  s.String(),
				Value: float64(m.Count(s)),
				Style: lipgloss.NewStyle().Foreground(severityColor(s)),
			}},
		})
	}

	chart := barchart.New(max(width, 12), height)
	chart.PushAll(data)
	chart.Draw()

	legend := make([]string, 0, len(health.Severities))
	for _, s := range health.Severities {
		legend = append(legend, severityStyle(s).Render(fmt.Sprintf("%s=%s %d", s.String()[:1], s, m.Count(s))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, chart.View(), strings.Join(legend, "  "))
}

func renderIssuesSummary(issues *health.Issues, analyzed bool) string {
	title := utils.TitleStyle.Render("Issues Summary")

	var lines []string
	if issues != nil {
		if n := len(issues.Critical); n > 0 {
			lines = append(lines, utils.CriticalStyle.Render(fmt.Sprintf("🔴 Critical: %d", n)))
		}
		if n := len(issues.Warning); n > 0 {
			lines = append(lines, utils.WarningStyle.Render(fmt.Sprintf("⚠️  Warning: %d", n)))
		}
		if n := len(issues.Info); n > 0 {
			lines = append(lines, utils.InfoStyle.Render(fmt.Sprintf("ℹ️  Info: %d", n)))
		}
	}

	switch {
	case len(lines) == 0 && analyzed:
		lines = append(lines, utils.GoodStyle.Render("✅ No issues detected"))
	case len(lines) == 0:
		lines = append(lines, utils.MutedStyle.Render("No analysis results"))
	default:
		lines = append(lines, "", utils.MutedStyle.Render("→ View Details [Tab 4]"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"))
}

func gradeLabel(grade string) string {
	return lipgloss.NewStyle().Bold(true).Render(grade)
}

func scoreColor(score float64) lipgloss.Color {
	switch {
	case score >= 75:
		return utils.GoodColor
	case score >= 40:
		return utils.WarningColor
	default:
		return utils.CriticalColor
	}
}

func severityColor(s health.Severity) lipgloss.Color {
	switch s {
	case health.SeverityCritical:
		return utils.CriticalColor
	case health.SeverityHigh:
		return utils.WarningColor
	case health.SeverityMedium:
		return utils.WarningLightColor
	default:
		return utils.InfoColor
	}
}

func severityStyle(s health.Severity) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(severityColor(s)).Bold(s >= health.SeverityHigh)
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
