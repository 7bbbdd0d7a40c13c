package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/jarscope/internal/health"
	"github.com/mabhi256/jarscope/utils"
)

func RenderIssues(issues *health.Issues, filter IssuesFilter, selected int, expanded map[int]bool, width, height int) string {
	if issues == nil || issues.Total() == 0 {
		return utils.GoodStyle.Render("✅ No dependency issues detected!\n\nThe component graph can be created without workarounds.")
	}

	header := renderIssuesHeader(issues, filter)

	var list []health.Issue
	switch filter {
	case CriticalIssues:
		list = issues.Critical
	case WarningIssues:
		list = issues.Warning
	default:
		list = issues.Info
	}

	if len(list) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, "", fmt.Sprintf("No %s issues found.", filter))
	}

	var lines []string
	selectedStart := 0
	for i, issue := range list {
		if i == selected {
			selectedStart = len(lines)
		}
		lines = append(lines, renderIssueItem(issue, i == selected, expanded[i], width)...)
		lines = append(lines, "") // Spacing between issues
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		scrollTo(lines, selectedStart, height-2),
	)
}

func renderIssuesHeader(issues *health.Issues, filter IssuesFilter) string {
	tabs := []struct {
		filter IssuesFilter
		label  string
		count  int
	}{
		{CriticalIssues, "🔴 Critical", len(issues.Critical)},
		{WarningIssues, "⚠️  Warning", len(issues.Warning)},
		{InfoIssues, "ℹ️  Info", len(issues.Info)},
	}

	counts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		style := utils.TabInactiveStyle
		if t.filter == filter {
			style = utils.TabActiveStyle
		}
		counts = append(counts, style.Render(fmt.Sprintf("%s: %d", t.label, t.count)))
	}
	return strings.Join(counts, "  ")
}

func renderIssueItem(issue health.Issue, isSelected, isExpanded bool, width int) []string {
	var lines []string

	// Selection indicator
	selector := " "
	if isSelected {
		selector = "▶"
	}

	// Expansion indicator
	expandIcon := "[+]"
	if isExpanded {
		expandIcon = "[-]"
	}

	titleLine := fmt.Sprintf("%s %s", selector, issue.Type)
	if isSelected {
		titleLine = lipgloss.NewStyle().
			Background(utils.InfoColor).
			Foreground(lipgloss.Color("#FFFFFF")).
			Render(titleLine)
	} else {
		titleLine = utils.GetSeverityStyle(issue.Severity).Render(titleLine)
	}
	lines = append(lines, titleLine)

	for j, desc := range utils.WrapText(issue.Description, width-6) {
		prefix := "  ├─ "
		if j > 0 {
			prefix = "  │  "
		}
		lines = append(lines, utils.MutedStyle.Render(prefix+desc))
	}

	expandLine := fmt.Sprintf("  └─ %s Show Recommendations", expandIcon)
	if isSelected {
		expandLine = utils.InfoStyle.Render(expandLine)
	} else {
		expandLine = utils.MutedStyle.Render(expandLine)
	}
	lines = append(lines, expandLine)

	// Expanded recommendations
	if isExpanded && len(issue.Recommendation) > 0 {
		lines = append(lines, "", utils.InfoStyle.Render("     Recommendations:"))

		for _, rec := range issue.Recommendation {
			wrapped := utils.WrapText(rec, width-8)
			for j, line := range wrapped {
				prefix := "     ✓ "
				if j > 0 {
					prefix = "       " // Indent continuation lines
				}
				lines = append(lines, utils.TextStyle.Render(prefix+line))
			}
		}
	}

	return lines
}
