package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/jarscope/internal/model"
	"github.com/mabhi256/jarscope/internal/spring"
	"github.com/mabhi256/jarscope/utils"
)

func RenderCycles(cycles []*spring.SpringCircularDependency, selected int, expanded map[int]bool, width, height int) string {
	if len(cycles) == 0 {
		return utils.GoodStyle.Render("✅ No Spring circular dependencies detected!\n\nEvery component can be created in some order.")
	}

	var lines []string
	selectedStart := 0
	for i, c := range cycles {
		if i == selected {
			selectedStart = len(lines)
		}
		lines = append(lines, renderCycleItem(c, i == selected, expanded[i], width)...)
		lines = append(lines, "") // Spacing between cycles
	}

	return scrollTo(lines, selectedStart, height)
}

func renderCycleItem(c *spring.SpringCircularDependency, isSelected, isExpanded bool, width int) []string {
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

	titleLine := fmt.Sprintf("%s %s %-8s %s", selector, severityIcon(c.Severity), c.Severity, c.Type)
	if c.HasLazyResolution {
		titleLine += " (lazy)"
	}
	if isSelected {
		titleLine = lipgloss.NewStyle().
			Background(utils.InfoColor).
			Foreground(lipgloss.Color("#FFFFFF")).
			Render(titleLine)
	} else {
		titleLine = severityStyle(c.Severity).Render(titleLine)
	}
	lines = append(lines, titleLine)

	for j, path := range utils.WrapText(c.Path(), width-6) {
		prefix := "  ├─ "
		if j > 0 {
			prefix = "  │  "
		}
		lines = append(lines, utils.MutedStyle.Render(prefix+path))
	}

	expandLine := fmt.Sprintf("  └─ %s Show injection points and strategies", expandIcon)
	if isSelected {
		expandLine = utils.InfoStyle.Render(expandLine)
	} else {
		expandLine = utils.MutedStyle.Render(expandLine)
	}
	lines = append(lines, expandLine)

	if !isExpanded {
		return lines
	}

	lines = append(lines, "", utils.InfoStyle.Render("     Injection points:"))
	for _, e := range c.Edges {
		lazy := ""
		if e.Lazy {
			lazy = " @Lazy"
		}
		edge := fmt.Sprintf("     • %s → %s via %s %s%s",
			model.SimpleNameOf(e.Source), model.SimpleNameOf(e.Target), e.Injection, e.Member, lazy)
		lines = append(lines, utils.TextStyle.Render(utils.TruncateString(edge, width-2)))
	}

	lines = append(lines, "", utils.InfoStyle.Render("     Resolution strategies:"))
	for _, s := range c.Strategies {
		wrapped := utils.WrapText(fmt.Sprintf("%s: %s", s.Type, s.Description), width-10)
		for j, line := range wrapped {
			prefix := fmt.Sprintf("     %d. ", s.Rank)
			if j > 0 {
				prefix = "        " // Indent continuation lines
			}
			lines = append(lines, utils.TextStyle.Render(prefix+line))
		}
	}

	return lines
}

// scrollTo windows lines so that the line at focus stays visible
func scrollTo(lines []string, focus, height int) string {
	if height <= 0 || len(lines) <= height {
		return strings.Join(lines, "\n")
	}

	scrollY := 0
	if focus >= height {
		scrollY = focus - height/2
	}
	if scrollY+height > len(lines) {
		scrollY = len(lines) - height
	}
	scrollY = max(scrollY, 0)

	return strings.Join(lines[scrollY:min(scrollY+height, len(lines))], "\n")
}
