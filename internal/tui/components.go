package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/jarscope/internal/spring"
	"github.com/mabhi256/jarscope/utils"
)

func RenderComponents(components []*spring.SpringComponentInfo, width, height, scroll int) string {
	title := utils.TitleStyle.Render(fmt.Sprintf("Spring Components (%d)", len(components)))
	if len(components) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, utils.MutedStyle.Render("No Spring components found"))
	}

	nameWidth := max(20, width-48)
	var lines []string
	lines = append(lines, utils.MutedStyle.Render(fmt.Sprintf("%-*s %-14s %-10s %5s  %s",
		nameWidth, "CLASS", "STEREOTYPE", "SCOPE", "DEPS", "FLAGS")))

	for _, c := range components {
		var flags []string
		if c.Primary {
			flags = append(flags, "primary")
		}
		if c.Lazy {
			flags = append(flags, "lazy")
		}
		lines = append(lines, fmt.Sprintf("%-*s %-14s %-10s %5d  %s",
			nameWidth, utils.TruncateString(c.ClassName, nameWidth), c.Stereotype, c.Scope,
			len(c.Dependencies), strings.Join(flags, ",")))

		for _, d := range c.Dependencies {
			dep := fmt.Sprintf("    └─ %s %s (%s)", d.Injection, d.TargetType, d.Member)
			if d.Qualifier != "" {
				dep += " @" + d.Qualifier
			}
			lines = append(lines, utils.MutedStyle.Render(utils.TruncateString(dep, width-2)))
		}
	}

	// scroll is bounded here since the key handler cannot know the line count
	visible := max(1, height-1)
	scroll = min(scroll, max(0, len(lines)-visible))
	end := min(len(lines), scroll+visible)

	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines[scroll:end], "\n"))
}
