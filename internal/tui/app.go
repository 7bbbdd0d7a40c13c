package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/jarscope/internal/health"
	"github.com/mabhi256/jarscope/internal/report"
	"github.com/mabhi256/jarscope/utils"
)

const PageSize = 10 // Number of lines to scroll per page

func initialModel(doc *report.Document) *Model {
	return &Model{
		currentTab:      DashboardTab,
		doc:             doc,
		keys:            DefaultKeyMap(),
		help:            help.New(),
		scrollPositions: make(map[TabType]int),
		expandedCycles:  make(map[int]bool),
		expandedIssues:  make(map[int]bool),
		issuesFilter:    firstNonEmptyFilter(doc.Issues),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Tab1):
			m.currentTab = DashboardTab
		case key.Matches(msg, m.keys.Tab2):
			m.currentTab = CyclesTab
		case key.Matches(msg, m.keys.Tab3):
			m.currentTab = ComponentsTab
		case key.Matches(msg, m.keys.Tab4):
			m.currentTab = IssuesTab
		case key.Matches(msg, m.keys.Next):
			utils.CycleEnumPtr(&m.currentTab, 1, lastTab)
		case key.Matches(msg, m.keys.Prev):
			utils.CycleEnumPtr(&m.currentTab, -1, lastTab)
		default:
			// Forward to tab-specific handlers for up/down and other keys
			return m.handleTabSpecificKeys(msg)
		}
	}

	return m, nil
}

func (m *Model) handleTabSpecificKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.currentTab {
	case CyclesTab:
		return m.handleCyclesKeys(msg)
	case IssuesTab:
		return m.handleIssuesKeys(msg)
	default:
		return m.handleScrollKeys(msg)
	}
}

func (m *Model) handleScrollKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.scrollPositions[m.currentTab] > 0 {
			m.scrollPositions[m.currentTab]--
		}
	case key.Matches(msg, m.keys.Down):
		// Will be bounded in rendering
		m.scrollPositions[m.currentTab]++
	case msg.String() == "pgdown":
		m.scrollPositions[m.currentTab] += PageSize
	case msg.String() == "pgup":
		m.scrollPositions[m.currentTab] = max(0, m.scrollPositions[m.currentTab]-PageSize)
	}
	return m, nil
}

func (m *Model) handleCyclesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cycles := m.doc.Spring.Cycles

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selectedCycle > 0 {
			m.selectedCycle--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selectedCycle < len(cycles)-1 {
			m.selectedCycle++
		}
	case key.Matches(msg, m.keys.Enter):
		m.expandedCycles[m.selectedCycle] = !m.expandedCycles[m.selectedCycle]
	}
	return m, nil
}

func (m *Model) handleIssuesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filtered := m.filteredIssues()

	switch {
	case key.Matches(msg, m.keys.Left):
		m.cycleFilter(-1)
	case key.Matches(msg, m.keys.Right):
		m.cycleFilter(1)
	case key.Matches(msg, m.keys.Up):
		if m.selectedIssue > 0 {
			m.selectedIssue--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selectedIssue < len(filtered)-1 {
			m.selectedIssue++
		}
	case key.Matches(msg, m.keys.Enter):
		m.expandedIssues[m.selectedIssue] = !m.expandedIssues[m.selectedIssue]
	}
	return m, nil
}

// cycleFilter steps through the non-empty severity filters
func (m *Model) cycleFilter(direction int) {
	filters := availableFilters(m.doc.Issues)
	if len(filters) < 2 {
		return
	}
	current := 0
	for i, f := range filters {
		if f == m.issuesFilter {
			current = i
		}
	}
	m.issuesFilter = filters[(current+direction+len(filters))%len(filters)]
	m.selectedIssue = 0
	m.expandedIssues = make(map[int]bool)
}

func (m *Model) filteredIssues() []health.Issue {
	if m.doc.Issues == nil {
		return nil
	}
	switch m.issuesFilter {
	case CriticalIssues:
		return m.doc.Issues.Critical
	case WarningIssues:
		return m.doc.Issues.Warning
	default:
		return m.doc.Issues.Info
	}
}

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	footer := utils.HelpBarStyle.Width(m.width).Render(m.help.View(m.keys))
	height := max(1, m.height-lipgloss.Height(header)-lipgloss.Height(footer))

	var content string

	// Render current Tab
	switch m.currentTab {
	case DashboardTab:
		content = RenderDashboard(m.doc, m.width, height)
	case CyclesTab:
		content = RenderCycles(m.doc.Spring.Cycles, m.selectedCycle, m.expandedCycles, m.width, height)
	case ComponentsTab:
		content = RenderComponents(m.doc.Spring.Components, m.width, height, m.scrollPositions[ComponentsTab])
	case IssuesTab:
		content = RenderIssues(m.doc.Issues, m.issuesFilter, m.selectedIssue, m.expandedIssues, m.width, height)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Height(height).MaxHeight(height).Render(content),
		footer,
	)
}

func (m *Model) renderHeader() string {
	tabs := []string{}

	tabIcons := []string{"📊", "🔁", "🌱", "⚠️"}
	tabNames := []string{"Dashboard", "Cycles", "Components", "Issues"}

	for i, name := range tabNames {
		style := utils.TabInactiveStyle
		indicator := " "

		if TabType(i) == m.currentTab {
			style = utils.TabActiveStyle
			indicator = "●" // Active indicator
		}

		tabText := fmt.Sprintf("%s %s %s [%d]", indicator, tabIcons[i], name, i+1)
		tabs = append(tabs, style.Render(tabText))
	}

	tabLine := strings.Join(tabs, "  ")
	border := strings.Repeat("─", m.width)

	return lipgloss.JoinVertical(lipgloss.Left, tabLine, border)
}

// Run shows the report in a full-screen terminal UI until the user quits
func Run(doc *report.Document) error {
	model := initialModel(doc)

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := program.Run()
	return err
}

func availableFilters(issues *health.Issues) []IssuesFilter {
	var filters []IssuesFilter
	if issues == nil {
		return filters
	}
	if len(issues.Critical) > 0 {
		filters = append(filters, CriticalIssues)
	}
	if len(issues.Warning) > 0 {
		filters = append(filters, WarningIssues)
	}
	if len(issues.Info) > 0 {
		filters = append(filters, InfoIssues)
	}
	return filters
}

func firstNonEmptyFilter(issues *health.Issues) IssuesFilter {
	if filters := availableFilters(issues); len(filters) > 0 {
		return filters[0]
	}
	return CriticalIssues
}
