package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/mabhi256/jarscope/internal/report"
)

type Model struct {
	// Data
	doc *report.Document

	// UI State
	currentTab TabType
	width      int
	height     int

	scrollPositions map[TabType]int
	selectedCycle   int
	expandedCycles  map[int]bool
	issuesFilter    IssuesFilter
	selectedIssue   int
	expandedIssues  map[int]bool

	// Key bindings
	keys KeyMap
	help help.Model
}

type TabType int

const (
	DashboardTab TabType = iota
	CyclesTab
	ComponentsTab
	IssuesTab
)

const lastTab = IssuesTab

type IssuesFilter int

const (
	CriticalIssues IssuesFilter = iota
	WarningIssues
	InfoIssues
)

func (f IssuesFilter) String() string {
	switch f {
	case CriticalIssues:
		return "critical"
	case WarningIssues:
		return "warning"
	default:
		return "info"
	}
}

type KeyMap struct {
	Tab1  key.Binding
	Tab2  key.Binding
	Tab3  key.Binding
	Tab4  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func k(keys []string, help, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(help, desc),
	)
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab1:  k([]string{"1"}, "1", "dashboard"),
		Tab2:  k([]string{"2"}, "2", "cycles"),
		Tab3:  k([]string{"3"}, "3", "components"),
		Tab4:  k([]string{"4"}, "4", "issues"),
		Next:  k([]string{"tab"}, "tab", "next tab"),
		Prev:  k([]string{"shift+tab"}, "shift+tab", "prev tab"),
		Left:  k([]string{"left", "h"}, "←/h", "prev filter"),
		Right: k([]string{"right", "l"}, "→/l", "next filter"),
		Up:    k([]string{"up", "k"}, "↑/k", "up"),
		Down:  k([]string{"down", "j"}, "↓/j", "down"),
		Enter: k([]string{"enter", " "}, "enter", "expand"),
		Help:  k([]string{"?"}, "?", "more keys"),
		Quit:  k([]string{"q", "ctrl+c"}, "q", "quit"),
	}
}

func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Next, km.Up, km.Down, km.Enter, km.Help, km.Quit}
}

func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Tab1, km.Tab2, km.Tab3, km.Tab4},
		{km.Next, km.Prev, km.Left, km.Right},
		{km.Up, km.Down, km.Enter},
		{km.Help, km.Quit},
	}
}
