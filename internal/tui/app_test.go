package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabhi256/jarscope/internal/graph"
	"github.com/mabhi256/jarscope/internal/model"
	"github.com/mabhi256/jarscope/internal/report"
	"github.com/mabhi256/jarscope/internal/spring"
)

func testDocument(t *testing.T) *report.Document {
	t.Helper()

	service := model.AnnotationInfo{Type: "org.springframework.stereotype.Service"}
	autowired := model.AnnotationInfo{Type: "org.springframework.beans.factory.annotation.Autowired"}
	classes := []*model.ClassInfo{
		{
			Name:        "com.acme.OrderService",
			SuperClass:  model.RootType,
			Annotations: []model.AnnotationInfo{service},
			Methods: []model.MethodInfo{
				{Name: model.ConstructorName, ReturnType: "void", ParameterTypes: []string{"com.acme.BillingService"}},
			},
		},
		{
			Name:        "com.acme.BillingService",
			SuperClass:  model.RootType,
			Annotations: []model.AnnotationInfo{service},
			Fields: []model.FieldInfo{
				{Name: "orders", Type: "com.acme.OrderService", Annotations: []model.AnnotationInfo{autowired}},
			},
		},
	}

	content := model.NewJarContent("app.jar", classes)
	graphResult, err := graph.NewBuilder().BuildDependencyGraph(content)
	require.NoError(t, err)
	detector, err := spring.NewDetector(content.Pool)
	require.NoError(t, err)

	return report.NewDocument(report.Input{
		Source:      "app.jar",
		ArchiveKind: "JAR",
		Classes:     len(classes),
		Started:     time.Now(),
		Graph:       graphResult,
		Spring:      detector.Analyze(classes),
	})
}

func press(m *Model, msgs ...tea.Msg) *Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(*Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_LoadingUntilSized(t *testing.T) {
	m := initialModel(testDocument(t))
	assert.Equal(t, "Loading...", m.View())

	m = press(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()
	assert.Contains(t, view, "Dashboard")
	assert.Contains(t, view, "app.jar")
	assert.Contains(t, view, "Cycles by Severity")
}

func TestModel_TabNavigation(t *testing.T) {
	m := press(initialModel(testDocument(t)), tea.WindowSizeMsg{Width: 120, Height: 40})

	m = press(m, runes("3"))
	assert.Equal(t, ComponentsTab, m.currentTab)
	assert.Contains(t, m.View(), "com.acme.OrderService")

	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, DashboardTab, m.currentTab, "tab wraps around")

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, IssuesTab, m.currentTab)
}

func TestModel_ExpandCycle(t *testing.T) {
	m := press(initialModel(testDocument(t)), tea.WindowSizeMsg{Width: 120, Height: 40}, runes("2"))
	assert.NotContains(t, m.View(), "Resolution strategies:")

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.expandedCycles[0])
	view := m.View()
	assert.Contains(t, view, "Resolution strategies:")
	assert.Contains(t, view, string(spring.StrategyLazyInitialization))

	// the only cycle stays selected
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.selectedCycle)
}

func TestModel_IssuesFilter(t *testing.T) {
	doc := testDocument(t)
	require.NotEmpty(t, doc.Issues.Critical)

	m := press(initialModel(doc), tea.WindowSizeMsg{Width: 120, Height: 40}, runes("4"))
	assert.Equal(t, CriticalIssues, m.issuesFilter)
	assert.Contains(t, m.View(), doc.Issues.Critical[0].Type)

	filters := availableFilters(doc.Issues)
	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if len(filters) > 1 {
		assert.Equal(t, filters[1], m.issuesFilter)
	} else {
		assert.Equal(t, CriticalIssues, m.issuesFilter)
	}
}

func TestModel_Quit(t *testing.T) {
	m := initialModel(testDocument(t))
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRenderCycles_Empty(t *testing.T) {
	assert.Contains(t, RenderCycles(nil, 0, nil, 80, 20), "No Spring circular dependencies")
}

func TestScrollTo(t *testing.T) {
	lines := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	assert.Equal(t, "0\n1\n2", scrollTo(lines, 0, 3))
	assert.Equal(t, "7\n8\n9", scrollTo(lines, 9, 3))
	assert.Equal(t, "4\n5\n6", scrollTo(lines, 5, 3))
}
