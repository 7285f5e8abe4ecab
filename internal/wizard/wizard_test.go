package wizard

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/viableos/viableos/internal/catalog"
	"github.com/viableos/viableos/internal/engine"
	"github.com/viableos/viableos/pkg/models"
)

func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyDown() tea.KeyMsg  { return tea.KeyMsg{Type: tea.KeyDown} }

func typeText(t *testing.T, m *Model, text string) *Model {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(*Model)
	}
	return m
}

func press(t *testing.T, m *Model, msg tea.Msg) *Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(*Model)
}

func TestWizardFullFlow(t *testing.T) {
	m := New(engine.New(catalog.Default()))

	// Template: first entry is "custom".
	m = press(t, m, keyEnter())
	if m.step != stepName {
		t.Fatalf("step = %d, want name", m.step)
	}

	m = typeText(t, m, "Acme")
	m = press(t, m, keyEnter())
	if m.step != stepPurpose {
		t.Fatalf("step = %d after name, want purpose", m.step)
	}

	m = typeText(t, m, "Sell widgets")
	m = press(t, m, keyEnter())

	m = typeText(t, m, "Sales")
	m = press(t, m, keyEnter())
	if m.step != stepUnitPurpose {
		t.Fatalf("step = %d after unit name, want unit purpose", m.step)
	}
	m = typeText(t, m, "Find customers")
	m = press(t, m, keyEnter())

	// Empty unit name finishes the unit loop.
	m = press(t, m, keyEnter())
	if m.step != stepBudget {
		t.Fatalf("step = %d after empty unit, want budget", m.step)
	}

	m = typeText(t, m, "150")
	m = press(t, m, keyEnter())
	if m.step != stepStrategy {
		t.Fatalf("step = %d after budget, want strategy", m.step)
	}

	// Down from balanced to performance.
	m = press(t, m, keyDown())
	m = press(t, m, keyEnter())
	if m.step != stepSummary {
		t.Fatalf("step = %d after strategy, want summary", m.step)
	}

	view := m.View()
	if !strings.Contains(view, "Acme") {
		t.Errorf("summary missing org name:\n%s", view)
	}

	m = press(t, m, keyEnter())
	cfg := m.Config()
	if cfg == nil {
		t.Fatal("Config() = nil after finish")
	}
	vs := cfg.ViableSystem
	if vs.Name != "Acme" || vs.Identity.Purpose != "Sell widgets" {
		t.Errorf("unexpected identity: %+v", vs.Identity)
	}
	if len(vs.System1) != 1 || vs.System1[0].Name != "Sales" {
		t.Errorf("unexpected units: %+v", vs.System1)
	}
	if vs.Budget.MonthlyUSD != 150 || vs.Budget.Strategy != models.StrategyPerformance {
		t.Errorf("unexpected budget: %+v", vs.Budget)
	}
}

func TestWizardTemplatePrefillsUnits(t *testing.T) {
	m := New(engine.New(catalog.Default()))

	// Move off "custom" to the first real template.
	m = press(t, m, keyDown())
	m = press(t, m, keyEnter())

	if m.cfg == nil || len(m.cfg.ViableSystem.System1) == 0 {
		t.Fatal("template selection did not prefill units")
	}
	if m.input.Value() == "" {
		t.Error("name input not prefilled from template")
	}
}

func TestWizardValidation(t *testing.T) {
	m := New(engine.New(catalog.Default()))
	m = press(t, m, keyEnter()) // custom template

	// Empty name rejected.
	m = press(t, m, keyEnter())
	if m.step != stepName || m.errMsg == "" {
		t.Error("empty name accepted")
	}

	m = typeText(t, m, "Acme")
	m = press(t, m, keyEnter())
	m = typeText(t, m, "Purpose")
	m = press(t, m, keyEnter())

	// Finishing units with none added is rejected.
	m = press(t, m, keyEnter())
	if m.step != stepUnitName || m.errMsg == "" {
		t.Error("zero units accepted")
	}

	m = typeText(t, m, "Sales")
	m = press(t, m, keyEnter())
	m = typeText(t, m, "Sell")
	m = press(t, m, keyEnter())
	m = press(t, m, keyEnter()) // finish units

	// Non-numeric budget rejected.
	m = typeText(t, m, "abc")
	m = press(t, m, keyEnter())
	if m.step != stepBudget || m.errMsg == "" {
		t.Error("invalid budget accepted")
	}
}

func TestWizardAbort(t *testing.T) {
	m := New(engine.New(catalog.Default()))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc did not quit")
	}
	if next.(*Model).Config() != nil {
		t.Error("aborted wizard returned a config")
	}
}
