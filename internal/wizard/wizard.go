// Package wizard is the interactive terminal flow that builds an organization
// config step by step and shows the resulting viability report.
package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/viableos/viableos/internal/engine"
	"github.com/viableos/viableos/internal/templates"
	"github.com/viableos/viableos/pkg/models"
)

type step int

const (
	stepTemplate step = iota
	stepName
	stepPurpose
	stepUnitName
	stepUnitPurpose
	stepBudget
	stepStrategy
	stepSummary
)

var strategies = []models.Strategy{
	models.StrategyFrugal,
	models.StrategyBalanced,
	models.StrategyPerformance,
}

// Model is the bubbletea model for the setup wizard.
type Model struct {
	engine *engine.Engine

	step      step
	templates []templates.Template
	cursor    int
	input     textinput.Model
	errMsg    string

	cfg         *models.Config
	pendingUnit models.S1Unit
	done        bool

	titleStyle  lipgloss.Style
	helpStyle   lipgloss.Style
	errStyle    lipgloss.Style
	cursorStyle lipgloss.Style
}

// New creates a wizard starting at template selection.
func New(e *engine.Engine) *Model {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 60
	ti.Focus()

	return &Model{
		engine:    e,
		templates: templates.All(),
		input:     ti,

		titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		helpStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		errStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		cursorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
	}
}

// Config returns the built config, or nil if the wizard was aborted.
func (m *Model) Config() *models.Config {
	if !m.done {
		return nil
	}
	return m.cfg
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	}

	switch m.step {
	case stepTemplate:
		return m.updatePick(keyMsg, len(m.templates), m.pickTemplate)
	case stepStrategy:
		return m.updatePick(keyMsg, len(strategies), m.pickStrategy)
	case stepSummary:
		if keyMsg.String() == "enter" || keyMsg.String() == "q" {
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	default:
		return m.updateInput(keyMsg)
	}
}

func (m *Model) updatePick(msg tea.KeyMsg, n int, pick func()) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "enter":
		pick()
	}
	return m, nil
}

func (m *Model) pickTemplate() {
	key := m.templates[m.cursor].Key
	cfg, _ := templates.Build(key, 0, models.StrategyBalanced)
	m.cfg = cfg
	m.errMsg = ""
	m.setInputStep(stepName, m.cfg.ViableSystem.Name, "Organization name")
}

func (m *Model) pickStrategy() {
	m.cfg.ViableSystem.Budget.Strategy = strategies[m.cursor]
	m.step = stepSummary
}

func (m *Model) setInputStep(s step, value, placeholder string) {
	m.step = s
	m.input.SetValue(value)
	m.input.Placeholder = placeholder
	m.input.CursorEnd()
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		m.submitInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitInput() {
	value := strings.TrimSpace(m.input.Value())
	m.errMsg = ""

	switch m.step {
	case stepName:
		if value == "" {
			m.errMsg = "name is required"
			return
		}
		m.cfg.ViableSystem.Name = value
		m.setInputStep(stepPurpose, m.cfg.ViableSystem.Identity.Purpose, "What is this organization for?")

	case stepPurpose:
		if value == "" {
			m.errMsg = "purpose is required"
			return
		}
		m.cfg.ViableSystem.Identity.Purpose = value
		m.setInputStep(stepUnitName, "", "Unit name (empty to finish)")

	case stepUnitName:
		if value == "" {
			if len(m.cfg.ViableSystem.System1) == 0 {
				m.errMsg = "add at least one unit"
				return
			}
			m.setInputStep(stepBudget, budgetString(m.cfg.ViableSystem.Budget.MonthlyUSD), "Monthly budget in USD")
			return
		}
		for _, u := range m.cfg.ViableSystem.System1 {
			if u.Name == value {
				m.errMsg = fmt.Sprintf("unit %q already exists", value)
				return
			}
		}
		m.pendingUnit = models.S1Unit{Name: value, Autonomy: models.AutonomySupervised}
		m.setInputStep(stepUnitPurpose, "", "What does this unit do?")

	case stepUnitPurpose:
		if value == "" {
			m.errMsg = "purpose is required"
			return
		}
		m.pendingUnit.Purpose = value
		m.cfg.ViableSystem.System1 = append(m.cfg.ViableSystem.System1, m.pendingUnit)
		m.pendingUnit = models.S1Unit{}
		m.setInputStep(stepUnitName, "", "Next unit name (empty to finish)")

	case stepBudget:
		usd, err := strconv.ParseFloat(value, 64)
		if err != nil || usd <= 0 {
			m.errMsg = "enter a positive dollar amount"
			return
		}
		m.cfg.ViableSystem.Budget.MonthlyUSD = usd
		m.step = stepStrategy
		m.cursor = 1 // balanced
	}
}

func budgetString(usd float64) string {
	if usd <= 0 {
		return ""
	}
	return strconv.FormatFloat(usd, 'f', -1, 64)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	switch m.step {
	case stepTemplate:
		b.WriteString(m.titleStyle.Render("Pick a starting point"))
		b.WriteString("\n\n")
		for i, t := range m.templates {
			cursor := "  "
			line := fmt.Sprintf("%s — %s", t.Name, t.Tagline)
			if i == m.cursor {
				cursor = m.cursorStyle.Render("> ")
			}
			b.WriteString(cursor + line + "\n")
		}
		b.WriteString("\n" + m.helpStyle.Render("↑/↓ select, enter confirm, esc quit"))

	case stepName, stepPurpose, stepUnitName, stepUnitPurpose, stepBudget:
		b.WriteString(m.titleStyle.Render(m.prompt()))
		b.WriteString("\n\n" + m.input.View() + "\n")
		if len(m.cfg.ViableSystem.System1) > 0 && (m.step == stepUnitName || m.step == stepUnitPurpose) {
			b.WriteString("\nUnits so far:\n")
			for _, u := range m.cfg.ViableSystem.System1 {
				b.WriteString("  - " + u.Name + "\n")
			}
		}
		if m.errMsg != "" {
			b.WriteString("\n" + m.errStyle.Render(m.errMsg) + "\n")
		}
		b.WriteString("\n" + m.helpStyle.Render("enter confirm, esc quit"))

	case stepStrategy:
		b.WriteString(m.titleStyle.Render("Budget strategy"))
		b.WriteString("\n\n")
		for i, s := range strategies {
			cursor := "  "
			if i == m.cursor {
				cursor = m.cursorStyle.Render("> ")
			}
			b.WriteString(cursor + string(s) + "\n")
		}
		b.WriteString("\n" + m.helpStyle.Render("↑/↓ select, enter confirm"))

	case stepSummary:
		b.WriteString(m.summaryView())
	}

	return b.String()
}

func (m *Model) prompt() string {
	switch m.step {
	case stepName:
		return "Organization name"
	case stepPurpose:
		return "Purpose"
	case stepUnitName:
		return "Operational units"
	case stepUnitPurpose:
		return fmt.Sprintf("Purpose of %s", m.pendingUnit.Name)
	case stepBudget:
		return "Monthly budget (USD)"
	default:
		return ""
	}
}

func (m *Model) summaryView() string {
	report, plan, err := m.engine.Evaluate(m.cfg)

	var b strings.Builder
	b.WriteString(m.titleStyle.Render(fmt.Sprintf("%s — Viability %d/%d", m.cfg.ViableSystem.Name, report.Score, report.Total)))
	b.WriteString("\n\n")
	for _, c := range report.Checks {
		mark := "✗"
		if c.Present {
			mark = "✓"
		}
		fmt.Fprintf(&b, "%s %s %s\n", mark, c.System, c.Name)
	}
	if n := len(report.Warnings); n > 0 {
		fmt.Fprintf(&b, "\n%d warning%s — run `viableos check` for details\n", n, plural(n))
	}
	if err == nil && plan != nil {
		fmt.Fprintf(&b, "\nBudget: $%.2f/month across %d agents (%s)\n",
			plan.TotalMonthlyUSD, len(plan.Allocations), plan.Strategy)
	}
	b.WriteString("\n" + m.helpStyle.Render("enter to save and exit"))
	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Run executes the wizard and returns the built config, or nil if aborted.
func Run(e *engine.Engine) (*models.Config, error) {
	m := New(e)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("run wizard: %w", err)
	}
	if wm, ok := final.(*Model); ok {
		return wm.Config(), nil
	}
	return nil, nil
}
