package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigdash/internal/budget"
	"github.com/MrJamesThe3rd/gigdash/internal/chart"
)

type budgetState int

const (
	budgetStateBrowse budgetState = iota
	budgetStateEdit
	budgetStateSaving
)

type BudgetModel struct {
	CommonModel
	budgets *budget.Service

	state    budgetState
	table    table.Model
	statuses []budget.Status
	form     *huh.Form
	spinner  spinner.Model

	formLimit string
	editing   string

	status string
}

func NewBudgetModel(budgets *budget.Service) BudgetModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Category", Width: 24},
			{Title: "Spent / Limit", Width: 26},
			{Title: "Used", Width: 6},
			{Title: "", Width: 22},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(mutedColor).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return BudgetModel{
		budgets: budgets,
		table:   t,
		spinner: sp,
	}
}

// SetStatuses replaces the evaluated budgets shown in the table.
func (m *BudgetModel) SetStatuses(statuses []budget.Status) {
	m.statuses = statuses

	rows := make([]table.Row, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, table.Row{
			FormatCategory(s.Category),
			chart.BudgetLine(s),
			chart.FormatPercent(s.Percentage),
			usageBar(s),
		})
	}

	m.table.SetRows(rows)
}

// usageBar is plain text because table cells are truncated by width.
func usageBar(s budget.Status) string {
	if !s.Percentage.Valid {
		return ""
	}

	const width = 20

	n := int(s.Percentage.Decimal.Mul(decimal.NewFromInt(width)).Div(decimal.NewFromInt(100)).Round(0).IntPart())
	n = max(0, min(n, width))

	bar := strings.Repeat("#", n) + strings.Repeat(".", width-n)
	if s.OverBudget {
		return bar + "!"
	}

	return bar
}

func (m BudgetModel) Title() string { return "Budgets" }

func (m BudgetModel) ShortHelp() string {
	if m.state == budgetStateEdit {
		return "Enter: save | Esc: cancel"
	}

	return "Esc: back | e: set limit | c: clear limit"
}

func (m BudgetModel) Init() tea.Cmd {
	return nil
}

func (m BudgetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case budgetSavedMsg:
		m.state = budgetStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = msg.summary

		return m, func() tea.Msg { return LimitsChangedMsg{} }

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(5, msg.Height-12))

		return m, nil
	}

	switch m.state {
	case budgetStateEdit:
		return m.updateEdit(msg)
	case budgetStateSaving:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m.updateBrowse(msg)
}

func (m BudgetModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "e":
			return m.enterEditMode()
		case "c":
			category, ok := m.selected()
			if !ok {
				return m, nil
			}

			m.state = budgetStateSaving
			m.table.Blur()

			return m, tea.Batch(m.spinner.Tick, m.clearCmd(category))
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BudgetModel) selected() (string, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.statuses) {
		return "", false
	}

	return m.statuses[idx].Category, true
}

func (m BudgetModel) enterEditMode() (tea.Model, tea.Cmd) {
	category, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.editing = category
	m.formLimit = ""

	if limit, ok := m.budgets.Limits()[category]; ok {
		m.formLimit = limit.String()
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("limit").
				Title("Monthly limit for " + FormatCategory(category)).
				Placeholder("e.g. 250.00").
				Value(&m.formLimit).
				Validate(func(s string) error {
					_, err := budget.ParseLimit(s)
					return err
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = budgetStateEdit
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m BudgetModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = budgetStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = budgetStateSaving

	return m, tea.Batch(m.spinner.Tick, m.saveCmd(m.editing, m.form.GetString("limit")))
}

func (m BudgetModel) View() string {
	if len(m.statuses) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No categories are tracked.\n\n(Esc to go back)")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(mutedColor).
		Render(m.table.View())

	content := tableView

	switch m.state {
	case budgetStateEdit:
		if m.form != nil {
			panel := lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Width(48).
				Render(m.form.View())

			content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
		}
	case budgetStateSaving:
		content += "\n" + m.spinner.View() + " Saving..."
	}

	if over := m.overBudget(); over > 0 {
		content = errorStyle(fmt.Sprintf("%d categories over budget", over)) + "\n" + content
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m BudgetModel) overBudget() int {
	n := 0

	for _, s := range m.statuses {
		if s.OverBudget {
			n++
		}
	}

	return n
}

type budgetSavedMsg struct {
	summary string
	err     error
}

func (m BudgetModel) saveCmd(category, raw string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		limit, err := m.budgets.SetLimit(ctx, category, raw)
		if err != nil {
			return budgetSavedMsg{err: err}
		}

		return budgetSavedMsg{summary: fmt.Sprintf("Set %s to %s", category, chart.FormatCurrency(limit))}
	}
}

func (m BudgetModel) clearCmd(category string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := m.budgets.ClearLimit(ctx, category); err != nil {
			return budgetSavedMsg{err: err}
		}

		return budgetSavedMsg{summary: "Cleared limit for " + category}
	}
}
