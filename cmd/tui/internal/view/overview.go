package view

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigdash/internal/chart"
	"github.com/MrJamesThe3rd/gigdash/internal/dashboard"
)

type overviewSection int

const (
	sectionMonthly overviewSection = iota
	sectionCategories
	sectionHeatmap
	sectionTrend
)

var sectionTitles = []string{"Monthly", "Categories", "Heatmap", "Income Trend"}

var metrics = []chart.Metric{chart.MetricNet, chart.MetricIncome, chart.MetricExpense}

const barWidth = 30

type OverviewModel struct {
	CommonModel

	dash   dashboard.Dashboard
	source string
	goal   decimal.Decimal
	now    func() time.Time

	section   overviewSection
	metricIdx int

	picking bool
	picker  TimeframePicker
	tfLabel string
	tfAll   bool
	tfStart time.Time
	tfEnd   time.Time

	incomeTable  table.Model
	expenseTable table.Model
	expenseFocus bool
}

func NewOverviewModel(goal decimal.Decimal) OverviewModel {
	return OverviewModel{
		goal:         goal,
		now:          time.Now,
		picker:       NewTimeframePicker(),
		tfLabel:      "Last 4 Months",
		incomeTable:  newCategoryTable(),
		expenseTable: newCategoryTable(),
	}
}

func newCategoryTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Category", Width: 28},
			{Title: "Total", Width: 14},
			{Title: "Share", Width: 7},
		}),
		table.WithHeight(8),
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

	return t
}

// SetDashboard replaces the rendered batch.
func (m *OverviewModel) SetDashboard(d dashboard.Dashboard, source string) {
	m.dash = d
	m.source = source
	m.incomeTable.SetRows(categoryRows(chart.CategorySlices(d.IncomeCategories)))
	m.expenseTable.SetRows(categoryRows(chart.CategorySlices(d.ExpenseCategories)))
}

func categoryRows(items []chart.CategorySlice) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, s := range items {
		rows = append(rows, table.Row{
			FormatCategory(s.Category),
			chart.FormatCurrency(s.Total),
			chart.FormatPercent(decimal.NewNullDecimal(s.Share.Mul(decimal.NewFromInt(100)))),
		})
	}

	return rows
}

func (m OverviewModel) Title() string { return "Overview" }

func (m OverviewModel) ShortHelp() string {
	if m.picking {
		return "Enter: select | Esc: cancel"
	}

	switch m.section {
	case sectionCategories:
		return "Esc: back | Tab: section | ←/→: table | ↑/↓: scroll"
	case sectionHeatmap:
		return "Esc: back | Tab: section | m: metric"
	case sectionTrend:
		return "Esc: back | Tab: section | t: timeframe"
	}

	return "Esc: back | Tab: section"
}

func (m OverviewModel) Init() tea.Cmd {
	return nil
}

func (m OverviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil

	case TimeframeSelectedMsg:
		m.picking = false
		m.tfLabel = msg.Label
		m.tfAll = msg.All
		m.tfStart, m.tfEnd = msg.Start, msg.End

		return m, nil
	}

	if m.picking {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
			m.picking = false
			return m, nil
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "tab":
		m.section = (m.section + 1) % overviewSection(len(sectionTitles))
		return m, nil
	case "shift+tab":
		m.section = (m.section + overviewSection(len(sectionTitles)) - 1) % overviewSection(len(sectionTitles))
		return m, nil
	case "m":
		m.metricIdx = (m.metricIdx + 1) % len(metrics)
		return m, nil
	case "t":
		m.picking = true
		m.picker.Reset()

		return m, m.picker.Init()
	}

	if m.section != sectionCategories {
		return m, nil
	}

	switch keyMsg.String() {
	case "left", "right":
		m.expenseFocus = !m.expenseFocus
		return m, nil
	}

	var cmd tea.Cmd
	if m.expenseFocus {
		m.expenseTable.Focus()
		m.expenseTable, cmd = m.expenseTable.Update(msg)
	} else {
		m.incomeTable.Focus()
		m.incomeTable, cmd = m.incomeTable.Update(msg)
	}

	return m, cmd
}

func (m OverviewModel) View() string {
	if m.picking {
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	}

	if m.dash.Transactions == 0 {
		return lipgloss.NewStyle().Padding(2).Render(
			"No transactions loaded.\n\nImport a file or fetch from the aggregator first.\n\n(Esc to go back)",
		)
	}

	tabs := make([]string, len(sectionTitles))
	for i, t := range sectionTitles {
		if overviewSection(i) == m.section {
			tabs[i] = activeStyle("[" + t + "]")
		} else {
			tabs[i] = mutedStyle(" " + t + " ")
		}
	}

	header := fmt.Sprintf("%s  %s",
		strings.Join(tabs, " "),
		mutedStyle(fmt.Sprintf("%d transactions from %s", m.dash.Transactions, m.source)),
	)

	var body string

	switch m.section {
	case sectionMonthly:
		body = m.viewMonthly()
	case sectionCategories:
		body = m.viewCategories()
	case sectionHeatmap:
		body = m.viewHeatmap()
	case sectionTrend:
		body = m.viewTrend()
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, lipgloss.NewStyle().PaddingBottom(1).Render(header), body),
	)
}

func (m OverviewModel) viewMonthly() string {
	points := chart.MonthlySeries(m.dash.Monthly)

	peak := decimal.Zero
	for _, p := range points {
		peak = decimal.Max(peak, p.Income, p.Expense)
	}

	var b strings.Builder

	for _, p := range points {
		fmt.Fprintf(&b, "%-7s %s %s\n", p.Label,
			padBar(Bar(p.Income, peak, barWidth, incomeColor)),
			chart.FormatCurrency(p.Income))
		fmt.Fprintf(&b, "%-7s %s %s\n", "",
			padBar(Bar(p.Expense, peak, barWidth, expenseColor)),
			chart.FormatCurrency(p.Expense))

		net := chart.FormatCurrency(p.Net)
		if p.Net.IsNegative() {
			net = lipgloss.NewStyle().Foreground(expenseColor).Render(net)
		}

		fmt.Fprintf(&b, "%-7s %s\n\n", "", mutedStyle("net ")+net)
	}

	legend := lipgloss.NewStyle().Foreground(incomeColor).Render("█ income") + "  " +
		lipgloss.NewStyle().Foreground(expenseColor).Render("█ expense")

	return b.String() + legend
}

// padBar right-pads a rendered bar to barWidth cells so the amounts line up.
func padBar(bar string) string {
	return bar + strings.Repeat(" ", max(0, barWidth-lipgloss.Width(bar)))
}

func (m OverviewModel) viewCategories() string {
	render := func(title string, t table.Model, focused bool) string {
		border := mutedColor
		if focused {
			border = accentColor
		}

		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(border).Render(t.View()),
		)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		render("Income by Category", m.incomeTable, !m.expenseFocus),
		"  ",
		render("Expenses by Category", m.expenseTable, m.expenseFocus),
	)
}

var (
	heatPositive = []lipgloss.Color{"22", "28", "34", "40", "46"}
	heatNegative = []lipgloss.Color{"52", "88", "124", "160", "196"}
)

func (m OverviewModel) viewHeatmap() string {
	metric := metrics[m.metricIdx]
	start, end := chart.HeatmapWindow(m.now())
	grid := chart.Heatmap(m.dash.Daily, metric, start, end)

	if len(grid.Cells) == 0 {
		return "No days to show."
	}

	rows := make([]strings.Builder, 7)
	offset := int(grid.Cells[0].Weekday)

	for i := range offset {
		rows[i].WriteString("  ")
	}

	for i, cell := range grid.Cells {
		rows[(offset+i)%7].WriteString(heatCell(cell, grid) + " ")
	}

	labels := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

	var b strings.Builder

	fmt.Fprintf(&b, "Metric: %s (%s to %s)\n\n", activeStyle(string(metric)), grid.Cells[0].Date, grid.Cells[len(grid.Cells)-1].Date)

	for i := range rows {
		fmt.Fprintf(&b, "%s %s\n", mutedStyle(labels[i]), rows[i].String())
	}

	fmt.Fprintf(&b, "\n%s  %s to %s", mutedStyle("· no data"), chart.FormatCurrency(grid.Min), chart.FormatCurrency(grid.Max))

	return b.String()
}

// heatCell picks a shade by the cell's position within the grid's domain.
// Expense days and net losses use the red palette.
func heatCell(cell chart.HeatmapCell, grid chart.HeatmapGrid) string {
	if !cell.HasData {
		return mutedStyle("·")
	}

	palette := heatPositive
	value := cell.Value
	bound := grid.Max

	switch {
	case grid.Metric == chart.MetricExpense:
		palette = heatNegative
	case value.IsNegative():
		palette = heatNegative
		value = value.Abs()
		bound = grid.Min.Abs()
	}

	level := len(palette) - 1
	if bound.IsPositive() {
		level = int(value.Div(bound).Mul(decimal.NewFromInt(int64(len(palette) - 1))).Round(0).IntPart())
		level = max(0, min(level, len(palette)-1))
	}

	return lipgloss.NewStyle().Foreground(palette[level]).Render("■")
}

// trendWindow is the picked timeframe, or the heatmap window until one is
// picked. All Time spans the loaded days.
func (m OverviewModel) trendWindow() (time.Time, time.Time) {
	if m.tfAll {
		keys := slices.Sorted(maps.Keys(m.dash.Daily))
		if len(keys) == 0 {
			return chart.HeatmapWindow(m.now())
		}

		start, _ := time.Parse(time.DateOnly, keys[0])
		end, _ := time.Parse(time.DateOnly, keys[len(keys)-1])

		return start, end
	}

	if !m.tfStart.IsZero() {
		return m.tfStart, m.tfEnd
	}

	return chart.HeatmapWindow(m.now())
}

func (m OverviewModel) viewTrend() string {
	start, end := m.trendWindow()
	trend := chart.NewIncomeTrend(m.dash.Daily, start, end, m.goal)

	var b strings.Builder

	fmt.Fprintf(&b, "Timeframe: %s\n\n", activeStyle(m.tfLabel))

	if len(trend.Points) == 0 {
		b.WriteString(mutedStyle("No income in this timeframe.") + "\n")
	}

	for _, p := range trend.Points {
		fmt.Fprintf(&b, "%s %s %s\n", p.Date,
			padBar(Bar(p.Cumulative, trend.Total, barWidth, incomeColor)),
			chart.FormatCurrency(p.Cumulative))
	}

	fmt.Fprintf(&b, "\nTotal: %s", chart.FormatCurrency(trend.Total))

	if trend.Goal.Valid {
		fmt.Fprintf(&b, "\nGoal:  %s  %s %s",
			chart.FormatCurrency(trend.Goal.Decimal),
			padBar(Bar(trend.Total, trend.Goal.Decimal, barWidth, accentColor)),
			chart.FormatPercent(trend.Progress))
	}

	return b.String()
}
