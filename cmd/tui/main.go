package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/gigdash/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/gigdash/internal/app"
	"github.com/MrJamesThe3rd/gigdash/internal/auth"
	"github.com/MrJamesThe3rd/gigdash/internal/config"
	"github.com/MrJamesThe3rd/gigdash/internal/dashboard"
	"github.com/MrJamesThe3rd/gigdash/internal/logging"
	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

type sessionState int

const (
	sessionLoading sessionState = iota
	sessionAuthenticated
	sessionUnauthenticated
)

type View int

const (
	ViewMenu View = iota
	ViewOverview
	ViewBudget
	ViewImport
)

type model struct {
	services *app.Services
	cfg      *config.Config

	session    sessionState
	sessionErr error
	subject    string

	currentView View

	txs      []transaction.Transaction
	source   string
	dash     dashboard.Dashboard
	fetching bool
	status   string

	overviewView view.OverviewModel
	budgetView   view.BudgetModel
	importView   view.ImportModel
}

func initialModel(services *app.Services, cfg *config.Config) model {
	m := model{
		services:     services,
		cfg:          cfg,
		currentView:  ViewMenu,
		overviewView: view.NewOverviewModel(services.IncomeGoal),
		budgetView:   view.NewBudgetModel(services.Budgets),
		importView:   view.NewImportModel(services.Importer),
	}

	m.rebuild()

	return m
}

// rebuild re-derives every view from the current batch and limits.
func (m *model) rebuild() {
	ctx, cancel := view.OpCtx()
	defer cancel()

	m.dash = m.services.Dashboards.Build(ctx, m.txs)
	m.overviewView.SetDashboard(m.dash, m.source)
	m.budgetView.SetStatuses(m.dash.Budgets)
}

type sessionMsg struct {
	subject string
	err     error
}

func (m model) verifySessionCmd() tea.Cmd {
	verifier := m.services.Verifier
	token := m.cfg.Auth.SessionToken

	return func() tea.Msg {
		if verifier == nil {
			return sessionMsg{}
		}

		if token == "" {
			return sessionMsg{err: fmt.Errorf("GIGDASH_TOKEN is not set: %w", auth.ErrUnauthenticated)}
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			return sessionMsg{err: err}
		}

		return sessionMsg{subject: claims.Subject}
	}
}

type fetchMsg struct {
	txs []transaction.Transaction
	err error
}

func (m model) fetchCmd() tea.Cmd {
	svc := m.services.Transactions
	now := time.Now()
	params := transaction.FetchParams{
		ItemIDs:   m.cfg.Aggregator.ItemIDs,
		StartDate: now.Add(-m.cfg.Aggregator.Lookback),
		EndDate:   now,
	}
	timeout := m.cfg.Aggregator.Timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		txs, err := svc.Load(ctx, params)

		return fetchMsg{txs: txs, err: err}
	}
}

func (m model) Init() tea.Cmd {
	return m.verifySessionCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case sessionMsg:
		if msg.err != nil {
			slog.Warn("session rejected", "error", msg.err)
			m.session = sessionUnauthenticated
			m.sessionErr = msg.err

			return m, nil
		}

		m.session = sessionAuthenticated
		m.subject = msg.subject

		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.session != sessionAuthenticated {
			if msg.String() == "q" {
				return m, tea.Quit
			}

			return m, nil
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}

	case tea.WindowSizeMsg:
		var newModel tea.Model
		newModel, _ = m.overviewView.Update(msg)
		m.overviewView = newModel.(view.OverviewModel)
		newModel, _ = m.budgetView.Update(msg)
		m.budgetView = newModel.(view.BudgetModel)

		return m, nil

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil

	case view.BatchLoadedMsg:
		m.txs = msg.Transactions
		m.source = msg.Source
		m.rebuild()

		slog.Info("batch loaded", "source", msg.Source, "transactions", len(msg.Transactions), "dropped", msg.Dropped)

		return m, nil

	case view.LimitsChangedMsg:
		m.rebuild()
		return m, nil

	case fetchMsg:
		m.fetching = false

		if msg.err != nil {
			slog.Error("failed to fetch transactions", "error", msg.err)
			m.status = fmt.Sprintf("Fetch failed: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Fetched %d transactions.", len(msg.txs))
		batch := view.BatchLoadedMsg{Transactions: msg.txs, Source: "aggregator"}

		return m, func() tea.Msg { return batch }
	}

	switch m.currentView {
	case ViewOverview:
		var newModel tea.Model
		newModel, cmd = m.overviewView.Update(msg)
		m.overviewView = newModel.(view.OverviewModel)
	case ViewBudget:
		var newModel tea.Model
		newModel, cmd = m.budgetView.Update(msg)
		m.budgetView = newModel.(view.BudgetModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		m.currentView = ViewOverview
		return m, m.overviewView.Init()
	case "2":
		m.currentView = ViewBudget
		return m, m.budgetView.Init()
	case "3":
		m.currentView = ViewImport
		m.importView = view.NewImportModel(m.services.Importer)

		return m, m.importView.Init()
	case "4":
		if m.fetching {
			return m, nil
		}

		if len(m.cfg.Aggregator.ItemIDs) == 0 {
			m.status = "AGGREGATOR_ITEM_IDS is not set."
			return m, nil
		}

		m.fetching = true
		m.status = "Fetching transactions..."

		return m, m.fetchCmd()
	}

	return m, nil
}

func (m model) View() string {
	switch m.session {
	case sessionLoading:
		return lipgloss.NewStyle().Padding(2).Render("Verifying session...")
	case sessionUnauthenticated:
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("Not signed in: %v\n\nSet GIGDASH_TOKEN to a token issued with `gigdash token`.\n\nq. Quit", m.sessionErr),
		)
	}

	var current view.View

	switch m.currentView {
	case ViewMenu:
		return m.viewMenu()
	case ViewOverview:
		current = m.overviewView
	case ViewBudget:
		current = m.budgetView
	case ViewImport:
		current = m.importView
	default:
		return "Unknown View"
	}

	title := lipgloss.NewStyle().Bold(true).Render(current.Title())
	help := lipgloss.NewStyle().Faint(true).Render(current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, title, current.View(), help)
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString(m.cfg.App.Name + " TUI")

	if m.subject != "" {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("  signed in as " + m.subject))
	}

	b.WriteString("\n\n")

	if m.dash.Transactions > 0 {
		fmt.Fprintf(&b, "Loaded: %d transactions from %s\n", m.dash.Transactions, m.source)

		if over := len(m.dash.OverBudget()); over > 0 {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(
				fmt.Sprintf("%d categories over budget", over)) + "\n")
		}

		b.WriteString("\n")
	}

	b.WriteString(
		"1. Overview\n" +
			"2. Budgets\n" +
			"3. Import From File\n" +
			"4. Fetch From Aggregator\n\n" +
			"q. Quit",
	)

	if m.status != "" {
		b.WriteString("\n\n" + lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}

// logWriter opens the log file, or discards logs when none is configured.
func logWriter(path string) (io.Writer, func()) {
	if path == "" {
		return io.Discard, func() {}
	}

	f, err := tea.LogToFile(path, "")
	if err != nil {
		return io.Discard, func() {}
	}

	return f, func() { _ = f.Close() }
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	w, closeLog := logWriter(cfg.Log.File)
	defer closeLog()

	logging.Setup(w, cfg.Log.Level, cfg.Log.Format, "tui")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	services, err := app.New(ctx, cfg, false)

	cancel()

	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer services.Close()

	p := tea.NewProgram(initialModel(services, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
