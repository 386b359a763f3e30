package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

// View is implemented by every screen the root model switches between.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// BatchLoadedMsg replaces the batch every view renders from.
type BatchLoadedMsg struct {
	Transactions []transaction.Transaction
	Source       string
	Dropped      int
}

// LimitsChangedMsg asks the root model to re-evaluate budgets.
type LimitsChangedMsg struct{}
