package view

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const opTimeout = 5 * time.Second

var titleCaser = cases.Title(language.AmericanEnglish)

var (
	incomeColor  = lipgloss.Color("42")
	expenseColor = lipgloss.Color("203")
	mutedColor   = lipgloss.Color("240")
	accentColor  = lipgloss.Color("205")
	errorColor   = lipgloss.Color("196")
)

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// FormatCategory title-cases shouted labels such as bank export categories
// and leaves mixed-case labels alone.
func FormatCategory(s string) string {
	if s != strings.ToUpper(s) || s == strings.ToLower(s) {
		return s
	}

	return titleCaser.String(strings.ToLower(s))
}

// OpCtx returns a context with a standard timeout for store operations.
func OpCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// Bar renders value as a horizontal bar scaled so that maxValue fills width.
func Bar(value, maxValue decimal.Decimal, width int, color lipgloss.Color) string {
	if width <= 0 || !maxValue.IsPositive() || !value.IsPositive() {
		return ""
	}

	n := int(value.Div(maxValue).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
	n = max(1, min(n, width))

	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", n))
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(accentColor).Render(s)
}

func errorStyle(s string) string {
	return lipgloss.NewStyle().Foreground(errorColor).Render(s)
}

func mutedStyle(s string) string {
	return lipgloss.NewStyle().Foreground(mutedColor).Render(s)
}
