package chart

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MrJamesThe3rd/gigdash/internal/budget"
)

const notSet = "Not Set"

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders an amount as dollars with grouping, e.g. -$1,234.50.
func FormatCurrency(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	if f < 0 {
		return printer.Sprintf("-$%.2f", -f)
	}

	return printer.Sprintf("$%.2f", f)
}

// FormatPercent renders a nullable percentage, "n/a" when undefined.
func FormatPercent(p decimal.NullDecimal) string {
	if !p.Valid {
		return "n/a"
	}

	return p.Decimal.Round(0).String() + "%"
}

// FormatLimit renders a spending limit. Missing and zero limits read "Not Set".
func FormatLimit(l decimal.NullDecimal) string {
	if !l.Valid || !l.Decimal.IsPositive() {
		return notSet
	}

	return FormatCurrency(l.Decimal)
}

// BudgetLine renders the budget tracker's "spent / limit" caption.
func BudgetLine(s budget.Status) string {
	return FormatCurrency(s.Spent) + " / " + FormatLimit(s.Limit)
}
