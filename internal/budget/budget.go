package budget

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigdash/internal/aggregate"
)

var (
	ErrInvalidLimit    = errors.New("invalid budget limit")
	ErrInvalidCategory = errors.New("invalid budget category")
)

var hundred = decimal.NewFromInt(100)

// Limits maps a primary category to its spending limit. A missing key means
// the limit is unset; zero is a valid, set limit.
type Limits map[string]decimal.Decimal

// With returns a copy of l with category set to limit.
func (l Limits) With(category string, limit decimal.Decimal) Limits {
	out := make(Limits, len(l)+1)
	maps.Copy(out, l)
	out[category] = limit

	return out
}

// Without returns a copy of l with category unset.
func (l Limits) Without(category string) Limits {
	out := maps.Clone(l)
	if out == nil {
		out = Limits{}
	}

	delete(out, category)

	return out
}

// Status compares one tracked category's spend against its limit.
type Status struct {
	Category   string
	Spent      decimal.Decimal
	Limit      decimal.NullDecimal
	Percentage decimal.NullDecimal // clamped to [0, 100]; null when limit is unset or zero
	OverBudget bool
}

// Evaluate builds a status for every tracked category, in tracked order.
// Spend comes from the expense category breakdown; untracked categories are
// not evaluated.
func Evaluate(expense []aggregate.CategoryTotal, limits Limits, tracked []string) []Status {
	spending := aggregate.Spending(expense)
	out := make([]Status, 0, len(tracked))

	for _, category := range tracked {
		spent, ok := spending[category]
		if !ok {
			spent = decimal.Zero
		}

		status := Status{Category: category, Spent: spent}

		limit, ok := limits[category]
		if ok {
			status.Limit = decimal.NewNullDecimal(limit)
		}

		if ok && limit.IsPositive() {
			pct := spent.Div(limit).Mul(hundred)
			if pct.GreaterThan(hundred) {
				pct = hundred
			}

			if pct.IsNegative() {
				pct = decimal.Zero
			}

			status.Percentage = decimal.NewNullDecimal(pct)
			status.OverBudget = spent.GreaterThan(limit)
		}

		out = append(out, status)
	}

	return out
}

// ParseLimit validates user input for a limit.
func ParseLimit(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidLimit, s)
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s is negative", ErrInvalidLimit, d)
	}

	return d, nil
}
