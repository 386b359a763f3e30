package chart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigdash/internal/aggregate"
)

// TrendPoint is one day on the income trend line.
type TrendPoint struct {
	Date       string          `json:"date"`
	Income     decimal.Decimal `json:"income"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// IncomeTrend is the income line for a window plus progress toward a goal.
type IncomeTrend struct {
	Points   []TrendPoint        `json:"points"`
	Total    decimal.Decimal     `json:"total"`
	Goal     decimal.NullDecimal `json:"goal"`
	Progress decimal.NullDecimal `json:"progress"` // percent of goal, unclamped
}

// NewIncomeTrend lists the days in [start, end] that earned income, in date
// order. A zero or negative goal leaves Goal and Progress null.
func NewIncomeTrend(daily map[string]aggregate.DailyActivity, start, end time.Time, goal decimal.Decimal) IncomeTrend {
	trend := IncomeTrend{Points: []TrendPoint{}, Total: decimal.Zero}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(time.DateOnly)

		activity, ok := daily[key]
		if !ok || !activity.Income.IsPositive() {
			continue
		}

		trend.Total = trend.Total.Add(activity.Income)
		trend.Points = append(trend.Points, TrendPoint{
			Date:       key,
			Income:     activity.Income,
			Cumulative: trend.Total,
		})
	}

	if goal.IsPositive() {
		trend.Goal = decimal.NewNullDecimal(goal)
		trend.Progress = decimal.NewNullDecimal(trend.Total.Div(goal).Mul(decimal.NewFromInt(100)))
	}

	return trend
}
