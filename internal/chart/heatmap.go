package chart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigdash/internal/aggregate"
)

// Metric selects which daily figure the heatmap colors by.
type Metric string

const (
	MetricNet     Metric = "netAmount"
	MetricIncome  Metric = "income"
	MetricExpense Metric = "expense"
)

// ParseMetric falls back to MetricNet for unknown input.
func ParseMetric(s string) Metric {
	switch Metric(s) {
	case MetricIncome, MetricExpense:
		return Metric(s)
	}

	return MetricNet
}

func (m Metric) of(a aggregate.DailyActivity) decimal.Decimal {
	switch m {
	case MetricIncome:
		return a.Income
	case MetricExpense:
		return a.Expense
	}

	return a.NetAmount
}

// HeatmapCell is one calendar day. HasData is false for days without
// transactions; Value is then zero but must not be read as activity.
type HeatmapCell struct {
	Date    string          `json:"date"`
	Weekday time.Weekday    `json:"weekday"`
	Value   decimal.Decimal `json:"value"`
	HasData bool            `json:"has_data"`
}

// HeatmapGrid is the calendar heatmap for a window of days.
type HeatmapGrid struct {
	Metric Metric          `json:"metric"`
	Cells  []HeatmapCell   `json:"cells"`
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
}

// HeatmapWindow returns the default window: four months back through today.
func HeatmapWindow(now time.Time) (time.Time, time.Time) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return end.AddDate(0, -4, 0), end
}

// Heatmap lays out every day in [start, end]. The color domain spans the days
// that have data; for a net metric with both gains and losses it is made
// symmetric around zero.
func Heatmap(daily map[string]aggregate.DailyActivity, metric Metric, start, end time.Time) HeatmapGrid {
	grid := HeatmapGrid{Metric: metric, Cells: []HeatmapCell{}, Min: decimal.Zero, Max: decimal.Zero}

	seen := false

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(time.DateOnly)
		cell := HeatmapCell{Date: key, Weekday: day.Weekday(), Value: decimal.Zero}

		if activity, ok := daily[key]; ok {
			cell.Value = metric.of(activity)
			cell.HasData = true

			if !seen || cell.Value.LessThan(grid.Min) {
				grid.Min = cell.Value
			}

			if !seen || cell.Value.GreaterThan(grid.Max) {
				grid.Max = cell.Value
			}

			seen = true
		}

		grid.Cells = append(grid.Cells, cell)
	}

	if metric == MetricNet && grid.Min.IsNegative() && grid.Max.IsPositive() {
		bound := decimal.Max(grid.Min.Abs(), grid.Max)
		grid.Min, grid.Max = bound.Neg(), bound
	}

	return grid
}
