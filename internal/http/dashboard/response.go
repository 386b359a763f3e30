package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigdash/internal/aggregate"
	"github.com/MrJamesThe3rd/gigdash/internal/budget"
	"github.com/MrJamesThe3rd/gigdash/internal/chart"
	"github.com/MrJamesThe3rd/gigdash/internal/dashboard"
)

type dashboardResponse struct {
	BatchID           uuid.UUID                `json:"batch_id"`
	GeneratedAt       time.Time                `json:"generated_at"`
	Transactions      int                      `json:"transactions"`
	Monthly           []chart.MonthlyPoint     `json:"monthly"`
	IncomeCategories  []chart.CategorySlice    `json:"income_categories"`
	ExpenseCategories []chart.CategorySlice    `json:"expense_categories"`
	Daily             map[string]dailyResponse `json:"daily"`
	Heatmap           chart.HeatmapGrid        `json:"heatmap"`
	IncomeTrend       chart.IncomeTrend        `json:"income_trend"`
	Budgets           []budgetStatusResponse   `json:"budgets"`
}

type dailyResponse struct {
	Income    decimal.Decimal `json:"income"`
	Expense   decimal.Decimal `json:"expense"`
	NetAmount decimal.Decimal `json:"net_amount"`
}

type budgetStatusResponse struct {
	Category   string              `json:"category"`
	Spent      decimal.Decimal     `json:"spent"`
	Limit      decimal.NullDecimal `json:"limit"`
	Percentage decimal.NullDecimal `json:"percentage"`
	OverBudget bool                `json:"over_budget"`
	Display    string              `json:"display"`
}

type viewOptions struct {
	metric     chart.Metric
	goal       decimal.Decimal
	now        time.Time
	trendStart time.Time
	trendEnd   time.Time
}

func toResponse(d dashboard.Dashboard, opts viewOptions) dashboardResponse {
	daily := chart.DailyLookup(d.Daily)
	start, end := chart.HeatmapWindow(opts.now)

	return dashboardResponse{
		BatchID:           d.BatchID,
		GeneratedAt:       d.GeneratedAt,
		Transactions:      d.Transactions,
		Monthly:           chart.MonthlySeries(d.Monthly),
		IncomeCategories:  chart.CategorySlices(d.IncomeCategories),
		ExpenseCategories: chart.CategorySlices(d.ExpenseCategories),
		Daily:             toDailyResponse(daily),
		Heatmap:           chart.Heatmap(daily, opts.metric, start, end),
		IncomeTrend:       chart.NewIncomeTrend(daily, opts.trendStart, opts.trendEnd, opts.goal),
		Budgets:           toBudgetResponse(d.Budgets),
	}
}

func toDailyResponse(daily map[string]aggregate.DailyActivity) map[string]dailyResponse {
	resp := make(map[string]dailyResponse, len(daily))
	for day, a := range daily {
		resp[day] = dailyResponse{Income: a.Income, Expense: a.Expense, NetAmount: a.NetAmount}
	}

	return resp
}

func toBudgetResponse(statuses []budget.Status) []budgetStatusResponse {
	resp := make([]budgetStatusResponse, len(statuses))
	for i, s := range statuses {
		resp[i] = budgetStatusResponse{
			Category:   s.Category,
			Spent:      s.Spent,
			Limit:      s.Limit,
			Percentage: s.Percentage,
			OverBudget: s.OverBudget,
			Display:    chart.BudgetLine(s),
		}
	}

	return resp
}
