package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/gigdash/internal/aggregate"
	"github.com/MrJamesThe3rd/gigdash/internal/chart"
	"github.com/MrJamesThe3rd/gigdash/internal/dashboard"
	"github.com/MrJamesThe3rd/gigdash/internal/importer"
	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

type summaryOptions struct {
	file      string
	format    string
	timeframe string
}

func newSummaryCmd(e *env) *cobra.Command {
	var opts summaryOptions

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print monthly totals, category breakdowns and budgets for an export file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd, e, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Export file to summarize (JSON or CSV)")
	cmd.Flags().StringVar(&opts.format, "format", "", "File format: json or csv (default: by extension)")
	cmd.Flags().StringVarP(&opts.timeframe, "timeframe", "t", string(aggregate.TimeframeAll), "Window: week, month or all")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runSummary(cmd *cobra.Command, e *env, opts summaryOptions) error {
	tf := aggregate.Timeframe(opts.timeframe)
	switch tf {
	case aggregate.TimeframeWeek, aggregate.TimeframeMonth, aggregate.TimeframeAll:
	default:
		return fmt.Errorf("invalid timeframe %q: want week, month or all", opts.timeframe)
	}

	format := importer.Format(opts.format)
	if format == "" {
		format = importer.FormatFromPath(opts.file)
	}

	f, err := os.Open(opts.file)
	if err != nil {
		return fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	records, err := e.services.Importer.Import(format, f)
	if err != nil {
		return err
	}

	txs, dropped := transaction.NormalizeReport(records)
	if dropped > 0 {
		slog.Warn("dropped malformed transactions", "dropped", dropped, "kept", len(txs))
	}

	now := time.Now().UTC()
	txs = aggregate.FilterTimeframe(txs, tf, now)

	d := e.services.Dashboards.Build(cmd.Context(), txs)

	writeSummary(cmd.OutOrStdout(), d, e, tf, now)

	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...)
}

func writeSummary(w io.Writer, d dashboard.Dashboard, e *env, tf aggregate.Timeframe, now time.Time) {
	fmt.Fprintf(w, "%d transactions (%s)\n\n", d.Transactions, tf)

	monthly := newTable("Month", "Income", "Expense", "Net")
	for _, p := range chart.MonthlySeries(d.Monthly) {
		monthly.Row(p.Label, chart.FormatCurrency(p.Income), chart.FormatCurrency(p.Expense), chart.FormatCurrency(p.Net))
	}

	fmt.Fprintln(w, monthly.Render())

	for _, section := range []struct {
		title  string
		totals []aggregate.CategoryTotal
	}{
		{"Income by category", d.IncomeCategories},
		{"Expenses by category", d.ExpenseCategories},
	} {
		t := newTable("Category", "Total", "Share")
		for _, c := range chart.CategorySlices(section.totals) {
			share := decimal.NewNullDecimal(c.Share.Mul(decimal.NewFromInt(100)))
			t.Row(c.Category, chart.FormatCurrency(c.Total), chart.FormatPercent(share))
		}

		fmt.Fprintf(w, "\n%s\n%s\n", section.title, t.Render())
	}

	budgets := newTable("Budget", "Spent / Limit", "Used")
	for _, s := range d.Budgets {
		used := chart.FormatPercent(s.Percentage)
		if s.OverBudget {
			used += " over"
		}

		budgets.Row(s.Category, chart.BudgetLine(s), used)
	}

	fmt.Fprintf(w, "\n%s\n", budgets.Render())

	start, end := chart.HeatmapWindow(now)
	if tf != aggregate.TimeframeAll {
		start, end = tf.Range(now)
	}

	trend := chart.NewIncomeTrend(d.Daily, start, end, e.services.IncomeGoal)

	fmt.Fprintf(w, "\nIncome %s to %s: %s", start.Format(time.DateOnly), end.Format(time.DateOnly), chart.FormatCurrency(trend.Total))

	if trend.Goal.Valid {
		fmt.Fprintf(w, " of %s goal (%s)", chart.FormatCurrency(trend.Goal.Decimal), chart.FormatPercent(trend.Progress))
	}

	fmt.Fprintln(w)
}
