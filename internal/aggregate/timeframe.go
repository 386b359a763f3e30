package aggregate

import (
	"time"

	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

// Timeframe is a preset window used by the income trend view.
type Timeframe string

const (
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeAll   Timeframe = "all"
)

// Range returns the inclusive calendar-day window of tf relative to now.
// TimeframeAll returns zero times.
func (tf Timeframe) Range(now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch tf {
	case TimeframeWeek:
		return today.AddDate(0, 0, -6), today
	case TimeframeMonth:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), today
	}

	return time.Time{}, time.Time{}
}

// Within keeps the transactions dated in [start, end]. A zero bound is open.
func Within(txs []transaction.Transaction, start, end time.Time) []transaction.Transaction {
	out := make([]transaction.Transaction, 0, len(txs))

	for _, tx := range txs {
		if !start.IsZero() && tx.Date.Before(start) {
			continue
		}

		if !end.IsZero() && tx.Date.After(end) {
			continue
		}

		out = append(out, tx)
	}

	return out
}

// FilterTimeframe keeps the transactions inside tf relative to now.
func FilterTimeframe(txs []transaction.Transaction, tf Timeframe, now time.Time) []transaction.Transaction {
	start, end := tf.Range(now)
	return Within(txs, start, end)
}
