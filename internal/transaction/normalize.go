package transaction

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is a loosely typed transaction as delivered by the aggregator or an
// imported file. Keys follow the aggregator's JSON field names.
type Record map[string]any

// Normalize converts records into transactions, preserving input order.
// Records without an id, with an unparseable date or with a non-numeric
// amount are dropped.
func Normalize(records []Record) []Transaction {
	txs, _ := NormalizeReport(records)
	return txs
}

// NormalizeReport is Normalize that also returns how many records were dropped.
func NormalizeReport(records []Record) ([]Transaction, int) {
	txs := make([]Transaction, 0, len(records))
	dropped := 0

	for _, r := range records {
		tx, err := normalizeRecord(r)
		if err != nil {
			dropped++
			continue
		}

		txs = append(txs, tx)
	}

	return txs, dropped
}

func normalizeRecord(r Record) (Transaction, error) {
	id := firstString(r, "id", "transaction_id")
	if id == "" {
		return Transaction{}, fmt.Errorf("missing id")
	}

	date, err := parseDate(r["date"])
	if err != nil {
		return Transaction{}, fmt.Errorf("record %s: %w", id, err)
	}

	amount, err := parseAmount(r["amount"])
	if err != nil {
		return Transaction{}, fmt.Errorf("record %s: %w", id, err)
	}

	return Transaction{
		ID:        id,
		Date:      date,
		Amount:    amount,
		Category:  parseCategory(r["category"]),
		Pending:   parseBool(r["pending"]),
		Name:      firstString(r, "name", "merchant_name", "description"),
		AccountID: firstString(r, "account_id"),
	}, nil
}

func firstString(r Record, keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}

		var s string

		switch v := v.(type) {
		case string:
			s = v
		case json.Number:
			s = v.String()
		case fmt.Stringer:
			s = v.String()
		default:
			if s, ok = numericString(v); !ok {
				continue
			}
		}

		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}

	return ""
}

// numericString formats integer and finite float values; a float64 17 from
// plain json.Unmarshal reads as "17".
func numericString(v any) (string, bool) {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", false
		}

		return strconv.FormatFloat(f, 'f', -1, 64), true
	}

	return "", false
}

// parseDate accepts YYYY-MM-DD, RFC3339 or a time.Time and truncates to the
// calendar day the value names.
func parseDate(v any) (time.Time, error) {
	switch v := v.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, fmt.Errorf("zero date")
		}

		return dateOf(v), nil
	case string:
		s := strings.TrimSpace(v)
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			return t, nil
		}

		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return dateOf(t), nil
		}

		return time.Time{}, fmt.Errorf("unparseable date %q", v)
	}

	return time.Time{}, fmt.Errorf("invalid date type %T", v)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseAmount(v any) (decimal.Decimal, error) {
	switch v := v.(type) {
	case decimal.Decimal:
		return v, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, fmt.Errorf("non-finite amount")
		}

		return decimal.NewFromFloat(v), nil
	case float32:
		return parseAmount(float64(v))
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return decimal.NewFromUint64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return parseAmount(rv.Float())
	}

	return decimal.Zero, fmt.Errorf("invalid amount type %T", v)
}

func parseCategory(v any) []string {
	switch v := v.(type) {
	case []string:
		return trimLabels(v)
	case []any:
		labels := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				labels = append(labels, s)
			}
		}

		return trimLabels(labels)
	case string:
		if strings.TrimSpace(v) == "" {
			return []string{}
		}

		return trimLabels([]string{v})
	}

	return []string{}
}

func trimLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}

	return out
}

func parseBool(v any) bool {
	switch v := v.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	}

	return false
}
