// Package delimited reads transaction exports in CSV-like formats. The
// delimiter, text encoding and column layout are detected from the file.
package delimited

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/gigdash/internal/encoding"
	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

var delimiters = []rune{',', ';', '\t'}

// rowNamespace seeds ids for rows whose export has no id column.
var rowNamespace = uuid.MustParse("6f1c9c3e-4b7a-4f0e-9d55-2a8e1b0c7d41")

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.Record, error) {
	utf8r, charset, err := enc.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	for _, delim := range delimiters {
		rows, err := readRows(data, delim)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		slog.Debug("detected export format", "profile", profile.Name, "charset", charset, "delimiter", string(delim))

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1), nil
	}

	return nil, fmt.Errorf("no matching export format found: expected a transaction_id, id or date/description header")
}

func readRows(data []byte, delim rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps lowercased column names to their index in the row.
type colIndex map[string]int

func (c colIndex) get(row []string, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := c[name]
	if !ok {
		return ""
	}

	return cellValue(row, idx)
}

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows turns data rows into records. Rows without a readable date or
// amount are footers or notes and are skipped.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) []transaction.Record {
	out := []transaction.Record{}

	for i, row := range rows {
		rowNum := headerRowNum + i + 2

		date, ok := parseDate(cols.get(row, p.DateCol), p.DateLayouts)
		if !ok {
			continue
		}

		amount, ok := rowAmount(p, cols, row)
		if !ok {
			continue
		}

		id := cols.get(row, p.IDCol)
		if id == "" {
			id = uuid.NewSHA1(rowNamespace, []byte(strconv.Itoa(rowNum)+"\x1f"+strings.Join(row, "\x1f"))).String()
		}

		record := transaction.Record{
			"transaction_id": id,
			"date":           date.Format(time.DateOnly),
			"amount":         amount.String(),
			"category":       splitCategory(cols.get(row, p.CategoryCol)),
			"name":           cols.get(row, p.DescCol),
		}

		if pending := cols.get(row, p.PendingCol); pending != "" {
			record["pending"] = strings.EqualFold(pending, "true")
		}

		if account := cols.get(row, p.AccountCol); account != "" {
			record["account_id"] = account
		}

		out = append(out, record)
	}

	return out
}

func parseDate(s string, layouts []string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// rowAmount returns the amount in the record sign convention: positive is
// money out, negative is money in.
func rowAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, bool) {
	switch p.AmountMode {
	case amountSingle:
		s := cols.get(row, p.AmountCol)
		if s == "" {
			return decimal.Zero, false
		}

		d, err := parseAmount(s, p.DecimalComma)
		if err != nil {
			return decimal.Zero, false
		}

		if p.IncomePositive {
			d = d.Neg()
		}

		return d, true
	case amountSplit:
		if s := cols.get(row, p.DebitCol); s != "" {
			d, err := parseAmount(s, p.DecimalComma)
			if err == nil && !d.IsZero() {
				return d.Abs(), true
			}
		}

		if s := cols.get(row, p.CreditCol); s != "" {
			d, err := parseAmount(s, p.DecimalComma)
			if err == nil && !d.IsZero() {
				return d.Abs().Neg(), true
			}
		}
	}

	return decimal.Zero, false
}

// splitCategory reads a category path such as "Food and Drink > Restaurants".
func splitCategory(s string) []string {
	out := []string{}

	for label := range strings.FieldsFuncSeq(s, func(r rune) bool { return r == '>' || r == '|' }) {
		if label = strings.TrimSpace(label); label != "" {
			out = append(out, label)
		}
	}

	return out
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
