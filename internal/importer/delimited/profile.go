package delimited

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle is one signed column.
	amountSingle amountMode = iota
	// amountSplit is a debit column and a credit column, both unsigned.
	amountSplit
)

// Profile describes the column layout of one export format. Column names are
// matched case-insensitively after trimming.
type Profile struct {
	Name        string
	IDCol       string // optional; rows get a stable generated id without it
	DateCol     string
	DescCol     string
	CategoryCol string
	PendingCol  string
	AccountCol  string
	AmountMode  amountMode
	AmountCol   string // amountSingle
	DebitCol    string // amountSplit
	CreditCol   string // amountSplit
	DateLayouts []string
	// DecimalComma reads "1.234,56" instead of "1,234.56".
	DecimalComma bool
	// IncomePositive flips the sign of a single amount column for exports
	// where deposits are positive. Records always carry positive = expense.
	IncomePositive bool
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol}

	if p.IDCol != "" {
		cols = append(cols, p.IDCol)
	}

	if p.DescCol != "" && p.IDCol == "" {
		cols = append(cols, p.DescCol)
	}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

var defaultLayouts = []string{"2006-01-02", "01/02/2006", "1/2/2006", "2006-01-02T15:04:05Z07:00"}

// profiles is tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:        "plaid",
		IDCol:       "transaction_id",
		DateCol:     "date",
		DescCol:     "name",
		CategoryCol: "category",
		PendingCol:  "pending",
		AccountCol:  "account_id",
		AmountMode:  amountSingle,
		AmountCol:   "amount",
		DateLayouts: defaultLayouts,
	},
	{
		Name:        "generic",
		IDCol:       "id",
		DateCol:     "date",
		DescCol:     "description",
		CategoryCol: "category",
		AmountMode:  amountSingle,
		AmountCol:   "amount",
		DateLayouts: defaultLayouts,
	},
	{
		Name:        "bank",
		DateCol:     "date",
		DescCol:     "description",
		CategoryCol: "category",
		AmountMode:  amountSplit,
		DebitCol:    "debit",
		CreditCol:   "credit",
		DateLayouts: defaultLayouts,
	},
	{
		Name:           "bank-eu",
		DateCol:        "data mov.",
		DescCol:        "descrição",
		AmountMode:     amountSingle,
		AmountCol:      "montante",
		DateLayouts:    []string{"02-01-2006"},
		DecimalComma:   true,
		IncomePositive: true,
	},
}
