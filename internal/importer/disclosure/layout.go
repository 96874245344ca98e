package disclosure

// Layout describes the column naming of one disclosure CSV export format.
// Agencies export schedules with different headers for the same concepts;
// supporting a new export is just adding a Layout to the layouts slice.
type Layout struct {
	Name      string
	EntityCol string
	DateCol   string
	AmountCol string
	TypeCol   string // optional: per-row transaction type column
	MemoCol   string // optional
	TypeHint  string // fixed hint when the schedule itself implies the type
}

// requiredCols returns the column names that must be present for this layout to match.
func (l Layout) requiredCols() []string {
	cols := []string{l.EntityCol, l.DateCol, l.AmountCol}

	if l.TypeCol != "" {
		cols = append(cols, l.TypeCol)
	}

	return cols
}

// layouts is the ordered list of export formats to try during auto-detection.
// More specific layouts come first so the generic one never shadows them.
var layouts = []Layout{
	{
		Name:      "schedule A",
		EntityCol: "Contributor",
		DateCol:   "Date",
		AmountCol: "Amount Received",
		MemoCol:   "Description",
		TypeHint:  "CONTRIBUTION",
	},
	{
		Name:      "schedule E",
		EntityCol: "Payee",
		DateCol:   "Date",
		AmountCol: "Amount Paid",
		MemoCol:   "Description",
		TypeHint:  "EXPENDITURE",
	},
	{
		Name:      "combined",
		EntityCol: "Entity Name",
		DateCol:   "Transaction Date",
		AmountCol: "Amount",
		TypeCol:   "Type",
		MemoCol:   "Memo",
	},
	{
		Name:      "generic",
		EntityCol: "Name",
		DateCol:   "Date",
		AmountCol: "Amount",
	},
}
