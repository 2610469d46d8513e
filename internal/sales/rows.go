package sales

// Column values fixed by the bookkeeping import format.
const (
	KindIncome     = "収入"
	AccountSales   = "売上高"
	AccountFee     = "支払手数料"
	TaxCategory    = "課対仕入10%"
	Counterparty   = "Booth"
	SheetName      = "Sheet1"
	WorkbookSuffix = ".xlsx"
)

// Header is the first row of every export.
var Header = []string{"収支区分", "発生日", "勘定科目", "税区分", "金額", "取引先", "備考"}

// BuildRows lays records out as the header followed by an income row and a fee row per record.
func BuildRows(records []OrderRecord) ([][]string, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	rows := make([][]string, 0, 1+2*len(records))
	rows = append(rows, append([]string(nil), Header...))
	for _, r := range records {
		rows = append(rows, IncomeRow(r), FeeRow(r))
	}
	return rows, nil
}

// IncomeRow is the sales line of r.
func IncomeRow(r OrderRecord) []string {
	return []string{KindIncome, NormalizeDate(r.OrderDate), AccountSales, TaxCategory, r.Subtotal, Counterparty, r.OrderNumber}
}

// FeeRow is the transaction-fee line of r. The amount is negated textually.
func FeeRow(r OrderRecord) []string {
	amount := ""
	if r.Fee != "" {
		amount = "-" + r.Fee
	}
	return []string{"", "", AccountFee, TaxCategory, amount, Counterparty, ""}
}
