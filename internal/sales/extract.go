package sales

import "strings"

// LabeledRow is a (label, value) pairing inside a summary panel.
type LabeledRow interface {
	// Cells is the number of cells the row exposes. Rows with fewer than two are skipped.
	Cells() int
	Label() string
	Value() string
	// Link returns the text of a hyperlink inside the value cell, if any.
	Link() (string, bool)
}

// Panel holds one order's labeled rows.
type Panel interface {
	Rows() []LabeledRow
}

type fieldRule struct {
	label string
	apply func(r *OrderRecord, row LabeledRow)
}

// fieldRules are tried in order; the first label contained in a row's label wins.
var fieldRules = []fieldRule{
	{label: "注文番号", apply: func(r *OrderRecord, row LabeledRow) {
		if link, ok := row.Link(); ok {
			r.OrderNumber = strings.TrimSpace(link)
			return
		}
		r.OrderNumber = strings.TrimSpace(row.Value())
	}},
	{label: "注文日時", apply: func(r *OrderRecord, row LabeledRow) {
		r.OrderDate = strings.TrimSpace(row.Value())
	}},
	{label: "小計", apply: func(r *OrderRecord, row LabeledRow) {
		r.Subtotal = CleanAmount(strings.TrimSpace(row.Value()))
	}},
	{label: "手数料", apply: func(r *OrderRecord, row LabeledRow) {
		r.Fee = CleanAmount(strings.TrimSpace(row.Value()))
	}},
}

// ExtractRecord reads the four known fields from p. Unknown labels are ignored.
func ExtractRecord(p Panel) OrderRecord {
	var rec OrderRecord
	for _, row := range p.Rows() {
		if row.Cells() < 2 {
			continue
		}
		label := strings.TrimSpace(row.Label())
		for _, rule := range fieldRules {
			if strings.Contains(label, rule.label) {
				rule.apply(&rec, row)
				break
			}
		}
	}
	return rec
}

// ExtractAll extracts every panel and keeps only valid records, in panel order.
func ExtractAll(panels []Panel) []OrderRecord {
	records := make([]OrderRecord, 0, len(panels))
	for _, p := range panels {
		rec := ExtractRecord(p)
		if !rec.Valid() {
			continue
		}
		records = append(records, rec)
	}
	return records
}
