// Package sales turns the order-summary panels of the BOOTH seller sales page
// into bookkeeping rows.
package sales

import "errors"

var (
	// ErrPanelNotFound is returned by the single-record path when the page has no summary panel.
	ErrPanelNotFound = errors.New("order summary panel not found")
	// ErrNoRecords is returned when there is nothing to export.
	ErrNoRecords = errors.New("no order records to export")
	// ErrNotSalesPage is returned when a page fails the activation gate.
	ErrNotSalesPage = errors.New("not a monthly sales page")
)

// OrderRecord is one order's summary as read from a panel.
// Subtotal and Fee keep their digits as text; they are never parsed as numbers.
type OrderRecord struct {
	OrderNumber string `json:"orderNumber"`
	OrderDate   string `json:"orderDate"`
	Subtotal    string `json:"subtotal"`
	Fee         string `json:"fee"`
}

// Valid reports whether the record carries both an order number and an order date.
func (r OrderRecord) Valid() bool {
	return r.OrderNumber != "" && r.OrderDate != ""
}

// Notice returns the user-facing message for the anticipated failures of an export.
func Notice(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrPanelNotFound):
		return "対象のパネルが見つかりません。ページ構造が変更されている可能性があります。", true
	case errors.Is(err, ErrNoRecords):
		return "エクスポートできる注文が見つかりません。", true
	case errors.Is(err, ErrNotSalesPage):
		return "売上ページ (/sales/年/月) ではないためエクスポートできません。", true
	default:
		return "", false
	}
}
