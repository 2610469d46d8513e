package sales

import "github.com/PuerkitoBio/goquery"

// Selectors for the seller dashboard markup.
const (
	PanelSelector = ".co-expansion-panel.js-accordion-content.u-pt-300.u-pb-300"
	RowSelector   = ".js-accordion-body .lo-grid.co-breakdown-table-row"
	CellSelector  = ".lo-grid-cell, .lo-u-auto"
)

// DOMPanel adapts a goquery selection of one summary panel.
type DOMPanel struct {
	sel *goquery.Selection
}

// Rows returns the panel's breakdown rows in document order.
func (p DOMPanel) Rows() []LabeledRow {
	var rows []LabeledRow
	p.sel.Find(RowSelector).Each(func(_ int, s *goquery.Selection) {
		rows = append(rows, DOMRow{cells: s.Find(CellSelector)})
	})
	return rows
}

// DOMRow adapts the cells of one breakdown row.
type DOMRow struct {
	cells *goquery.Selection
}

func (r DOMRow) Cells() int {
	return r.cells.Length()
}

func (r DOMRow) Label() string {
	return r.cells.Eq(0).Text()
}

func (r DOMRow) Value() string {
	return r.cells.Eq(1).Text()
}

func (r DOMRow) Link() (string, bool) {
	a := r.cells.Eq(1).Find("a").First()
	if a.Length() == 0 {
		return "", false
	}
	return a.Text(), true
}

// FindPanels returns every summary panel in doc, in document order.
func FindPanels(doc *goquery.Document) []Panel {
	var panels []Panel
	doc.Find(PanelSelector).Each(func(_ int, s *goquery.Selection) {
		panels = append(panels, DOMPanel{sel: s})
	})
	return panels
}

// FirstPanel returns the first summary panel, or ErrPanelNotFound.
func FirstPanel(doc *goquery.Document) (Panel, error) {
	sel := doc.Find(PanelSelector).First()
	if sel.Length() == 0 {
		return nil, ErrPanelNotFound
	}
	return DOMPanel{sel: sel}, nil
}
