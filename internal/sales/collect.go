package sales

import "github.com/PuerkitoBio/goquery"

// Collect extracts the records of doc.
//
// In single mode only the first panel is read and its record is kept even when
// incomplete; a page without panels yields ErrPanelNotFound. Otherwise every
// panel is read and incomplete records are dropped.
func Collect(doc *goquery.Document, single bool) ([]OrderRecord, error) {
	if single {
		p, err := FirstPanel(doc)
		if err != nil {
			return nil, err
		}
		return []OrderRecord{ExtractRecord(p)}, nil
	}
	return ExtractAll(FindPanels(doc)), nil
}
