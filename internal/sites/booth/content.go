package booth

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"boothx/internal/export"
	"boothx/internal/sales"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

// SalesContent holds the rows built from one sales page and implements scraper.Content.
type SalesContent struct {
	title   string
	url     string
	records []sales.OrderRecord
	rows    [][]string
	writer  export.WorkbookWriter
}

// NewSalesContent creates a SalesContent. rows must start with the header row.
func NewSalesContent(title, url string, records []sales.OrderRecord, rows [][]string, writer export.WorkbookWriter) *SalesContent {
	return &SalesContent{
		title:   title,
		url:     url,
		records: records,
		rows:    rows,
		writer:  writer,
	}
}

// Collect extracts, validates and lays out the records of p.
func Collect(p *Page, single bool, writer export.WorkbookWriter) (*SalesContent, error) {
	doc, err := p.Document()
	if err != nil {
		return nil, err
	}
	records, err := sales.Collect(doc, single)
	if err != nil {
		return nil, err
	}
	rows, err := sales.BuildRows(records)
	if err != nil {
		return nil, err
	}
	return NewSalesContent(p.Title, p.URL, records, rows, writer), nil
}

func (c *SalesContent) Title() string { return c.title }

// Rows returns the header and data rows.
func (c *SalesContent) Rows() [][]string { return c.rows }

// Records returns the records the rows were built from.
func (c *SalesContent) Records() []sales.OrderRecord { return c.records }

// ToXLSX returns the workbook bytes.
func (c *SalesContent) ToXLSX() ([]byte, error) {
	if c.writer == nil {
		return nil, fmt.Errorf("no workbook writer configured")
	}
	return c.writer.Write(c.rows, sales.SheetName)
}

func (c *SalesContent) ToCSV() (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(c.rows); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.String(), nil
}

func (c *SalesContent) ToHTML() (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>\n<table>\n", html.EscapeString(c.title)))
	for i, row := range c.rows {
		tag := "td"
		if i == 0 {
			sb.WriteString("<thead>\n")
			tag = "th"
		} else if i == 1 {
			sb.WriteString("<tbody>\n")
		}
		sb.WriteString("<tr>")
		for _, cell := range row {
			sb.WriteString(fmt.Sprintf("<%s>%s</%s>", tag, html.EscapeString(cell), tag))
		}
		sb.WriteString("</tr>\n")
		if i == 0 {
			sb.WriteString("</thead>\n")
		}
	}
	if len(c.rows) > 1 {
		sb.WriteString("</tbody>\n")
	}
	sb.WriteString("</table>\n")
	return sb.String(), nil
}

// ToMarkdown renders the HTML table through html-to-markdown's table plugin.
func (c *SalesContent) ToMarkdown() (string, error) {
	h, err := c.ToHTML()
	if err != nil {
		return "", err
	}
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.Table())
	markdown, err := converter.ConvertString(h)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	return markdown, nil
}

// ToText delegates to ToMarkdown.
func (c *SalesContent) ToText() (string, error) {
	return c.ToMarkdown()
}

func (c *SalesContent) ToJSON() ([]byte, error) {
	return json.MarshalIndent(struct {
		Title   string              `json:"title"`
		URL     string              `json:"url"`
		Records []sales.OrderRecord `json:"records"`
		Rows    [][]string          `json:"rows"`
	}{
		Title:   c.title,
		URL:     c.url,
		Records: c.records,
		Rows:    c.rows,
	}, "", "  ")
}
