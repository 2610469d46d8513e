package formatter

import (
	"fmt"

	"boothx/internal/scraper"
)

// Formats lists every value accepted by Format.
var Formats = []string{"xlsx", "csv", "json", "markdown", "text", "html"}

func Format(content scraper.Content, format string) ([]byte, error) {
	var (
		s   string
		err error
	)
	switch format {
	case "xlsx":
		return content.ToXLSX()
	case "json":
		return content.ToJSON()
	case "html":
		s, err = content.ToHTML()
	case "text":
		s, err = content.ToText()
	case "markdown":
		s, err = content.ToMarkdown()
	case "csv":
		s, err = content.ToCSV()
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Extension returns the file extension used for format.
func Extension(format string) string {
	switch format {
	case "markdown":
		return ".md"
	case "text":
		return ".txt"
	default:
		return "." + format
	}
}
