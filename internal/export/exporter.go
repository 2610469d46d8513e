package export

import (
	"fmt"
	"io"
	"os"
)

// Exporter turns a row set into a saved workbook.
type Exporter struct {
	Writer WorkbookWriter
	Saver  FileSaver
	Sheet  string
	Ext    string // e.g. ".xlsx"
}

// Filename derives the output name from a page title. The title is used as-is.
func (e *Exporter) Filename(title string) string {
	return title + e.Ext
}

// Export writes rows under a name derived from title and returns that name.
func (e *Exporter) Export(rows [][]string, title string) (string, error) {
	name := e.Filename(title)
	if err := e.ExportAs(rows, name); err != nil {
		return "", err
	}
	return name, nil
}

// ExportAs writes rows under filename.
func (e *Exporter) ExportAs(rows [][]string, filename string) error {
	data, err := e.Writer.Write(rows, e.Sheet)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	if err := e.Saver.Save(data, filename); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Notifier shows a message to the person running the export.
type Notifier interface {
	Notify(msg string)
}

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func(msg string)

func (f NotifyFunc) Notify(msg string) { f(msg) }

// WriterNotifier prints notices to W, one per line.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(msg string) {
	fmt.Fprintln(n.W, msg)
}

// StderrNotifier prints notices to standard error.
func StderrNotifier() Notifier {
	return WriterNotifier{W: os.Stderr}
}
