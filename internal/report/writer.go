package report

import (
	"io"

	"github.com/nao1215/ffufai/internal/model"
)

// Writer writes a list of stored suggestions.
type Writer interface {
	// Write outputs entries, newest first as given.
	// Returns the number of bytes written and any error encountered.
	Write(entries []model.Suggestion) (int, error)
}

// Format names an output format of the history command.
type Format string

const (
	// FormatText is plain text.
	FormatText Format = "text"
	// FormatMarkdown is Markdown.
	FormatMarkdown Format = "markdown"
	// FormatJSON is JSON.
	FormatJSON Format = "json"
)

// NewWriter returns the writer for format. Unknown formats fall back to text.
func NewWriter(format Format, output io.Writer) Writer {
	switch format {
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint())
	default:
		return NewSimpleWriter(output)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// timeLayout is used by the text and Markdown writers.
const timeLayout = "2006-01-02 15:04:05 MST"

// source describes where a suggestion came from.
func source(s model.Suggestion) string {
	if s.Cached {
		return "cache"
	}
	return "model"
}

// extensionsText returns the list in ffuf's -e format, or "-" when empty.
func extensionsText(exts model.Extensions) string {
	if len(exts) == 0 {
		return "-"
	}
	return exts.Join()
}
