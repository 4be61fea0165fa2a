package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/ffufai/internal/model"
)

// SimpleWriter outputs the history as plain text.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs entries in human-readable format.
func (w *SimpleWriter) Write(entries []model.Suggestion) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                    FFUFAI SUGGESTION HISTORY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	if len(entries) == 0 {
		sb.WriteString("  No suggestions recorded\n")
		return w.output.Write([]byte(sb.String()))
	}

	for _, e := range entries {
		fmt.Fprintf(&sb, "[%d] %s\n", e.ID, e.CreatedAt.Local().Format(timeLayout))
		fmt.Fprintf(&sb, "  URL:        %s\n", e.URL)
		fmt.Fprintf(&sb, "  Provider:   %s (%s)\n", e.Provider, e.Model)
		fmt.Fprintf(&sb, "  Extensions: %s\n", extensionsText(e.Extensions))
		fmt.Fprintf(&sb, "  Source:     %s\n", source(e))
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%d suggestion(s)\n", len(entries))

	return w.output.Write([]byte(sb.String()))
}
