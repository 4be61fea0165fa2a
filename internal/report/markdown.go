package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/nao1215/ffufai/internal/model"
)

// MarkdownWriter outputs the history as a Markdown table.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs entries in Markdown format.
func (w *MarkdownWriter) Write(entries []model.Suggestion) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("ffufai Suggestion History")
	md.PlainText("")

	if len(entries) == 0 {
		md.PlainText("No suggestions recorded.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			strconv.FormatInt(e.ID, 10),
			e.CreatedAt.Local().Format(timeLayout),
			"`" + e.URL + "`",
			e.Provider,
			e.Model,
			"`" + extensionsText(e.Extensions) + "`",
			source(e),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"ID", "Date", "URL", "Provider", "Model", "Extensions", "Source"},
		Rows:   rows,
	})
	md.PlainText("")
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*%d suggestion(s) generated by [ffufai](https://github.com/nao1215/ffufai)*", len(entries))

	return len(md.String()), md.Build()
}
