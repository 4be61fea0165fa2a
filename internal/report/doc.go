// Package report writes the suggestion history kept in the database.
//
// Writers for three formats are provided:
//   - SimpleWriter: plain text for the terminal
//   - MarkdownWriter: Markdown tables for sharing in tickets and notes
//   - JSONWriter: JSON for other tools
//
// All writers implement the Writer interface.
package report
