package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/ffufai/internal/config"
	"github.com/nao1215/ffufai/internal/database"
	"github.com/nao1215/ffufai/internal/model"
	"github.com/nao1215/ffufai/internal/report"
)

// newHistoryCmd creates the history command.
func newHistoryCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past extension suggestions",
		Long: `History lists the extension suggestions stored in the local database,
newest first. Entries served from the cache are marked as such.

Examples:
  # Show the last 20 suggestions
  ffufai history

  # Show suggestions for one URL as Markdown
  ffufai history --url https://example.com/FUZZ --markdown

  # Remove suggestions older than 30 days
  ffufai history --prune 720h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryCmd(cmd, env)
		},
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("markdown", false, "Output in Markdown format")
	cmd.Flags().Int("limit", 20, "Maximum number of entries to show (0 for all)")
	cmd.Flags().String("url", "", "Only show suggestions for this URL")
	cmd.Flags().Duration("prune", 0, "Delete suggestions older than this duration, then list the rest")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, env *environment) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	url, err := cmd.Flags().GetString("url")
	if err != nil {
		return err
	}
	prune, err := cmd.Flags().GetDuration("prune")
	if err != nil {
		return err
	}

	format := report.FormatText
	switch {
	case asJSON:
		format = report.FormatJSON
	case asMarkdown:
		format = report.FormatMarkdown
	}
	writer := report.NewWriter(format, cmd.OutOrStdout())

	dataDir := env.dataDir
	if dataDir == "" {
		dataDir = config.XDGDataDir()
	}

	db, err := database.Open(dataDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if errors.Is(err, database.ErrDatabaseNotFound) {
		_, err = writer.Write([]model.Suggestion{})
		return err
	}
	if err != nil {
		return err
	}
	defer db.Close()

	if prune > 0 {
		n, err := db.DeleteSuggestionsBefore(cmd.Context(), time.Now().Add(-prune))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Removed %d suggestion(s)\n", n)
	}

	entries, err := db.ListSuggestions(cmd.Context(), url, limit)
	if err != nil {
		return err
	}

	_, err = writer.Write(entries)
	return err
}
