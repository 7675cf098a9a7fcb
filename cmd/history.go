package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvidx/focusdial/internal/domain"
)

var (
	historyDays   int
	historyFilter string
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed sessions",
	Long: `List the sessions completed over the past days, newest first.
Use --filter to fuzzy-match against session notes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var records []*domain.SessionRecord
		var err error
		if historyFilter != "" {
			records, err = timerService.SearchHistory(ctx, historyFilter)
		} else {
			records, err = timerService.History(ctx, historyDays)
		}
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		if jsonOutput {
			return outputHistoryJSON(records)
		}

		if len(records) == 0 {
			fmt.Println("No sessions recorded.")
			return nil
		}

		for _, r := range records {
			line := fmt.Sprintf("%s  %-11s  %5.0fm",
				r.CompletedAt.Format("2006-01-02 15:04"),
				r.Type.Label(),
				r.Duration.Minutes())
			if r.GitBranch != "" {
				line += fmt.Sprintf("  [%s]", r.GitBranch)
			}
			if r.Note != "" {
				line += "  " + r.Note
			}
			fmt.Println(line)
		}
		return nil
	},
}

// outputHistoryJSON outputs history records in JSON format
func outputHistoryJSON(records []*domain.SessionRecord) error {
	items := make([]map[string]interface{}, 0, len(records))
	for _, r := range records {
		item := map[string]interface{}{
			"id":           r.ID,
			"type":         string(r.Type),
			"duration":     r.Duration.String(),
			"started_at":   r.StartedAt.Format("2006-01-02T15:04:05"),
			"completed_at": r.CompletedAt.Format("2006-01-02T15:04:05"),
		}
		if r.GitBranch != "" {
			item["git_branch"] = r.GitBranch
			item["git_commit"] = r.GitCommit
			item["git_repository"] = r.GitRepository
		}
		if r.Note != "" {
			item["note"] = r.Note
		}
		items = append(items, item)
	}

	jsonData, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

func init() {
	historyCmd.Flags().IntVar(&historyDays, "days", 7, "How many days back to list")
	historyCmd.Flags().StringVar(&historyFilter, "filter", "", "Fuzzy-match sessions by note")
}
