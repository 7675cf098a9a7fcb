package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's progress",
	Long:  `Display today's completed sessions and the configured timer settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return outputStatusJSON()
		}

		ctx := context.Background()

		stats, err := timerService.TodayStats(ctx)
		if err != nil {
			return fmt.Errorf("failed to get today's stats: %w", err)
		}

		settings := appConfig.ToSettings()
		fmt.Printf("%s focusdial\n\n", appConfig.Theme.IconApp)
		fmt.Printf("%s Today:\n", appConfig.Theme.IconStats)
		fmt.Printf("   Focus Sessions: %d\n", stats.FocusSessions)
		fmt.Printf("   Breaks Taken: %d\n", stats.BreaksTaken)
		fmt.Printf("   Total Focus Time: %s\n", stats.TotalFocusTime)
		fmt.Printf("\nSettings:\n")
		fmt.Printf("   Focus: %dm / Short break: %dm / Long break: %dm\n",
			settings.FocusMinutes, settings.ShortBreakMinutes, settings.LongBreakMinutes)
		fmt.Printf("   Long break after every %d focus sessions\n", settings.LongBreakInterval)

		return nil
	},
}

// outputStatusJSON outputs the status in JSON format
func outputStatusJSON() error {
	ctx := context.Background()

	stats, err := timerService.TodayStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get today's stats: %w", err)
	}

	settings := appConfig.ToSettings()
	result := map[string]interface{}{
		"today_stats": map[string]interface{}{
			"focus_sessions":   stats.FocusSessions,
			"breaks_taken":     stats.BreaksTaken,
			"total_focus_time": stats.TotalFocusTime.String(),
		},
		"settings": map[string]interface{}{
			"focus_minutes":       settings.FocusMinutes,
			"short_break_minutes": settings.ShortBreakMinutes,
			"long_break_minutes":  settings.LongBreakMinutes,
			"long_break_interval": settings.LongBreakInterval,
			"auto_start_breaks":   settings.AutoStartBreaks,
			"auto_start_focus":    settings.AutoStartFocus,
		},
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}
