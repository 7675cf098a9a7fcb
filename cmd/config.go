package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dvidx/focusdial/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit timer settings",
	Long:  `Show the current configuration, or change a setting with "config set".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println()
		fmt.Println("  Current configuration:")
		fmt.Println()
		fmt.Printf("    focus_minutes         %d\n", appConfig.Timer.FocusMinutes)
		fmt.Printf("    short_break_minutes   %d\n", appConfig.Timer.ShortBreakMinutes)
		fmt.Printf("    long_break_minutes    %d\n", appConfig.Timer.LongBreakMinutes)
		fmt.Printf("    long_break_interval   %d\n", appConfig.Timer.LongBreakInterval)
		fmt.Printf("    auto_start_breaks     %v\n", appConfig.Timer.AutoStartBreaks)
		fmt.Printf("    auto_start_focus      %v\n", appConfig.Timer.AutoStartFocus)
		notifStatus := "off"
		if appConfig.Notifications.Enabled {
			notifStatus = "on"
			if appConfig.Notifications.Sound {
				notifStatus = "on (with sound)"
			}
		}
		fmt.Printf("    notifications         %s\n", notifStatus)
		fmt.Println()
		fmt.Println(`  Change a value with "focusdial config set <key> <value>".`)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a timer or notification setting and save it to the config file.

Keys: focus_minutes, short_break_minutes, long_break_minutes,
long_break_interval, auto_start_breaks, auto_start_focus,
notifications, sound`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := strings.ToLower(args[0])
		value := args[1]

		if err := applyConfigValue(appConfig, key, value); err != nil {
			return err
		}
		if err := config.Save(appConfig); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Printf("Set %s to %s.\n", key, value)
		return nil
	},
}

// applyConfigValue sets a single configuration key from its string form.
func applyConfigValue(cfg *config.Config, key, value string) error {
	parseMinutes := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid value %q: expected a number of minutes", value)
		}
		return n, nil
	}
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid value %q: expected true or false", value)
		}
		return b, nil
	}

	switch key {
	case "focus_minutes":
		n, err := parseMinutes()
		if err != nil {
			return err
		}
		cfg.Timer.FocusMinutes = n
	case "short_break_minutes":
		n, err := parseMinutes()
		if err != nil {
			return err
		}
		cfg.Timer.ShortBreakMinutes = n
	case "long_break_minutes":
		n, err := parseMinutes()
		if err != nil {
			return err
		}
		cfg.Timer.LongBreakMinutes = n
	case "long_break_interval":
		n, err := parseMinutes()
		if err != nil {
			return err
		}
		cfg.Timer.LongBreakInterval = n
	case "auto_start_breaks":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.Timer.AutoStartBreaks = b
	case "auto_start_focus":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.Timer.AutoStartFocus = b
	case "notifications":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.Notifications.Enabled = b
	case "sound":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.Notifications.Sound = b
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configSetCmd)
}
