// Package config provides configuration management for focusdial.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/dvidx/focusdial/internal/domain"
)

// Config holds all configuration for the focusdial application.
type Config struct {
	Timer         TimerConfig        `mapstructure:"timer"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// TimerConfig holds the interval durations and auto-start policy.
type TimerConfig struct {
	FocusMinutes      int  `mapstructure:"focus_minutes"`
	ShortBreakMinutes int  `mapstructure:"short_break_minutes"`
	LongBreakMinutes  int  `mapstructure:"long_break_minutes"`
	LongBreakInterval int  `mapstructure:"long_break_interval"`
	AutoStartBreaks   bool `mapstructure:"auto_start_breaks"`
	AutoStartFocus    bool `mapstructure:"auto_start_focus"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// ThemeConfig holds theme customization settings (colors and glyphs).
type ThemeConfig struct {
	ColorFocus          string `mapstructure:"color_focus"`
	ColorBreak          string `mapstructure:"color_break"`
	ColorPaused         string `mapstructure:"color_paused"`
	ColorTitle          string `mapstructure:"color_title"`
	ColorHelp           string `mapstructure:"color_help"`
	FocusGradientStart  string `mapstructure:"focus_gradient_start"`
	FocusGradientEnd    string `mapstructure:"focus_gradient_end"`
	BreakGradientStart  string `mapstructure:"break_gradient_start"`
	BreakGradientEnd    string `mapstructure:"break_gradient_end"`
	PausedGradientStart string `mapstructure:"paused_gradient_start"`
	PausedGradientEnd   string `mapstructure:"paused_gradient_end"`
	DialFilled          string `mapstructure:"dial_filled"`
	DialEmpty           string `mapstructure:"dial_empty"`
	DialPointer         string `mapstructure:"dial_pointer"`
	IconApp             string `mapstructure:"icon_app"`
	IconStats           string `mapstructure:"icon_stats"`
	IconPaused          string `mapstructure:"icon_paused"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorFocus:          "#E0556F",
		ColorBreak:          "#4ECDC4",
		ColorPaused:         "#6B7280",
		ColorTitle:          "#6B7280",
		ColorHelp:           "#95A5A6",
		FocusGradientStart:  "#E0556F",
		FocusGradientEnd:    "#F2994A",
		BreakGradientStart:  "#4ECDC4",
		BreakGradientEnd:    "#2ECC71",
		PausedGradientStart: "#6B7280",
		PausedGradientEnd:   "#4B5563",
		DialFilled:          "●",
		DialEmpty:           "○",
		DialPointer:         "◆",
		IconApp:             "🍅",
		IconStats:           "📊",
		IconPaused:          "⏸",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			FocusMinutes:      25,
			ShortBreakMinutes: 5,
			LongBreakMinutes:  15,
			LongBreakInterval: 4,
			AutoStartBreaks:   false,
			AutoStartFocus:    false,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Storage: StorageConfig{
			DataDir: "~/.focusdial",
		},
		Theme: DefaultThemeConfig(),
	}
}

// ToSettings converts the timer section to normalized domain settings.
func (c *Config) ToSettings() domain.Settings {
	return domain.Settings{
		FocusMinutes:      c.Timer.FocusMinutes,
		ShortBreakMinutes: c.Timer.ShortBreakMinutes,
		LongBreakMinutes:  c.Timer.LongBreakMinutes,
		LongBreakInterval: c.Timer.LongBreakInterval,
		AutoStartBreaks:   c.Timer.AutoStartBreaks,
		AutoStartFocus:    c.Timer.AutoStartFocus,
	}.Normalized()
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.focusdial" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".focusdial")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("timer.focus_minutes", cfg.Timer.FocusMinutes)
	viper.Set("timer.short_break_minutes", cfg.Timer.ShortBreakMinutes)
	viper.Set("timer.long_break_minutes", cfg.Timer.LongBreakMinutes)
	viper.Set("timer.long_break_interval", cfg.Timer.LongBreakInterval)
	viper.Set("timer.auto_start_breaks", cfg.Timer.AutoStartBreaks)
	viper.Set("timer.auto_start_focus", cfg.Timer.AutoStartFocus)
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("notifications.sound", cfg.Notifications.Sound)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("theme.color_focus", cfg.Theme.ColorFocus)
	viper.Set("theme.color_break", cfg.Theme.ColorBreak)
	viper.Set("theme.color_paused", cfg.Theme.ColorPaused)
	viper.Set("theme.color_title", cfg.Theme.ColorTitle)
	viper.Set("theme.color_help", cfg.Theme.ColorHelp)
	viper.Set("theme.focus_gradient_start", cfg.Theme.FocusGradientStart)
	viper.Set("theme.focus_gradient_end", cfg.Theme.FocusGradientEnd)
	viper.Set("theme.break_gradient_start", cfg.Theme.BreakGradientStart)
	viper.Set("theme.break_gradient_end", cfg.Theme.BreakGradientEnd)
	viper.Set("theme.paused_gradient_start", cfg.Theme.PausedGradientStart)
	viper.Set("theme.paused_gradient_end", cfg.Theme.PausedGradientEnd)
	viper.Set("theme.dial_filled", cfg.Theme.DialFilled)
	viper.Set("theme.dial_empty", cfg.Theme.DialEmpty)
	viper.Set("theme.dial_pointer", cfg.Theme.DialPointer)
	viper.Set("theme.icon_app", cfg.Theme.IconApp)
	viper.Set("theme.icon_stats", cfg.Theme.IconStats)
	viper.Set("theme.icon_paused", cfg.Theme.IconPaused)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".focusdial", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "focusdial.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("timer.focus_minutes", 25)
	viper.SetDefault("timer.short_break_minutes", 5)
	viper.SetDefault("timer.long_break_minutes", 15)
	viper.SetDefault("timer.long_break_interval", 4)
	viper.SetDefault("timer.auto_start_breaks", false)
	viper.SetDefault("timer.auto_start_focus", false)
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("notifications.sound", true)
	viper.SetDefault("storage.data_dir", "~/.focusdial")

	defaults := DefaultThemeConfig()
	viper.SetDefault("theme.color_focus", defaults.ColorFocus)
	viper.SetDefault("theme.color_break", defaults.ColorBreak)
	viper.SetDefault("theme.color_paused", defaults.ColorPaused)
	viper.SetDefault("theme.color_title", defaults.ColorTitle)
	viper.SetDefault("theme.color_help", defaults.ColorHelp)
	viper.SetDefault("theme.focus_gradient_start", defaults.FocusGradientStart)
	viper.SetDefault("theme.focus_gradient_end", defaults.FocusGradientEnd)
	viper.SetDefault("theme.break_gradient_start", defaults.BreakGradientStart)
	viper.SetDefault("theme.break_gradient_end", defaults.BreakGradientEnd)
	viper.SetDefault("theme.paused_gradient_start", defaults.PausedGradientStart)
	viper.SetDefault("theme.paused_gradient_end", defaults.PausedGradientEnd)
	viper.SetDefault("theme.dial_filled", defaults.DialFilled)
	viper.SetDefault("theme.dial_empty", defaults.DialEmpty)
	viper.SetDefault("theme.dial_pointer", defaults.DialPointer)
	viper.SetDefault("theme.icon_app", defaults.IconApp)
	viper.SetDefault("theme.icon_stats", defaults.IconStats)
	viper.SetDefault("theme.icon_paused", defaults.IconPaused)
}
