// Package cmd provides the CLI commands for the focusdial application.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dvidx/focusdial/internal/adapters/git"
	"github.com/dvidx/focusdial/internal/adapters/notification"
	"github.com/dvidx/focusdial/internal/adapters/schedule"
	"github.com/dvidx/focusdial/internal/adapters/storage"
	"github.com/dvidx/focusdial/internal/adapters/tui"
	"github.com/dvidx/focusdial/internal/config"
	"github.com/dvidx/focusdial/internal/ports"
	"github.com/dvidx/focusdial/internal/services"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	jsonOutput bool

	// Global dependencies
	storageAdapter ports.Storage
	timerService   *services.TimerService
	gitDetector    ports.GitDetector
	notifier       *notification.Notifier
	appConfig      *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "focusdial",
	Short: "focusdial - A dial-based focus timer for the terminal",
	Long: `focusdial is a single-screen terminal focus timer. Turn the dial to
pick a duration, press space, and work. Finished focus sessions rotate
into short breaks, with a long break after every few focus sessions.

Run "focusdial" with no arguments to open the dial.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runDial,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.focusdial/focusdial.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("focusdial\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(resetCmd)
}

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	// Load configuration
	var err error
	appConfig, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		appConfig = config.DefaultConfig()
	}

	// Initialize notifier
	notifier = notification.New(&appConfig.Notifications)

	// Determine database path
	if dbPath == "" {
		dbPath = config.GetDBPath(appConfig)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// Initialize storage
	storageAdapter, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize git detector
	gitDetector = git.NewDetector()

	workingDir, _ := os.Getwd()

	// Initialize the timer service
	timerService = services.NewTimerService(
		appConfig.ToSettings(),
		schedule.New(),
		notifier,
		storageAdapter,
		gitDetector,
		workingDir,
	)

	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if timerService != nil {
		timerService.Close()
	}
	if storageAdapter != nil {
		return storageAdapter.Close()
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// runDial opens the dial interface for the bare "focusdial" command.
func runDial(cmd *cobra.Command, args []string) error {
	ctx := setupSignalHandler()

	app := tui.NewApp()
	return app.Run(ctx, timerService, tui.Options{
		Theme:                appConfig.Theme,
		NotificationsEnabled: notifier.IsEnabled(),
		NotificationToggle:   notifier.SetEnabled,
	})
}
