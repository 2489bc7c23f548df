// Package cmd implements the taskdeck CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/activity"
	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/output"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/storage"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagFormat  string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "File-backed task tracker",
	Long: `taskdeck tracks tasks in a single local store file (JSON or XML),
with a backup taken before every rewrite. Run taskdeck without arguments
to open the interactive list.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to taskdeck directory")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "storage format override (json or xml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// Handle SilentError — exit with code, no output.
	var silent *apperr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	// Determine if JSON mode is active.
	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv("TASKDECK_OUTPUT") == "json"
	}

	if jsonMode {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			output.JSONError(os.Stdout, appErr.Code, appErr.Message, appErr.Details)
			os.Exit(appErr.ExitCode())
		}
		// Unknown error — wrap as INTERNAL_ERROR.
		output.JSONError(os.Stdout, apperr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, err)
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		os.Exit(appErr.ExitCode())
	}
	os.Exit(1)
}

// defaultHomeDir returns the path to ~/.config/taskdeck.
func defaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config/taskdeck"), nil
}

// resolveDir returns the absolute path to the taskdeck directory.
// Falls back to ~/.config/taskdeck if no store is found in the current
// directory tree.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	dir, err := config.FindDir(cwd)
	if err == nil {
		return dir, nil
	}

	// Fall back to ~/.config/taskdeck.
	return defaultHomeDir()
}

// loadConfig finds and loads the taskdeck config.
// If the resolved directory is ~/.config/taskdeck and it doesn't exist
// yet, it is auto-created with default settings.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err == nil {
		return cfg, nil
	}

	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}
	homeDir, homeErr := defaultHomeDir()
	if homeErr != nil || dir != homeDir {
		return nil, apperr.New(apperr.StoreNotFound, err.Error()).
			WithDetails(map[string]any{"dir": dir})
	}

	return config.Init(homeDir, "")
}

// openService loads the config and constructs the service over the
// configured (or --format overridden) repository.
func openService() (*service.Service, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	format := cfg.Storage.Format
	if flagFormat != "" {
		format = flagFormat
	}

	repo, err := storage.New(format, cfg.Dir())
	if err != nil {
		return nil, nil, err
	}

	return service.New(repo), cfg, nil
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// logActivity appends an entry to the activity log. Errors are silently
// discarded because logging should never fail a command.
func logActivity(cfg *config.Config, action, taskID, title string, fields ...string) {
	activity.LogMutation(cfg.Dir(), action, taskID, title, fields...)
}
