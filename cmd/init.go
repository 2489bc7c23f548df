package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new task store",
	Long:  `Creates a taskdeck directory with config.yml and an empty store file.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().String("storage", "", "storage format (json or xml; default json)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	// Check if already initialized.
	if _, err := os.Stat(filepath.Join(absDir, config.ConfigFileName)); err == nil {
		return apperr.Newf(apperr.StoreExists, "store already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	format, _ := cmd.Flags().GetString("storage")
	if format == "" && flagFormat != "" {
		format = flagFormat
	}

	cfg, err := config.Init(absDir, format)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status": "initialized",
			"dir":    absDir,
			"format": cfg.Storage.Format,
			"config": cfg.ConfigPath(),
		})
	}

	output.Messagef(os.Stdout, "Initialized task store in %s", absDir)
	output.Messagef(os.Stdout, "  Config: %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Format: %s", cfg.Storage.Format)
	return nil
}
