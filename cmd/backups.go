package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/fileio"
	"github.com/taskdeck/taskdeck/internal/output"
	"github.com/taskdeck/taskdeck/internal/storage"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List store backups",
	Long: `Lists the backup files written for the active store. A backup is
taken before every rewrite and never deleted automatically; prune old
ones by hand when disk space matters.`,
	RunE: runBackups,
}

func init() {
	rootCmd.AddCommand(backupsCmd)
}

func runBackups(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format := cfg.Storage.Format
	if flagFormat != "" {
		format = flagFormat
	}

	repo, err := storage.New(format, cfg.Dir())
	if err != nil {
		return err
	}

	backups, err := fileio.ListBackups(repo.Path())
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		if backups == nil {
			backups = []string{}
		}
		return output.JSON(os.Stdout, backups)
	}

	if len(backups) == 0 {
		output.Messagef(os.Stdout, "No backups for %s", repo.Path())
		return nil
	}

	for _, b := range backups {
		output.Messagef(os.Stdout, "%s", filepath.Base(b))
	}
	output.Messagef(os.Stdout, "%d backup(s) in %s", len(backups), filepath.Dir(repo.Path()))
	return nil
}
