package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/output"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle ID",
	Aliases: []string{"done"},
	Short:   "Toggle task completion",
	Long:    `Flips the completion state of a task.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(_ *cobra.Command, args []string) error {
	svc, cfg, err := openService()
	if err != nil {
		return err
	}

	id, err := svc.ResolveID(args[0])
	if err != nil {
		return err
	}

	t, err := svc.Toggle(id)
	if err != nil {
		return err
	}

	logActivity(cfg, "toggle", t.ID, t.Title, "completed")

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	status := "pending"
	if t.Completed {
		status = "completed"
	}
	output.Messagef(os.Stdout, "Task %s marked %s: %s", t.ID, status, t.Title)
	return nil
}
