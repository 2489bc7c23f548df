package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/output"
)

var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long:    `Removes a task from the store. Prompts for confirmation in interactive mode.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	svc, cfg, err := openService()
	if err != nil {
		return err
	}

	id, err := svc.ResolveID(args[0])
	if err != nil {
		return err
	}

	t, err := svc.Get(id)
	if err != nil {
		return err
	}

	// Require confirmation in TTY mode unless --yes.
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return apperr.New(apperr.ConfirmationReq,
				"cannot prompt for confirmation (not a terminal); use --yes")
		}
		fmt.Fprintf(os.Stderr, "Delete task %q? [y/N] ", t.Title)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			// Message already written; exit nonzero so scripts can
			// tell a canceled delete from a completed one.
			fmt.Fprintln(os.Stderr, "Canceled.")
			return &apperr.SilentError{Code: 1}
		}
	}

	removed, err := svc.Delete(id)
	if err != nil {
		return err
	}

	if removed {
		logActivity(cfg, "delete", t.ID, t.Title)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"deleted": removed,
			"id":      t.ID,
			"title":   t.Title,
		})
	}

	if removed {
		output.Messagef(os.Stdout, "Deleted task %s: %s", t.ID, t.Title)
	} else {
		output.Messagef(os.Stdout, "Task %s was already gone", t.ID)
	}
	return nil
}
