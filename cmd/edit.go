package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/output"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a task",
	Long:  `Modifies fields of an existing task. Only specified fields are changed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("description", "", "new description")
	editCmd.Flags().String("priority", "", "new priority (low, medium, high)")
	editCmd.Flags().Bool("complete", false, "mark task completed")
	editCmd.Flags().Bool("incomplete", false, "mark task pending")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	svc, cfg, err := openService()
	if err != nil {
		return err
	}

	id, err := svc.ResolveID(args[0])
	if err != nil {
		return err
	}

	req, err := buildUpdateRequest(cmd)
	if err != nil {
		return err
	}

	t, err := svc.Update(id, req)
	if err != nil {
		return err
	}

	logActivity(cfg, "edit", t.ID, t.Title, changedFields(req)...)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Updated task %s: %s", t.ID, t.Title)
	return nil
}

// buildUpdateRequest translates edit flags into a partial update.
func buildUpdateRequest(cmd *cobra.Command) (service.UpdateRequest, error) {
	var req service.UpdateRequest

	if cmd.Flags().Changed("title") {
		v, _ := cmd.Flags().GetString("title")
		req.Title = &v
	}
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		req.Description = &v
	}
	if cmd.Flags().Changed("priority") {
		v, _ := cmd.Flags().GetString("priority")
		p, err := task.ParsePriority(v)
		if err != nil {
			return req, err
		}
		req.Priority = &p
	}

	complete, _ := cmd.Flags().GetBool("complete")
	incomplete, _ := cmd.Flags().GetBool("incomplete")
	if complete && incomplete {
		return req, apperr.New(apperr.InvalidInput,
			"--complete and --incomplete are mutually exclusive")
	}
	if complete {
		v := true
		req.Completed = &v
	}
	if incomplete {
		v := false
		req.Completed = &v
	}

	return req, nil
}

// changedFields names the task fields an update request touches, for
// the activity log.
func changedFields(req service.UpdateRequest) []string {
	var fields []string
	if req.Title != nil {
		fields = append(fields, "title")
	}
	if req.Description != nil {
		fields = append(fields, "description")
	}
	if req.Priority != nil {
		fields = append(fields, "priority")
	}
	if req.Completed != nil {
		fields = append(fields, "completed")
	}
	return fields
}
