package cmd

import (
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/output"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `Lists tasks with optional filtering, sorting, and output format control.`,
	RunE:    runList,
}

func init() {
	listCmd.Flags().Bool("completed", false, "show only completed tasks")
	listCmd.Flags().Bool("pending", false, "show only pending tasks")
	listCmd.Flags().String("priority", "", "filter by priority")
	listCmd.Flags().StringP("search", "s", "", "search tasks by title or description (case-insensitive)")
	listCmd.Flags().String("sort", "created", "sort field (created, updated, priority, title)")
	listCmd.Flags().BoolP("reverse", "r", false, "reverse sort order")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	svc, _, err := openService()
	if err != nil {
		return err
	}

	completed, _ := cmd.Flags().GetBool("completed")
	pending, _ := cmd.Flags().GetBool("pending")
	if completed && pending {
		return apperr.New(apperr.InvalidInput, "--completed and --pending are mutually exclusive")
	}

	var tasks []*task.Task
	switch {
	case completed:
		tasks, err = svc.ByStatus(true)
	case pending:
		tasks, err = svc.ByStatus(false)
	default:
		var res service.ListResult
		res, err = svc.List()
		tasks = res.Tasks
	}
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("priority"); v != "" {
		p, err := task.ParsePriority(v)
		if err != nil {
			return err
		}
		tasks = filterPriority(tasks, p)
	}

	if search, _ := cmd.Flags().GetString("search"); search != "" {
		tasks = filterSearch(tasks, search)
	}

	sortBy, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	if err := sortTasks(tasks, sortBy, reverse); err != nil {
		return err
	}

	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}

	return outputTaskList(tasks)
}

func filterPriority(tasks []*task.Task, p task.Priority) []*task.Task {
	var result []*task.Task
	for _, t := range tasks {
		if t.Priority == p {
			result = append(result, t)
		}
	}
	return result
}

func filterSearch(tasks []*task.Task, search string) []*task.Task {
	needle := strings.ToLower(search)
	var result []*task.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) {
			result = append(result, t)
		}
	}
	return result
}

// sortTasks orders tasks by the given field. The service already
// returns creation order, so "created" is a no-op.
func sortTasks(tasks []*task.Task, field string, reverse bool) error {
	var less func(a, b *task.Task) bool
	switch field {
	case "created":
		less = nil
	case "updated":
		less = func(a, b *task.Task) bool {
			au, bu := a.CreatedAt, b.CreatedAt
			if a.UpdatedAt != nil {
				au = *a.UpdatedAt
			}
			if b.UpdatedAt != nil {
				bu = *b.UpdatedAt
			}
			return au.Before(bu)
		}
	case "priority":
		less = func(a, b *task.Task) bool {
			return a.Priority.Weight() > b.Priority.Weight()
		}
	case "title":
		less = func(a, b *task.Task) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	default:
		return apperr.Newf(apperr.InvalidInput,
			"invalid --sort field %q; valid: created, updated, priority, title", field)
	}

	if less != nil {
		sort.SliceStable(tasks, func(i, j int) bool { return less(tasks[i], tasks[j]) })
	}
	if reverse {
		for i, j := 0, len(tasks)-1; i < j; i, j = i+1, j-1 {
			tasks[i], tasks[j] = tasks[j], tasks[i]
		}
	}
	return nil
}

// outputTaskList renders the listed tasks. JSON mode emits the tasks
// together with their total/completed/pending counts; the counts
// describe the returned set, so filters are reflected.
func outputTaskList(tasks []*task.Task) error {
	format := outputFormat()
	if format == output.FormatJSON {
		if tasks == nil {
			tasks = []*task.Task{}
		}
		return output.JSON(os.Stdout, service.NewListResult(tasks))
	}
	if format == output.FormatCompact {
		output.TaskCompact(os.Stdout, tasks)
		return nil
	}

	output.TaskTable(os.Stdout, tasks)
	return nil
}
