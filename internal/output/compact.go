package output

import (
	"fmt"
	"io"
	"os"

	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t *task.Task) {
	fmt.Fprintln(w, formatTaskLine(t))

	ts := "  created:" + t.CreatedAt.Format("2006-01-02")
	if t.UpdatedAt != nil {
		ts += " updated:" + t.UpdatedAt.Format("2006-01-02")
	}
	fmt.Fprintln(w, ts)

	if t.Description != "" {
		fmt.Fprintln(w, "  "+t.Description)
	}
}

// StatsCompact renders the statistics aggregate in compact format.
func StatsCompact(w io.Writer, stats service.Stats) {
	fmt.Fprintf(w, "total=%d completed=%d pending=%d\n",
		stats.Total, stats.Completed, stats.Pending)
	line := "priority:"
	for _, pc := range stats.Priorities {
		line += " " + pc.Priority + "=" + fmt.Sprint(pc.Count)
	}
	fmt.Fprintln(w, line)
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t *task.Task) string {
	status := "pending"
	if t.Completed {
		status = "done"
	}
	return shortID(t.ID) + " [" + status + "/" + t.Priority.String() + "] " + t.Title
}
