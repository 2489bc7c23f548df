package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	priorityStyles = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	pendingStyle = lipgloss.NewStyle()
	priorityStyles = map[string]lipgloss.Style{}
}

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	// Calculate column widths.
	const pad = 2
	idW, statusW, prioW, titleW := 10, 9, 10, 5
	for _, t := range tasks {
		titleW = max(titleW, min(len(t.Title)+pad, 50)) //nolint:mnd // max title column width
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %s",
		idW, "ID", statusW, "STATUS", prioW, "PRIORITY", titleW, "TITLE", "CREATED")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, t := range tasks {
		title := t.Title
		const maxTitle = 48
		if len(title) > maxTitle {
			title = title[:maxTitle-3] + "..."
		}

		row := fmt.Sprintf("%-*s %s %s %-*s %s",
			idW, shortID(t.ID),
			padRight(statusDisplay(t), statusW),
			padRight(priorityDisplay(t.Priority), prioW),
			titleW, title,
			dimStyle.Render(t.CreatedAt.Format("2006-01-02")))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with all fields.
func TaskDetail(w io.Writer, t *task.Task) {
	fmt.Fprintln(w, headerStyle.Render(t.Title))
	fmt.Fprintf(w, "ID:        %s\n", t.ID)
	fmt.Fprintf(w, "Status:    %s\n", statusDisplay(t))
	fmt.Fprintf(w, "Priority:  %s\n", priorityDisplay(t.Priority))
	fmt.Fprintf(w, "Created:   %s\n", t.CreatedAt.Format(time.RFC3339))
	if t.UpdatedAt != nil {
		fmt.Fprintf(w, "Updated:   %s\n", t.UpdatedAt.Format(time.RFC3339))
	}
	if t.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, t.Description)
	}
}

// StatsTable renders the statistics aggregate.
func StatsTable(w io.Writer, stats service.Stats) {
	fmt.Fprintln(w, headerStyle.Render("Tasks"))
	fmt.Fprintf(w, "  Total:     %d\n", stats.Total)
	fmt.Fprintf(w, "  Completed: %d\n", stats.Completed)
	fmt.Fprintf(w, "  Pending:   %d\n", stats.Pending)

	fmt.Fprintln(w, headerStyle.Render("By priority"))
	for _, pc := range stats.Priorities {
		fmt.Fprintf(w, "  %s %d\n", padRight(priorityDisplay(task.Priority(pc.Priority)), 9), pc.Count)
	}
}

func statusDisplay(t *task.Task) string {
	if t.Completed {
		return doneStyle.Render("done")
	}
	return pendingStyle.Render("pending")
}

func priorityDisplay(p task.Priority) string {
	if style, ok := priorityStyles[p.String()]; ok {
		return style.Render(p.String())
	}
	return p.String()
}

// shortID returns the first 8 characters of an ID for display.
func shortID(id string) string {
	const short = 8
	if len(id) > short {
		return id[:short]
	}
	return id
}

// padRight pads a possibly-styled string to the given display width.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
