// Package tui implements the interactive task list for taskdeck.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/task"
)

// view represents the current screen state.
type view int

const (
	viewList view = iota
	viewConfirmDelete
)

// statusFilter cycles through all / pending / completed.
type statusFilter int

const (
	filterAll statusFilter = iota
	filterPending
	filterCompleted
)

func (f statusFilter) String() string {
	switch f {
	case filterPending:
		return "pending"
	case filterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// ReloadMsg asks the model to re-read the store (sent by the watcher).
type ReloadMsg struct{}

// Styles.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusBarText = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	priorityStyles = map[task.Priority]lipgloss.Style{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}
)

// List is the top-level bubbletea model.
type List struct {
	svc    *service.Service
	tasks  []*task.Task
	cursor int
	offset int // first visible row index
	filter statusFilter
	view   view
	width  int
	height int
	err    error

	// Delete confirmation.
	deleteID    string
	deleteTitle string
}

// NewList creates a new List model over the given service.
func NewList(svc *service.Service) *List {
	l := &List{svc: svc}
	l.loadTasks()
	return l
}

// Init implements tea.Model.
func (l *List) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (l *List) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return l.handleKey(msg)
	case tea.WindowSizeMsg:
		l.width = msg.Width
		l.height = msg.Height
		l.ensureVisible()
		return l, nil
	case ReloadMsg:
		l.loadTasks()
		return l, nil
	}
	return l, nil
}

// View implements tea.Model.
func (l *List) View() string {
	if l.width == 0 {
		return "Loading..."
	}

	if l.view == viewConfirmDelete {
		return l.viewDeleteConfirm()
	}
	return l.viewList()
}

func (l *List) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return l, tea.Quit
	}

	if l.view == viewConfirmDelete {
		return l.handleDeleteKey(msg)
	}
	return l.handleListKey(msg)
}

func (l *List) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return l, tea.Quit
	case "j", "down":
		if l.cursor < len(l.tasks)-1 {
			l.cursor++
			l.ensureVisible()
		}
	case "k", "up":
		if l.cursor > 0 {
			l.cursor--
			l.ensureVisible()
		}
	case "g", "home":
		l.cursor = 0
		l.ensureVisible()
	case "G", "end":
		if len(l.tasks) > 0 {
			l.cursor = len(l.tasks) - 1
			l.ensureVisible()
		}
	case " ", "enter":
		l.toggleSelected()
	case "f":
		l.filter = (l.filter + 1) % 3
		l.cursor = 0
		l.offset = 0
		l.loadTasks()
	case "d":
		if t := l.selectedTask(); t != nil {
			l.deleteID = t.ID
			l.deleteTitle = t.Title
			l.view = viewConfirmDelete
		}
	case "r":
		l.loadTasks()
	}
	return l, nil
}

func (l *List) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if _, err := l.svc.Delete(l.deleteID); err != nil {
			l.err = err
		}
		l.view = viewList
		l.loadTasks()
	case "n", "N", "esc", "q":
		l.view = viewList
	}
	return l, nil
}

func (l *List) toggleSelected() {
	t := l.selectedTask()
	if t == nil {
		return
	}
	if _, err := l.svc.Toggle(t.ID); err != nil {
		l.err = err
		return
	}
	l.loadTasks()
}

func (l *List) selectedTask() *task.Task {
	if l.cursor < 0 || l.cursor >= len(l.tasks) {
		return nil
	}
	return l.tasks[l.cursor]
}

// loadTasks re-reads the store through the service and clamps the cursor.
func (l *List) loadTasks() {
	var (
		tasks []*task.Task
		err   error
	)
	switch l.filter {
	case filterPending:
		tasks, err = l.svc.ByStatus(false)
	case filterCompleted:
		tasks, err = l.svc.ByStatus(true)
	default:
		var res service.ListResult
		res, err = l.svc.List()
		tasks = res.Tasks
	}
	if err != nil {
		l.err = err
		return
	}

	l.err = nil
	l.tasks = tasks
	if l.cursor >= len(l.tasks) {
		l.cursor = len(l.tasks) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureVisible()
}

// visibleRows returns how many task rows fit between header and status bar.
func (l *List) visibleRows() int {
	const chrome = 4 // header, blank line, blank line, status bar
	rows := l.height - chrome
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (l *List) ensureVisible() {
	rows := l.visibleRows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+rows {
		l.offset = l.cursor - rows + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

func (l *List) viewList() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("taskdeck"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d tasks (%s)", len(l.tasks), l.filter)))
	b.WriteString("\n\n")

	if len(l.tasks) == 0 {
		b.WriteString(dimStyle.Render("No tasks. Press q to quit."))
		b.WriteString("\n")
	}

	rows := l.visibleRows()
	end := min(l.offset+rows, len(l.tasks))
	for i := l.offset; i < end; i++ {
		b.WriteString(l.renderRow(l.tasks[i], i == l.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(l.statusBar())
	return b.String()
}

func (l *List) renderRow(t *task.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render("> ")
	}

	check := "[ ]"
	title := t.Title
	if t.Completed {
		check = doneStyle.Render("[x]")
		title = dimStyle.Render(title)
	}

	prio := t.Priority.String()
	if style, ok := priorityStyles[t.Priority]; ok {
		prio = style.Render(prio)
	}

	line := cursor + check + " " + padRight(prio, 7) + " " + title
	if w := lipgloss.Width(line); l.width > 0 && w > l.width {
		line = lipgloss.NewStyle().MaxWidth(l.width).Render(line)
	}
	return line
}

func (l *List) statusBar() string {
	if l.err != nil {
		return errStyle.Render("Error: " + l.err.Error())
	}
	return statusBarText.Render("space/enter toggle · d delete · f filter · r reload · q quit")
}

func (l *List) viewDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Delete task?"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s\n\n", l.deleteTitle))
	b.WriteString(statusBarText.Render("y confirm · n cancel"))
	return b.String()
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
