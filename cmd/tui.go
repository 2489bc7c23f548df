package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/tui"
	"github.com/taskdeck/taskdeck/internal/watcher"
)

func runTUI(_ *cobra.Command, _ []string) error {
	svc, cfg, err := openService()
	if err != nil {
		return err
	}

	model := tui.NewList(svc)
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startTUIWatcher(ctx, cfg.Dir(), p)

	_, err = p.Run()
	return err
}

func startTUIWatcher(ctx context.Context, dir string, p *tea.Program) {
	w, err := watcher.New([]string{dir}, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, nil)
}
