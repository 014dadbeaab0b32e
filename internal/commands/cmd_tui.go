package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/magazine/internal/client"
	"github.com/colonyops/magazine/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *client.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *client.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Register adds the tui command to the application.
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "tui",
		Usage:  "Browse the feed interactively",
		Action: cmd.run,
	})
	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	// Leaving the feed tears down the toast queue and every pending timer.
	defer cmd.app.Toasts.Close()

	signal := tui.NewToastSignal()
	defer signal.Stop()

	unsubscribe := cmd.app.Toasts.Subscribe(signal.Observe)
	defer unsubscribe()

	restoreOutput := cmd.app.SilenceConsole()
	defer restoreOutput()

	m := tui.New(ctx, tui.Options{
		API:           cmd.app.API,
		Toasts:        cmd.app.Toasts,
		Signal:        signal,
		MarkdownStyle: cmd.app.Config.TUI.MarkdownStyle,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	log.Debug().Msg("tui exited")
	return nil
}
