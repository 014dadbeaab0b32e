package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/magazine/internal/client"
)

var (
	validStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#4ade80"})
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#be123c", Dark: "#fb7185"})
)

type ConfigValidateCmd struct {
	flags *Flags
	app   *client.App
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags, app *client.App) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags, app: app}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "magazine config validate",
				Description: "Validates the configuration file, checking field values and the data directory.",
				Action:      cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	w := c.Root().Writer

	err := cmd.app.Config.ValidateDeep(cmd.flags.ConfigPath)
	if err == nil {
		_, err := fmt.Fprintln(w, validStyle.Render("✓ Configuration is valid"))
		return err
	}

	for _, line := range strings.Split(strings.TrimSpace(err.Error()), "\n") {
		if _, werr := fmt.Fprintln(w, invalidStyle.Render("✗ "+strings.TrimSpace(line))); werr != nil {
			return werr
		}
	}
	return cli.Exit("", 1)
}
