package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/magazine/internal/client"
	"github.com/colonyops/magazine/internal/commands"
	"github.com/colonyops/magazine/internal/core/config"
	"github.com/colonyops/magazine/internal/core/logging"
	"github.com/colonyops/magazine/internal/core/toast"
	"github.com/colonyops/magazine/internal/tui"
	"github.com/colonyops/magazine/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() reads
	// them from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		app       = &client.App{}
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "magazine",
		Usage:     "Read and post to the magazine feed from your terminal",
		UsageText: "magazine [global options] command [command options]",
		Description: `magazine is a terminal client for the magazine social feed.

Run 'magazine' with no arguments to open the interactive feed.
Run 'magazine login' to sign in before posting, liking or commenting.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("MAGAZINE_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/magazine.log, '-' for stderr)",
				Sources:     cli.EnvVars("MAGAZINE_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("MAGAZINE_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("MAGAZINE_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "api-base",
				Usage:       "backend API base URL (overrides api.base_url)",
				Sources:     cli.EnvVars("MAGAZINE_API_BASE"),
				Destination: &flags.APIBase,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Log to a file unless told otherwise; the TUI owns the terminal.
			logFile := flags.LogFile
			switch logFile {
			case "":
				logFile = filepath.Join(flags.DataDir, "magazine.log")
			case "-":
				logFile = ""
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.APIBase != "" {
				cfg.API.BaseURL = flags.APIBase
				if err := cfg.Validate(); err != nil {
					return ctx, fmt.Errorf("invalid --api-base: %w", err)
				}
			}

			// Populate the pre-allocated App (commands already hold a pointer to it)
			*app = *client.NewApp(cfg)
			app.ReportToConsole(os.Stderr, tui.RenderToast)

			log.Debug().
				Str("api", cfg.API.BaseURL).
				Str("data_dir", cfg.DataDir).
				Msg("magazine starting")

			return toast.WithManager(ctx, app.Toasts), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			app.Close()

			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, app)
	postCmd := commands.NewPostCmd(flags, app)

	root = tuiCmd.Register(root)
	root = commands.NewAuthCmd(flags, app).Register(root)
	root = postCmd.Register(root)
	root = commands.NewConfigValidateCmd(flags, app).Register(root)

	// Interactive feed by default; plain output when piped
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'magazine --help' for usage", c.Args().First())
		}
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return postCmd.Feed(ctx, c)
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := root.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
