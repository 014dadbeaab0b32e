package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/magazine/internal/client"
	"github.com/colonyops/magazine/internal/core/logging"
	"github.com/colonyops/magazine/internal/core/magazine"
	"github.com/colonyops/magazine/internal/core/toast"
	"github.com/colonyops/magazine/internal/core/validate"
)

type AuthCmd struct {
	flags *Flags
	app   *client.App

	username string
	email    string
	password string

	// interactive reports whether missing fields may be prompted for.
	interactive func() bool
}

// NewAuthCmd creates the login, register, logout and whoami commands.
func NewAuthCmd(flags *Flags, app *client.App) *AuthCmd {
	return &AuthCmd{
		flags: flags,
		app:   app,
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Register adds the auth commands to the application.
func (cmd *AuthCmd) Register(app *cli.Command) *cli.Command {
	usernameFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:        "username",
			Aliases:     []string{"u"},
			Usage:       "account username",
			Sources:     cli.EnvVars("MAGAZINE_USERNAME"),
			Destination: &cmd.username,
		}
	}
	passwordFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:        "password",
			Aliases:     []string{"p"},
			Usage:       "account password",
			Sources:     cli.EnvVars("MAGAZINE_PASSWORD"),
			Destination: &cmd.password,
		}
	}

	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "login",
			Usage:     "Log in and store an access token",
			UsageText: "magazine login [--username name] [--password secret]",
			Description: `Exchanges username and password for a token pair and stores it in the
data directory. Missing values are prompted for when stdin is a terminal.`,
			Flags:  []cli.Flag{usernameFlag(), passwordFlag()},
			Action: cmd.runLogin,
		},
		&cli.Command{
			Name:      "register",
			Usage:     "Create a new account",
			UsageText: "magazine register [--username name] [--email addr] [--password secret]",
			Flags: []cli.Flag{
				usernameFlag(),
				&cli.StringFlag{
					Name:        "email",
					Aliases:     []string{"e"},
					Usage:       "account email",
					Destination: &cmd.email,
				},
				passwordFlag(),
			},
			Action: cmd.runRegister,
		},
		&cli.Command{
			Name:   "logout",
			Usage:  "Forget the stored access token",
			Action: cmd.runLogout,
		},
		&cli.Command{
			Name:   "whoami",
			Usage:  "Show the logged in user",
			Action: cmd.runWhoami,
		},
	)

	return app
}

func (cmd *AuthCmd) runLogin(ctx context.Context, _ *cli.Command) error {
	toasts := toast.FromContext(ctx)

	if cmd.username == "" || cmd.password == "" {
		if err := cmd.promptLogin(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
	}

	ctx = logging.WithUsername(ctx, cmd.username)
	tokens, err := cmd.app.API.Login(ctx, magazine.LoginRequest{
		Username: cmd.username,
		Password: cmd.password,
	})
	if err != nil {
		log.Debug().Ctx(ctx).Err(err).Msg("login failed")
		toasts.Error("Login failed: " + errorDetail(err))
		return errReported
	}

	if err := cmd.app.Credentials.Save(cmd.username, tokens); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	if u, err := cmd.app.API.CurrentUser(ctx); err == nil {
		if err := cmd.app.Credentials.SetUser(&u); err != nil {
			log.Warn().Err(err).Msg("failed to cache current user")
		}
	}

	toasts.Success("Logged in")
	return nil
}

func (cmd *AuthCmd) runRegister(ctx context.Context, _ *cli.Command) error {
	toasts := toast.FromContext(ctx)

	if cmd.username == "" || cmd.email == "" || cmd.password == "" {
		if err := cmd.promptRegister(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
	}

	ctx = logging.WithUsername(ctx, cmd.username)
	err := cmd.app.API.Register(ctx, magazine.RegisterRequest{
		Username: cmd.username,
		Email:    cmd.email,
		Password: cmd.password,
	})
	if err != nil {
		toasts.Error("Registration failed: " + errorDetail(err))
		return errReported
	}

	toasts.Success("Registered. Please login.")
	return nil
}

func (cmd *AuthCmd) runLogout(ctx context.Context, _ *cli.Command) error {
	if err := cmd.app.Credentials.Clear(); err != nil {
		return err
	}
	toast.FromContext(ctx).Info("Logged out")
	return nil
}

func (cmd *AuthCmd) runWhoami(ctx context.Context, c *cli.Command) error {
	toasts := toast.FromContext(ctx)

	if !cmd.app.Credentials.LoggedIn() {
		toasts.Info("Not logged in")
		return nil
	}

	u, err := cmd.app.API.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, magazine.ErrUnauthorized) {
			toasts.Error("Session expired. Please login again.")
		} else {
			toasts.Error("Failed to load user: " + errorDetail(err))
		}
		return errReported
	}

	if err := cmd.app.Credentials.SetUser(&u); err != nil {
		log.Warn().Err(err).Msg("failed to cache current user")
	}

	_, err = fmt.Fprintln(c.Root().Writer, u.Username)
	return err
}

func (cmd *AuthCmd) promptLogin() error {
	if !cmd.interactive() {
		return fmt.Errorf("--username and --password are required when stdin is not a terminal")
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Validate(validate.Username).
				Value(&cmd.username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(validate.Required("password")).
				Value(&cmd.password),
		),
	).Run()
}

func (cmd *AuthCmd) promptRegister() error {
	if !cmd.interactive() {
		return fmt.Errorf("--username, --email and --password are required when stdin is not a terminal")
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Validate(validate.Username).
				Value(&cmd.username),
			huh.NewInput().
				Title("Email").
				Validate(validate.Required("email")).
				Value(&cmd.email),
			huh.NewInput().
				Title("Password").
				Description("At least 8 characters").
				EchoMode(huh.EchoModePassword).
				Validate(validate.Password).
				Value(&cmd.password),
		),
	).Run()
}
