// Package client wires the services a magazine command needs: configuration,
// the backend API, stored credentials and the toast queue.
package client

import (
	"io"

	"github.com/colonyops/magazine/internal/core/config"
	"github.com/colonyops/magazine/internal/core/magazine"
	"github.com/colonyops/magazine/internal/core/toast"
	"github.com/colonyops/magazine/internal/data/api"
	"github.com/colonyops/magazine/internal/data/credentials"
)

// App is the central entry point for all magazine operations.
// Commands and the TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config      *config.Config
	API         magazine.API
	Credentials *credentials.Store
	Toasts      *toast.Manager
	// Console is nil until ReportToConsole is called.
	Console *ConsoleReporter
}

// NewApp builds an App from the loaded configuration. The API client reads
// its bearer token from the credentials store on every request.
func NewApp(cfg *config.Config) *App {
	creds := credentials.NewStore(cfg.CredentialsDir())

	return &App{
		Config: cfg,
		API: api.New(api.Options{
			BaseURL: cfg.API.BaseURL,
			Timeout: cfg.API.Timeout,
			Tokens:  creds,
		}),
		Credentials: creds,
		Toasts: toast.New(toast.Config{
			DefaultDuration: cfg.Toast.DefaultDuration,
			MaxVisible:      cfg.Toast.MaxVisible,
		}),
	}
}

// ReportToConsole prints every new toast to w.
func (a *App) ReportToConsole(w io.Writer, render Renderer) {
	a.Console = NewConsoleReporter(w, render)
	a.Toasts.Subscribe(a.Console.Observe)
}

// SilenceConsole mutes console toasts until the returned func is called.
func (a *App) SilenceConsole() (restore func()) {
	if a.Console == nil {
		return func() {}
	}
	return a.Console.Mute()
}

// Close tears down the toast queue. Safe to call more than once.
func (a *App) Close() {
	if a.Toasts != nil {
		a.Toasts.Close()
	}
}
