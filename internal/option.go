package internal

import "github.com/marloe/standup/internal/config"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *config.Config
	target string
}

// WithConfig sets the application configuration.
func WithConfig(cfg *config.Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithTarget sets the initial destination: a project name fragment,
// "scratch", "journal", or "guide". Empty means the dashboard.
func WithTarget(target string) Option {
	return func(a *application) {
		a.target = target
	}
}
