package config

import (
	"github.com/urfave/cli/v3"

	"github.com/ipai-lab/taskboard/pkg/service/remote"
)

// Remote holds CLI flags for the upstream backend
type Remote struct {
	baseURL string
}

// Flags returns CLI flags for remote configuration
func (r *Remote) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "remote-url",
			Usage:       "Base URL of the upstream taskboard API (e.g. https://erp.example.com)",
			Sources:     cli.EnvVars("TASKBOARD_REMOTE_URL"),
			Destination: &r.baseURL,
		},
	}
}

// IsConfigured reports whether a remote backend was given
func (r *Remote) IsConfigured() bool {
	return r.baseURL != ""
}

// BaseURL returns the configured base URL
func (r *Remote) BaseURL() string {
	return r.baseURL
}

// Configure builds the backend client, or nil when not configured
func (r *Remote) Configure() remote.Service {
	if !r.IsConfigured() {
		return nil
	}
	return remote.New(r.baseURL)
}
