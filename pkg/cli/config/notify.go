package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/ipai-lab/taskboard/pkg/service/notify"
)

// Notify holds CLI flags for mention notification configuration
type Notify struct {
	slackToken   string `masq:"secret"`
	slackChannel string
}

// Flags returns CLI flags for notification configuration
func (n *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for mention notifications",
			Sources:     cli.EnvVars("TASKBOARD_SLACK_BOT_TOKEN"),
			Destination: &n.slackToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel for mention notifications",
			Sources:     cli.EnvVars("TASKBOARD_SLACK_CHANNEL"),
			Destination: &n.slackChannel,
		},
	}
}

// IsConfigured reports whether notifications are enabled
func (n *Notify) IsConfigured() bool {
	return n.slackToken != "" && n.slackChannel != ""
}

// LogValue renders the configuration without leaking the token
func (n *Notify) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("configured", n.IsConfigured()),
		slog.String("channel", n.slackChannel),
	)
}

// Configure builds the notifier, or nil when not configured
func (n *Notify) Configure() (notify.Service, error) {
	if !n.IsConfigured() {
		return nil, nil
	}
	return notify.NewSlack(n.slackToken, n.slackChannel)
}
