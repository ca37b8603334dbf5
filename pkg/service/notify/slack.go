package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
)

// slackNotifier posts mention notifications to a Slack channel
type slackNotifier struct {
	api     *slack.Client
	channel string
}

var _ Service = &slackNotifier{}

// NewSlack creates a Slack-backed notifier posting to the given channel
func NewSlack(token, channel string) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channel == "" {
		return nil, goerr.New("Slack channel is required")
	}

	return &slackNotifier{
		api:     slack.New(token),
		channel: channel,
	}, nil
}

// NotifyMention posts a short message linking the mention to its card
func (x *slackNotifier) NotifyMention(ctx context.Context, card *model.Card, comment *model.Activity, mention model.Mention) error {
	text := fmt.Sprintf("%s was mentioned by %s on card %q", mention.Email, comment.Author.Email, card.Title)

	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, text, false, false),
			nil, nil,
		),
		slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, comment.BodyMD, false, false),
		),
	}

	_, _, err := x.api.PostMessageContext(ctx, x.channel,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post mention notification",
			goerr.V("channel", x.channel),
			goerr.V("card_id", card.ID),
			goerr.V("mention", mention.Email),
		)
	}

	return nil
}
