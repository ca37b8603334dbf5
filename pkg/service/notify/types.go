package notify

import (
	"context"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
)

// Service delivers mention notifications to people referenced in card
// comments. Delivery failure never fails the comment itself; callers
// dispatch notifications asynchronously.
type Service interface {
	// NotifyMention tells a mentioned partner that they were referenced
	// in a comment on the given card.
	NotifyMention(ctx context.Context, card *model.Card, comment *model.Activity, mention model.Mention) error
}
