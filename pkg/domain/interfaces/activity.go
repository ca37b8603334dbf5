package interfaces

import (
	"context"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

// ActivityRepository persists the append-only activity feed of cards.
// ListByCard returns records ordered by created_at descending; ties
// keep insertion order, since ids are timestamp-derived but not
// guaranteed strictly monotonic across rapid operations.
type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) (*model.Activity, error)
	ListByCard(ctx context.Context, cardID types.CardID, opts ...ListActivityOption) ([]*model.Activity, error)

	// ReplaceCard atomically replaces the feed of the card with the
	// given records. Used by the sync pull.
	ReplaceCard(ctx context.Context, cardID types.CardID, activities []*model.Activity) error
}
