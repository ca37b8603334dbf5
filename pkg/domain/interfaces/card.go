package interfaces

import (
	"context"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

// CardRepository persists cards. There is no delete operation; card
// deletion is out of scope pending a product decision.
type CardRepository interface {
	Create(ctx context.Context, card *model.Card) (*model.Card, error)
	Get(ctx context.Context, id types.CardID) (*model.Card, error)
	Update(ctx context.Context, card *model.Card) (*model.Card, error)
	ListByBoard(ctx context.Context, boardID types.BoardID) ([]*model.Card, error)

	// ReplaceBoard atomically replaces every card of the board with the
	// given collection (DeleteAll then SaveMany). Used by the sync pull.
	ReplaceBoard(ctx context.Context, boardID types.BoardID, cards []*model.Card) error
}
