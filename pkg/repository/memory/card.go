package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

type cardRepository struct {
	mu    sync.RWMutex
	cards map[types.CardID]*model.Card
	// order preserves insertion order per board so that reads return a
	// deterministic collection order for the filter engine.
	order map[types.BoardID][]types.CardID
}

func newCardRepository() *cardRepository {
	return &cardRepository{
		cards: make(map[types.CardID]*model.Card),
		order: make(map[types.BoardID][]types.CardID),
	}
}

func (r *cardRepository) Create(ctx context.Context, card *model.Card) (*model.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := card.Clone()
	if created.ID == "" {
		created.ID = types.NewCardID()
	}
	if _, exists := r.cards[created.ID]; exists {
		return nil, goerr.New("card already exists", goerr.V("card_id", created.ID))
	}

	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.cards[created.ID] = created
	r.order[created.BoardID] = append(r.order[created.BoardID], created.ID)
	return created.Clone(), nil
}

func (r *cardRepository) Get(ctx context.Context, id types.CardID) (*model.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	card, exists := r.cards[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "card not found", goerr.V("card_id", id))
	}

	return card.Clone(), nil
}

func (r *cardRepository) Update(ctx context.Context, card *model.Card) (*model.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.cards[card.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "card not found", goerr.V("card_id", card.ID))
	}

	updated := card.Clone()
	updated.BoardID = existing.BoardID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.cards[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *cardRepository) ListByBoard(ctx context.Context, boardID types.BoardID) ([]*model.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.order[boardID]
	cards := make([]*model.Card, 0, len(ids))
	for _, id := range ids {
		if card, ok := r.cards[id]; ok {
			cards = append(cards, card.Clone())
		}
	}

	return cards, nil
}

func (r *cardRepository) ReplaceBoard(ctx context.Context, boardID types.BoardID, cards []*model.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order[boardID] {
		delete(r.cards, id)
	}
	r.order[boardID] = nil

	ids := make([]types.CardID, 0, len(cards))
	for _, card := range cards {
		if card.ID == "" {
			return goerr.New("card without ID in replace set", goerr.V("board_id", boardID))
		}
		stored := card.Clone()
		stored.BoardID = boardID
		r.cards[stored.ID] = stored
		ids = append(ids, stored.ID)
	}
	r.order[boardID] = ids

	return nil
}
