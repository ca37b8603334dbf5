package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ipai-lab/taskboard/pkg/domain/interfaces"
	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

// CardPage is one page of a filtered card listing. Total counts
// matches before paging.
type CardPage struct {
	Cards []*model.Card
	Total int
	Page  int
	Limit int
}

// ActivityPage is one page of a card's activity feed, newest first
type ActivityPage struct {
	Activities []*model.Activity
	Total      int
	Page       int
	Limit      int
}

// ListCards returns the board's cards in collection order, filtered
// and paged. Filtering happens before paging so page boundaries are
// stable for a given filter.
func (uc *BoardUseCase) ListCards(ctx context.Context, boardID types.BoardID, filter model.CardFilter, page, limit int) (*CardPage, error) {
	if _, err := uc.repo.Board().Get(ctx, boardID); err != nil {
		return nil, goerr.Wrap(ErrBoardNotFound, "board not found", goerr.V(BoardIDKey, boardID))
	}

	cards, err := uc.repo.Card().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cards", goerr.V(BoardIDKey, boardID))
	}

	matched := filter.Apply(cards)
	paged, total := paginate(matched, page, limit, DefaultCardPageSize)
	if limit <= 0 {
		limit = DefaultCardPageSize
	}
	if page < 0 {
		page = 0
	}

	return &CardPage{
		Cards: paged,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// GetCardActivity returns the card's feed newest first, optionally
// filtered by activity type, paged.
func (uc *CardUseCase) GetCardActivity(ctx context.Context, cardID types.CardID, activityType *types.ActivityType, page, limit int) (*ActivityPage, error) {
	if _, err := uc.repo.Card().Get(ctx, cardID); err != nil {
		return nil, goerr.Wrap(ErrCardNotFound, "card not found", goerr.V(CardIDKey, cardID))
	}

	var opts []interfaces.ListActivityOption
	if activityType != nil {
		if !activityType.IsValid() {
			return nil, goerr.Wrap(ErrInvalidInput, "invalid activity type", goerr.V("activity_type", *activityType))
		}
		opts = append(opts, interfaces.WithActivityType(*activityType))
	}

	activities, err := uc.repo.Activity().ListByCard(ctx, cardID, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list activities", goerr.V(CardIDKey, cardID))
	}

	paged, total := paginate(activities, page, limit, DefaultActivityPageSize)
	if limit <= 0 {
		limit = DefaultActivityPageSize
	}
	if page < 0 {
		page = 0
	}

	return &ActivityPage{
		Activities: paged,
		Total:      total,
		Page:       page,
		Limit:      limit,
	}, nil
}
