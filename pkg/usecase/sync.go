package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ipai-lab/taskboard/pkg/domain/interfaces"
	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
	"github.com/ipai-lab/taskboard/pkg/service/remote"
	"github.com/ipai-lab/taskboard/pkg/utils/logging"
)

// maxActivityFetches bounds concurrent per-card activity requests
// during a pull.
const maxActivityFetches = 8

type SyncUseCase struct {
	repo          interfaces.Repository
	remoteService remote.Service
}

func NewSyncUseCase(repo interfaces.Repository, remoteService remote.Service) *SyncUseCase {
	return &SyncUseCase{
		repo:          repo,
		remoteService: remoteService,
	}
}

// PullBoard fetches a board, its cards and every card's activity feed
// from the backend, then replaces the local collection wholesale. All
// fetches complete before the first local write, so a failed pull
// leaves local state untouched.
func (uc *SyncUseCase) PullBoard(ctx context.Context, boardID types.BoardID) error {
	if uc.remoteService == nil {
		return goerr.New("no remote service configured")
	}

	boardResp, err := uc.remoteService.GetBoard(ctx, boardID)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch board", goerr.V(BoardIDKey, boardID))
	}
	board := boardResp.Board

	cards, err := uc.fetchAllCards(ctx, boardID)
	if err != nil {
		return err
	}

	feeds, err := uc.fetchAllFeeds(ctx, cards)
	if err != nil {
		return err
	}

	// Fetch phase done; apply everything locally.
	if _, err := uc.repo.Board().Put(ctx, &board); err != nil {
		return goerr.Wrap(err, "failed to store board", goerr.V(BoardIDKey, boardID))
	}
	if err := uc.repo.Card().ReplaceBoard(ctx, boardID, cards); err != nil {
		return goerr.Wrap(err, "failed to replace cards", goerr.V(BoardIDKey, boardID))
	}
	for cardID, feed := range feeds {
		if err := uc.repo.Activity().ReplaceCard(ctx, cardID, feed); err != nil {
			return goerr.Wrap(err, "failed to replace activity feed",
				goerr.V(BoardIDKey, boardID),
				goerr.V(CardIDKey, cardID),
			)
		}
	}

	logging.From(ctx).Info("pulled board from remote",
		"board_id", boardID,
		"cards", len(cards),
	)
	return nil
}

func (uc *SyncUseCase) fetchAllCards(ctx context.Context, boardID types.BoardID) ([]*model.Card, error) {
	var cards []*model.Card
	for page := 0; ; page++ {
		resp, err := uc.remoteService.ListCards(ctx, boardID, model.CardFilter{}, page, DefaultCardPageSize)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to fetch cards",
				goerr.V(BoardIDKey, boardID),
				goerr.V("page", page),
			)
		}
		cards = append(cards, resp.Cards...)
		if len(cards) >= resp.Total || len(resp.Cards) == 0 {
			return cards, nil
		}
	}
}

func (uc *SyncUseCase) fetchAllFeeds(ctx context.Context, cards []*model.Card) (map[types.CardID][]*model.Activity, error) {
	feeds := make(map[types.CardID][]*model.Activity, len(cards))
	var mu sync.Mutex

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxActivityFetches)

	for _, card := range cards {
		cardID := card.ID
		eg.Go(func() error {
			feed, err := uc.fetchFeed(egCtx, cardID)
			if err != nil {
				return err
			}
			mu.Lock()
			feeds[cardID] = feed
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return feeds, nil
}

func (uc *SyncUseCase) fetchFeed(ctx context.Context, cardID types.CardID) ([]*model.Activity, error) {
	var feed []*model.Activity
	for page := 0; ; page++ {
		resp, err := uc.remoteService.GetCardActivity(ctx, cardID, nil, page, DefaultActivityPageSize)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to fetch activity feed",
				goerr.V(CardIDKey, cardID),
				goerr.V("page", page),
			)
		}
		feed = append(feed, resp.Activities...)
		if len(feed) >= resp.Total || len(resp.Activities) == 0 {
			return feed, nil
		}
	}
}
