package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ipai-lab/taskboard/pkg/domain/interfaces"
	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/model/config"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

type StatsUseCase struct {
	repo        interfaces.Repository
	stagePolicy *config.StagePolicy
}

func NewStatsUseCase(repo interfaces.Repository, policy *config.StagePolicy) *StatsUseCase {
	return &StatsUseCase{
		repo:        repo,
		stagePolicy: policy,
	}
}

// BoardStats computes dashboard statistics over the board's card
// collection. The configured stage policy decides completion buckets;
// without one, the first and last ordered stages play those roles.
func (uc *StatsUseCase) BoardStats(ctx context.Context, boardID types.BoardID) (*model.BoardStats, error) {
	board, err := uc.repo.Board().Get(ctx, boardID)
	if err != nil {
		return nil, goerr.Wrap(ErrBoardNotFound, "board not found", goerr.V(BoardIDKey, boardID))
	}

	cards, err := uc.repo.Card().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cards", goerr.V(BoardIDKey, boardID))
	}

	return model.ComputeBoardStats(board, cards, uc.stagePolicy), nil
}
