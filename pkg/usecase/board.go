package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ipai-lab/taskboard/pkg/domain/interfaces"
	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

type BoardUseCase struct {
	repo interfaces.Repository
}

func NewBoardUseCase(repo interfaces.Repository) *BoardUseCase {
	return &BoardUseCase{
		repo: repo,
	}
}

// BoardPage is one page of the board listing
type BoardPage struct {
	Boards []*model.Board
	Total  int
	Page   int
	Limit  int
}

// BoardDetail is a board joined with its per-stage card counts. Every
// stage of the board appears in CardCounts, empty stages with zero.
type BoardDetail struct {
	Board      *model.Board
	CardCounts map[types.StageID]int
}

// ListBoards returns boards ordered by ID, paged
func (uc *BoardUseCase) ListBoards(ctx context.Context, page, limit int) (*BoardPage, error) {
	boards, err := uc.repo.Board().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list boards")
	}

	paged, total := paginate(boards, page, limit, DefaultBoardPageSize)
	if limit <= 0 {
		limit = DefaultBoardPageSize
	}
	if page < 0 {
		page = 0
	}

	return &BoardPage{
		Boards: paged,
		Total:  total,
		Page:   page,
		Limit:  limit,
	}, nil
}

// GetBoard returns a single board with its stage card counts
func (uc *BoardUseCase) GetBoard(ctx context.Context, boardID types.BoardID) (*BoardDetail, error) {
	board, err := uc.repo.Board().Get(ctx, boardID)
	if err != nil {
		return nil, goerr.Wrap(ErrBoardNotFound, "board not found", goerr.V(BoardIDKey, boardID))
	}

	cards, err := uc.repo.Card().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cards", goerr.V(BoardIDKey, boardID))
	}

	counts := make(map[types.StageID]int, len(board.Stages))
	for _, stage := range board.Stages {
		counts[stage.ID] = 0
	}
	for _, card := range cards {
		counts[card.StageID]++
	}

	return &BoardDetail{
		Board:      board,
		CardCounts: counts,
	}, nil
}

// SaveBoard validates and upserts a board definition. Used when
// seeding the local collection from configuration.
func (uc *BoardUseCase) SaveBoard(ctx context.Context, board *model.Board) (*model.Board, error) {
	if !model.ValidateBoard(board) {
		return nil, goerr.Wrap(ErrInvalidInput, "board failed validation", goerr.V(BoardIDKey, board.ID))
	}

	saved, err := uc.repo.Board().Put(ctx, board)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save board", goerr.V(BoardIDKey, board.ID))
	}
	return saved, nil
}
