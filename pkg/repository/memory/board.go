package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

type boardRepository struct {
	mu     sync.RWMutex
	boards map[types.BoardID]*model.Board
}

func newBoardRepository() *boardRepository {
	return &boardRepository{
		boards: make(map[types.BoardID]*model.Board),
	}
}

func (r *boardRepository) Put(ctx context.Context, board *model.Board) (*model.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := board.Clone()
	now := time.Now().UTC()
	if existing, ok := r.boards[board.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.boards[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *boardRepository) Get(ctx context.Context, id types.BoardID) (*model.Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	board, exists := r.boards[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "board not found", goerr.V("board_id", id))
	}

	return board.Clone(), nil
}

func (r *boardRepository) List(ctx context.Context) ([]*model.Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	boards := make([]*model.Board, 0, len(r.boards))
	for _, b := range r.boards {
		boards = append(boards, b.Clone())
	}

	sort.Slice(boards, func(i, j int) bool {
		return boards[i].ID < boards[j].ID
	})

	return boards, nil
}
