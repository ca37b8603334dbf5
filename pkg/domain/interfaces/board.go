package interfaces

import (
	"context"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

// BoardRepository persists boards. Boards are read-mostly
// configuration; Put is an upsert so synchronization can replace a
// board wholesale.
type BoardRepository interface {
	Put(ctx context.Context, board *model.Board) (*model.Board, error)
	Get(ctx context.Context, id types.BoardID) (*model.Board, error)
	List(ctx context.Context) ([]*model.Board, error)
}
