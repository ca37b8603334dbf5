package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

type boardRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newBoardRepository(client *firestore.Client) *boardRepository {
	return &boardRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *boardRepository) boardsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_boards"
	}
	return "boards"
}

func (r *boardRepository) Put(ctx context.Context, board *model.Board) (*model.Board, error) {
	docRef := r.client.Collection(r.boardsCollection()).Doc(board.ID.String())

	stored := board.Clone()
	now := time.Now().UTC()

	// Preserve creation time on upsert
	snap, err := docRef.Get(ctx)
	if err == nil {
		var existing model.Board
		if err := snap.DataTo(&existing); err == nil {
			stored.CreatedAt = existing.CreatedAt
		}
	} else if status.Code(err) != codes.NotFound {
		return nil, goerr.Wrap(err, "failed to check board existence", goerr.V("board_id", board.ID))
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	if _, err := docRef.Set(ctx, stored); err != nil {
		return nil, goerr.Wrap(err, "failed to put board", goerr.V("board_id", board.ID))
	}

	return stored, nil
}

func (r *boardRepository) Get(ctx context.Context, id types.BoardID) (*model.Board, error) {
	docSnap, err := r.client.Collection(r.boardsCollection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "board not found", goerr.V("board_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get board", goerr.V("board_id", id))
	}

	var b model.Board
	if err := docSnap.DataTo(&b); err != nil {
		return nil, goerr.Wrap(err, "failed to decode board", goerr.V("board_id", id))
	}

	return &b, nil
}

func (r *boardRepository) List(ctx context.Context) ([]*model.Board, error) {
	iter := r.client.Collection(r.boardsCollection()).OrderBy("board_id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var boards []*model.Board
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate boards")
		}

		var b model.Board
		if err := docSnap.DataTo(&b); err != nil {
			return nil, goerr.Wrap(err, "failed to decode board", goerr.V("doc_id", docSnap.Ref.ID))
		}

		boards = append(boards, &b)
	}

	return boards, nil
}
