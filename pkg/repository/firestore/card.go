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

type cardRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCardRepository(client *firestore.Client) *cardRepository {
	return &cardRepository{
		client:           client,
		collectionPrefix: "",
	}
}

// cardDoc wraps a card with an ingest sequence so reads can reproduce
// insertion order, which the filter engine relies on.
type cardDoc struct {
	model.Card
	Seq int64 `firestore:"seq"`
}

func (r *cardRepository) cardsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_cards"
	}
	return "cards"
}

func (r *cardRepository) Create(ctx context.Context, card *model.Card) (*model.Card, error) {
	created := card.Clone()
	if created.ID == "" {
		created.ID = types.NewCardID()
	}

	docRef := r.client.Collection(r.cardsCollection()).Doc(created.ID.String())
	if _, err := docRef.Get(ctx); err == nil {
		return nil, goerr.New("card already exists", goerr.V("card_id", created.ID))
	} else if status.Code(err) != codes.NotFound {
		return nil, goerr.Wrap(err, "failed to check card existence", goerr.V("card_id", created.ID))
	}

	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	doc := cardDoc{Card: *created, Seq: now.UnixNano()}
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create card", goerr.V("card_id", created.ID))
	}

	return created, nil
}

func (r *cardRepository) Get(ctx context.Context, id types.CardID) (*model.Card, error) {
	docSnap, err := r.client.Collection(r.cardsCollection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "card not found", goerr.V("card_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get card", goerr.V("card_id", id))
	}

	var doc cardDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode card", goerr.V("card_id", id))
	}

	card := doc.Card
	return &card, nil
}

func (r *cardRepository) Update(ctx context.Context, card *model.Card) (*model.Card, error) {
	docRef := r.client.Collection(r.cardsCollection()).Doc(card.ID.String())

	snap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "card not found", goerr.V("card_id", card.ID))
		}
		return nil, goerr.Wrap(err, "failed to check card existence", goerr.V("card_id", card.ID))
	}

	var existing cardDoc
	if err := snap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode card", goerr.V("card_id", card.ID))
	}

	updated := card.Clone()
	updated.BoardID = existing.BoardID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	doc := cardDoc{Card: *updated, Seq: existing.Seq}
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to update card", goerr.V("card_id", card.ID))
	}

	return updated, nil
}

func (r *cardRepository) ListByBoard(ctx context.Context, boardID types.BoardID) ([]*model.Card, error) {
	iter := r.client.Collection(r.cardsCollection()).
		Where("board_id", "==", boardID.String()).
		OrderBy("seq", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var cards []*model.Card
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate cards", goerr.V("board_id", boardID))
		}

		var doc cardDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode card", goerr.V("doc_id", docSnap.Ref.ID))
		}

		card := doc.Card
		cards = append(cards, &card)
	}

	return cards, nil
}

func (r *cardRepository) ReplaceBoard(ctx context.Context, boardID types.BoardID, cards []*model.Card) error {
	collection := r.client.Collection(r.cardsCollection())

	// DeleteAll then SaveMany; the bulk writer keeps this out of
	// per-document loops.
	iter := collection.Where("board_id", "==", boardID.String()).Documents(ctx)
	defer iter.Stop()

	bw := r.client.BulkWriter(ctx)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate cards for replace", goerr.V("board_id", boardID))
		}
		if _, err := bw.Delete(docSnap.Ref); err != nil {
			return goerr.Wrap(err, "failed to enqueue card delete", goerr.V("doc_id", docSnap.Ref.ID))
		}
	}

	base := time.Now().UTC().UnixNano()
	for i, card := range cards {
		if card.ID == "" {
			return goerr.New("card without ID in replace set", goerr.V("board_id", boardID))
		}
		stored := card.Clone()
		stored.BoardID = boardID
		doc := cardDoc{Card: *stored, Seq: base + int64(i)}
		if _, err := bw.Set(collection.Doc(stored.ID.String()), doc); err != nil {
			return goerr.Wrap(err, "failed to enqueue card set", goerr.V("card_id", stored.ID))
		}
	}

	bw.End()
	return nil
}
