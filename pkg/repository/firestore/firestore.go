package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/ipai-lab/taskboard/pkg/domain/interfaces"
)

type Firestore struct {
	client   *firestore.Client
	board    *boardRepository
	card     *cardRepository
	activity *activityRepository
	partner  *partnerRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes every collection name, so multiple
// deployments can share one database.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.board.collectionPrefix = prefix
		f.card.collectionPrefix = prefix
		f.activity.collectionPrefix = prefix
		f.partner.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:   client,
		board:    newBoardRepository(client),
		card:     newCardRepository(client),
		activity: newActivityRepository(client),
		partner:  newPartnerRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Board() interfaces.BoardRepository {
	return f.board
}

func (f *Firestore) Card() interfaces.CardRepository {
	return f.card
}

func (f *Firestore) Activity() interfaces.ActivityRepository {
	return f.activity
}

func (f *Firestore) Partner() interfaces.PartnerRepository {
	return f.partner
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
