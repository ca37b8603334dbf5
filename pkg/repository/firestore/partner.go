package firestore

import (
	"context"
	"strconv"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

type partnerRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newPartnerRepository(client *firestore.Client) *partnerRepository {
	return &partnerRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *partnerRepository) partnersCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_partners"
	}
	return "partners"
}

func partnerDocID(id types.PartnerID) string {
	return strconv.FormatInt(int64(id), 10)
}

func (r *partnerRepository) Put(ctx context.Context, partner *model.Partner) error {
	if partner.ID == 0 {
		return goerr.New("partner ID is required", goerr.V("email", partner.Email))
	}

	docRef := r.client.Collection(r.partnersCollection()).Doc(partnerDocID(partner.ID))
	if _, err := docRef.Set(ctx, partner); err != nil {
		return goerr.Wrap(err, "failed to put partner", goerr.V("partner_id", partner.ID))
	}

	return nil
}

func (r *partnerRepository) Get(ctx context.Context, id types.PartnerID) (*model.Partner, error) {
	docSnap, err := r.client.Collection(r.partnersCollection()).Doc(partnerDocID(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "partner not found", goerr.V("partner_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get partner", goerr.V("partner_id", id))
	}

	var p model.Partner
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode partner", goerr.V("partner_id", id))
	}

	return &p, nil
}

func (r *partnerRepository) GetByEmail(ctx context.Context, email string) (*model.Partner, error) {
	iter := r.client.Collection(r.partnersCollection()).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "partner not found", goerr.V("email", email))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query partner by email", goerr.V("email", email))
	}

	var p model.Partner
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode partner", goerr.V("email", email))
	}

	return &p, nil
}

func (r *partnerRepository) List(ctx context.Context) ([]*model.Partner, error) {
	iter := r.client.Collection(r.partnersCollection()).
		OrderBy("partner_id", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var partners []*model.Partner
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate partners")
		}

		var p model.Partner
		if err := docSnap.DataTo(&p); err != nil {
			return nil, goerr.Wrap(err, "failed to decode partner", goerr.V("doc_id", docSnap.Ref.ID))
		}

		partners = append(partners, &p)
	}

	return partners, nil
}
