package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/ipai-lab/taskboard/pkg/domain/interfaces"
	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

type activityRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newActivityRepository(client *firestore.Client) *activityRepository {
	return &activityRepository{
		client:           client,
		collectionPrefix: "",
	}
}

// activityDoc wraps an activity with an ingest sequence so created_at
// ties resolve by insertion order on read.
type activityDoc struct {
	model.Activity
	Seq int64 `firestore:"seq"`
}

func (r *activityRepository) activitiesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_activities"
	}
	return "activities"
}

func (r *activityRepository) Create(ctx context.Context, activity *model.Activity) (*model.Activity, error) {
	created := activity.Clone()
	if created.ID == "" {
		created.ID = types.NewActivityID()
	}
	now := time.Now().UTC()
	if created.CreatedAt.IsZero() {
		created.CreatedAt = now
	}

	doc := activityDoc{Activity: *created, Seq: now.UnixNano()}
	docRef := r.client.Collection(r.activitiesCollection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create activity", goerr.V("event_id", created.ID))
	}

	return created, nil
}

func (r *activityRepository) ListByCard(ctx context.Context, cardID types.CardID, opts ...interfaces.ListActivityOption) ([]*model.Activity, error) {
	cfg := interfaces.BuildListActivityConfig(opts...)

	query := r.client.Collection(r.activitiesCollection()).
		Where("card_id", "==", cardID.String())
	if t := cfg.ActivityType(); t != nil {
		query = query.Where("type", "==", t.String())
	}

	iter := query.
		OrderBy("created_at", firestore.Desc).
		OrderBy("seq", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var activities []*model.Activity
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate activities", goerr.V("card_id", cardID))
		}

		var doc activityDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode activity", goerr.V("doc_id", docSnap.Ref.ID))
		}

		activity := doc.Activity
		activities = append(activities, &activity)
	}

	return activities, nil
}

func (r *activityRepository) ReplaceCard(ctx context.Context, cardID types.CardID, activities []*model.Activity) error {
	collection := r.client.Collection(r.activitiesCollection())

	iter := collection.Where("card_id", "==", cardID.String()).Documents(ctx)
	defer iter.Stop()

	bw := r.client.BulkWriter(ctx)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate activities for replace", goerr.V("card_id", cardID))
		}
		if _, err := bw.Delete(docSnap.Ref); err != nil {
			return goerr.Wrap(err, "failed to enqueue activity delete", goerr.V("doc_id", docSnap.Ref.ID))
		}
	}

	base := time.Now().UTC().UnixNano()
	for i, a := range activities {
		stored := a.Clone()
		stored.CardID = cardID
		if stored.ID == "" {
			stored.ID = types.NewActivityID()
		}
		doc := activityDoc{Activity: *stored, Seq: base + int64(i)}
		if _, err := bw.Set(collection.Doc(stored.ID.String()), doc); err != nil {
			return goerr.Wrap(err, "failed to enqueue activity set", goerr.V("event_id", stored.ID))
		}
	}

	bw.End()
	return nil
}
