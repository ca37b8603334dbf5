package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ipai-lab/taskboard/pkg/domain/interfaces"
	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

type activityRepository struct {
	mu sync.RWMutex
	// feeds keep insertion order per card; display ordering is derived
	// on read so that created_at ties break by insertion, not by ID.
	feeds map[types.CardID][]*model.Activity
}

func newActivityRepository() *activityRepository {
	return &activityRepository{
		feeds: make(map[types.CardID][]*model.Activity),
	}
}

func (r *activityRepository) Create(ctx context.Context, activity *model.Activity) (*model.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := activity.Clone()
	if created.ID == "" {
		created.ID = types.NewActivityID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.feeds[created.CardID] = append(r.feeds[created.CardID], created)
	return created.Clone(), nil
}

func (r *activityRepository) ListByCard(ctx context.Context, cardID types.CardID, opts ...interfaces.ListActivityOption) ([]*model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg := interfaces.BuildListActivityConfig(opts...)

	feed := r.feeds[cardID]
	result := make([]*model.Activity, 0, len(feed))
	for _, a := range feed {
		if t := cfg.ActivityType(); t != nil && a.Type != *t {
			continue
		}
		result = append(result, a.Clone())
	}

	// Newest first; the stable sort keeps insertion order for equal
	// timestamps.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *activityRepository) ReplaceCard(ctx context.Context, cardID types.CardID, activities []*model.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	feed := make([]*model.Activity, 0, len(activities))
	for _, a := range activities {
		stored := a.Clone()
		stored.CardID = cardID
		if stored.ID == "" {
			stored.ID = types.NewActivityID()
		}
		feed = append(feed, stored)
	}
	r.feeds[cardID] = feed

	return nil
}
