package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

type partnerRepository struct {
	mu       sync.RWMutex
	partners map[types.PartnerID]*model.Partner
	byEmail  map[string]types.PartnerID
}

func newPartnerRepository() *partnerRepository {
	return &partnerRepository{
		partners: make(map[types.PartnerID]*model.Partner),
		byEmail:  make(map[string]types.PartnerID),
	}
}

func copyPartner(p *model.Partner) *model.Partner {
	copied := *p
	return &copied
}

func (r *partnerRepository) Put(ctx context.Context, partner *model.Partner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if partner.ID == 0 {
		return goerr.New("partner ID is required", goerr.V("email", partner.Email))
	}

	if existing, ok := r.partners[partner.ID]; ok && existing.Email != partner.Email {
		delete(r.byEmail, existing.Email)
	}

	stored := copyPartner(partner)
	r.partners[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID
	return nil
}

func (r *partnerRepository) Get(ctx context.Context, id types.PartnerID) (*model.Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	partner, exists := r.partners[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "partner not found", goerr.V("partner_id", id))
	}

	return copyPartner(partner), nil
}

func (r *partnerRepository) GetByEmail(ctx context.Context, email string) (*model.Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byEmail[email]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "partner not found", goerr.V("email", email))
	}

	return copyPartner(r.partners[id]), nil
}

func (r *partnerRepository) List(ctx context.Context) ([]*model.Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	partners := make([]*model.Partner, 0, len(r.partners))
	for _, p := range r.partners {
		partners = append(partners, copyPartner(p))
	}

	sort.Slice(partners, func(i, j int) bool {
		return partners[i].ID < partners[j].ID
	})

	return partners, nil
}
