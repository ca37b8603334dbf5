package interfaces

import (
	"context"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

// PartnerRepository is the known partner directory. Owner and mention
// resolution look identities up here.
type PartnerRepository interface {
	Put(ctx context.Context, partner *model.Partner) error
	Get(ctx context.Context, id types.PartnerID) (*model.Partner, error)
	GetByEmail(ctx context.Context, email string) (*model.Partner, error)
	List(ctx context.Context) ([]*model.Partner, error)
}
