package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
)

// ResolveActor looks the acting identity up in the partner directory.
// Every mutation requires an explicit actor; there is no implicit
// "current user".
func (uc *UseCases) ResolveActor(ctx context.Context, email string) (*model.Partner, error) {
	if email == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "actor email is required")
	}
	partner, err := uc.repo.Partner().GetByEmail(ctx, email)
	if err != nil {
		return nil, goerr.Wrap(ErrUnknownPartner, "actor not in directory", goerr.V(EmailKey, email))
	}
	return partner, nil
}
