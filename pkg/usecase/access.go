package usecase

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
)

// requireWriter checks that the actor holds a writing role on the
// board. The board owner always writes; anyone else must be a member
// whose role allows card mutation.
func requireWriter(board *model.Board, actor model.Partner) error {
	if actor.ID == board.Owner.ID {
		return nil
	}
	member := board.Member(actor.ID)
	if member == nil {
		return goerr.Wrap(ErrPermissionDenied, "actor is not a board member",
			goerr.V(BoardIDKey, board.ID),
			goerr.V(EmailKey, actor.Email),
		)
	}
	if !member.Role.CanWrite() {
		return goerr.Wrap(ErrPermissionDenied, "role does not allow card mutation",
			goerr.V(BoardIDKey, board.ID),
			goerr.V(EmailKey, actor.Email),
			goerr.V("role", member.Role),
		)
	}
	return nil
}
