package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ipai-lab/taskboard/pkg/domain/interfaces"
	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
	"github.com/ipai-lab/taskboard/pkg/service/notify"
	"github.com/ipai-lab/taskboard/pkg/utils/async"
)

type CommentUseCase struct {
	repo            interfaces.Repository
	notifyService   notify.Service
	now             func() time.Time
	lenientMentions bool
}

func NewCommentUseCase(repo interfaces.Repository, notifyService notify.Service, now func() time.Time, lenientMentions bool) *CommentUseCase {
	return &CommentUseCase{
		repo:            repo,
		notifyService:   notifyService,
		now:             now,
		lenientMentions: lenientMentions,
	}
}

// CreateComment appends a comment activity to a card. The actor must
// hold a writing role on the card's board. Mention emails
// are resolved against the partner directory; in lenient mode an
// unmatched email is kept with an unresolved partner marker instead
// of failing the comment. Resolved mentions are notified
// asynchronously.
func (uc *CommentUseCase) CreateComment(ctx context.Context, cardID types.CardID, actor model.Partner, bodyMD string, mentionEmails []string) (*model.Activity, error) {
	if bodyMD == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "comment body is required", goerr.V(CardIDKey, cardID))
	}

	card, err := uc.repo.Card().Get(ctx, cardID)
	if err != nil {
		return nil, goerr.Wrap(ErrCardNotFound, "card not found", goerr.V(CardIDKey, cardID))
	}

	board, err := uc.repo.Board().Get(ctx, card.BoardID)
	if err != nil {
		return nil, goerr.Wrap(ErrBoardNotFound, "board not found", goerr.V(BoardIDKey, card.BoardID))
	}
	if err := requireWriter(board, actor); err != nil {
		return nil, err
	}

	mentions := make([]model.Mention, 0, len(mentionEmails))
	for _, email := range mentionEmails {
		partner, err := uc.repo.Partner().GetByEmail(ctx, email)
		if err != nil {
			if !uc.lenientMentions {
				return nil, goerr.Wrap(ErrUnknownMention, "mentioned email not in directory",
					goerr.V(CardIDKey, cardID),
					goerr.V(EmailKey, email),
				)
			}
			mentions = append(mentions, model.Mention{
				Email:     email,
				PartnerID: types.UnresolvedPartnerID,
			})
			continue
		}
		mentions = append(mentions, model.Mention{
			Email:     partner.Email,
			PartnerID: partner.ID,
		})
	}

	comment := &model.Activity{
		ID:        types.NewActivityID(),
		CardID:    cardID,
		Type:      types.ActivityTypeComment,
		Author:    actor,
		BodyMD:    bodyMD,
		Mentions:  mentions,
		CreatedAt: uc.now(),
	}

	created, err := uc.repo.Activity().Create(ctx, comment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create comment", goerr.V(CardIDKey, cardID))
	}

	if uc.notifyService != nil {
		for _, mention := range created.Mentions {
			if !mention.Resolved() {
				continue
			}
			m := mention
			async.Dispatch(ctx, func(ctx context.Context) error {
				return uc.notifyService.NotifyMention(ctx, card, created, m)
			})
		}
	}

	return created, nil
}
