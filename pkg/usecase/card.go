package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ipai-lab/taskboard/pkg/domain/interfaces"
	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
	"github.com/ipai-lab/taskboard/pkg/utils/logging"
)

type CardUseCase struct {
	repo          interfaces.Repository
	now           func() time.Time
	lenientOwners bool
}

func NewCardUseCase(repo interfaces.Repository, now func() time.Time, lenientOwners bool) *CardUseCase {
	return &CardUseCase{
		repo:          repo,
		now:           now,
		lenientOwners: lenientOwners,
	}
}

// CreateCardInput carries everything needed to create a card. Owners
// are referenced by email and resolved against the partner directory.
type CreateCardInput struct {
	BoardID       types.BoardID
	StageID       types.StageID
	Title         string
	DescriptionMD string
	Priority      types.Priority
	DueDate       *time.Time
	OwnerEmails   []string
	Tags          []types.TagID
	ParentID      *types.CardID
	Actor         model.Partner
}

// UpdateCardInput is a merge patch over a card's mutable fields. Nil
// pointer fields are left unchanged. ClearDueDate removes the due
// date and wins over DueDate when both are set. IfUnmodifiedSince, if
// set, rejects the patch when the card changed after that instant.
type UpdateCardInput struct {
	CardID            types.CardID
	Title             *string
	DescriptionMD     *string
	StageID           *types.StageID
	Priority          *types.Priority
	DueDate           *time.Time
	ClearDueDate      bool
	OwnerEmails       *[]string
	Tags              *[]types.TagID
	Checklist         *[]model.ChecklistItem
	IfUnmodifiedSince *time.Time
	Actor             model.Partner
}

// CreateCard checks the actor's board role, validates the input
// against the target board, resolves owner emails, defaults the
// priority and persists the card. Owner assignment is recorded as an
// activity.
func (uc *CardUseCase) CreateCard(ctx context.Context, input *CreateCardInput) (*model.Card, error) {
	if input.Title == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "card title is required")
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid priority", goerr.V("priority", input.Priority))
	}

	board, err := uc.repo.Board().Get(ctx, input.BoardID)
	if err != nil {
		return nil, goerr.Wrap(ErrBoardNotFound, "board not found", goerr.V(BoardIDKey, input.BoardID))
	}
	if err := requireWriter(board, input.Actor); err != nil {
		return nil, err
	}

	if board.Stage(input.StageID) == nil {
		return nil, goerr.Wrap(ErrStageNotInBoard, "stage not in board",
			goerr.V(BoardIDKey, input.BoardID),
			goerr.V(StageIDKey, input.StageID),
		)
	}
	for _, tagID := range input.Tags {
		if !board.HasTag(tagID) {
			return nil, goerr.Wrap(ErrTagNotInBoard, "tag not in board",
				goerr.V(BoardIDKey, input.BoardID),
				goerr.V(TagIDKey, tagID),
			)
		}
	}

	owners, err := uc.resolveOwners(ctx, input.OwnerEmails)
	if err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		if _, err := uc.repo.Card().Get(ctx, *input.ParentID); err != nil {
			return nil, goerr.Wrap(ErrCardNotFound, "parent card not found", goerr.V(CardIDKey, *input.ParentID))
		}
	}

	now := uc.now()
	card := &model.Card{
		ID:            types.NewCardID(),
		BoardID:       input.BoardID,
		StageID:       input.StageID,
		Title:         input.Title,
		DescriptionMD: input.DescriptionMD,
		Priority:      input.Priority.Normalize(),
		DueDate:       input.DueDate,
		Owners:        owners,
		Tags:          input.Tags,
		ParentID:      input.ParentID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := uc.repo.Card().Create(ctx, card)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create card", goerr.V(BoardIDKey, input.BoardID))
	}

	if len(owners) > 0 {
		uc.recordActivity(ctx, &model.Activity{
			ID:     types.NewActivityID(),
			CardID: created.ID,
			Type:   types.ActivityTypeAssignment,
			Author: input.Actor,
			Metadata: &model.ActivityMetadata{
				FieldName: "owners",
				NewValue:  joinOwnerEmails(owners),
			},
			CreatedAt: now,
		})
	}

	return created, nil
}

// UpdateCard applies a merge patch to a card. Referential checks run
// before any write so a failed update leaves the card untouched.
// Tracked field changes (stage, title, priority, due date) are
// recorded as activities after the write succeeds.
func (uc *CardUseCase) UpdateCard(ctx context.Context, input *UpdateCardInput) (*model.Card, error) {
	card, err := uc.repo.Card().Get(ctx, input.CardID)
	if err != nil {
		return nil, goerr.Wrap(ErrCardNotFound, "card not found", goerr.V(CardIDKey, input.CardID))
	}

	if input.IfUnmodifiedSince != nil && card.UpdatedAt.After(*input.IfUnmodifiedSince) {
		return nil, goerr.Wrap(ErrStaleMutation, "card changed since read",
			goerr.V(CardIDKey, input.CardID),
			goerr.V("updated_at", card.UpdatedAt),
			goerr.V("if_unmodified_since", *input.IfUnmodifiedSince),
		)
	}

	board, err := uc.repo.Board().Get(ctx, card.BoardID)
	if err != nil {
		return nil, goerr.Wrap(ErrBoardNotFound, "board not found", goerr.V(BoardIDKey, card.BoardID))
	}
	if err := requireWriter(board, input.Actor); err != nil {
		return nil, err
	}

	if input.Title != nil && *input.Title == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "card title must not be empty", goerr.V(CardIDKey, input.CardID))
	}
	if input.Priority != nil && !input.Priority.IsValid() {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid priority", goerr.V("priority", *input.Priority))
	}
	if input.StageID != nil && board.Stage(*input.StageID) == nil {
		return nil, goerr.Wrap(ErrStageNotInBoard, "stage not in board",
			goerr.V(BoardIDKey, card.BoardID),
			goerr.V(StageIDKey, *input.StageID),
		)
	}
	if input.Tags != nil {
		for _, tagID := range *input.Tags {
			if !board.HasTag(tagID) {
				return nil, goerr.Wrap(ErrTagNotInBoard, "tag not in board",
					goerr.V(BoardIDKey, card.BoardID),
					goerr.V(TagIDKey, tagID),
				)
			}
		}
	}

	var owners []model.Partner
	if input.OwnerEmails != nil {
		owners, err = uc.resolveOwners(ctx, *input.OwnerEmails)
		if err != nil {
			return nil, err
		}
	}

	now := uc.now()
	updated := card.Clone()
	var activities []*model.Activity

	if input.StageID != nil && *input.StageID != card.StageID {
		oldName := stageName(board, card.StageID)
		newName := stageName(board, *input.StageID)
		updated.StageID = *input.StageID
		activities = append(activities, &model.Activity{
			ID:     types.NewActivityID(),
			CardID: card.ID,
			Type:   types.ActivityTypeStageChange,
			Author: input.Actor,
			Metadata: &model.ActivityMetadata{
				FieldName: "stage",
				OldValue:  oldName,
				NewValue:  newName,
			},
			CreatedAt: now,
		})
	}
	if input.Title != nil && *input.Title != card.Title {
		activities = append(activities, fieldUpdateActivity(card.ID, input.Actor, "title", card.Title, *input.Title, now))
		updated.Title = *input.Title
	}
	if input.Priority != nil && *input.Priority != card.Priority {
		activities = append(activities, fieldUpdateActivity(card.ID, input.Actor, "priority", card.Priority.Label(), input.Priority.Label(), now))
		updated.Priority = *input.Priority
	}
	if input.DescriptionMD != nil {
		updated.DescriptionMD = *input.DescriptionMD
	}

	switch {
	case input.ClearDueDate:
		if card.DueDate != nil {
			activities = append(activities, fieldUpdateActivity(card.ID, input.Actor, "due_date", formatDue(card.DueDate), "", now))
		}
		updated.DueDate = nil
	case input.DueDate != nil:
		if card.DueDate == nil || !card.DueDate.Equal(*input.DueDate) {
			activities = append(activities, fieldUpdateActivity(card.ID, input.Actor, "due_date", formatDue(card.DueDate), formatDue(input.DueDate), now))
		}
		updated.DueDate = input.DueDate
	}

	if input.OwnerEmails != nil {
		updated.Owners = owners
		activities = append(activities, &model.Activity{
			ID:     types.NewActivityID(),
			CardID: card.ID,
			Type:   types.ActivityTypeAssignment,
			Author: input.Actor,
			Metadata: &model.ActivityMetadata{
				FieldName: "owners",
				OldValue:  joinOwnerEmails(card.Owners),
				NewValue:  joinOwnerEmails(owners),
			},
			CreatedAt: now,
		})
	}
	if input.Tags != nil {
		updated.Tags = *input.Tags
	}
	if input.Checklist != nil {
		updated.Checklist = *input.Checklist
	}

	updated.UpdatedAt = now

	saved, err := uc.repo.Card().Update(ctx, updated)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update card", goerr.V(CardIDKey, input.CardID))
	}

	for _, activity := range activities {
		uc.recordActivity(ctx, activity)
	}

	return saved, nil
}

// MoveCard moves a card to another stage of its board and reports
// whether the destination now meets or exceeds its WIP limit. The
// breach is advisory; the move always goes through.
func (uc *CardUseCase) MoveCard(ctx context.Context, cardID types.CardID, stageID types.StageID, actor model.Partner) (*model.Card, *model.WIPBreach, error) {
	moved, err := uc.UpdateCard(ctx, &UpdateCardInput{
		CardID:  cardID,
		StageID: &stageID,
		Actor:   actor,
	})
	if err != nil {
		return nil, nil, err
	}

	board, err := uc.repo.Board().Get(ctx, moved.BoardID)
	if err != nil {
		return nil, nil, goerr.Wrap(ErrBoardNotFound, "board not found", goerr.V(BoardIDKey, moved.BoardID))
	}
	stage := board.Stage(stageID)
	if stage == nil || stage.WIPLimit == nil {
		return moved, nil, nil
	}

	cards, err := uc.repo.Card().ListByBoard(ctx, moved.BoardID)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to list cards", goerr.V(BoardIDKey, moved.BoardID))
	}
	count := 0
	for _, c := range cards {
		if c.StageID == stageID {
			count++
		}
	}

	if count >= *stage.WIPLimit {
		return moved, &model.WIPBreach{
			StageID: stageID,
			Count:   count,
			Limit:   *stage.WIPLimit,
		}, nil
	}
	return moved, nil, nil
}

// GetCard fetches a single card
func (uc *CardUseCase) GetCard(ctx context.Context, cardID types.CardID) (*model.Card, error) {
	card, err := uc.repo.Card().Get(ctx, cardID)
	if err != nil {
		return nil, goerr.Wrap(ErrCardNotFound, "card not found", goerr.V(CardIDKey, cardID))
	}
	return card, nil
}

func (uc *CardUseCase) resolveOwners(ctx context.Context, emails []string) ([]model.Partner, error) {
	owners := make([]model.Partner, 0, len(emails))
	for _, email := range emails {
		partner, err := uc.repo.Partner().GetByEmail(ctx, email)
		if err != nil {
			if uc.lenientOwners {
				logging.From(ctx).Warn("skipping unknown owner email", "email", email)
				continue
			}
			return nil, goerr.Wrap(ErrUnknownPartner, "owner email not in directory", goerr.V(EmailKey, email))
		}
		owners = append(owners, *partner)
	}
	return owners, nil
}

// recordActivity appends a feed entry after a successful card write.
// Feed write failures are logged but never fail the card mutation
// itself.
func (uc *CardUseCase) recordActivity(ctx context.Context, activity *model.Activity) {
	if _, err := uc.repo.Activity().Create(ctx, activity); err != nil {
		logging.From(ctx).Error("failed to record activity",
			"card_id", activity.CardID,
			"type", activity.Type,
			"error", err,
		)
	}
}

func fieldUpdateActivity(cardID types.CardID, actor model.Partner, field, oldValue, newValue string, now time.Time) *model.Activity {
	return &model.Activity{
		ID:     types.NewActivityID(),
		CardID: cardID,
		Type:   types.ActivityTypeFieldUpdate,
		Author: actor,
		Metadata: &model.ActivityMetadata{
			FieldName: field,
			OldValue:  oldValue,
			NewValue:  newValue,
		},
		CreatedAt: now,
	}
}

func stageName(board *model.Board, stageID types.StageID) string {
	if stage := board.Stage(stageID); stage != nil {
		return stage.Name
	}
	return string(stageID)
}

func formatDue(due *time.Time) string {
	if due == nil {
		return ""
	}
	return due.Format("2006-01-02")
}

func joinOwnerEmails(owners []model.Partner) string {
	emails := make([]string, len(owners))
	for i, o := range owners {
		emails[i] = o.Email
	}
	return strings.Join(emails, ", ")
}
