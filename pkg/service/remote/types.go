package remote

import (
	"context"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

// Service is the fixed operation set of the upstream authority. The
// client treats the backend as a collaborator satisfying this
// contract; every response must carry a matching contract version
// marker.
type Service interface {
	ListBoards(ctx context.Context, page, limit int) (*ListBoardsResponse, error)
	GetBoard(ctx context.Context, boardID types.BoardID) (*GetBoardResponse, error)
	ListCards(ctx context.Context, boardID types.BoardID, filter model.CardFilter, page, limit int) (*ListCardsResponse, error)
	CreateCard(ctx context.Context, req *CreateCardRequest) (*model.Card, error)
	UpdateCard(ctx context.Context, req *UpdateCardRequest) (*model.Card, error)
	CreateComment(ctx context.Context, req *CreateCommentRequest) (*model.Activity, error)
	GetCardActivity(ctx context.Context, cardID types.CardID, activityType *types.ActivityType, page, limit int) (*GetCardActivityResponse, error)
}

// ListBoardsResponse is the paged board listing
type ListBoardsResponse struct {
	Boards []*model.Board `json:"boards"`
	Total  int            `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
}

// GetBoardResponse is a board with its per-stage card counts
type GetBoardResponse struct {
	model.Board
	CardCounts map[types.StageID]int `json:"card_counts"`
}

// ListCardsResponse is the paged, filtered card listing
type ListCardsResponse struct {
	Cards []*model.Card `json:"cards"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// CreateCardRequest creates a card on a board. Owners are partner ids
// resolved by the backend against its directory.
type CreateCardRequest struct {
	BoardID       types.BoardID     `json:"board_id"`
	StageID       types.StageID     `json:"stage_id"`
	Title         string            `json:"title"`
	DescriptionMD string            `json:"description_md,omitempty"`
	Priority      types.Priority    `json:"priority,omitempty"`
	DueDate       *string           `json:"due_date,omitempty"`
	Owners        []types.PartnerID `json:"owners,omitempty"`
	Tags          []types.TagID     `json:"tags,omitempty"`
	ParentID      *types.CardID     `json:"parent_id,omitempty"`
}

// UpdateCardRequest patches a subset of mutable card fields. Nil
// pointers mean "leave unchanged". ClearDueDate removes the due date;
// it wins over DueDate when both are set.
type UpdateCardRequest struct {
	CardID        types.CardID          `json:"card_id"`
	Title         *string               `json:"title,omitempty"`
	DescriptionMD *string               `json:"description_md,omitempty"`
	StageID       *types.StageID        `json:"stage_id,omitempty"`
	Priority      *types.Priority       `json:"priority,omitempty"`
	DueDate       *string               `json:"due_date,omitempty"`
	ClearDueDate  bool                  `json:"clear_due_date,omitempty"`
	Owners        []types.PartnerID     `json:"owners,omitempty"`
	Tags          []types.TagID         `json:"tags,omitempty"`
	Checklist     []model.ChecklistItem `json:"checklist,omitempty"`
}

// CreateCommentRequest posts a comment with optional mention emails
type CreateCommentRequest struct {
	CardID   types.CardID `json:"card_id"`
	BodyMD   string       `json:"body_md"`
	Mentions []string     `json:"mentions,omitempty"`
}

// GetCardActivityResponse is the paged activity feed of a card
type GetCardActivityResponse struct {
	Activities []*model.Activity `json:"activities"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
