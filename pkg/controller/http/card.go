package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
	"github.com/ipai-lab/taskboard/pkg/usecase"
)

// actorHeader carries the acting identity. Authentication is handled
// upstream of this facade; the header only names who acts.
const actorHeader = "X-Actor-Email"

func (s *Server) actor(r *http.Request) (*model.Partner, error) {
	return s.uc.ResolveActor(r.Context(), r.Header.Get(actorHeader))
}

type createCardRequest struct {
	BoardID       types.BoardID  `json:"board_id"`
	StageID       types.StageID  `json:"stage_id"`
	Title         string         `json:"title"`
	DescriptionMD string         `json:"description_md"`
	Priority      types.Priority `json:"priority"`
	DueDate       *string        `json:"due_date"`
	OwnerEmails   []string       `json:"owners"`
	Tags          []types.TagID  `json:"tags"`
	ParentID      *types.CardID  `json:"parent_id"`
}

type updateCardRequest struct {
	Title             *string                `json:"title"`
	DescriptionMD     *string                `json:"description_md"`
	StageID           *types.StageID         `json:"stage_id"`
	Priority          *types.Priority        `json:"priority"`
	DueDate           *string                `json:"due_date"`
	ClearDueDate      bool                   `json:"clear_due_date"`
	OwnerEmails       *[]string              `json:"owners"`
	Tags              *[]types.TagID         `json:"tags"`
	Checklist         *[]model.ChecklistItem `json:"checklist"`
	IfUnmodifiedSince *time.Time             `json:"if_unmodified_since"`
}

type createCommentRequest struct {
	BodyMD   string   `json:"body_md"`
	Mentions []string `json:"mentions"`
}

func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, goerr.Wrap(usecase.ErrInvalidInput, "due_date must be YYYY-MM-DD", goerr.V("due_date", *raw))
	}
	return &t, nil
}

func (s *Server) createCard(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req createCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, goerr.Wrap(usecase.ErrInvalidInput, "invalid request body"))
		return
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		respondError(w, r, err)
		return
	}

	card, err := s.uc.Card.CreateCard(r.Context(), &usecase.CreateCardInput{
		BoardID:       req.BoardID,
		StageID:       req.StageID,
		Title:         req.Title,
		DescriptionMD: req.DescriptionMD,
		Priority:      req.Priority,
		DueDate:       due,
		OwnerEmails:   req.OwnerEmails,
		Tags:          req.Tags,
		ParentID:      req.ParentID,
		Actor:         *actor,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, card)
}

func (s *Server) getCard(w http.ResponseWriter, r *http.Request) {
	cardID := types.CardID(chi.URLParam(r, "cardID"))

	card, err := s.uc.Card.GetCard(r.Context(), cardID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, card)
}

func (s *Server) updateCard(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	cardID := types.CardID(chi.URLParam(r, "cardID"))

	var req updateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, goerr.Wrap(usecase.ErrInvalidInput, "invalid request body"))
		return
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		respondError(w, r, err)
		return
	}

	card, err := s.uc.Card.UpdateCard(r.Context(), &usecase.UpdateCardInput{
		CardID:            cardID,
		Title:             req.Title,
		DescriptionMD:     req.DescriptionMD,
		StageID:           req.StageID,
		Priority:          req.Priority,
		DueDate:           due,
		ClearDueDate:      req.ClearDueDate,
		OwnerEmails:       req.OwnerEmails,
		Tags:              req.Tags,
		Checklist:         req.Checklist,
		IfUnmodifiedSince: req.IfUnmodifiedSince,
		Actor:             *actor,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, card)
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	actor, err := s.actor(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	cardID := types.CardID(chi.URLParam(r, "cardID"))

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, goerr.Wrap(usecase.ErrInvalidInput, "invalid request body"))
		return
	}

	comment, err := s.uc.Comment.CreateComment(r.Context(), cardID, *actor, req.BodyMD, req.Mentions)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, comment)
}

func (s *Server) cardActivity(w http.ResponseWriter, r *http.Request) {
	cardID := types.CardID(chi.URLParam(r, "cardID"))

	var activityType *types.ActivityType
	if raw := r.URL.Query().Get("activity_type"); raw != "" {
		t, err := types.ParseActivityType(raw)
		if err != nil {
			respondError(w, r, goerr.Wrap(usecase.ErrInvalidInput, "invalid activity_type", goerr.V("activity_type", raw)))
			return
		}
		activityType = &t
	}

	page := queryInt(r, "page", 0)
	limit := queryInt(r, "limit", 0)

	result, err := s.uc.Card.GetCardActivity(r.Context(), cardID, activityType, page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"activities": result.Activities,
		"total":      result.Total,
		"page":       result.Page,
		"limit":      result.Limit,
	})
}
