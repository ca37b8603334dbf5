package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
)

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func queryDate(r *http.Request, key string) *time.Time {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

func (s *Server) listBoards(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 0)
	limit := queryInt(r, "limit", 0)

	result, err := s.uc.Board.ListBoards(r.Context(), page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"boards": result.Boards,
		"total":  result.Total,
		"page":   result.Page,
		"limit":  result.Limit,
	})
}

func (s *Server) getBoard(w http.ResponseWriter, r *http.Request) {
	boardID := types.BoardID(chi.URLParam(r, "boardID"))

	detail, err := s.uc.Board.GetBoard(r.Context(), boardID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"board":       detail.Board,
		"card_counts": detail.CardCounts,
	})
}

func (s *Server) listCards(w http.ResponseWriter, r *http.Request) {
	boardID := types.BoardID(chi.URLParam(r, "boardID"))

	filter := model.CardFilter{
		Stage:      types.StageID(r.URL.Query().Get("stage")),
		Tag:        types.TagID(r.URL.Query().Get("tag")),
		OwnerEmail: r.URL.Query().Get("owner"),
		Query:      r.URL.Query().Get("q"),
		DueFrom:    queryDate(r, "due_from"),
		DueTo:      queryDate(r, "due_to"),
	}
	page := queryInt(r, "page", 0)
	limit := queryInt(r, "limit", 0)

	result, err := s.uc.Board.ListCards(r.Context(), boardID, filter, page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"cards": result.Cards,
		"total": result.Total,
		"page":  result.Page,
		"limit": result.Limit,
	})
}

func (s *Server) boardStats(w http.ResponseWriter, r *http.Request) {
	boardID := types.BoardID(chi.URLParam(r, "boardID"))

	stats, err := s.uc.Stats.BoardStats(r.Context(), boardID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, stats)
}
