package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	server "github.com/ipai-lab/taskboard/pkg/controller/http"
	"github.com/ipai-lab/taskboard/pkg/domain/interfaces"
	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
	"github.com/ipai-lab/taskboard/pkg/repository/memory"
	"github.com/ipai-lab/taskboard/pkg/usecase"
)

var (
	testAmy = model.Partner{ID: 1, Email: "amy@example.com", Name: "Amy"}
	testVic = model.Partner{ID: 2, Email: "vic@example.com", Name: "Vic"}
)

func setupServer(t *testing.T, opts ...usecase.Option) (*httptest.Server, interfaces.Repository) {
	t.Helper()
	ctx := context.Background()

	repo := memory.New()
	gt.NoError(t, repo.Partner().Put(ctx, &testAmy)).Required()
	gt.NoError(t, repo.Partner().Put(ctx, &testVic)).Required()

	wip := 1
	board := &model.Board{
		ID:         "project:1",
		Name:       "Platform",
		Owner:      testAmy,
		Visibility: types.VisibilityTeam,
		Members: []model.BoardMember{
			{Partner: testAmy, Role: types.RoleAdmin},
			{Partner: testVic, Role: types.RoleViewer},
		},
		Stages: []model.Stage{
			{ID: "stage:10", Name: "Backlog", Order: 10},
			{ID: "stage:20", Name: "Doing", Order: 20, WIPLimit: &wip},
		},
		Tags: []model.Tag{
			{ID: "tag:bug", Name: "bug"},
		},
	}
	_, err := repo.Board().Put(ctx, board)
	gt.NoError(t, err).Required()

	uc := usecase.New(repo, opts...)
	srv := httptest.NewServer(server.New(uc))
	t.Cleanup(srv.Close)
	return srv, repo
}

func doJSON(t *testing.T, method, url string, body any, actor string) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		gt.NoError(t, err).Required()
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	gt.NoError(t, err).Required()
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		req.Header.Set("X-Actor-Email", actor)
	}

	resp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err).Required()
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&v)).Required()
	return v
}

func createCardHTTP(t *testing.T, srv *httptest.Server, title string) *model.Card {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/cards", map[string]any{
		"board_id": "project:1",
		"stage_id": "stage:10",
		"title":    title,
	}, "amy@example.com")
	gt.Value(t, resp.StatusCode).Equal(http.StatusCreated)
	card := decodeBody[model.Card](t, resp)
	return &card
}

func TestServerContractVersion(t *testing.T) {
	srv, _ := setupServer(t)

	t.Run("every response carries the version header", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/boards")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.Header.Get(types.ContractVersionHeader)).Equal(types.ContractVersion)
	})

	t.Run("even error responses carry it", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/boards/project:missing")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusNotFound)
		gt.Value(t, resp.Header.Get(types.ContractVersionHeader)).Equal(types.ContractVersion)
	})
}

func TestServerBoards(t *testing.T) {
	srv, _ := setupServer(t)

	t.Run("list", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/boards")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		body := decodeBody[struct {
			Boards []*model.Board `json:"boards"`
			Total  int            `json:"total"`
		}](t, resp)
		gt.Array(t, body.Boards).Length(1)
		gt.Value(t, body.Total).Equal(1)
	})

	t.Run("get includes card counts for every stage", func(t *testing.T) {
		createCardHTTP(t, srv, "Fix login redirect")

		resp, err := http.Get(srv.URL + "/api/boards/project:1")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		body := decodeBody[struct {
			Board      *model.Board          `json:"board"`
			CardCounts map[types.StageID]int `json:"card_counts"`
		}](t, resp)
		gt.Value(t, body.Board.Name).Equal("Platform")
		gt.Value(t, body.CardCounts["stage:10"]).Equal(1)
		gt.Value(t, body.CardCounts["stage:20"]).Equal(0)
	})

	t.Run("stats", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/boards/project:1/stats")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		stats := decodeBody[model.BoardStats](t, resp)
		gt.Number(t, stats.TotalCards).GreaterOrEqual(1)
	})

	t.Run("list cards applies filters from the query", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/boards/project:1/cards?stage=stage:10&q=login")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		body := decodeBody[struct {
			Cards []*model.Card `json:"cards"`
			Total int           `json:"total"`
		}](t, resp)
		gt.Array(t, body.Cards).Length(1)
		gt.Value(t, body.Cards[0].Title).Equal("Fix login redirect")
	})

	t.Run("list cards with an absurd page number is an empty page", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/boards/project:1/cards?page=92233720368547758&limit=101")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		body := decodeBody[struct {
			Cards []*model.Card `json:"cards"`
			Total int           `json:"total"`
		}](t, resp)
		gt.Array(t, body.Cards).Length(0)
		gt.Number(t, body.Total).GreaterOrEqual(1)
	})
}

func TestServerCards(t *testing.T) {
	t.Run("create and fetch", func(t *testing.T) {
		srv, _ := setupServer(t)
		card := createCardHTTP(t, srv, "Fix login redirect")
		gt.Value(t, card.Priority).Equal(types.PriorityNormal)

		resp, err := http.Get(fmt.Sprintf("%s/api/cards/%s", srv.URL, card.ID))
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		fetched := decodeBody[model.Card](t, resp)
		gt.Value(t, fetched.Title).Equal("Fix login redirect")
	})

	t.Run("missing actor header is a bad request", func(t *testing.T) {
		srv, _ := setupServer(t)
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/cards", map[string]any{
			"board_id": "project:1",
			"stage_id": "stage:10",
			"title":    "nobody acts",
		}, "")
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})

	t.Run("viewer actor is forbidden", func(t *testing.T) {
		srv, _ := setupServer(t)
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/cards", map[string]any{
			"board_id": "project:1",
			"stage_id": "stage:10",
			"title":    "read-only push",
		}, "vic@example.com")
		gt.Value(t, resp.StatusCode).Equal(http.StatusForbidden)
	})

	t.Run("unknown stage is a bad request", func(t *testing.T) {
		srv, _ := setupServer(t)
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/cards", map[string]any{
			"board_id": "project:1",
			"stage_id": "stage:99",
			"title":    "lost",
		}, "amy@example.com")
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})

	t.Run("unknown card is not found", func(t *testing.T) {
		srv, _ := setupServer(t)
		resp, err := http.Get(srv.URL + "/api/cards/task:missing")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusNotFound)
	})

	t.Run("malformed due date is a bad request", func(t *testing.T) {
		srv, _ := setupServer(t)
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/cards", map[string]any{
			"board_id": "project:1",
			"stage_id": "stage:10",
			"title":    "dated",
			"due_date": "15/09/2026",
		}, "amy@example.com")
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})

	t.Run("patch updates and stale patch conflicts", func(t *testing.T) {
		srv, _ := setupServer(t)
		card := createCardHTTP(t, srv, "Fix login redirect")

		resp := doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/cards/%s", srv.URL, card.ID), map[string]any{
			"title": "Fix login redirect loop",
		}, "amy@example.com")
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		patched := decodeBody[model.Card](t, resp)
		gt.Value(t, patched.Title).Equal("Fix login redirect loop")

		stale := doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/cards/%s", srv.URL, card.ID), map[string]any{
			"title":               "should conflict",
			"if_unmodified_since": time.Now().Add(-time.Hour).Format(time.RFC3339),
		}, "amy@example.com")
		gt.Value(t, stale.StatusCode).Equal(http.StatusConflict)
	})
}

func TestServerComments(t *testing.T) {
	t.Run("comment lands in the activity feed", func(t *testing.T) {
		srv, _ := setupServer(t)
		card := createCardHTTP(t, srv, "Fix login redirect")

		resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/cards/%s/comments", srv.URL, card.ID), map[string]any{
			"body_md":  "looks like a cookie issue",
			"mentions": []string{"amy@example.com"},
		}, "amy@example.com")
		gt.Value(t, resp.StatusCode).Equal(http.StatusCreated)

		comment := decodeBody[model.Activity](t, resp)
		gt.Value(t, comment.Type).Equal(types.ActivityTypeComment)
		gt.Array(t, comment.Mentions).Length(1)

		feed, err := http.Get(fmt.Sprintf("%s/api/cards/%s/activity?activity_type=comment", srv.URL, card.ID))
		gt.NoError(t, err).Required()
		defer feed.Body.Close()
		gt.Value(t, feed.StatusCode).Equal(http.StatusOK)

		body := decodeBody[struct {
			Activities []*model.Activity `json:"activities"`
			Total      int               `json:"total"`
		}](t, feed)
		gt.Array(t, body.Activities).Length(1)
		gt.Value(t, body.Activities[0].BodyMD).Equal("looks like a cookie issue")
	})

	t.Run("unknown mention is a bad request", func(t *testing.T) {
		srv, _ := setupServer(t)
		card := createCardHTTP(t, srv, "Fix login redirect")

		resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/cards/%s/comments", srv.URL, card.ID), map[string]any{
			"body_md":  "hi @ghost",
			"mentions": []string{"ghost@nowhere.example.com"},
		}, "amy@example.com")
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})

	t.Run("bad activity_type filter is a bad request", func(t *testing.T) {
		srv, _ := setupServer(t)
		card := createCardHTTP(t, srv, "Fix login redirect")

		resp, err := http.Get(fmt.Sprintf("%s/api/cards/%s/activity?activity_type=renamed", srv.URL, card.ID))
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})
}
