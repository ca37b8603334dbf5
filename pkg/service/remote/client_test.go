package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
	"github.com/ipai-lab/taskboard/pkg/service/remote"
)

func versionedHandler(handler http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(types.ContractVersionHeader, types.ContractVersion)
		handler(w, r)
	})
}

func TestClientContractVersion(t *testing.T) {
	ctx := context.Background()

	t.Run("request carries the contract version header", func(t *testing.T) {
		var got string
		srv := httptest.NewServer(versionedHandler(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get(types.ContractVersionHeader)
			gt.NoError(t, json.NewEncoder(w).Encode(&remote.ListBoardsResponse{}))
		}))
		defer srv.Close()

		client := remote.New(srv.URL)
		_, err := client.ListBoards(ctx, 0, 0)
		gt.NoError(t, err).Required()
		gt.Value(t, got).Equal(types.ContractVersion)
	})

	t.Run("mismatched response version is rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(types.ContractVersionHeader, "0.9.0")
			gt.NoError(t, json.NewEncoder(w).Encode(&remote.ListBoardsResponse{}))
		}))
		defer srv.Close()

		client := remote.New(srv.URL)
		_, err := client.ListBoards(ctx, 0, 0)
		gt.Error(t, err).Is(remote.ErrContractVersion)
	})

	t.Run("missing response version is rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.NoError(t, json.NewEncoder(w).Encode(&remote.ListBoardsResponse{}))
		}))
		defer srv.Close()

		client := remote.New(srv.URL)
		_, err := client.ListBoards(ctx, 0, 0)
		gt.Error(t, err).Is(remote.ErrContractVersion)
	})
}

func TestClientErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("404 maps to ErrNotFound", func(t *testing.T) {
		srv := httptest.NewServer(versionedHandler(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := remote.New(srv.URL)
		_, err := client.GetBoard(ctx, "project:missing")
		gt.Error(t, err).Is(remote.ErrNotFound)
	})

	t.Run("server error maps to ErrRemote", func(t *testing.T) {
		srv := httptest.NewServer(versionedHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := remote.New(srv.URL)
		_, err := client.ListBoards(ctx, 0, 0)
		gt.Error(t, err).Is(remote.ErrRemote)
	})
}

func TestClientListCards(t *testing.T) {
	ctx := context.Background()

	t.Run("filter and paging become query parameters", func(t *testing.T) {
		var gotPath string
		var gotQuery url.Values
		srv := httptest.NewServer(versionedHandler(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query()
			gt.NoError(t, json.NewEncoder(w).Encode(&remote.ListCardsResponse{
				Cards: []*model.Card{
					{ID: "task:1", BoardID: "project:1", StageID: "stage:10", Title: "Fix login", Priority: types.PriorityHigh},
				},
				Total: 1,
			}))
		}))
		defer srv.Close()

		dueFrom := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		client := remote.New(srv.URL)
		resp, err := client.ListCards(ctx, "project:1", model.CardFilter{
			Stage:      "stage:10",
			OwnerEmail: "amy@example.com",
			Query:      "login",
			DueFrom:    &dueFrom,
		}, 2, 50)
		gt.NoError(t, err).Required()
		gt.Array(t, resp.Cards).Length(1)
		gt.Value(t, resp.Cards[0].Title).Equal("Fix login")

		gt.Value(t, gotPath).Equal("/api/v1/boards/project:1/cards")
		gt.Value(t, gotQuery.Get("stage")).Equal("stage:10")
		gt.Value(t, gotQuery.Get("owner")).Equal("amy@example.com")
		gt.Value(t, gotQuery.Get("q")).Equal("login")
		gt.Value(t, gotQuery.Get("due_from")).Equal("2026-09-01")
		gt.Value(t, gotQuery.Get("page")).Equal("2")
		gt.Value(t, gotQuery.Get("limit")).Equal("50")
	})

	t.Run("zero page and limit are omitted", func(t *testing.T) {
		var gotQuery string
		srv := httptest.NewServer(versionedHandler(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			gt.NoError(t, json.NewEncoder(w).Encode(&remote.ListCardsResponse{}))
		}))
		defer srv.Close()

		client := remote.New(srv.URL)
		_, err := client.ListCards(ctx, "project:1", model.CardFilter{}, 0, 0)
		gt.NoError(t, err).Required()
		gt.Value(t, gotQuery).Equal("")
	})
}

func TestClientMutations(t *testing.T) {
	ctx := context.Background()

	t.Run("create card posts the request body", func(t *testing.T) {
		srv := httptest.NewServer(versionedHandler(func(w http.ResponseWriter, r *http.Request) {
			gt.Value(t, r.Method).Equal(http.MethodPost)
			gt.Value(t, r.URL.Path).Equal("/api/v1/cards")

			var req remote.CreateCardRequest
			gt.NoError(t, json.NewDecoder(r.Body).Decode(&req)).Required()
			gt.Value(t, req.Title).Equal("Fix login")
			gt.Value(t, req.BoardID).Equal(types.BoardID("project:1"))

			w.WriteHeader(http.StatusCreated)
			gt.NoError(t, json.NewEncoder(w).Encode(&model.Card{
				ID:       "task:42",
				BoardID:  req.BoardID,
				StageID:  req.StageID,
				Title:    req.Title,
				Priority: types.PriorityNormal,
			}))
		}))
		defer srv.Close()

		client := remote.New(srv.URL)
		card, err := client.CreateCard(ctx, &remote.CreateCardRequest{
			BoardID: "project:1",
			StageID: "stage:10",
			Title:   "Fix login",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, card.ID).Equal(types.CardID("task:42"))
	})

	t.Run("update card patches by id", func(t *testing.T) {
		srv := httptest.NewServer(versionedHandler(func(w http.ResponseWriter, r *http.Request) {
			gt.Value(t, r.Method).Equal(http.MethodPatch)
			gt.Value(t, r.URL.Path).Equal("/api/v1/cards/task:42")

			var req remote.UpdateCardRequest
			gt.NoError(t, json.NewDecoder(r.Body).Decode(&req)).Required()
			gt.Value(t, req.Title).NotNil()

			gt.NoError(t, json.NewEncoder(w).Encode(&model.Card{
				ID:       "task:42",
				BoardID:  "project:1",
				StageID:  "stage:10",
				Title:    *req.Title,
				Priority: types.PriorityNormal,
			}))
		}))
		defer srv.Close()

		title := "Fix login redirect"
		client := remote.New(srv.URL)
		card, err := client.UpdateCard(ctx, &remote.UpdateCardRequest{
			CardID: "task:42",
			Title:  &title,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, card.Title).Equal(title)
	})

	t.Run("create comment posts to the card path", func(t *testing.T) {
		srv := httptest.NewServer(versionedHandler(func(w http.ResponseWriter, r *http.Request) {
			gt.Value(t, r.URL.Path).Equal("/api/v1/cards/task:42/comments")

			var req remote.CreateCommentRequest
			gt.NoError(t, json.NewDecoder(r.Body).Decode(&req)).Required()

			w.WriteHeader(http.StatusCreated)
			gt.NoError(t, json.NewEncoder(w).Encode(&model.Activity{
				ID:     "msg:7",
				CardID: req.CardID,
				Type:   types.ActivityTypeComment,
				BodyMD: req.BodyMD,
			}))
		}))
		defer srv.Close()

		client := remote.New(srv.URL)
		activity, err := client.CreateComment(ctx, &remote.CreateCommentRequest{
			CardID:   "task:42",
			BodyMD:   "ping",
			Mentions: []string{"amy@example.com"},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, activity.ID).Equal(types.ActivityID("msg:7"))
	})
}
