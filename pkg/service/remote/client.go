package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ipai-lab/taskboard/pkg/domain/model"
	"github.com/ipai-lab/taskboard/pkg/domain/types"
	"github.com/ipai-lab/taskboard/pkg/utils/safe"
)

// Client talks to the taskboard backend over its versioned REST API.
// Every response is checked for the contract version header before the
// body is trusted.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Service = &Client{}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a backend client for the given base URL, e.g.
// "https://erp.example.com".
func New(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, reqBody, respBody any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if reqBody != nil {
		raw, err := json.Marshal(reqBody)
		if err != nil {
			return goerr.Wrap(err, "failed to marshal request body", goerr.V("path", path))
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("path", path))
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(types.ContractVersionHeader, types.ContractVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to call remote", goerr.V("path", path))
	}
	defer safe.Close(ctx, resp.Body)

	if version := resp.Header.Get(types.ContractVersionHeader); version != types.ContractVersion {
		return goerr.Wrap(ErrContractVersion, "unexpected contract version",
			goerr.V("got", version),
			goerr.V("want", types.ContractVersion),
		)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to read response body", goerr.V("path", path))
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return goerr.Wrap(ErrNotFound, "remote returned 404", goerr.V("path", path))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return goerr.Wrap(ErrRemote, "unexpected status",
			goerr.V("path", path),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(raw)),
		)
	}

	if respBody != nil {
		if err := json.Unmarshal(raw, respBody); err != nil {
			return goerr.Wrap(err, "failed to parse response body", goerr.V("path", path))
		}
	}

	return nil
}

func pageQuery(page, limit int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return query
}

// ListBoards fetches the paged board listing
func (c *Client) ListBoards(ctx context.Context, page, limit int) (*ListBoardsResponse, error) {
	var resp ListBoardsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/boards", pageQuery(page, limit), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetBoard fetches a single board with its stage card counts
func (c *Client) GetBoard(ctx context.Context, boardID types.BoardID) (*GetBoardResponse, error) {
	var resp GetBoardResponse
	path := "/api/v1/boards/" + url.PathEscape(string(boardID))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListCards fetches cards of a board, filtered and paged on the backend
func (c *Client) ListCards(ctx context.Context, boardID types.BoardID, filter model.CardFilter, page, limit int) (*ListCardsResponse, error) {
	query := pageQuery(page, limit)
	if filter.Stage != "" {
		query.Set("stage", string(filter.Stage))
	}
	if filter.Tag != "" {
		query.Set("tag", string(filter.Tag))
	}
	if filter.OwnerEmail != "" {
		query.Set("owner", filter.OwnerEmail)
	}
	if filter.Query != "" {
		query.Set("q", filter.Query)
	}
	if filter.DueFrom != nil {
		query.Set("due_from", filter.DueFrom.Format("2006-01-02"))
	}
	if filter.DueTo != nil {
		query.Set("due_to", filter.DueTo.Format("2006-01-02"))
	}

	var resp ListCardsResponse
	path := "/api/v1/boards/" + url.PathEscape(string(boardID)) + "/cards"
	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateCard creates a card on the backend and returns the stored card
func (c *Client) CreateCard(ctx context.Context, req *CreateCardRequest) (*model.Card, error) {
	var card model.Card
	if err := c.do(ctx, http.MethodPost, "/api/v1/cards", nil, req, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// UpdateCard patches a card on the backend and returns the updated card
func (c *Client) UpdateCard(ctx context.Context, req *UpdateCardRequest) (*model.Card, error) {
	var card model.Card
	path := "/api/v1/cards/" + url.PathEscape(string(req.CardID))
	if err := c.do(ctx, http.MethodPatch, path, nil, req, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// CreateComment posts a comment to a card and returns the recorded
// activity entry.
func (c *Client) CreateComment(ctx context.Context, req *CreateCommentRequest) (*model.Activity, error) {
	var activity model.Activity
	path := "/api/v1/cards/" + url.PathEscape(string(req.CardID)) + "/comments"
	if err := c.do(ctx, http.MethodPost, path, nil, req, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// GetCardActivity fetches the activity feed of a card, newest first
func (c *Client) GetCardActivity(ctx context.Context, cardID types.CardID, activityType *types.ActivityType, page, limit int) (*GetCardActivityResponse, error) {
	query := pageQuery(page, limit)
	if activityType != nil {
		query.Set("activity_type", string(*activityType))
	}

	var resp GetCardActivityResponse
	path := "/api/v1/cards/" + url.PathEscape(string(cardID)) + "/activity"
	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
