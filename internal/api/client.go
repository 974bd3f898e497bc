package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"frienddeck/internal/domain"
)

// Client talks to the remote friend service. Every call takes the bearer
// token explicitly; the client holds no session state of its own.
type Client struct {
	baseURL string
	httpc   *http.Client
	limiter *rate.Limiter
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
		// Politeness cap on outgoing calls; the search debounce keeps us
		// well under this in normal use.
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// ListFriends fetches the viewer's current friends.
func (c *Client) ListFriends(ctx context.Context, token string) ([]domain.User, error) {
	var out []domain.User
	if err := c.do(ctx, token, http.MethodGet, "/api/friends", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRecommendations fetches server-ranked friend suggestions.
func (c *Client) ListRecommendations(ctx context.Context, token string) ([]domain.Recommendation, error) {
	var out []domain.Recommendation
	if err := c.do(ctx, token, http.MethodGet, "/api/recommendations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPendingRequests fetches incoming friend requests awaiting an answer.
func (c *Client) ListPendingRequests(ctx context.Context, token string) ([]domain.PendingRequest, error) {
	var out []domain.PendingRequest
	if err := c.do(ctx, token, http.MethodGet, "/api/friend-requests", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchUsers runs a username search and returns each match with the
// viewer's relationship to them at query time.
func (c *Client) SearchUsers(ctx context.Context, token, term string) ([]domain.SearchResult, error) {
	var out []domain.SearchResult
	path := "/api/users/search?q=" + url.QueryEscape(term)
	if err := c.do(ctx, token, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleFriendRequest sends a friend request to userID, or cancels the
// outstanding one. The server reports which of the two happened.
func (c *Client) ToggleFriendRequest(ctx context.Context, token, userID string) (domain.ToggleOutcome, error) {
	body := map[string]string{"user_id": userID}
	var out domain.ToggleOutcome
	if err := c.do(ctx, token, http.MethodPost, "/api/friend-requests/toggle", body, &out); err != nil {
		return domain.ToggleOutcome{}, err
	}
	switch out.Status {
	case domain.ToggleRequested, domain.ToggleCancelled:
		return out, nil
	default:
		return domain.ToggleOutcome{}, &MalformedResponse{Err: fmt.Errorf("unknown toggle status %q", out.Status)}
	}
}

// AcceptFriendRequest accepts the pending request with the given id.
func (c *Client) AcceptFriendRequest(ctx context.Context, token, requestID string) error {
	path := "/api/friend-requests/" + url.PathEscape(requestID) + "/accept"
	return c.do(ctx, token, http.MethodPost, path, nil, nil)
}

// Unfriend removes userID from the viewer's friends.
func (c *Client) Unfriend(ctx context.Context, token, userID string) error {
	path := "/api/friends/" + url.PathEscape(userID)
	return c.do(ctx, token, http.MethodDelete, path, nil, nil)
}

type errorPayload struct {
	Code    string `json:"error"`
	Message string `json:"message"`
}

// do performs one request and normalizes every failure into the package's
// error taxonomy: NetworkError, ServerError or MalformedResponse.
func (c *Client) do(ctx context.Context, token, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &NetworkError{Err: err}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload := errorPayload{}
		// Best effort; the status code alone is enough to classify
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &ServerError{StatusCode: resp.StatusCode, Code: payload.Code, Message: payload.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &MalformedResponse{Err: err}
	}
	return nil
}
