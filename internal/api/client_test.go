package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"frienddeck/internal/domain"
)

func TestListFriendsSendsAuthHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		require.Equal(t, "/api/friends", r.URL.Path)
		json.NewEncoder(w).Encode([]domain.User{{ID: "u1", Username: "ada", Interests: []string{"chess"}}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	friends, err := client.ListFriends(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	require.Equal(t, "ada", friends[0].Username)
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.NotEmpty(t, gotRequestID)
}

func TestSearchUsersEscapesTerm(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		json.NewEncoder(w).Encode([]domain.SearchResult{
			{User: domain.User{ID: "u2", Username: "a b"}, Relationship: domain.RelationNone},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	results, err := client.SearchUsers(context.Background(), "tok", "a b&c")
	require.NoError(t, err)
	require.Equal(t, "a b&c", gotQuery)
	require.Len(t, results, 1)
	require.Equal(t, domain.RelationNone, results[0].Relationship)
}

func TestToggleFriendRequestParsesOutcome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "u9", body["user_id"])
		json.NewEncoder(w).Encode(domain.ToggleOutcome{Status: domain.ToggleRequested, Message: "Friend request sent"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	outcome, err := client.ToggleFriendRequest(context.Background(), "tok", "u9")
	require.NoError(t, err)
	require.Equal(t, domain.ToggleRequested, outcome.Status)
	require.Equal(t, "Friend request sent", outcome.Message)
}

func TestToggleFriendRequestRejectsUnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.ToggleOutcome{Status: "maybe"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ToggleFriendRequest(context.Background(), "tok", "u9")

	var malformed *MalformedResponse
	require.ErrorAs(t, err, &malformed)
}

func TestServerErrorCarriesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "conflict", "message": "already requested"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ListFriends(context.Background(), "tok")

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	require.Equal(t, http.StatusConflict, serverErr.StatusCode)
	require.Equal(t, "conflict", serverErr.Code)
	require.Equal(t, "already requested", serverErr.Message)
}

func TestIsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.Unfriend(context.Background(), "stale-token", "u1")
	require.True(t, IsUnauthorized(err))
	require.False(t, IsUnauthorized(errors.New("plain")))
}

func TestNetworkErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := NewClient(srv.URL)
	_, err := client.ListRecommendations(context.Background(), "tok")

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestMalformedResponseClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ListPendingRequests(context.Background(), "tok")

	var malformed *MalformedResponse
	require.ErrorAs(t, err, &malformed)
}

func TestNoContentEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/friend-requests/req-1/accept":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/friends/u7":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	require.NoError(t, client.AcceptFriendRequest(context.Background(), "tok", "req-1"))
	require.NoError(t, client.Unfriend(context.Background(), "tok", "u7"))
}
