package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharloom/echoes/internal/domain"
)

func TestClient_CreateSession(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/sessions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sessionId": "srv-42",
			"startedAt": time.Now().UTC(),
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-1")
	id, err := c.CreateSession(context.Background(), domain.SessionPlan{
		Segments: []domain.Segment{{Area: "bonebottom", DurationSec: 600}},
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-42", id)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Contains(t, gotBody, "plan")
}

func TestClient_CreateSessionEmptyID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").CreateSession(context.Background(), domain.SessionPlan{})
	require.Error(t, err)

	var apiErr *domain.APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestClient_AppendEvent(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.AppendEvent(context.Background(), "srv-42", domain.SessionEvent{
		Type: domain.EventBreakReached,
		TS:   time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Equal(t, "/sessions/srv-42/events", gotPath)
	assert.Equal(t, "BreakReached", gotBody["type"])
}

func TestClient_ErrorStatusSurfacesAsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "bad").AppendEvent(context.Background(), "x", domain.SessionEvent{Type: domain.EventFocusLost})
	require.Error(t, err)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestClient_Areas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/areas", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]domain.Area{
			{ID: "bonebottom", DisplayName: "Bone Bottom"},
			{ID: "farfields", DisplayName: "Far Fields"},
		})
	}))
	defer srv.Close()

	areas, err := NewClient(srv.URL, "").Areas(context.Background())
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "bonebottom", areas[0].ID)
}

func TestClient_HomeView(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/home", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Home{
			Streaks: domain.Streaks{Daily: 3, Focus: 1},
			AreaIDs: []string{"bonebottom"},
		})
	}))
	defer srv.Close()

	home, err := NewClient(srv.URL, "").HomeView(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, home.Streaks.Daily)
	assert.Equal(t, []string{"bonebottom"}, home.AreaIDs)
}

func TestClient_Configured(t *testing.T) {
	assert.False(t, NewClient("", "").Configured())
	assert.True(t, NewClient("https://api.example.com", "").Configured())
}
