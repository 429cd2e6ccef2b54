package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOAuthFixture(t *testing.T) (*OAuthHandler, *StateStore) {
	t.Helper()
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	t.Setenv("GOOGLE_REDIRECT_URI", "http://localhost:8000/auth/google/callback")

	sc := NewServerContext(context.Background(), nil, nil, nil, nil)
	states := NewStateStore(time.Minute)
	t.Cleanup(states.Stop)

	return NewOAuthHandler(sc, states), states
}

func TestOAuthStart(t *testing.T) {
	handler, states := newOAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/start?user_id=alice@example.com", nil)
	rec := httptest.NewRecorder()
	handler.handleStart(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["auth_url"], "accounts.google.com")
	assert.Contains(t, resp["auth_url"], "state="+resp["state"])
	assert.Contains(t, resp["auth_url"], "access_type=offline")
	require.NotEmpty(t, resp["state"])

	identity, ok := states.Consume(resp["state"])
	assert.True(t, ok)
	assert.Equal(t, "alice@example.com", identity)
}

func TestOAuthStartRequiresUserID(t *testing.T) {
	handler, _ := newOAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/start", nil)
	rec := httptest.NewRecorder()
	handler.handleStart(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOAuthStartFailsWithoutConfig(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")
	t.Setenv("GOOGLE_REDIRECT_URI", "")

	sc := NewServerContext(context.Background(), nil, nil, nil, nil)
	states := NewStateStore(time.Minute)
	t.Cleanup(states.Stop)
	handler := NewOAuthHandler(sc, states)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/start?user_id=alice@example.com", nil)
	rec := httptest.NewRecorder()
	handler.handleStart(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestOAuthStartRedirect(t *testing.T) {
	handler, _ := newOAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/start/redirect?user_id=alice@example.com", nil)
	rec := httptest.NewRecorder()
	handler.handleStartRedirect(rec, req)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "accounts.google.com")
}

func TestOAuthCallbackRejectsBadState(t *testing.T) {
	handler, _ := newOAuthFixture(t)

	t.Run("missing state", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback", nil)
		rec := httptest.NewRecorder()
		handler.handleCallback(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown state", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=forged&code=abc", nil)
		rec := httptest.NewRecorder()
		handler.handleCallback(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOAuthCallbackSurfacesProviderError(t *testing.T) {
	handler, states := newOAuthFixture(t)
	states.Put("state-1", "alice@example.com")

	req := httptest.NewRequest(http.MethodGet,
		"/auth/google/callback?state=state-1&error=access_denied&error_description=User+denied", nil)
	rec := httptest.NewRecorder()
	handler.handleCallback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["detail"], "access_denied")
}
