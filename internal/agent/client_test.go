package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/djougoo/propass-central/internal/config"
	"github.com/djougoo/propass-central/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func agentConfig(serverURL string) config.AgentConfig {
	return config.AgentConfig{
		ServerAddress:  serverURL,
		DeviceID:       "D1",
		Username:       "device-1",
		Password:       "s3cret",
		RequestTimeout: time.Second,
	}
}

func TestClientLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "device-1", req.Username)
		assert.Equal(t, "D1", req.DeviceID)

		json.NewEncoder(w).Encode(models.LoginResponse{Success: true, Token: "issued.token"})
	}))
	defer srv.Close()

	client := NewClient(agentConfig(srv.URL))
	require.NoError(t, client.Login(context.Background()))
	assert.Equal(t, "issued.token", client.currentToken())
}

func TestClientLogin_RejectedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "invalid login/password"})
	}))
	defer srv.Close()

	client := NewClient(agentConfig(srv.URL))
	require.ErrorIs(t, client.Login(context.Background()), ErrUnauthorized)
}

func TestClientPush_SendsBearerAndDecodesOutcomes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/sync/push", r.URL.Path)
		assert.Equal(t, "Bearer known.token", r.Header.Get("Authorization"))

		var req models.PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "D1", req.DeviceID)
		require.Len(t, req.Queue, 1)

		json.NewEncoder(w).Encode(models.SuccessResponse{
			Success: true,
			Data: []models.SyncOutcome{
				{ID: req.Queue[0].ID, Status: models.SyncStatusSynced},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(agentConfig(srv.URL))
	client.setToken("known.token")

	outcomes, err := client.Push(context.Background(), []models.SyncItem{queuedCopy("a", "u1")})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, models.SyncStatusSynced, outcomes[0].Status)
}

// An expired token triggers exactly one re-login followed by a retry.
func TestClientPush_ReauthenticatesOnExpiredToken(t *testing.T) {
	var pushes, logins int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			logins++
			json.NewEncoder(w).Encode(models.LoginResponse{Success: true, Token: "fresh.token"})
		case "/api/sync/push":
			pushes++
			if r.Header.Get("Authorization") != "Bearer fresh.token" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(models.ErrorResponse{Error: "token expired"})
				return
			}
			json.NewEncoder(w).Encode(models.SuccessResponse{
				Success: true,
				Data:    []models.SyncOutcome{{ID: "a", Status: models.SyncStatusSynced}},
			})
		}
	}))
	defer srv.Close()

	client := NewClient(agentConfig(srv.URL))
	client.setToken("stale.token")

	outcomes, err := client.Push(context.Background(), []models.SyncItem{queuedCopy("a", "u1")})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, 1, logins)
	assert.Equal(t, 2, pushes)
}
