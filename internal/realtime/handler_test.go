package realtime

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/service"
	"github.com/djougoo/propass-central/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	parseFn func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (models.User, error) {
	return models.User{}, nil
}

func (m *mockAuthService) Refresh(ctx context.Context, tokenString, deviceID string) (models.Token, models.User, error) {
	return models.Token{}, models.User{}, nil
}

func (m *mockAuthService) Me(ctx context.Context, userID int64) (models.User, error) {
	return models.User{}, nil
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User, deviceID string) (models.Token, error) {
	return models.Token{}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseFn(ctx, tokenString)
}

func newTestServer(t *testing.T, auth service.AuthService, quotas service.QuotaService) (*httptest.Server, *Hub) {
	t.Helper()

	if quotas == nil {
		quotas = &mockQuotaService{}
	}

	hub := NewHub(logger.Nop())
	router := NewRouter(hub, quotas, logger.Nop())
	handler := NewHandler(hub, router, auth, logger.Nop())

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, hub
}

func wsURL(srv *httptest.Server, query string) string {
	return strings.Replace(srv.URL, "http", "ws", 1) + query
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func expectPolicyClose(t *testing.T, conn *websocket.Conn, reason string) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err := conn.ReadMessage()

	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, websocket.ClosePolicyViolation, closeErr.Code)
	assert.Equal(t, reason, closeErr.Text)
}

func TestHandler_MissingTokenClosedWithPolicyViolation(t *testing.T) {
	auth := &mockAuthService{
		parseFn: func(ctx context.Context, tokenString string) (models.Token, error) {
			t.Error("ParseToken must not be called without a token")
			return models.Token{}, service.ErrTokenIsExpiredOrInvalid
		},
	}
	srv, hub := newTestServer(t, auth, nil)

	conn := dial(t, wsURL(srv, ""))
	expectPolicyClose(t, conn, "missing token")
	assert.Equal(t, 0, hub.Len())
}

func TestHandler_InvalidTokenClosedWithPolicyViolation(t *testing.T) {
	auth := &mockAuthService{
		parseFn: func(ctx context.Context, tokenString string) (models.Token, error) {
			assert.Equal(t, "garbage", tokenString)
			return models.Token{}, service.ErrTokenIsExpiredOrInvalid
		},
	}
	srv, hub := newTestServer(t, auth, nil)

	conn := dial(t, wsURL(srv, "?token=garbage"))
	expectPolicyClose(t, conn, "invalid token")
	assert.Equal(t, 0, hub.Len())
}

func TestHandler_AuthenticatedSyncRequestRoundtrip(t *testing.T) {
	auth := &mockAuthService{
		parseFn: func(ctx context.Context, tokenString string) (models.Token, error) {
			return models.Token{Claims: models.TokenClaims{
				UserID:   1,
				Username: "device-1",
				Role:     models.RoleDevice,
				DeviceID: "D1",
			}}, nil
		},
	}
	quotas := &mockQuotaService{
		listFn: func(ctx context.Context) ([]models.Quota, error) {
			return []models.Quota{{ID: 4, ClientID: 2, MonthlyLimit: 10, Remaining: 3}}, nil
		},
	}
	srv, hub := newTestServer(t, auth, quotas)

	conn := dial(t, wsURL(srv, "?token=valid"))

	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"sync_request"}`)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type string         `json:"type"`
		Data []models.Quota `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, "sync_response", event.Type)
	require.Len(t, event.Data, 1)
	assert.Equal(t, int64(3), event.Data[0].Remaining)
}

func TestHandler_DisconnectUnregisters(t *testing.T) {
	auth := &mockAuthService{
		parseFn: func(ctx context.Context, tokenString string) (models.Token, error) {
			return models.Token{Claims: models.TokenClaims{Role: models.RoleAdmin}}, nil
		},
	}
	srv, hub := newTestServer(t, auth, nil)

	conn := dial(t, wsURL(srv, "?token=valid"))
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 10*time.Millisecond)
}
