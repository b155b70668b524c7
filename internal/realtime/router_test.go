package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockQuotaService struct {
	listFn func(ctx context.Context) ([]models.Quota, error)
}

func (m *mockQuotaService) GetQuota(ctx context.Context, clientID int64) (models.Quota, error) {
	return models.Quota{}, nil
}

func (m *mockQuotaService) ListQuotas(ctx context.Context) ([]models.Quota, error) {
	return m.listFn(ctx)
}

func (m *mockQuotaService) UpdateQuota(ctx context.Context, clientID int64, req models.QuotaRequest) (models.Quota, error) {
	return models.Quota{}, nil
}

func TestRouter_CopyCompletedBroadcastsToAdmins(t *testing.T) {
	hub := NewHub(logger.Nop())
	router := NewRouter(hub, &mockQuotaService{}, logger.Nop())

	admin, adminFake := connWithRole(models.RoleAdmin, "")
	sender, senderFake := connWithRole(models.RoleDevice, "D1")
	hub.Register(admin)
	hub.Register(sender)

	router.Route(context.Background(), sender, []byte(`{"type":"copy_completed","payload":{"uid":"u1","client_id":3}}`))

	events := adminFake.sentEvents(t)
	require.Len(t, events, 1)
	assert.Equal(t, "copy_completed", events[0].Type)

	// the payload travels through verbatim
	data, err := json.Marshal(events[0].Data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"uid":"u1","client_id":3}`, string(data))

	assert.Empty(t, senderFake.sentEvents(t), "sender is a device and must not receive the broadcast")
}

func TestRouter_SyncRequestGetsPrivateResponse(t *testing.T) {
	hub := NewHub(logger.Nop())
	quotas := &mockQuotaService{
		listFn: func(ctx context.Context) ([]models.Quota, error) {
			return []models.Quota{
				{ID: 1, ClientID: 1, MonthlyLimit: 100, Remaining: 40},
				{ID: 2, ClientID: 2, MonthlyLimit: 50, Remaining: 50},
			}, nil
		},
	}
	router := NewRouter(hub, quotas, logger.Nop())

	sender, senderFake := connWithRole(models.RoleDevice, "D1")
	bystander, bystanderFake := connWithRole(models.RoleAdmin, "")
	hub.Register(sender)
	hub.Register(bystander)

	router.Route(context.Background(), sender, []byte(`{"type":"sync_request"}`))

	events := senderFake.sentEvents(t)
	require.Len(t, events, 1)
	assert.Equal(t, "sync_response", events[0].Type)

	data, err := json.Marshal(events[0].Data)
	require.NoError(t, err)

	var got []models.Quota
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, int64(40), got[0].Remaining)

	assert.Empty(t, bystanderFake.sentEvents(t), "sync_response is private to the requester")
}

func TestRouter_SyncRequestQuotaFailureIsSwallowed(t *testing.T) {
	hub := NewHub(logger.Nop())
	quotas := &mockQuotaService{
		listFn: func(ctx context.Context) ([]models.Quota, error) {
			return nil, errors.New("db down")
		},
	}
	router := NewRouter(hub, quotas, logger.Nop())

	sender, senderFake := connWithRole(models.RoleDevice, "D1")
	hub.Register(sender)

	router.Route(context.Background(), sender, []byte(`{"type":"sync_request"}`))

	assert.Empty(t, senderFake.sentEvents(t))
	assert.False(t, senderFake.isClosed(), "a failed read must not drop the connection")
}

func TestRouter_MalformedAndUnknownFramesIgnored(t *testing.T) {
	hub := NewHub(logger.Nop())
	router := NewRouter(hub, &mockQuotaService{}, logger.Nop())

	sender, senderFake := connWithRole(models.RoleDevice, "D1")
	hub.Register(sender)

	router.Route(context.Background(), sender, []byte(`{not json`))
	router.Route(context.Background(), sender, []byte(`{"type":"reboot","payload":{}}`))

	assert.Empty(t, senderFake.sentEvents(t))
	assert.False(t, senderFake.isClosed())
	assert.Equal(t, 1, hub.Len())
}
