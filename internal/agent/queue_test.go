package agent

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) *Queue {
	t.Helper()

	queue, err := NewQueue(filepath.Join(t.TempDir(), "queue.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { queue.Close() })
	return queue
}

func queuedCopy(id, uid string) models.SyncItem {
	payload, _ := json.Marshal(models.CopyPayload{ClientID: 1, UID: uid, Status: "ok"})
	return models.SyncItem{ID: id, Type: models.SyncItemTypeCopy, Payload: payload}
}

func TestQueue_EnqueueAndPendingOrder(t *testing.T) {
	ctx := context.Background()
	queue := newTestQueue(t)

	require.NoError(t, queue.Enqueue(ctx, queuedCopy("a", "u1")))
	require.NoError(t, queue.Enqueue(ctx, queuedCopy("b", "u2")))
	require.NoError(t, queue.Enqueue(ctx, queuedCopy("c", "u3")))

	items, err := queue.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, "c", items[2].ID)

	var payload models.CopyPayload
	require.NoError(t, json.Unmarshal(items[1].Payload, &payload))
	assert.Equal(t, "u2", payload.UID)
}

func TestQueue_EnqueueSameIDIsIdempotent(t *testing.T) {
	ctx := context.Background()
	queue := newTestQueue(t)

	require.NoError(t, queue.Enqueue(ctx, queuedCopy("a", "u1")))
	require.NoError(t, queue.Enqueue(ctx, queuedCopy("a", "u1")))

	n, err := queue.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestQueue_Remove(t *testing.T) {
	ctx := context.Background()
	queue := newTestQueue(t)

	require.NoError(t, queue.Enqueue(ctx, queuedCopy("a", "u1")))
	require.NoError(t, queue.Enqueue(ctx, queuedCopy("b", "u2")))

	require.NoError(t, queue.Remove(ctx, []string{"a", "unknown"}))

	items, err := queue.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
}

func TestQueue_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "queue.db")

	queue, err := NewQueue(path, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, queue.Enqueue(ctx, queuedCopy("a", "u1")))
	require.NoError(t, queue.Close())

	reopened, err := NewQueue(path, logger.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	n, err := reopened.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
