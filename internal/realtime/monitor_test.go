package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitor_SweepPingsLiveConnections(t *testing.T) {
	hub := NewHub(logger.Nop())
	monitor := NewMonitor(hub, logger.Nop())

	conn, fake := connWithRole(models.RoleDevice, "D1")
	hub.Register(conn)

	monitor.Sweep()

	assert.Equal(t, 1, fake.pingCount())
	assert.False(t, fake.isClosed())
	assert.Equal(t, 1, hub.Len())
	assert.False(t, conn.Alive(), "liveness flag must stay down until a pong arrives")
}

func TestMonitor_PongKeepsConnectionRegistered(t *testing.T) {
	hub := NewHub(logger.Nop())
	monitor := NewMonitor(hub, logger.Nop())

	conn, fake := connWithRole(models.RoleDevice, "D1")
	hub.Register(conn)

	monitor.Sweep()
	require.NoError(t, fake.pongHandler(""))
	monitor.Sweep()

	assert.Equal(t, 2, fake.pingCount())
	assert.Equal(t, 1, hub.Len())
	assert.False(t, fake.isClosed())
}

func TestMonitor_EvictsSilentConnection(t *testing.T) {
	hub := NewHub(logger.Nop())
	monitor := NewMonitor(hub, logger.Nop())

	silent, silentFake := connWithRole(models.RoleDevice, "D1")
	chatty, chattyFake := connWithRole(models.RoleAdmin, "")
	hub.Register(silent)
	hub.Register(chatty)

	monitor.Sweep()
	require.NoError(t, chattyFake.pongHandler(""))

	// second sweep: silent missed its pong, chatty answered
	monitor.Sweep()

	assert.True(t, silentFake.isClosed())
	assert.False(t, chattyFake.isClosed())
	assert.Equal(t, 1, hub.Len())
}

func TestMonitor_StartStop(t *testing.T) {
	hub := NewHub(logger.Nop())
	monitor := NewMonitor(hub, logger.Nop())

	conn, fake := connWithRole(models.RoleDevice, "D1")
	hub.Register(conn)

	monitor.Start(context.Background(), 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return fake.pingCount() >= 1
	}, time.Second, 5*time.Millisecond)

	monitor.Stop()
	monitor.Stop() // stopping twice is safe
}
