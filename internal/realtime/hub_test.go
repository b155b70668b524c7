package realtime

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn is an in-memory wsConn recording everything written to it.
type fakeConn struct {
	mu          sync.Mutex
	frames      [][]byte
	pings       int
	closed      bool
	pongHandler func(string) error
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	return 0, nil, errors.New("fakeConn does not read")
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, data)
	return nil
}

func (f *fakeConn) WriteControl(messageType int, data []byte, deadline time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if messageType == websocket.PingMessage {
		f.pings++
	}
	return nil
}

func (f *fakeConn) SetPongHandler(h func(appData string) error) {
	f.pongHandler = h
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) sentEvents(t *testing.T) []Event {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	events := make([]Event, 0, len(f.frames))
	for _, frame := range f.frames {
		var event Event
		require.NoError(t, json.Unmarshal(frame, &event))
		events = append(events, event)
	}
	return events
}

func (f *fakeConn) pingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pings
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func connWithRole(role, deviceID string) (*Connection, *fakeConn) {
	fake := &fakeConn{}
	claims := models.TokenClaims{Username: "u-" + role, Role: role, DeviceID: deviceID}
	return NewConnection(fake, claims), fake
}

func TestHub_RoomKeyFromDeviceBinding(t *testing.T) {
	deviceConn, _ := connWithRole(models.RoleDevice, "D1")
	adminConn, _ := connWithRole(models.RoleAdmin, "")

	assert.Equal(t, "D1", deviceConn.Room())
	assert.Equal(t, DefaultRoom, adminConn.Room())
}

func TestHub_BroadcastToAdmins_CrossRoom(t *testing.T) {
	hub := NewHub(logger.Nop())

	adminMain, adminMainFake := connWithRole(models.RoleAdmin, "")
	adminBound, adminBoundFake := connWithRole(models.RoleAdmin, "D9")
	device, deviceFake := connWithRole(models.RoleDevice, "D1")

	hub.Register(adminMain)
	hub.Register(adminBound)
	hub.Register(device)

	hub.BroadcastToAdmins("copy_completed", map[string]any{"uid": "u1"})

	// admins in every room receive the event; the device does not
	require.Len(t, adminMainFake.sentEvents(t), 1)
	require.Len(t, adminBoundFake.sentEvents(t), 1)
	assert.Empty(t, deviceFake.sentEvents(t))

	event := adminMainFake.sentEvents(t)[0]
	assert.Equal(t, "copy_completed", event.Type)
}

func TestHub_BroadcastToAdmins_RoleCaseInsensitive(t *testing.T) {
	hub := NewHub(logger.Nop())

	// legacy rows store the role upper-cased
	legacyAdmin, legacyFake := connWithRole("ADMIN", "")
	hub.Register(legacyAdmin)

	hub.BroadcastToAdmins("copy_completed", nil)

	require.Len(t, legacyFake.sentEvents(t), 1)
}

func TestHub_UnregisterUnknownIsNoOp(t *testing.T) {
	hub := NewHub(logger.Nop())

	registered, _ := connWithRole(models.RoleAdmin, "")
	stranger, _ := connWithRole(models.RoleAdmin, "")

	hub.Register(registered)
	hub.Unregister(stranger)
	assert.Equal(t, 1, hub.Len())

	// double unregister of the same connection is equally harmless
	hub.Unregister(registered)
	hub.Unregister(registered)
	assert.Equal(t, 0, hub.Len())
}

func TestHub_ForEachVisitsAllRooms(t *testing.T) {
	hub := NewHub(logger.Nop())

	a, _ := connWithRole(models.RoleAdmin, "")
	b, _ := connWithRole(models.RoleDevice, "D1")
	c, _ := connWithRole(models.RoleDevice, "D2")

	hub.Register(a)
	hub.Register(b)
	hub.Register(c)

	seen := map[*Connection]bool{}
	hub.ForEach(func(conn *Connection) { seen[conn] = true })

	assert.Len(t, seen, 3)
}
