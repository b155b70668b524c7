// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package realtime implements the websocket side of the copy service: a
// room-keyed connection hub, an envelope router for inbound messages, and a
// liveness monitor that evicts silent connections.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/djougoo/propass-central/models"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// DefaultRoom is where connections without a device binding land. Admin
// dashboards authenticate with user tokens that carry no device_id, so they
// all share this room.
const DefaultRoom = "main"

// wsConn is the slice of *websocket.Conn the hub actually uses. Tests
// substitute an in-memory implementation.
type wsConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Connection is one authenticated websocket session together with its token
// claims and liveness state.
type Connection struct {
	conn   wsConn
	claims models.TokenClaims
	room   string

	// writeMu serialises writes: gorilla permits at most one concurrent
	// writer per connection, and broadcasts, private replies and pings all
	// originate from different goroutines.
	writeMu sync.Mutex

	// stateMu guards alive, flipped between the monitor goroutine and the
	// pong handler running on the read loop.
	stateMu sync.Mutex
	alive   bool
}

// NewConnection wraps an upgraded websocket connection. The room is taken
// from the device binding of the token; connections without one share
// DefaultRoom. A pong handler is installed so the liveness monitor sees
// heartbeat replies.
func NewConnection(conn wsConn, claims models.TokenClaims) *Connection {
	room := claims.DeviceID
	if room == "" {
		room = DefaultRoom
	}

	c := &Connection{
		conn:   conn,
		claims: claims,
		room:   room,
		alive:  true,
	}
	conn.SetPongHandler(func(string) error {
		c.markAlive()
		return nil
	})

	return c
}

// Room returns the room key this connection is registered under.
func (c *Connection) Room() string {
	return c.room
}

// Claims returns the token claims the connection authenticated with.
func (c *Connection) Claims() models.TokenClaims {
	return c.claims
}

// IsAdmin reports whether the connection belongs to an administrative
// account. The comparison is case-insensitive: legacy datasets store the
// role in upper case.
func (c *Connection) IsAdmin() bool {
	return models.IsAdminRole(c.claims.Role)
}

// Send marshals v and writes it as a single text frame.
func (c *Connection) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Ping sends a transport-level ping control frame.
func (c *Connection) Ping() error {
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Alive reports whether the connection answered since the last probe.
func (c *Connection) Alive() bool {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.alive
}

// expectPong arms the liveness check: the flag stays down until the peer
// answers the next ping.
func (c *Connection) expectPong() {
	c.stateMu.Lock()
	c.alive = false
	c.stateMu.Unlock()
}

func (c *Connection) markAlive() {
	c.stateMu.Lock()
	c.alive = true
	c.stateMu.Unlock()
}

// Close terminates the underlying transport.
func (c *Connection) Close() error {
	return c.conn.Close()
}
