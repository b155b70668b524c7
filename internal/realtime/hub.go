// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"sync"

	"github.com/djougoo/propass-central/internal/logger"
)

// Event is the outbound message envelope.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Hub is the registry of open websocket connections, keyed by room.
//
// It implements service.Broadcaster: the sync service mirrors successful
// offline-queue outcomes to admin monitors through BroadcastToAdmins without
// knowing anything about websockets.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Connection]struct{}

	logger *logger.Logger
}

// NewHub returns an empty connection registry.
func NewHub(logger *logger.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Connection]struct{}),
		logger: logger,
	}
}

// Register adds conn under its room key.
func (h *Hub) Register(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[conn.Room()]
	if !ok {
		room = make(map[*Connection]struct{})
		h.rooms[conn.Room()] = room
	}
	room[conn] = struct{}{}

	h.logger.Debug().
		Str("room", conn.Room()).
		Str("username", conn.Claims().Username).
		Int("room_size", len(room)).
		Msg("realtime connection registered")
}

// Unregister removes conn from the registry. Unknown connections are a
// no-op: the read loop and the liveness monitor may both try to remove the
// same connection.
func (h *Hub) Unregister(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[conn.Room()]
	if !ok {
		return
	}
	if _, ok := room[conn]; !ok {
		return
	}

	delete(room, conn)
	if len(room) == 0 {
		delete(h.rooms, conn.Room())
	}

	h.logger.Debug().
		Str("room", conn.Room()).
		Str("username", conn.Claims().Username).
		Msg("realtime connection unregistered")
}

// BroadcastToAdmins delivers an event to every open administrative
// connection, across all rooms. A failed write only logs; the liveness
// monitor is responsible for evicting broken connections.
func (h *Hub) BroadcastToAdmins(eventType string, data any) {
	event := Event{Type: eventType, Data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, room := range h.rooms {
		for conn := range room {
			if !conn.IsAdmin() {
				continue
			}
			if err := conn.Send(event); err != nil {
				h.logger.Err(err).
					Str("room", conn.Room()).
					Str("event_type", eventType).
					Msg("admin broadcast write failed")
			}
		}
	}
}

// ForEach calls fn for every registered connection. The registry lock is
// held for the duration, so fn must not call back into the hub.
func (h *Hub) ForEach(fn func(conn *Connection)) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, room := range h.rooms {
		for conn := range room {
			fn(conn)
		}
	}
}

// Len returns the total number of open connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var n int
	for _, room := range h.rooms {
		n += len(room)
	}
	return n
}
