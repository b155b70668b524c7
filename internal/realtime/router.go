// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"context"
	"encoding/json"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/service"
)

// Envelope is the inbound message frame: a type tag and an opaque payload.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

const (
	// eventCopyCompleted announces a finished badge copy. Inbound from
	// devices, rebroadcast to every admin connection across rooms.
	eventCopyCompleted = "copy_completed"

	// eventSyncRequest asks for the current quota state. Answered with a
	// private eventSyncResponse to the sender only.
	eventSyncRequest  = "sync_request"
	eventSyncResponse = "sync_response"
)

// Router dispatches inbound envelopes to their handlers.
type Router struct {
	hub    *Hub
	quotas service.QuotaService

	logger *logger.Logger
}

// NewRouter creates a Router delivering through hub and serving quota reads
// from quotas.
func NewRouter(hub *Hub, quotas service.QuotaService, logger *logger.Logger) *Router {
	return &Router{hub: hub, quotas: quotas, logger: logger}
}

// Route handles one raw inbound frame from conn. Malformed JSON and unknown
// types are logged and otherwise ignored: a misbehaving sender never brings
// its own connection down.
func (r *Router) Route(ctx context.Context, conn *Connection, raw []byte) {
	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		r.logger.Warn().
			Err(err).
			Str("room", conn.Room()).
			Msg("dropping malformed realtime frame")
		return
	}

	switch envelope.Type {
	case eventCopyCompleted:
		r.hub.BroadcastToAdmins(eventCopyCompleted, envelope.Payload)

	case eventSyncRequest:
		r.handleSyncRequest(ctx, conn)

	default:
		r.logger.Warn().
			Str("type", envelope.Type).
			Str("room", conn.Room()).
			Msg("dropping realtime frame of unknown type")
	}
}

func (r *Router) handleSyncRequest(ctx context.Context, conn *Connection) {
	quotas, err := r.quotas.ListQuotas(ctx)
	if err != nil {
		r.logger.Err(err).Str("room", conn.Room()).Msg("quota read for sync_request failed")
		return
	}

	if err := conn.Send(Event{Type: eventSyncResponse, Data: quotas}); err != nil {
		r.logger.Err(err).Str("room", conn.Room()).Msg("sync_response write failed")
	}
}
