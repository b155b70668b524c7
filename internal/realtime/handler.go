// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"net/http"
	"time"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/service"
	"github.com/gorilla/websocket"
)

// Handler upgrades HTTP requests to websocket sessions, authenticates them
// by the token query parameter, and runs each session's read loop.
type Handler struct {
	hub    *Hub
	router *Router
	auth   service.AuthService

	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewHandler creates the websocket upgrade handler.
func NewHandler(hub *Hub, router *Router, auth service.AuthService, logger *logger.Logger) *Handler {
	return &Handler{
		hub:    hub,
		router: router,
		auth:   auth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

// ServeHTTP handles GET /ws?token=...
//
// The handshake is completed first so the client receives a proper close
// frame: a missing or invalid token results in close code 1008 (policy
// violation) with a reason, which tells well-behaved clients not to retry.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		h.logger.Err(err).Msg("websocket upgrade failed")
		return
	}

	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		h.closePolicyViolation(conn, "missing token")
		return
	}

	token, err := h.auth.ParseToken(r.Context(), tokenString)
	if err != nil {
		h.closePolicyViolation(conn, "invalid token")
		return
	}

	session := NewConnection(conn, token.Claims)
	h.hub.Register(session)
	defer func() {
		h.hub.Unregister(session)
		_ = session.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn().Err(err).Str("room", session.Room()).Msg("realtime read loop ended")
			}
			return
		}

		h.router.Route(r.Context(), session, raw)
	}
}

func (h *Handler) closePolicyViolation(conn *websocket.Conn, reason string) {
	h.logger.Warn().Str("reason", reason).Msg("rejecting websocket connection")

	deadline := time.Now().Add(writeWait)
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason),
		deadline,
	)
	_ = conn.Close()
}
