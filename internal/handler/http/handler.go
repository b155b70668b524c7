package http

import (
	"net/http"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/service"
	"github.com/djougoo/propass-central/internal/utils"
)

type Handler struct {
	services *service.Services

	// realtimeHandler serves the websocket upgrade endpoint. Held as a
	// plain http.Handler so this package does not depend on the realtime
	// package internals.
	realtimeHandler http.Handler

	// traceIDs mints ids for requests arriving without an X-Trace-ID header.
	traceIDs *utils.UUIDGenerator

	version string

	logger *logger.Logger
}

func NewHandler(services *service.Services, realtimeHandler http.Handler, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:        services,
		realtimeHandler: realtimeHandler,
		traceIDs:        utils.NewUUIDGenerator(),
		version:         version,
		logger:          logger,
	}
}
