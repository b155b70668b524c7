package handler

import (
	stdhttp "net/http"

	"github.com/djougoo/propass-central/internal/config"
	"github.com/djougoo/propass-central/internal/handler/http"
	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the transport handlers. realtimeHandler serves the
// websocket endpoint and is mounted by the HTTP handler under /ws.
func NewHandlers(services *service.Services, realtimeHandler stdhttp.Handler, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, realtimeHandler, cfg.App.Version, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
