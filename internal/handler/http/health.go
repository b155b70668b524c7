package http

import (
	"net/http"
	"time"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/utils"
	"github.com/djougoo/propass-central/models"
)

// health reports service readiness. Unauthenticated.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if _, err := utils.WriteJSON(w, models.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
	}, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing health response")
	}
}
