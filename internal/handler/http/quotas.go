package http

import (
	"encoding/json"
	"net/http"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/utils"
	"github.com/djougoo/propass-central/models"
)

func (h *Handler) getQuota(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	clientID, err := pathID(r, "client_id")
	if err != nil {
		log.Err(err).Msg("invalid client id")
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	quota, err := h.services.QuotaService.GetQuota(ctx, clientID)
	if err != nil {
		log.Err(err).Int64("client_id", clientID).Msg("quota lookup failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.SuccessResponse{Success: true, Data: quota}, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing quota response")
	}
}

func (h *Handler) updateQuota(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	clientID, err := pathID(r, "client_id")
	if err != nil {
		log.Err(err).Msg("invalid client id")
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req models.QuotaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.QuotaService.UpdateQuota(ctx, clientID, req)
	if err != nil {
		log.Err(err).Int64("client_id", clientID).Msg("quota update failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.SuccessResponse{Success: true, Data: updated}, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing quota update response")
	}
}
