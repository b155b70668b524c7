package http

import (
	"encoding/json"
	"net/http"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/utils"
	"github.com/djougoo/propass-central/models"
)

func (h *Handler) recordCopy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CopyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// the recording actor always comes from the token, never the body
	var recordedBy string
	if claims, ok := utils.GetClaimsFromContext(ctx); ok {
		recordedBy = claims.Username
	}

	created, err := h.services.CopyService.RecordCopy(ctx, req, recordedBy)
	if err != nil {
		log.Err(err).Int64("client_id", req.ClientID).Msg("copy recording failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.SuccessResponse{Success: true, Data: created}, http.StatusCreated); err != nil {
		log.Err(err).Msg("error writing copy response")
	}
}

func (h *Handler) copyHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	copies, err := h.services.CopyService.History(ctx)
	if err != nil {
		log.Err(err).Msg("copy history read failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.SuccessResponse{Success: true, Data: copies}, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing copy history response")
	}
}
