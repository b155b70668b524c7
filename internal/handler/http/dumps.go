package http

import (
	"encoding/json"
	"net/http"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/utils"
	"github.com/djougoo/propass-central/models"
)

func (h *Handler) listDumps(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	dumps, err := h.services.DumpService.ListDumps(ctx)
	if err != nil {
		log.Err(err).Msg("dump list failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.SuccessResponse{Success: true, Data: dumps}, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing dump list response")
	}
}

func (h *Handler) uploadDump(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.DumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	var uploadedBy string
	if claims, ok := utils.GetClaimsFromContext(ctx); ok {
		uploadedBy = claims.Username
	}

	created, err := h.services.DumpService.UploadDump(ctx, req, uploadedBy)
	if err != nil {
		log.Err(err).Int64("client_id", req.ClientID).Msg("dump upload failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.SuccessResponse{Success: true, Data: created}, http.StatusCreated); err != nil {
		log.Err(err).Msg("error writing dump upload response")
	}
}
