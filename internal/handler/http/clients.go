package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/utils"
	"github.com/djougoo/propass-central/models"
	"github.com/go-chi/chi/v5"
)

// pathID parses the named numeric path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, ErrInvalidPathParameter
	}
	return id, nil
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	clients, err := h.services.ClientService.ListClients(ctx)
	if err != nil {
		log.Err(err).Msg("client list failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.SuccessResponse{Success: true, Data: clients}, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing client list response")
	}
}

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.ClientService.CreateClient(ctx, req)
	if err != nil {
		log.Err(err).Msg("client creation failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.SuccessResponse{Success: true, Data: created}, http.StatusCreated); err != nil {
		log.Err(err).Msg("error writing client creation response")
	}
}

func (h *Handler) getClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := pathID(r, "id")
	if err != nil {
		log.Err(err).Msg("invalid client id")
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	client, err := h.services.ClientService.GetClient(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("client lookup failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.SuccessResponse{Success: true, Data: client}, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing client response")
	}
}

func (h *Handler) updateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := pathID(r, "id")
	if err != nil {
		log.Err(err).Msg("invalid client id")
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req models.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.ClientService.UpdateClient(ctx, id, req)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("client update failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.SuccessResponse{Success: true, Data: updated}, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing client update response")
	}
}

func (h *Handler) deleteClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := pathID(r, "id")
	if err != nil {
		log.Err(err).Msg("invalid client id")
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.ClientService.DeleteClient(ctx, id); err != nil {
		log.Err(err).Int64("id", id).Msg("client deletion failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.SuccessResponse{Success: true, Message: "client deleted"}, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing client deletion response")
	}
}
