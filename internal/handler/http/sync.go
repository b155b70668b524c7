// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/utils"
	"github.com/djougoo/propass-central/models"
)

// syncPush ingests the offline queue of a device.
//
// Per-item problems never fail the request: they are reported inside the
// outcome list with status "failed". Only a request that cannot be decoded
// at all is rejected, and then with 500 — a device that reaches this branch
// is sending garbage, not a bad queue item, and its queue must stay intact
// for a retry.
func (h *Handler) syncPush(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("sync push body could not be decoded")
		utils.WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	claims, _ := utils.GetClaimsFromContext(ctx)

	deviceID := req.DeviceID
	if deviceID == "" {
		deviceID = claims.DeviceID
	}

	outcomes := h.services.SyncService.ProcessBatch(ctx, deviceID, claims.Username, req.Queue)

	log.Info().
		Str("device_id", deviceID).
		Int("queue_len", len(req.Queue)).
		Int("outcomes", len(outcomes)).
		Msg("sync push processed")

	if _, err := utils.WriteJSON(w, models.SuccessResponse{Success: true, Data: outcomes}, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing sync push response")
	}
}

// syncPull returns the full reconciliation snapshot: every client with its
// quotas and badges, stamped with the capture time.
func (h *Handler) syncPull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	snapshot, err := h.services.SyncService.Snapshot(ctx)
	if err != nil {
		log.Err(err).Msg("snapshot read failed")
		utils.WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := utils.WriteJSON(w, models.SuccessResponse{Success: true, Data: snapshot}, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing sync pull response")
	}
}
