// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/store"
	"github.com/djougoo/propass-central/models"
)

// syncService reconciles offline device queues with the central store and
// produces the full-state snapshot that devices pull after reconnecting.
//
// ProcessBatch is deliberately sequential: outcomes must line up with the
// submitted queue order, and two items of the same batch must never race
// each other into storage. Batches from different devices may interleave
// freely; no cross-device ordering is promised.
type syncService struct {
	copyRepository   store.CopyRepository
	clientRepository store.ClientRepository

	// broadcaster mirrors successful sync outcomes to admin monitors.
	// May be nil, in which case mirroring is disabled.
	broadcaster Broadcaster

	// skipped counts queue items dropped because of an unrecognized type.
	// The drop itself is intentional protocol behavior; the counter keeps
	// it observable.
	skipped atomic.Int64

	logger *logger.Logger
}

// NewSyncService constructs a SyncService over the given repositories.
// broadcaster may be nil.
func NewSyncService(copyRepository store.CopyRepository, clientRepository store.ClientRepository, broadcaster Broadcaster, logger *logger.Logger) SyncService {
	return &syncService{
		copyRepository:   copyRepository,
		clientRepository: clientRepository,
		broadcaster:      broadcaster,
		logger:           logger,
	}
}

// ProcessBatch applies the ordered queue submitted by deviceID.
//
// Items are processed strictly in submission order. For every item of a
// recognized type exactly one outcome is appended:
//   - "synced" with the persisted record when the store accepted it;
//   - "failed" with the error description when persistence (or payload
//     decoding) failed — processing then continues with the next item, so
//     one bad item never blocks the rest of the queue and there is no
//     batch-level rollback.
//
// Items of unrecognized type produce no outcome at all: the result array is
// shorter than the queue by their count. Each skip is logged and counted.
//
// deviceID and recordedBy are stamped onto every created record for
// provenance; neither is validated against the item payloads.
func (s *syncService) ProcessBatch(ctx context.Context, deviceID, recordedBy string, items []models.SyncItem) []models.SyncOutcome {
	log := logger.FromContext(ctx)

	outcomes := make([]models.SyncOutcome, 0, len(items))
	for _, item := range items {
		if item.Type != models.SyncItemTypeCopy {
			s.skipped.Add(1)
			log.Warn().
				Str("item_id", item.ID).
				Str("item_type", item.Type).
				Str("device_id", deviceID).
				Msg("skipping sync item of unrecognized type")
			continue
		}

		outcomes = append(outcomes, s.processCopyItem(ctx, deviceID, recordedBy, item))
	}

	return outcomes
}

func (s *syncService) processCopyItem(ctx context.Context, deviceID, recordedBy string, item models.SyncItem) models.SyncOutcome {
	log := logger.FromContext(ctx)

	var payload models.CopyPayload
	if err := json.Unmarshal(item.Payload, &payload); err != nil {
		log.Err(err).Str("item_id", item.ID).Msg("malformed copy payload")
		return models.SyncOutcome{ID: item.ID, Status: models.SyncStatusFailed, Error: err.Error()}
	}

	created, err := s.copyRepository.CreateCopy(ctx, models.Copy{
		ClientID:   payload.ClientID,
		UID:        payload.UID,
		Status:     payload.Status,
		DeviceID:   deviceID,
		RecordedBy: recordedBy,
	})
	if err != nil {
		log.Err(err).Str("item_id", item.ID).Str("device_id", deviceID).Msg("copy item persistence failed")
		return models.SyncOutcome{ID: item.ID, Status: models.SyncStatusFailed, Error: err.Error()}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAdmins("copy_completed", created)
	}

	return models.SyncOutcome{ID: item.ID, Status: models.SyncStatusSynced, Data: &created}
}

// Snapshot re-reads the complete client dataset (with nested quotas and
// badges) and stamps the current time. There is no caching and no delta
// computation; concurrent writes during the read may be partially visible,
// which is the accepted best-effort contract of the pull endpoint.
func (s *syncService) Snapshot(ctx context.Context) (models.Snapshot, error) {
	clients, err := s.clientRepository.ListClientsWithRelations(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}

	return models.Snapshot{
		Clients:   clients,
		Timestamp: time.Now().UTC(),
	}, nil
}

// SkippedItems returns the number of queue items dropped so far because
// their type is not recognized.
func (s *syncService) SkippedItems() int64 {
	return s.skipped.Load()
}
