package models

import (
	"encoding/json"
	"time"
)

// Recognized sync item types. Anything else in a pushed queue is skipped
// without producing an outcome; see SyncService.ProcessBatch.
const SyncItemTypeCopy = "copy"

// Outcome status values.
const (
	SyncStatusSynced = "synced"
	SyncStatusFailed = "failed"
)

// SyncItem is one offline-queued operation submitted by a device. ID is a
// caller-assigned correlation identifier echoed back in the matching
// SyncOutcome; the server attaches no meaning to it.
type SyncItem struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// CopyPayload is the type-specific payload of a "copy" SyncItem.
type CopyPayload struct {
	ClientID int64  `json:"client_id"`
	UID      string `json:"uid"`
	Status   string `json:"status"`
}

// SyncOutcome is the per-item result of batch processing. Outcomes preserve
// the submission order of the recognized items they correspond to.
type SyncOutcome struct {
	ID     string `json:"id"`
	Status string `json:"status"`

	// Data carries the persisted copy record when Status is "synced".
	Data *Copy `json:"data,omitempty"`

	// Error carries the failure description when Status is "failed".
	Error string `json:"error,omitempty"`
}

// PushRequest is the body of POST /api/sync/push: the device identifier and
// the ordered queue of operations accumulated while offline.
type PushRequest struct {
	DeviceID string     `json:"device_id"`
	Queue    []SyncItem `json:"queue"`
}

// Snapshot is a point-in-time bundle of all clients with their nested
// quotas and badges. It is not versioned: consumers must treat it as a full
// replace, never as a delta.
type Snapshot struct {
	Clients   []Client  `json:"clients"`
	Timestamp time.Time `json:"timestamp"`
}
