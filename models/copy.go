package models

import "time"

// Copy is the persisted evidence of one badge-copy operation.
//
// There is deliberately no uniqueness constraint on (DeviceID, UID): the
// sync protocol is at-least-once, and a device that retries a push after a
// lost response will create a second row with the same uid. Deduplication,
// if ever wanted, belongs at the store boundary, not here.
type Copy struct {
	ID       int64  `json:"id"`
	ClientID int64  `json:"client_id"`
	UID      string `json:"uid"`
	Status   string `json:"status"`

	// DeviceID is the identifier of the field device that performed the
	// copy, stamped for provenance. It is taken from the request, not
	// validated against the payload.
	DeviceID string `json:"device_id"`

	// RecordedBy is the username of the authenticated actor that submitted
	// the record.
	RecordedBy string `json:"recorded_by"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Copy model.
func (c Copy) TableName() string {
	return "copies"
}

// Dump is an uploaded raw badge memory dump, stored as JSON text together
// with the hash the device computed over it.
type Dump struct {
	ID         int64     `json:"id"`
	ClientID   int64     `json:"client_id"`
	Data       string    `json:"data"`
	Hash       string    `json:"hash"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}
