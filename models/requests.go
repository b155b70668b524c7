package models

// LoginRequest is the body of POST /api/auth/login. DeviceID is optional
// and, when present, is embedded into the issued token so the realtime
// layer can room the connection by device.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	DeviceID string `json:"device_id,omitempty"`
}

// RefreshRequest is the body of POST /api/auth/refresh.
type RefreshRequest struct {
	Token    string `json:"token"`
	DeviceID string `json:"device_id,omitempty"`
}

// ClientRequest carries the mutable client fields for create and update.
type ClientRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Balance float64 `json:"balance"`
}

// QuotaRequest carries the mutable quota fields for update.
type QuotaRequest struct {
	MonthlyLimit int64 `json:"monthly_limit"`
	Remaining    int64 `json:"remaining"`
}

// CopyRequest is the body of POST /api/copies. The recording actor is taken
// from the authenticated token, never from the body.
type CopyRequest struct {
	ClientID int64  `json:"client_id"`
	UID      string `json:"uid"`
	Status   string `json:"status"`
	DeviceID string `json:"device_id"`
}

// DumpRequest is the body of POST /api/dumps/upload. Data is arbitrary JSON
// produced by the device; it is stored as serialized text.
type DumpRequest struct {
	ClientID int64  `json:"client_id"`
	Data     any    `json:"data"`
	Hash     string `json:"hash"`
}
