package models

// Quota tracks how many copy operations a client may still perform in the
// current billing period. Exactly one quota row exists per client.
type Quota struct {
	ID           int64 `json:"id"`
	ClientID     int64 `json:"client_id"`
	MonthlyLimit int64 `json:"monthly_limit"`
	Remaining    int64 `json:"remaining"`
}

// Badge is a physical access badge registered to a client. Badges are
// reference data for field devices; the central server never mutates them
// outside of administrative seeding.
type Badge struct {
	ID       int64  `json:"id"`
	ClientID int64  `json:"client_id"`
	UID      string `json:"uid"`
	Label    string `json:"label"`
	Active   bool   `json:"active"`
}
