package models

// SuccessResponse is the generic success envelope used by every data
// endpoint: {"success": true, "data": ...}.
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`

	// Message is set by endpoints that have no data payload
	// (e.g. deletions).
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the generic failure envelope: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LoginResponse is returned by the login and refresh endpoints.
type LoginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *UserProfile `json:"user,omitempty"`
}

// HealthResponse is returned by the unauthenticated health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}
