package service

import (
	"context"

	"github.com/djougoo/propass-central/models"
)

type AuthService interface {
	// Login verifies credentials and returns the matching active user.
	Login(ctx context.Context, username, password string) (models.User, error)
	// Refresh re-issues a token for the user identified by a still-valid
	// token string.
	Refresh(ctx context.Context, tokenString, deviceID string) (models.Token, models.User, error)
	// Me returns the profile of the user identified by id.
	Me(ctx context.Context, userID int64) (models.User, error)
	CreateToken(ctx context.Context, user models.User, deviceID string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type SyncService interface {
	// ProcessBatch applies an ordered queue of offline operations and
	// returns one outcome per recognized item, preserving submission
	// order. It never fails as a whole; per-item errors are reported in
	// the outcome list.
	ProcessBatch(ctx context.Context, deviceID, recordedBy string, items []models.SyncItem) []models.SyncOutcome
	// Snapshot returns the full client/quota/badge state with a capture
	// timestamp.
	Snapshot(ctx context.Context) (models.Snapshot, error)
	// SkippedItems reports how many queue items were dropped because
	// their type is not recognized. Exposed for observability of the
	// silent-skip behavior.
	SkippedItems() int64
}

type ClientService interface {
	CreateClient(ctx context.Context, req models.ClientRequest) (models.Client, error)
	GetClient(ctx context.Context, id int64) (models.Client, error)
	ListClients(ctx context.Context) ([]models.Client, error)
	UpdateClient(ctx context.Context, id int64, req models.ClientRequest) (models.Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

type QuotaService interface {
	GetQuota(ctx context.Context, clientID int64) (models.Quota, error)
	ListQuotas(ctx context.Context) ([]models.Quota, error)
	UpdateQuota(ctx context.Context, clientID int64, req models.QuotaRequest) (models.Quota, error)
}

type CopyService interface {
	RecordCopy(ctx context.Context, req models.CopyRequest, recordedBy string) (models.Copy, error)
	History(ctx context.Context) ([]models.Copy, error)
}

type DumpService interface {
	UploadDump(ctx context.Context, req models.DumpRequest, uploadedBy string) (models.Dump, error)
	ListDumps(ctx context.Context) ([]models.Dump, error)
}

// Broadcaster pushes events to the open administrative realtime
// connections. The realtime hub implements it; services hold it behind this
// interface so the service layer stays transport-free. A nil Broadcaster
// disables mirroring.
type Broadcaster interface {
	BroadcastToAdmins(eventType string, data any)
}
