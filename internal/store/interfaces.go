package store

import (
	"context"

	"github.com/djougoo/propass-central/models"
)

type UserRepository interface {
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
}

type ClientRepository interface {
	CreateClient(ctx context.Context, client models.Client) (models.Client, error)
	FindClientByID(ctx context.Context, id int64) (models.Client, error)
	ListClients(ctx context.Context) ([]models.Client, error)
	// ListClientsWithRelations returns every client with its quotas and
	// badges populated. Used by the sync snapshot.
	ListClientsWithRelations(ctx context.Context) ([]models.Client, error)
	UpdateClient(ctx context.Context, client models.Client) (models.Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

type QuotaRepository interface {
	FindQuotaByClient(ctx context.Context, clientID int64) (models.Quota, error)
	ListQuotas(ctx context.Context) ([]models.Quota, error)
	UpdateQuota(ctx context.Context, quota models.Quota) (models.Quota, error)
}

type CopyRepository interface {
	CreateCopy(ctx context.Context, copy models.Copy) (models.Copy, error)
	ListCopies(ctx context.Context, limit uint64) ([]models.Copy, error)
}

type DumpRepository interface {
	CreateDump(ctx context.Context, dump models.Dump) (models.Dump, error)
	ListDumps(ctx context.Context) ([]models.Dump, error)
}
