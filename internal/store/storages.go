package store

import (
	"context"

	"github.com/djougoo/propass-central/internal/config"
	"github.com/djougoo/propass-central/internal/logger"
)

// Storages aggregates every repository of the central server behind one
// container that the service layer receives at startup.
type Storages struct {
	UserRepository   UserRepository
	ClientRepository ClientRepository
	QuotaRepository  QuotaRepository
	CopyRepository   CopyRepository
	DumpRepository   DumpRepository
}

// NewStorages connects to PostgreSQL, applies pending migrations, and
// returns the repository container.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:   NewUserRepository(db, log),
		ClientRepository: NewClientRepository(db, log),
		QuotaRepository:  NewQuotaRepository(db, log),
		CopyRepository:   NewCopyRepository(db, log),
		DumpRepository:   NewDumpRepository(db, log),
	}, nil
}
