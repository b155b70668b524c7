package service

import (
	"github.com/djougoo/propass-central/internal/config"
	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/store"
)

type Services struct {
	AuthService   AuthService
	SyncService   SyncService
	ClientService ClientService
	QuotaService  QuotaService
	CopyService   CopyService
	DumpService   DumpService
}

// NewServices wires every service to its repositories. broadcaster may be
// nil to disable realtime mirroring of sync outcomes.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, broadcaster Broadcaster, logger *logger.Logger) *Services {
	return &Services{
		AuthService:   NewAuthService(storages.UserRepository, cfg.App, logger),
		SyncService:   NewSyncService(storages.CopyRepository, storages.ClientRepository, broadcaster, logger),
		ClientService: NewClientService(storages.ClientRepository, logger),
		QuotaService:  NewQuotaService(storages.QuotaRepository, logger),
		CopyService:   NewCopyService(storages.CopyRepository, logger),
		DumpService:   NewDumpService(storages.DumpRepository, logger),
	}
}
