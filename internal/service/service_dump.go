package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/store"
	"github.com/djougoo/propass-central/models"
)

type dumpService struct {
	dumpRepository store.DumpRepository
	logger         *logger.Logger
}

func NewDumpService(dumpRepository store.DumpRepository, logger *logger.Logger) DumpService {
	return &dumpService{
		dumpRepository: dumpRepository,
		logger:         logger,
	}
}

// UploadDump serializes the device-provided dump payload to JSON text and
// persists it together with the device-computed hash. uploadedBy comes from
// the authenticated token, falling back to "system".
func (d *dumpService) UploadDump(ctx context.Context, req models.DumpRequest, uploadedBy string) (models.Dump, error) {
	log := logger.FromContext(ctx)

	if req.ClientID == 0 {
		log.Error().Msg("dump upload without a client reference")
		return models.Dump{}, ErrInvalidDataProvided
	}

	data, err := json.Marshal(req.Data)
	if err != nil {
		log.Err(err).Msg("dump payload serialization failed")
		return models.Dump{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if uploadedBy == "" {
		uploadedBy = "system"
	}

	created, err := d.dumpRepository.CreateDump(ctx, models.Dump{
		ClientID:   req.ClientID,
		Data:       string(data),
		Hash:       req.Hash,
		UploadedBy: uploadedBy,
	})
	if err != nil {
		return models.Dump{}, fmt.Errorf("dump creation ended with error: %w", err)
	}

	return created, nil
}

func (d *dumpService) ListDumps(ctx context.Context) ([]models.Dump, error) {
	return d.dumpRepository.ListDumps(ctx)
}
