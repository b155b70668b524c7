package service

import (
	"context"
	"fmt"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/store"
	"github.com/djougoo/propass-central/models"
)

// copyHistoryLimit bounds the history endpoint; devices only need the
// recent tail for display.
const copyHistoryLimit = 100

type copyService struct {
	copyRepository store.CopyRepository
	logger         *logger.Logger
}

func NewCopyService(copyRepository store.CopyRepository, logger *logger.Logger) CopyService {
	return &copyService{
		copyRepository: copyRepository,
		logger:         logger,
	}
}

// RecordCopy persists one copy record submitted over the management API
// (as opposed to the sync path). recordedBy comes from the authenticated
// token; when empty it falls back to "system", matching historical rows
// written by unauthenticated tooling.
func (c *copyService) RecordCopy(ctx context.Context, req models.CopyRequest, recordedBy string) (models.Copy, error) {
	log := logger.FromContext(ctx)

	if req.UID == "" || req.ClientID == 0 {
		log.Error().Any("request", req).Msg("invalid copy data provided")
		return models.Copy{}, ErrInvalidDataProvided
	}

	if recordedBy == "" {
		recordedBy = "system"
	}

	created, err := c.copyRepository.CreateCopy(ctx, models.Copy{
		ClientID:   req.ClientID,
		UID:        req.UID,
		Status:     req.Status,
		DeviceID:   req.DeviceID,
		RecordedBy: recordedBy,
	})
	if err != nil {
		return models.Copy{}, fmt.Errorf("copy creation ended with error: %w", err)
	}

	return created, nil
}

func (c *copyService) History(ctx context.Context) ([]models.Copy, error) {
	return c.copyRepository.ListCopies(ctx, copyHistoryLimit)
}
