package service

import (
	"context"
	"fmt"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/store"
	"github.com/djougoo/propass-central/models"
)

type quotaService struct {
	quotaRepository store.QuotaRepository
	logger          *logger.Logger
}

func NewQuotaService(quotaRepository store.QuotaRepository, logger *logger.Logger) QuotaService {
	return &quotaService{
		quotaRepository: quotaRepository,
		logger:          logger,
	}
}

func (q *quotaService) GetQuota(ctx context.Context, clientID int64) (models.Quota, error) {
	return q.quotaRepository.FindQuotaByClient(ctx, clientID)
}

func (q *quotaService) ListQuotas(ctx context.Context) ([]models.Quota, error) {
	return q.quotaRepository.ListQuotas(ctx)
}

func (q *quotaService) UpdateQuota(ctx context.Context, clientID int64, req models.QuotaRequest) (models.Quota, error) {
	updated, err := q.quotaRepository.UpdateQuota(ctx, models.Quota{
		ClientID:     clientID,
		MonthlyLimit: req.MonthlyLimit,
		Remaining:    req.Remaining,
	})
	if err != nil {
		return models.Quota{}, fmt.Errorf("quota update ended with error: %w", err)
	}

	return updated, nil
}
