package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/models"
)

// quotaRepository is the PostgreSQL-backed implementation of
// [QuotaRepository].
type quotaRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewQuotaRepository constructs a [QuotaRepository] backed by the provided
// database connection and logger.
func NewQuotaRepository(db *DB, logger *logger.Logger) QuotaRepository {
	logger.Debug().Msg("creating quota repository")
	return &quotaRepository{
		db:     db,
		logger: logger,
	}
}

// FindQuotaByClient retrieves the quota row of the given client.
// Returns [ErrQuotaNotFound] when the client has no quota.
func (r *quotaRepository) FindQuotaByClient(ctx context.Context, clientID int64) (models.Quota, error) {
	log := logger.FromContext(ctx)

	var quota models.Quota
	row := r.db.QueryRowContext(ctx, findQuotaByClient, clientID)
	if err := row.Scan(&quota.ID, &quota.ClientID, &quota.MonthlyLimit, &quota.Remaining); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Quota{}, ErrQuotaNotFound
		}
		log.Err(err).Str("func", "*quotaRepository.FindQuotaByClient").Msg("error: scanning error")
		return models.Quota{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return quota, nil
}

// ListQuotas returns every quota row. Used by the realtime sync_request
// reply.
func (r *quotaRepository) ListQuotas(ctx context.Context) ([]models.Quota, error) {
	query, args, err := buildListQuotasQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	quotas := make([]models.Quota, 0)
	for rows.Next() {
		var q models.Quota
		if err := rows.Scan(&q.ID, &q.ClientID, &q.MonthlyLimit, &q.Remaining); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		quotas = append(quotas, q)
	}

	return quotas, rows.Err()
}

// UpdateQuota overwrites the quota limits of quota.ClientID and returns the
// updated row. Returns [ErrQuotaNotFound] when the client has no quota.
func (r *quotaRepository) UpdateQuota(ctx context.Context, quota models.Quota) (models.Quota, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, updateQuota, quota.ClientID, quota.MonthlyLimit, quota.Remaining)
	if err := row.Scan(&quota.ID, &quota.ClientID, &quota.MonthlyLimit, &quota.Remaining); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Quota{}, ErrQuotaNotFound
		}
		log.Err(err).Str("func", "*quotaRepository.UpdateQuota").Msg("error: scanning error")
		return models.Quota{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return quota, nil
}
