package store

import (
	"context"
	"fmt"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/models"
	"github.com/jackc/pgerrcode"
)

// copyRepository is the PostgreSQL-backed implementation of
// [CopyRepository]. Copy rows are the persisted evidence of badge-copy
// operations; the table intentionally carries no uniqueness constraint on
// (device_id, uid), so repeated submissions create repeated rows.
type copyRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCopyRepository constructs a [CopyRepository] backed by the provided
// database connection and logger.
func NewCopyRepository(db *DB, logger *logger.Logger) CopyRepository {
	logger.Debug().Msg("creating copy repository")
	return &copyRepository{
		db:     db,
		logger: logger,
	}
}

// CreateCopy persists a new copy record and returns the fully populated
// [models.Copy] with server-assigned fields (ID, CreatedAt).
//
// Error handling:
//   - PostgreSQL foreign_key_violation (23503) → [ErrClientReferenceViolation].
//   - Any other driver-level error → wrapped in [ErrScanningRow].
func (r *copyRepository) CreateCopy(ctx context.Context, copy models.Copy) (models.Copy, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createCopy, copy.ClientID, copy.UID, copy.Status, copy.DeviceID, copy.RecordedBy)

	if err := row.Scan(&copy.ID, &copy.ClientID, &copy.UID, &copy.Status, &copy.DeviceID, &copy.RecordedBy, &copy.CreatedAt); err != nil {
		log.Err(err).Str("func", "*copyRepository.CreateCopy").Msg("error: scanning error")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Copy{}, ErrClientReferenceViolation
		default:
			return models.Copy{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
	}

	return copy, nil
}

// ListCopies returns up to limit copy records, newest first. A zero limit
// returns everything.
func (r *copyRepository) ListCopies(ctx context.Context, limit uint64) ([]models.Copy, error) {
	query, args, err := buildListCopiesQuery(limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	copies := make([]models.Copy, 0)
	for rows.Next() {
		var c models.Copy
		if err := rows.Scan(&c.ID, &c.ClientID, &c.UID, &c.Status, &c.DeviceID, &c.RecordedBy, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		copies = append(copies, c)
	}

	return copies, rows.Err()
}
