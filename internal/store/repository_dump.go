package store

import (
	"context"
	"fmt"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/models"
	"github.com/jackc/pgerrcode"
)

// dumpRepository is the PostgreSQL-backed implementation of
// [DumpRepository].
type dumpRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDumpRepository constructs a [DumpRepository] backed by the provided
// database connection and logger.
func NewDumpRepository(db *DB, logger *logger.Logger) DumpRepository {
	logger.Debug().Msg("creating dump repository")
	return &dumpRepository{
		db:     db,
		logger: logger,
	}
}

// CreateDump persists a new dump and returns the row with server-assigned
// fields populated. A foreign-key violation on the client reference maps to
// [ErrClientReferenceViolation].
func (r *dumpRepository) CreateDump(ctx context.Context, dump models.Dump) (models.Dump, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createDump, dump.ClientID, dump.Data, dump.Hash, dump.UploadedBy)
	if err := row.Scan(&dump.ID, &dump.ClientID, &dump.Data, &dump.Hash, &dump.UploadedBy, &dump.CreatedAt); err != nil {
		log.Err(err).Str("func", "*dumpRepository.CreateDump").Msg("error: scanning error")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Dump{}, ErrClientReferenceViolation
		default:
			return models.Dump{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
	}

	return dump, nil
}

// ListDumps returns every dump, newest first.
func (r *dumpRepository) ListDumps(ctx context.Context) ([]models.Dump, error) {
	query, args, err := buildListDumpsQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	dumps := make([]models.Dump, 0)
	for rows.Next() {
		var d models.Dump
		if err := rows.Scan(&d.ID, &d.ClientID, &d.Data, &d.Hash, &d.UploadedBy, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		dumps = append(dumps, d)
	}

	return dumps, rows.Err()
}
