package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/models"
)

// clientRepository is the PostgreSQL-backed implementation of
// [ClientRepository]. Besides plain CRUD it assembles the client tree
// (client + quotas + badges) that the sync snapshot and the single-client
// lookup return.
type clientRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewClientRepository constructs a [ClientRepository] backed by the provided
// database connection and logger.
func NewClientRepository(db *DB, logger *logger.Logger) ClientRepository {
	logger.Debug().Msg("creating client repository")
	return &clientRepository{
		db:     db,
		logger: logger,
	}
}

// CreateClient persists a new client and returns the row with
// server-assigned fields populated.
func (r *clientRepository) CreateClient(ctx context.Context, client models.Client) (models.Client, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createClient, client.Name, client.Email, client.Phone, client.Balance)
	if err := row.Scan(&client.ID, &client.Name, &client.Email, &client.Phone, &client.Balance, &client.CreatedAt); err != nil {
		log.Err(err).Str("func", "*clientRepository.CreateClient").Msg("error: scanning error")
		return models.Client{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return client, nil
}

// FindClientByID retrieves one client with its quotas and badges populated.
//
// Error handling:
//   - No matching client row → [ErrClientNotFound].
//   - Any other driver-level error → wrapped in [ErrScanningRow].
func (r *clientRepository) FindClientByID(ctx context.Context, id int64) (models.Client, error) {
	log := logger.FromContext(ctx)

	var client models.Client
	row := r.db.QueryRowContext(ctx, findClientByID, id)
	if err := row.Scan(&client.ID, &client.Name, &client.Email, &client.Phone, &client.Balance, &client.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Client{}, ErrClientNotFound
		}
		log.Err(err).Str("func", "*clientRepository.FindClientByID").Msg("error: scanning error")
		return models.Client{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	quotas, err := r.quotasByClient(ctx, id)
	if err != nil {
		return models.Client{}, err
	}
	client.Quotas = quotas

	badges, err := r.badgesByClient(ctx, id)
	if err != nil {
		return models.Client{}, err
	}
	client.Badges = badges

	return client, nil
}

// ListClients returns every client without nested data.
func (r *clientRepository) ListClients(ctx context.Context) ([]models.Client, error) {
	query, args, err := buildListClientsQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanClients(ctx, query, args...)
}

// ListClientsWithRelations returns every client with quotas and badges
// attached. The three result sets are read with independent queries and
// joined in memory; no cross-query isolation is claimed beyond what a
// single read gives, which is the documented best-effort contract of the
// snapshot.
func (r *clientRepository) ListClientsWithRelations(ctx context.Context) ([]models.Client, error) {
	clients, err := r.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	quotaQuery, quotaArgs, err := buildListQuotasQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	quotas, err := r.scanQuotas(ctx, quotaQuery, quotaArgs...)
	if err != nil {
		return nil, err
	}

	badgeQuery, badgeArgs, err := buildListBadgesQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	badges, err := r.scanBadges(ctx, badgeQuery, badgeArgs...)
	if err != nil {
		return nil, err
	}

	quotasByClient := make(map[int64][]models.Quota, len(clients))
	for _, q := range quotas {
		quotasByClient[q.ClientID] = append(quotasByClient[q.ClientID], q)
	}
	badgesByClient := make(map[int64][]models.Badge, len(clients))
	for _, b := range badges {
		badgesByClient[b.ClientID] = append(badgesByClient[b.ClientID], b)
	}

	for i := range clients {
		clients[i].Quotas = quotasByClient[clients[i].ID]
		clients[i].Badges = badgesByClient[clients[i].ID]
	}

	return clients, nil
}

// UpdateClient overwrites the mutable client fields and returns the updated
// row. Returns [ErrClientNotFound] when no row matches the id.
func (r *clientRepository) UpdateClient(ctx context.Context, client models.Client) (models.Client, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, updateClient, client.ID, client.Name, client.Email, client.Phone, client.Balance)
	if err := row.Scan(&client.ID, &client.Name, &client.Email, &client.Phone, &client.Balance, &client.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Client{}, ErrClientNotFound
		}
		log.Err(err).Str("func", "*clientRepository.UpdateClient").Msg("error: scanning error")
		return models.Client{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return client, nil
}

// DeleteClient removes the client row. Returns [ErrClientNotFound] when no
// row matches the id.
func (r *clientRepository) DeleteClient(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteClient, id)
	if err != nil {
		log.Err(err).Str("func", "*clientRepository.DeleteClient").Msg("error: executing error")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrClientNotFound
	}

	return nil
}

func (r *clientRepository) quotasByClient(ctx context.Context, clientID int64) ([]models.Quota, error) {
	query, args, err := buildQuotasByClientQuery(clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.scanQuotas(ctx, query, args...)
}

func (r *clientRepository) badgesByClient(ctx context.Context, clientID int64) ([]models.Badge, error) {
	query, args, err := buildBadgesByClientQuery(clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.scanBadges(ctx, query, args...)
}

func (r *clientRepository) scanClients(ctx context.Context, query string, args ...any) ([]models.Client, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Balance, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		clients = append(clients, c)
	}

	return clients, rows.Err()
}

func (r *clientRepository) scanQuotas(ctx context.Context, query string, args ...any) ([]models.Quota, error) {
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

func (r *clientRepository) scanBadges(ctx context.Context, query string, args ...any) ([]models.Badge, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	badges := make([]models.Badge, 0)
	for rows.Next() {
		var b models.Badge
		if err := rows.Scan(&b.ID, &b.ClientID, &b.UID, &b.Label, &b.Active); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		badges = append(badges, b)
	}

	return badges, rows.Err()
}
