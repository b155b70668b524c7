// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package agent implements the field-device companion: a local SQLite queue
// of copy operations recorded while offline and a periodic job that drains
// the queue to the central server.
package agent

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/models"
	_ "github.com/mattn/go-sqlite3"
)

const queueSchema = `
CREATE TABLE IF NOT EXISTS queue (
    id         TEXT PRIMARY KEY,
    type       TEXT NOT NULL,
    payload    TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Queue is the durable offline queue. Items survive agent restarts and are
// removed only after the server has acknowledged them.
type Queue struct {
	db *sql.DB

	logger *logger.Logger
}

// NewQueue opens (creating if necessary) the SQLite queue at path.
func NewQueue(path string, logger *logger.Logger) (*Queue, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening queue database: %w", err)
	}

	if _, err := db.Exec(queueSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error preparing queue schema: %w", err)
	}

	logger.Info().Str("path", path).Msg("offline queue opened")

	return &Queue{db: db, logger: logger}, nil
}

// Enqueue stores one operation. Re-enqueueing an existing id is ignored so a
// crash between record and acknowledge cannot duplicate queue rows.
func (q *Queue) Enqueue(ctx context.Context, item models.SyncItem) error {
	payload, err := json.Marshal(item.Payload)
	if err != nil {
		return fmt.Errorf("error serializing queue payload: %w", err)
	}

	_, err = q.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO queue (id, type, payload) VALUES (?, ?, ?)`,
		item.ID, item.Type, string(payload),
	)
	if err != nil {
		return fmt.Errorf("error enqueueing item: %w", err)
	}

	return nil
}

// Pending returns every queued operation in insertion order.
func (q *Queue) Pending(ctx context.Context) ([]models.SyncItem, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, type, payload FROM queue ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("error reading queue: %w", err)
	}
	defer rows.Close()

	var items []models.SyncItem
	for rows.Next() {
		var item models.SyncItem
		var payload string
		if err := rows.Scan(&item.ID, &item.Type, &payload); err != nil {
			return nil, fmt.Errorf("error scanning queue row: %w", err)
		}

		if err := json.Unmarshal([]byte(payload), &item.Payload); err != nil {
			return nil, fmt.Errorf("error decoding queue payload: %w", err)
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

// Remove deletes the given item ids from the queue.
func (q *Queue) Remove(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning queue transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, `DELETE FROM queue WHERE id = ?`, id); err != nil {
			return fmt.Errorf("error removing queue item %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// Len returns the number of queued operations.
func (q *Queue) Len(ctx context.Context) (int, error) {
	var n int
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM queue`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting queue: %w", err)
	}
	return n, nil
}

// Close releases the underlying database handle.
func (q *Queue) Close() error {
	return q.db.Close()
}
