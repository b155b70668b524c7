// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	findUserByUsername = `
		SELECT
			id,
			username,
			email,
			password_hash,
			role,
			active,
			created_at
		FROM users
		WHERE username = $1;`

	findUserByID = `
		SELECT
			id,
			username,
			email,
			password_hash,
			role,
			active,
			created_at
		FROM users
		WHERE id = $1;`

	createClient = `
		INSERT INTO clients (name, email, phone, balance)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, phone, balance, created_at;`

	findClientByID = `
		SELECT id, name, email, phone, balance, created_at
		FROM clients
		WHERE id = $1;`

	updateClient = `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, balance = $5
		WHERE id = $1
		RETURNING id, name, email, phone, balance, created_at;`

	deleteClient = `
		DELETE FROM clients
		WHERE id = $1;`

	findQuotaByClient = `
		SELECT id, client_id, monthly_limit, remaining
		FROM quotas
		WHERE client_id = $1;`

	updateQuota = `
		UPDATE quotas
		SET monthly_limit = $2, remaining = $3
		WHERE client_id = $1
		RETURNING id, client_id, monthly_limit, remaining;`

	createCopy = `
		INSERT INTO copies (client_id, uid, status, device_id, recorded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, client_id, uid, status, device_id, recorded_by, created_at;`

	createDump = `
		INSERT INTO dumps (client_id, data, hash, uploaded_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, client_id, data, hash, uploaded_by, created_at;`
)

// psql is the shared squirrel statement builder configured for PostgreSQL
// ($N placeholders). Dynamic list queries are composed with it; fixed-shape
// statements stay as plain constants above.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func buildListClientsQuery() (string, []any, error) {
	return psql.
		Select("id", "name", "email", "phone", "balance", "created_at").
		From("clients").
		OrderBy("id").
		ToSql()
}

func buildListQuotasQuery() (string, []any, error) {
	return psql.
		Select("id", "client_id", "monthly_limit", "remaining").
		From("quotas").
		OrderBy("client_id").
		ToSql()
}

func buildListBadgesQuery() (string, []any, error) {
	return psql.
		Select("id", "client_id", "uid", "label", "active").
		From("badges").
		OrderBy("client_id", "id").
		ToSql()
}

func buildQuotasByClientQuery(clientID int64) (string, []any, error) {
	return psql.
		Select("id", "client_id", "monthly_limit", "remaining").
		From("quotas").
		Where(sq.Eq{"client_id": clientID}).
		ToSql()
}

func buildBadgesByClientQuery(clientID int64) (string, []any, error) {
	return psql.
		Select("id", "client_id", "uid", "label", "active").
		From("badges").
		Where(sq.Eq{"client_id": clientID}).
		OrderBy("id").
		ToSql()
}

func buildListCopiesQuery(limit uint64) (string, []any, error) {
	q := psql.
		Select("id", "client_id", "uid", "status", "device_id", "recorded_by", "created_at").
		From("copies").
		OrderBy("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q.ToSql()
}

func buildListDumpsQuery() (string, []any, error) {
	return psql.
		Select("id", "client_id", "data", "hash", "uploaded_by", "created_at").
		From("dumps").
		OrderBy("created_at DESC").
		ToSql()
}
