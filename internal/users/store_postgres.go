// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

/*
Package users (Postgres) implements the storage layer for accounts.

# Schema Table Mapping
  - users.account: Master identity, credential and ban data.
  - users.session: Device sessions, replaced wholesale on aggregate save.
*/
package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkravets/inkwell/internal/platform/database/schema"
	"github.com/dkravets/inkwell/internal/platform/dberr"
	"github.com/dkravets/inkwell/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the Postgres implementation for accounts.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// accountColumns is the canonical SELECT list for hydrating a User.
func accountColumns() string {
	return strings.Join(schema.UserAccount.Columns(), ", ")
}

// scanUser hydrates account fields from a row following accountColumns order.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Login,
		&user.Email,
		&user.PasswordHash,
		&user.PasswordSalt,
		&user.IsConfirmed,
		&user.Ban.IsBanned,
		&user.Ban.BanReason,
		&user.Ban.BanDate,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// findOne fetches a single account by an arbitrary predicate and hydrates
// its session ledger.
func (repository *PostgresRepository) findOne(context context.Context, where string, args ...interface{}) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s`,
		accountColumns(), schema.UserAccount.Table, where)

	user, err := scanUser(repository.pool.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, "find account")
	}

	if err := repository.loadSessions(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// loadSessions attaches the session ledger to a hydrated user.
func (repository *PostgresRepository) loadSessions(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC`,
		schema.UserSession.DeviceID, schema.UserSession.IPAddress, schema.UserSession.DeviceTitle,
		schema.UserSession.IssuedAt, schema.UserSession.ExpiresAt, schema.UserSession.LastActiveAt,
		schema.UserSession.Table,
		schema.UserSession.UserID,
		schema.UserSession.IssuedAt,
	)

	rows, err := repository.pool.Query(context, query, user.ID)
	if err != nil {
		return dberr.Wrap(err, "load sessions")
	}
	defer rows.Close()

	for rows.Next() {
		var session DeviceSession
		if err := rows.Scan(
			&session.DeviceID,
			&session.IP,
			&session.Title,
			&session.IssuedAt,
			&session.ExpiresAt,
			&session.LastActiveAt,
		); err != nil {
			return dberr.Wrap(err, "scan session")
		}
		user.Sessions = append(user.Sessions, session)
	}
	if err := rows.Err(); err != nil {
		return dberr.Wrap(err, "iterate sessions")
	}

	return nil
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findOne(context, schema.UserAccount.ID+" = $1", id)
}

// FindByLogin implements [Repository].
func (repository *PostgresRepository) FindByLogin(context context.Context, login string) (*User, error) {
	return repository.findOne(context, schema.UserAccount.Login+" = $1", login)
}

// FindByEmail implements [Repository].
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findOne(context, schema.UserAccount.Email+" = $1", email)
}

// FindByLoginOrEmail implements [Repository].
func (repository *PostgresRepository) FindByLoginOrEmail(context context.Context, loginOrEmail string) (*User, error) {
	where := fmt.Sprintf("%s = $1 OR %s = $1", schema.UserAccount.Login, schema.UserAccount.Email)
	return repository.findOne(context, where, loginOrEmail)
}

// Create implements [Repository].
func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.UserAccount.Table, accountColumns())

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Login,
		user.Email,
		user.PasswordHash,
		user.PasswordSalt,
		user.IsConfirmed,
		user.Ban.IsBanned,
		user.Ban.BanReason,
		user.Ban.BanDate,
		user.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create account")
	}

	return nil
}

// Save implements [Repository].
//
// Account fields and the session ledger are written in one transaction; the
// stored sessions are replaced wholesale so the ledger always mirrors the
// in-memory aggregate.
func (repository *PostgresRepository) Save(context context.Context, user *User) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin save account")
	}
	defer func() { _ = tx.Rollback(context) }()

	// 1. Sync mutable account fields.
	updateQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.PasswordHash, schema.UserAccount.PasswordSalt, schema.UserAccount.IsConfirmed,
		schema.UserAccount.IsBanned, schema.UserAccount.BanReason, schema.UserAccount.BanDate,
		schema.UserAccount.ID,
	)
	if _, err := tx.Exec(context, updateQuery,
		user.ID,
		user.PasswordHash,
		user.PasswordSalt,
		user.IsConfirmed,
		user.Ban.IsBanned,
		user.Ban.BanReason,
		user.Ban.BanDate,
	); err != nil {
		return dberr.Wrap(err, "update account")
	}

	// 2. Replace the session ledger.
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.UserSession.Table, schema.UserSession.UserID)
	if _, err := tx.Exec(context, deleteQuery, user.ID); err != nil {
		return dberr.Wrap(err, "clear sessions")
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.UserSession.Table,
		schema.UserSession.UserID, schema.UserSession.DeviceID, schema.UserSession.IPAddress,
		schema.UserSession.DeviceTitle, schema.UserSession.IssuedAt, schema.UserSession.ExpiresAt,
		schema.UserSession.LastActiveAt,
	)
	for _, session := range user.Sessions {
		if _, err := tx.Exec(context, insertQuery,
			user.ID,
			session.DeviceID,
			session.IP,
			session.Title,
			session.IssuedAt,
			session.ExpiresAt,
			session.LastActiveAt,
		); err != nil {
			return dberr.Wrap(err, "insert session")
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit save account")
	}

	return nil
}

// Delete implements [Repository]. Sessions go with the account via the
// foreign-key cascade.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete account")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete account")
	}

	return nil
}

// SessionOwner implements [Repository].
func (repository *PostgresRepository) SessionOwner(context context.Context, deviceID string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.UserSession.UserID, schema.UserSession.Table, schema.UserSession.DeviceID)

	var userID string
	if err := repository.pool.QueryRow(context, query, deviceID).Scan(&userID); err != nil {
		return "", dberr.Wrap(err, "find session owner")
	}

	return userID, nil
}

// FindAll implements [Repository].
func (repository *PostgresRepository) FindAll(context context.Context, filter Filter, page pagination.Params) ([]User, int, error) {
	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)

	// Login and email search terms are OR-combined, matching how account
	// search behaves on the admin surface.
	searchConditions := make([]string, 0, 2)
	if filter.SearchLoginTerm != "" {
		args = append(args, "%"+filter.SearchLoginTerm+"%")
		searchConditions = append(searchConditions, fmt.Sprintf("%s ILIKE $%d", schema.UserAccount.Login, len(args)))
	}
	if filter.SearchEmailTerm != "" {
		args = append(args, "%"+filter.SearchEmailTerm+"%")
		searchConditions = append(searchConditions, fmt.Sprintf("%s ILIKE $%d", schema.UserAccount.Email, len(args)))
	}
	if len(searchConditions) > 0 {
		conditions = append(conditions, "("+strings.Join(searchConditions, " OR ")+")")
	}

	switch filter.BanStatus {
	case "banned":
		conditions = append(conditions, schema.UserAccount.IsBanned+" = TRUE")
	case "notBanned":
		conditions = append(conditions, schema.UserAccount.IsBanned+" = FALSE")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, schema.UserAccount.Table, whereClause)
	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count accounts")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s %s LIMIT %d OFFSET %d`,
		accountColumns(), schema.UserAccount.Table, whereClause,
		sortColumn(page.SortBy), sortDirection(page.SortDirection),
		page.PageSize, page.Offset(),
	)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list accounts")
	}
	defer rows.Close()

	accounts := make([]User, 0, page.PageSize)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan account")
		}
		accounts = append(accounts, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate accounts")
	}

	return accounts, total, nil
}

// LoginOf implements [Repository].
func (repository *PostgresRepository) LoginOf(context context.Context, userID string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.UserAccount.Login, schema.UserAccount.Table, schema.UserAccount.ID)

	var login string
	if err := repository.pool.QueryRow(context, query, userID).Scan(&login); err != nil {
		return "", dberr.Wrap(err, "resolve login")
	}

	return login, nil
}

// sortColumn whitelists admin-surface sort keys against SQL injection.
func sortColumn(sortBy string) string {
	switch sortBy {
	case "login":
		return schema.UserAccount.Login
	case "email":
		return schema.UserAccount.Email
	default:
		return schema.UserAccount.CreatedAt
	}
}

// sortDirection normalizes the direction token.
func sortDirection(direction string) string {
	if direction == pagination.SortAsc {
		return "ASC"
	}
	return "DESC"
}
