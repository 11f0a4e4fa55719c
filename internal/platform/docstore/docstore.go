// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

/*
Package docstore provides a generic JSONB document collection on top of
PostgreSQL.

# Architecture

Content aggregates (blogs, posts, comments) are stored as whole documents
rather than normalized rows: each aggregate is loaded, mutated in memory and
saved back atomically. A collection table has exactly two columns:

	id  uuid  PRIMARY KEY
	doc jsonb NOT NULL

Queries filter and sort on JSONB expressions; callers pass SQL fragments such
as "doc->>'blogId' = $1" together with positional arguments. Timestamps inside
documents are stored as RFC 3339 strings, so lexicographic ordering on
doc->>'createdAt' matches chronological ordering.
*/
package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkravets/inkwell/internal/platform/dberr"
)

// Query describes a filtered, ordered slice of a collection.
//
// Where is a SQL boolean expression over the "doc" column ("" selects all
// rows); Args are its positional parameters, numbered from $1. OrderBy is a
// full ORDER BY expression, e.g. "doc->>'createdAt' DESC".
type Query struct {
	Where   string
	Args    []interface{}
	OrderBy string
	Limit   int
	Offset  int
}

// Collection is a typed JSONB document table.
type Collection[T any] struct {
	pool  *pgxpool.Pool
	table string
}

// NewCollection binds a typed collection to its backing table.
func NewCollection[T any](pool *pgxpool.Pool, table string) *Collection[T] {
	return &Collection[T]{pool: pool, table: table}
}

/*
Load fetches a single document by its identifier.

Returns:
  - *T: The decoded document
  - error: dberr.ErrNotFound wrapped in an AppError if the id is absent
*/
func (c *Collection[T]) Load(ctx context.Context, id string) (*T, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, c.table)

	var raw []byte
	if err := c.pool.QueryRow(ctx, query, id).Scan(&raw); err != nil {
		return nil, dberr.Wrap(err, "load "+c.table)
	}

	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, dberr.Wrap(err, "decode "+c.table)
	}

	return &doc, nil
}

/*
Save upserts a document under the given identifier.

The write replaces the entire document; concurrent writers follow
last-write-wins semantics at the whole-document level.
*/
func (c *Collection[T]) Save(ctx context.Context, id string, doc *T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return dberr.Wrap(err, "encode "+c.table)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, doc) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc`, c.table)

	if _, err := c.pool.Exec(ctx, query, id, raw); err != nil {
		return dberr.Wrap(err, "save "+c.table)
	}

	return nil
}

/*
Delete removes a document by its identifier.

Returns:
  - error: apperr.NotFound if no row was deleted
*/
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, c.table)

	tag, err := c.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete "+c.table)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete "+c.table)
	}

	return nil
}

/*
Find returns the documents matching the query, in the query's order.
*/
func (c *Collection[T]) Find(ctx context.Context, q Query) ([]T, error) {
	sql := fmt.Sprintf(`SELECT doc FROM %s`, c.table)
	if q.Where != "" {
		sql += " WHERE " + q.Where
	}
	if q.OrderBy != "" {
		sql += " ORDER BY " + q.OrderBy
	}
	if q.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d OFFSET %d", q.Limit, q.Offset)
	}

	rows, err := c.pool.Query(ctx, sql, q.Args...)
	if err != nil {
		return nil, dberr.Wrap(err, "find "+c.table)
	}
	defer rows.Close()

	docs := make([]T, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, dberr.Wrap(err, "scan "+c.table)
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, dberr.Wrap(err, "decode "+c.table)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate "+c.table)
	}

	return docs, nil
}

/*
Count returns the number of documents matching the query's filter.

OrderBy, Limit and Offset are ignored.
*/
func (c *Collection[T]) Count(ctx context.Context, q Query) (int, error) {
	sql := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, c.table)
	if q.Where != "" {
		sql += " WHERE " + q.Where
	}

	var total int
	if err := c.pool.QueryRow(ctx, sql, q.Args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count "+c.table)
	}

	return total, nil
}
