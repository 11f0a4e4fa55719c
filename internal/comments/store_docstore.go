// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

/*
Package comments (document store) implements comment persistence over the
JSONB collection content.comment.
*/
package comments

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkravets/inkwell/internal/platform/database/schema"
	"github.com/dkravets/inkwell/internal/platform/docstore"
	"github.com/dkravets/inkwell/pkg/pagination"
)

// DocstoreRepository implements [Repository] over a JSONB collection.
type DocstoreRepository struct {
	collection *docstore.Collection[Comment]
}

// NewDocstoreRepository binds the comment repository to content.comment.
func NewDocstoreRepository(pool *pgxpool.Pool) *DocstoreRepository {
	return &DocstoreRepository{
		collection: docstore.NewCollection[Comment](pool, schema.ContentComment.Table),
	}
}

// visiblePredicate requires both moderation flags clear.
const visiblePredicate = `NOT (doc->>'isBanned')::boolean AND NOT (doc->>'isCommentatorBanned')::boolean`

// Load implements [Repository].
func (repository *DocstoreRepository) Load(context context.Context, id string) (*Comment, error) {
	return repository.collection.Load(context, id)
}

// Save implements [Repository].
func (repository *DocstoreRepository) Save(context context.Context, comment *Comment) error {
	return repository.collection.Save(context, comment.ID, comment)
}

// Delete implements [Repository].
func (repository *DocstoreRepository) Delete(context context.Context, id string) error {
	return repository.collection.Delete(context, id)
}

// FindVisibleForPost implements [Repository].
func (repository *DocstoreRepository) FindVisibleForPost(context context.Context, postID string, page pagination.Params) ([]Comment, int, error) {
	conditions := []string{`doc->>'postId' = $1`, visiblePredicate}
	return repository.findPage(context, conditions, []interface{}{postID}, page)
}

// FindForBlogOwner implements [Repository].
func (repository *DocstoreRepository) FindForBlogOwner(context context.Context, ownerID string, page pagination.Params) ([]Comment, int, error) {
	conditions := []string{`doc->>'blogOwnerId' = $1`}
	return repository.findPage(context, conditions, []interface{}{ownerID}, page)
}

// AllByCommentatorForBlog implements [Repository].
func (repository *DocstoreRepository) AllByCommentatorForBlog(context context.Context, userID, blogID string) ([]Comment, error) {
	return repository.collection.Find(context, docstore.Query{
		Where: `doc->>'commentatorId' = $1 AND doc->>'blogId' = $2`,
		Args:  []interface{}{userID, blogID},
	})
}

// findPage runs the shared count-then-page sequence.
func (repository *DocstoreRepository) findPage(context context.Context, conditions []string, args []interface{}, page pagination.Params) ([]Comment, int, error) {
	where := strings.Join(conditions, " AND ")

	total, err := repository.collection.Count(context, docstore.Query{Where: where, Args: args})
	if err != nil {
		return nil, 0, err
	}

	items, err := repository.collection.Find(context, docstore.Query{
		Where:   where,
		Args:    args,
		OrderBy: sortExpression(page),
		Limit:   page.PageSize,
		Offset:  page.Offset(),
	})
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// sortExpression whitelists sortable document fields.
func sortExpression(page pagination.Params) string {
	field := `doc->>'createdAt'`
	direction := "DESC"
	if page.SortDirection == pagination.SortAsc {
		direction = "ASC"
	}
	return field + " " + direction
}
