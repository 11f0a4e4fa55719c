// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

/*
Package posts (document store) implements post persistence over the JSONB
collection content.post.
*/
package posts

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkravets/inkwell/internal/platform/database/schema"
	"github.com/dkravets/inkwell/internal/platform/dberr"
	"github.com/dkravets/inkwell/internal/platform/docstore"
	"github.com/dkravets/inkwell/pkg/pagination"
)

// DocstoreRepository implements [Repository] over a JSONB collection.
type DocstoreRepository struct {
	collection *docstore.Collection[Post]
}

// NewDocstoreRepository binds the post repository to content.post.
func NewDocstoreRepository(pool *pgxpool.Pool) *DocstoreRepository {
	return &DocstoreRepository{
		collection: docstore.NewCollection[Post](pool, schema.ContentPost.Table),
	}
}

// notHiddenPredicate excludes posts whose parent blog is banned.
const notHiddenPredicate = `NOT (doc->>'isBanned')::boolean`

// Load implements [Repository].
func (repository *DocstoreRepository) Load(context context.Context, id string) (*Post, error) {
	return repository.collection.Load(context, id)
}

// Save implements [Repository].
func (repository *DocstoreRepository) Save(context context.Context, post *Post) error {
	return repository.collection.Save(context, post.ID, post)
}

// Delete implements [Repository].
func (repository *DocstoreRepository) Delete(context context.Context, id string) error {
	return repository.collection.Delete(context, id)
}

// FindVisible implements [Repository].
func (repository *DocstoreRepository) FindVisible(context context.Context, page pagination.Params) ([]Post, int, error) {
	return repository.findPage(context, []string{notHiddenPredicate}, nil, page)
}

// FindVisibleForBlog implements [Repository].
func (repository *DocstoreRepository) FindVisibleForBlog(context context.Context, blogID string, page pagination.Params) ([]Post, int, error) {
	conditions := []string{`doc->>'blogId' = $1`, notHiddenPredicate}
	return repository.findPage(context, conditions, []interface{}{blogID}, page)
}

// AllForBlog implements [Repository].
func (repository *DocstoreRepository) AllForBlog(context context.Context, blogID string) ([]Post, error) {
	return repository.collection.Find(context, docstore.Query{
		Where: `doc->>'blogId' = $1`,
		Args:  []interface{}{blogID},
	})
}

// DeleteAllForBlog implements [Repository].
func (repository *DocstoreRepository) DeleteAllForBlog(context context.Context, blogID string) error {
	posts, err := repository.AllForBlog(context, blogID)
	if err != nil {
		return err
	}
	for i := range posts {
		if err := repository.collection.Delete(context, posts[i].ID); err != nil {
			return err
		}
	}
	return nil
}

// PostOf implements [Repository].
func (repository *DocstoreRepository) PostOf(context context.Context, postID string) (string, string, string, string, error) {
	post, err := repository.collection.Load(context, postID)
	if err != nil {
		return "", "", "", "", err
	}
	if post.IsBanned {
		return "", "", "", "", dberr.ErrNotFound
	}
	return post.BlogID, post.BlogName, post.BlogOwnerID, post.Title, nil
}

// findPage runs the shared count-then-page sequence.
func (repository *DocstoreRepository) findPage(context context.Context, conditions []string, args []interface{}, page pagination.Params) ([]Post, int, error) {
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
	switch page.SortBy {
	case "title":
		field = `doc->>'title'`
	case "blogName":
		field = `doc->>'blogName'`
	}
	direction := "DESC"
	if page.SortDirection == pagination.SortAsc {
		direction = "ASC"
	}
	return field + " " + direction
}
