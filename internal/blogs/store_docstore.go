// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

/*
Package blogs (document store) implements blog persistence over the JSONB
collection content.blog.

# Visibility

Public listings filter banned blogs inside the database with a JSONB
predicate; owner and admin listings see everything.
*/
package blogs

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkravets/inkwell/internal/platform/database/schema"
	"github.com/dkravets/inkwell/internal/platform/docstore"
	"github.com/dkravets/inkwell/pkg/pagination"
)

// DocstoreRepository implements [Repository] over a JSONB collection.
type DocstoreRepository struct {
	collection *docstore.Collection[Blog]
}

// NewDocstoreRepository binds the blog repository to content.blog.
func NewDocstoreRepository(pool *pgxpool.Pool) *DocstoreRepository {
	return &DocstoreRepository{
		collection: docstore.NewCollection[Blog](pool, schema.ContentBlog.Table),
	}
}

// notBannedPredicate hides platform-banned blogs from public reads.
const notBannedPredicate = `NOT (doc->>'isBanned')::boolean`

// Load implements [Repository].
func (repository *DocstoreRepository) Load(context context.Context, id string) (*Blog, error) {
	return repository.collection.Load(context, id)
}

// Save implements [Repository].
func (repository *DocstoreRepository) Save(context context.Context, blog *Blog) error {
	return repository.collection.Save(context, blog.ID, blog)
}

// Delete implements [Repository].
func (repository *DocstoreRepository) Delete(context context.Context, id string) error {
	return repository.collection.Delete(context, id)
}

// FindPublic implements [Repository].
func (repository *DocstoreRepository) FindPublic(context context.Context, searchNameTerm string, page pagination.Params) ([]Blog, int, error) {
	conditions := []string{notBannedPredicate}
	args := []interface{}{}
	conditions, args = appendNameSearch(conditions, args, searchNameTerm)

	return repository.findPage(context, conditions, args, page)
}

// FindForOwner implements [Repository].
func (repository *DocstoreRepository) FindForOwner(context context.Context, ownerID, searchNameTerm string, page pagination.Params) ([]Blog, int, error) {
	conditions := []string{`doc->>'ownerId' = $1`}
	args := []interface{}{ownerID}
	conditions, args = appendNameSearch(conditions, args, searchNameTerm)

	return repository.findPage(context, conditions, args, page)
}

// FindAdmin implements [Repository].
func (repository *DocstoreRepository) FindAdmin(context context.Context, searchNameTerm string, page pagination.Params) ([]Blog, int, error) {
	conditions := []string{}
	args := []interface{}{}
	conditions, args = appendNameSearch(conditions, args, searchNameTerm)

	return repository.findPage(context, conditions, args, page)
}

// InfoOf implements [Repository].
func (repository *DocstoreRepository) InfoOf(context context.Context, blogID string) (string, string, error) {
	blog, err := repository.collection.Load(context, blogID)
	if err != nil {
		return "", "", err
	}

	ownerID := ""
	if blog.OwnerID != nil {
		ownerID = *blog.OwnerID
	}

	return blog.Name, ownerID, nil
}

// UserBannedOn implements [Repository].
func (repository *DocstoreRepository) UserBannedOn(context context.Context, blogID, userID string) (bool, error) {
	blog, err := repository.collection.Load(context, blogID)
	if err != nil {
		return false, err
	}
	return blog.IsUserBanned(userID), nil
}

// findPage runs the shared count-then-page sequence.
func (repository *DocstoreRepository) findPage(context context.Context, conditions []string, args []interface{}, page pagination.Params) ([]Blog, int, error) {
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

// appendNameSearch adds the optional case-insensitive name filter.
func appendNameSearch(conditions []string, args []interface{}, term string) ([]string, []interface{}) {
	if term == "" {
		return conditions, args
	}
	args = append(args, "%"+term+"%")
	conditions = append(conditions, fmt.Sprintf(`doc->>'name' ILIKE $%d`, len(args)))
	return conditions, args
}

// sortExpression whitelists sortable document fields.
func sortExpression(page pagination.Params) string {
	field := `doc->>'createdAt'`
	if page.SortBy == "name" {
		field = `doc->>'name'`
	}
	direction := "DESC"
	if page.SortDirection == pagination.SortAsc {
		direction = "ASC"
	}
	return field + " " + direction
}
