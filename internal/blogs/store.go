// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package blogs

import (
	"context"

	"github.com/dkravets/inkwell/pkg/pagination"
)

// # Repository Contracts

// Repository defines the persistence contract for blog aggregates.
type Repository interface {
	/*
		Load retrieves a blog by id, banned or not.

		Returns:
		  - *Blog: Hydrated aggregate
		  - error: apperr.NotFound or storage failures
	*/
	Load(context context.Context, id string) (*Blog, error)

	/*
		Save upserts the whole aggregate.
	*/
	Save(context context.Context, blog *Blog) error

	/*
		Delete removes a blog document. Its posts are removed by the post
		domain as part of the delete use case.
	*/
	Delete(context context.Context, id string) error

	/*
		FindPublic lists non-banned blogs with optional name search.

		Returns:
		  - []Blog: One page
		  - int: Total matching count
	*/
	FindPublic(context context.Context, searchNameTerm string, page pagination.Params) ([]Blog, int, error)

	/*
		FindForOwner lists a blogger's own blogs, including banned ones.
	*/
	FindForOwner(context context.Context, ownerID, searchNameTerm string, page pagination.Params) ([]Blog, int, error)

	/*
		FindAdmin lists all blogs for the admin surface, banned included.
	*/
	FindAdmin(context context.Context, searchNameTerm string, page pagination.Params) ([]Blog, int, error)

	/*
		InfoOf resolves a blog's name and owner without loading the
		aggregate. ownerID is empty while the blog is unbound. Used by the
		post domain to denormalize and authorize.
	*/
	InfoOf(context context.Context, blogID string) (name, ownerID string, err error)

	/*
		UserBannedOn reports whether a user is on the blog's ban list. Used
		by the comment domain to refuse comments from banned commentators.
	*/
	UserBannedOn(context context.Context, blogID, userID string) (bool, error)
}
