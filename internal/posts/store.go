// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package posts

import (
	"context"

	"github.com/dkravets/inkwell/pkg/pagination"
)

// # Repository Contracts

// Repository defines the persistence contract for post aggregates.
type Repository interface {
	/*
		Load retrieves a post by id, hidden or not.

		Returns:
		  - *Post: Hydrated aggregate
		  - error: apperr.NotFound or storage failures
	*/
	Load(context context.Context, id string) (*Post, error)

	/*
		Save upserts the whole aggregate.
	*/
	Save(context context.Context, post *Post) error

	/*
		Delete removes a post document.
	*/
	Delete(context context.Context, id string) error

	/*
		FindVisible lists non-hidden posts across all blogs.

		Returns:
		  - []Post: One page
		  - int: Total matching count
	*/
	FindVisible(context context.Context, page pagination.Params) ([]Post, int, error)

	/*
		FindVisibleForBlog lists non-hidden posts of one blog.
	*/
	FindVisibleForBlog(context context.Context, blogID string, page pagination.Params) ([]Post, int, error)

	/*
		AllForBlog returns every post of a blog, hidden included, for the
		blog-ban cascade.
	*/
	AllForBlog(context context.Context, blogID string) ([]Post, error)

	/*
		DeleteAllForBlog removes every post of a blog. Used when the owner
		deletes the blog itself.
	*/
	DeleteAllForBlog(context context.Context, blogID string) error

	/*
		PostOf resolves a post's parentage and title without exposing the
		aggregate. Used by the comment domain to denormalize and authorize.
		Hidden posts answer dberr.ErrNotFound like any other absent resource.
	*/
	PostOf(context context.Context, postID string) (blogID, blogName, blogOwnerID, title string, err error)
}
