// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package comments

import (
	"context"

	"github.com/dkravets/inkwell/pkg/pagination"
)

// # Repository Contracts

// Repository defines the persistence contract for comment aggregates.
type Repository interface {
	/*
		Load retrieves a comment by id, hidden or not.

		Returns:
		  - *Comment: Hydrated aggregate
		  - error: apperr.NotFound or storage failures
	*/
	Load(context context.Context, id string) (*Comment, error)

	/*
		Save upserts the whole aggregate.
	*/
	Save(context context.Context, comment *Comment) error

	/*
		Delete removes a comment document.
	*/
	Delete(context context.Context, id string) error

	/*
		FindVisibleForPost lists the visible comments of one post.

		Returns:
		  - []Comment: One page
		  - int: Total matching count
	*/
	FindVisibleForPost(context context.Context, postID string, page pagination.Params) ([]Comment, int, error)

	/*
		FindForBlogOwner lists every comment left under the owner's blogs,
		hidden included. This feeds the blogger moderation surface.
	*/
	FindForBlogOwner(context context.Context, ownerID string, page pagination.Params) ([]Comment, int, error)

	/*
		AllByCommentatorForBlog returns every comment a user left on one
		blog, for the per-blog commentator ban cascade.
	*/
	AllByCommentatorForBlog(context context.Context, userID, blogID string) ([]Comment, error)
}
