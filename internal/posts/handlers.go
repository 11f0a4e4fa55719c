// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package posts

import (
	"context"
	"errors"
	"time"

	"github.com/dkravets/inkwell/internal/command"
	"github.com/dkravets/inkwell/internal/platform/apperr"
	"github.com/dkravets/inkwell/internal/platform/dberr"
	"github.com/dkravets/inkwell/pkg/uuid"
)

// BlogDirectory resolves blog parentage for denormalization and ownership
// checks. Satisfied by the blog repository.
type BlogDirectory interface {
	InfoOf(context context.Context, blogID string) (name, ownerID string, err error)
}

// Handlers implements [command.PostHandlers].
type Handlers struct {
	repo  Repository
	blogs BlogDirectory

	now func() time.Time
}

// NewHandlers wires the post command handlers.
func NewHandlers(repo Repository, blogs BlogDirectory) *Handlers {
	return &Handlers{
		repo:  repo,
		blogs: blogs,
		now:   time.Now,
	}
}

var _ command.PostHandlers = (*Handlers)(nil)

/*
CreatePost adds a post under a blog, denormalizing the blog's name and owner
at creation time.
*/
func (h *Handlers) CreatePost(ctx context.Context, cmd command.CreatePost) (string, error) {
	blogName, blogOwnerID, err := h.blogs.InfoOf(ctx, cmd.BlogID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return "", apperr.NotFound("Blog")
		}
		return "", err
	}
	if blogOwnerID != cmd.ActorID {
		return "", apperr.Forbidden("Only the blog owner may create posts")
	}

	post := &Post{
		ID:               uuid.New(),
		BlogID:           cmd.BlogID,
		BlogName:         blogName,
		BlogOwnerID:      blogOwnerID,
		Title:            cmd.Title,
		ShortDescription: cmd.ShortDescription,
		Content:          cmd.Content,
		CreatedAt:        h.now().UTC(),
	}
	if err := h.repo.Save(ctx, post); err != nil {
		return "", err
	}

	return post.ID, nil
}

/*
EditPost updates content fields. The post must belong to the addressed blog
and the actor must own that blog.
*/
func (h *Handlers) EditPost(ctx context.Context, cmd command.EditPost) error {
	post, err := h.loadPostForBlog(ctx, cmd.PostID, cmd.BlogID, cmd.ActorID)
	if err != nil {
		return err
	}

	post.Title = cmd.Title
	post.ShortDescription = cmd.ShortDescription
	post.Content = cmd.Content

	return h.repo.Save(ctx, post)
}

/*
DeletePost removes a post under the same guards as EditPost.
*/
func (h *Handlers) DeletePost(ctx context.Context, cmd command.DeletePost) error {
	if _, err := h.loadPostForBlog(ctx, cmd.PostID, cmd.BlogID, cmd.ActorID); err != nil {
		return err
	}
	return h.repo.Delete(ctx, cmd.PostID)
}

/*
UpdatePostLikeStatus records the acting user's reaction. Hidden posts answer
NotFound, the same as to any other reader.
*/
func (h *Handlers) UpdatePostLikeStatus(ctx context.Context, cmd command.UpdatePostLikeStatus) error {
	post, err := h.repo.Load(ctx, cmd.PostID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("Post")
		}
		return err
	}
	if post.IsBanned {
		return apperr.NotFound("Post")
	}

	post.React(cmd.UserID, cmd.UserLogin, cmd.LikeStatus, h.now().UTC())

	return h.repo.Save(ctx, post)
}

/*
BanPostsForBlog flips the parent-ban flag on every post of a blog. This is
the cascade side of a blog ban; content and reactions survive untouched so
the unban round-trips.
*/
func (h *Handlers) BanPostsForBlog(ctx context.Context, cmd command.BanPostsForBlog) error {
	posts, err := h.repo.AllForBlog(ctx, cmd.BlogID)
	if err != nil {
		return err
	}

	for i := range posts {
		posts[i].SetParentBan(cmd.IsBanned)
		if err := h.repo.Save(ctx, &posts[i]); err != nil {
			return err
		}
	}

	return nil
}

// loadPostForBlog applies the shared existence and ownership guards. A post
// addressed under the wrong blog answers NotFound, not Forbidden.
func (h *Handlers) loadPostForBlog(ctx context.Context, postID, blogID, actorID string) (*Post, error) {
	post, err := h.repo.Load(ctx, postID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Post")
		}
		return nil, err
	}
	if post.BlogID != blogID {
		return nil, apperr.NotFound("Post")
	}
	if post.BlogOwnerID != actorID {
		return nil, apperr.Forbidden("Only the blog owner may manage its posts")
	}
	return post, nil
}
