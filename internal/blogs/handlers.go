// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package blogs

import (
	"context"
	"errors"
	"time"

	"github.com/dkravets/inkwell/internal/command"
	"github.com/dkravets/inkwell/internal/platform/apperr"
	"github.com/dkravets/inkwell/internal/platform/dberr"
	"github.com/dkravets/inkwell/pkg/uuid"
)

// UserDirectory resolves account identity for denormalization. Satisfied by
// the users repository.
type UserDirectory interface {
	LoginOf(context context.Context, userID string) (string, error)
}

// PostPurger removes a blog's posts when the blog itself is deleted.
// Satisfied by the post repository.
type PostPurger interface {
	DeleteAllForBlog(context context.Context, blogID string) error
}

// Handlers implements [command.BlogHandlers].
//
// The dispatcher is held so that moderation transitions can trigger their
// cascades through the same routing as top-level commands.
type Handlers struct {
	repo       Repository
	users      UserDirectory
	posts      PostPurger
	dispatcher command.Dispatcher

	now func() time.Time
}

// NewHandlers wires the blog command handlers. The dispatcher field is
// assigned by the caller after bus construction.
func NewHandlers(repo Repository, users UserDirectory, posts PostPurger, dispatcher command.Dispatcher) *Handlers {
	return &Handlers{
		repo:       repo,
		users:      users,
		posts:      posts,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

var _ command.BlogHandlers = (*Handlers)(nil)

/*
CreateBlog registers a blog owned by the acting blogger.
*/
func (h *Handlers) CreateBlog(ctx context.Context, cmd command.CreateBlog) (string, error) {
	blog := &Blog{
		ID:          uuid.New(),
		Name:        cmd.Name,
		Description: cmd.Description,
		WebsiteURL:  cmd.WebsiteURL,
		CreatedAt:   h.now().UTC(),
		BannedUsers: []BannedUser{},
	}
	if cmd.OwnerID != "" {
		blog.BindOwner(cmd.OwnerID, cmd.OwnerLogin)
	}

	if err := h.repo.Save(ctx, blog); err != nil {
		return "", err
	}

	return blog.ID, nil
}

/*
EditBlog updates descriptive fields. Only the owner may edit.
*/
func (h *Handlers) EditBlog(ctx context.Context, cmd command.EditBlog) error {
	blog, err := h.loadBlog(ctx, cmd.BlogID)
	if err != nil {
		return err
	}
	if !blog.IsOwnedBy(cmd.ActorID) {
		return apperr.Forbidden("Only the blog owner may edit it")
	}

	blog.Name = cmd.Name
	blog.Description = cmd.Description
	blog.WebsiteURL = cmd.WebsiteURL

	return h.repo.Save(ctx, blog)
}

/*
DeleteBlog removes a blog and its posts. Only the owner may delete. Posts
go first so a failure mid-way never leaves posts orphaned under a deleted
blog.
*/
func (h *Handlers) DeleteBlog(ctx context.Context, cmd command.DeleteBlog) error {
	blog, err := h.loadBlog(ctx, cmd.BlogID)
	if err != nil {
		return err
	}
	if !blog.IsOwnedBy(cmd.ActorID) {
		return apperr.Forbidden("Only the blog owner may delete it")
	}

	if err := h.posts.DeleteAllForBlog(ctx, cmd.BlogID); err != nil {
		return err
	}

	return h.repo.Delete(ctx, cmd.BlogID)
}

/*
BanBlog flips a blog's platform ban.

The post-visibility cascade is dispatched BEFORE the blog's own flag is
persisted: when hiding, posts must never be visible under an already-banned
blog, and when unhiding, posts come back before the blog does. Both
directions keep the stricter state during the (non-atomic) transition.
*/
func (h *Handlers) BanBlog(ctx context.Context, cmd command.BanBlog) error {
	blog, err := h.loadBlog(ctx, cmd.BlogID)
	if err != nil {
		return err
	}

	// 1. Cascade to the blog's posts first.
	if _, err := h.dispatcher.Dispatch(ctx, command.BanPostsForBlog{
		BlogID:   cmd.BlogID,
		IsBanned: cmd.IsBanned,
	}); err != nil {
		return err
	}

	// 2. Then persist the blog's own flag.
	blog.SetBan(cmd.IsBanned, h.now().UTC())

	return h.repo.Save(ctx, blog)
}

/*
BindBlogOwner assigns an owner to a blog (one-time admin action; the
endpoint rejects re-binding, the handler itself overwrites).
*/
func (h *Handlers) BindBlogOwner(ctx context.Context, cmd command.BindBlogOwner) error {
	blog, err := h.loadBlog(ctx, cmd.BlogID)
	if err != nil {
		return err
	}

	login, err := h.users.LoginOf(ctx, cmd.UserID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("User")
		}
		return err
	}

	blog.BindOwner(cmd.UserID, login)

	return h.repo.Save(ctx, blog)
}

/*
BloggerBanUserForBlog bans or unbans a commentator on one blog.

The comment-visibility cascade is dispatched BEFORE the ban entry is recorded
on the blog, mirroring the post cascade's hide-first ordering. The ban is
scoped: the same user may be banned on blog A and welcome on blog B.
*/
func (h *Handlers) BloggerBanUserForBlog(ctx context.Context, cmd command.BloggerBanUserForBlog) error {
	blog, err := h.loadBlog(ctx, cmd.BlogID)
	if err != nil {
		return err
	}
	if !blog.IsOwnedBy(cmd.ActorID) {
		return apperr.Forbidden("Only the blog owner may ban users on it")
	}

	// 1. Resolve the target's login for the ban entry.
	login, err := h.users.LoginOf(ctx, cmd.UserID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("User")
		}
		return err
	}

	// 2. Cascade to the target's comments on this blog only.
	if _, err := h.dispatcher.Dispatch(ctx, command.BanCommentsByCommentator{
		UserID:   cmd.UserID,
		BlogID:   cmd.BlogID,
		IsBanned: cmd.IsBanned,
	}); err != nil {
		return err
	}

	// 3. Then record the entry on the blog.
	blog.RecordUserBan(cmd.UserID, login, cmd.BanReason, cmd.IsBanned, h.now().UTC())

	return h.repo.Save(ctx, blog)
}

// loadBlog maps a missing aggregate to a client-facing NotFound.
func (h *Handlers) loadBlog(ctx context.Context, blogID string) (*Blog, error) {
	blog, err := h.repo.Load(ctx, blogID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Blog")
		}
		return nil, err
	}
	return blog, nil
}
