// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package comments

import (
	"context"
	"errors"
	"time"

	"github.com/dkravets/inkwell/internal/command"
	"github.com/dkravets/inkwell/internal/platform/apperr"
	"github.com/dkravets/inkwell/internal/platform/dberr"
	"github.com/dkravets/inkwell/pkg/uuid"
)

// PostDirectory resolves a comment's parentage for denormalization.
// Satisfied by the post repository; hidden posts answer like absent ones.
type PostDirectory interface {
	PostOf(context context.Context, postID string) (blogID, blogName, blogOwnerID, title string, err error)
}

// BanDirectory answers whether a user is on a blog's ban list. Satisfied by
// the blog repository.
type BanDirectory interface {
	UserBannedOn(context context.Context, blogID, userID string) (bool, error)
}

// Handlers implements [command.CommentHandlers].
type Handlers struct {
	repo  Repository
	posts PostDirectory
	bans  BanDirectory

	now func() time.Time
}

// NewHandlers wires the comment command handlers.
func NewHandlers(repo Repository, posts PostDirectory, bans BanDirectory) *Handlers {
	return &Handlers{
		repo:  repo,
		posts: posts,
		bans:  bans,
		now:   time.Now,
	}
}

var _ command.CommentHandlers = (*Handlers)(nil)

/*
CreateComment adds a comment under a post, denormalizing the post's title
and blog parentage at creation time. Users the blog owner has banned for
the blog may not comment there.
*/
func (h *Handlers) CreateComment(ctx context.Context, cmd command.CreateComment) (string, error) {
	blogID, blogName, blogOwnerID, postTitle, err := h.posts.PostOf(ctx, cmd.PostID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return "", apperr.NotFound("Post")
		}
		return "", err
	}

	banned, err := h.bans.UserBannedOn(ctx, blogID, cmd.UserID)
	if err != nil {
		return "", err
	}
	if banned {
		return "", apperr.Forbidden("You are banned from commenting on this blog")
	}

	comment := &Comment{
		ID:               uuid.New(),
		PostID:           cmd.PostID,
		BlogID:           blogID,
		BlogName:         blogName,
		BlogOwnerID:      blogOwnerID,
		PostTitle:        postTitle,
		CommentatorID:    cmd.UserID,
		CommentatorLogin: cmd.UserLogin,
		Content:          cmd.Content,
		CreatedAt:        h.now().UTC(),
	}
	if err := h.repo.Save(ctx, comment); err != nil {
		return "", err
	}

	return comment.ID, nil
}

/*
UpdateComment replaces the comment's content. Only the author may edit, and
a hidden comment is invisible even to its author.
*/
func (h *Handlers) UpdateComment(ctx context.Context, cmd command.UpdateComment) error {
	comment, err := h.loadVisible(ctx, cmd.CommentID)
	if err != nil {
		return err
	}
	if !comment.IsAuthoredBy(cmd.ActorID) {
		return apperr.Forbidden("Only the author may edit a comment")
	}

	comment.Content = cmd.Content

	return h.repo.Save(ctx, comment)
}

/*
DeleteComment removes a comment under the same guards as UpdateComment.
*/
func (h *Handlers) DeleteComment(ctx context.Context, cmd command.DeleteComment) error {
	comment, err := h.loadVisible(ctx, cmd.CommentID)
	if err != nil {
		return err
	}
	if !comment.IsAuthoredBy(cmd.ActorID) {
		return apperr.Forbidden("Only the author may delete a comment")
	}
	return h.repo.Delete(ctx, cmd.CommentID)
}

/*
UpdateCommentLikeStatus records the acting user's reaction. Hidden comments
answer NotFound, the same as to any other reader.
*/
func (h *Handlers) UpdateCommentLikeStatus(ctx context.Context, cmd command.UpdateCommentLikeStatus) error {
	comment, err := h.loadVisible(ctx, cmd.CommentID)
	if err != nil {
		return err
	}

	comment.React(cmd.UserID, cmd.UserLogin, cmd.LikeStatus, h.now().UTC())

	return h.repo.Save(ctx, comment)
}

/*
BanCommentsByCommentator flips the commentator flag on every comment the
user left on one blog. This is the cascade side of a per-blog user ban; the
user's comments on other blogs stay untouched.
*/
func (h *Handlers) BanCommentsByCommentator(ctx context.Context, cmd command.BanCommentsByCommentator) error {
	comments, err := h.repo.AllByCommentatorForBlog(ctx, cmd.UserID, cmd.BlogID)
	if err != nil {
		return err
	}

	for i := range comments {
		comments[i].SetCommentatorBan(cmd.IsBanned)
		if err := h.repo.Save(ctx, &comments[i]); err != nil {
			return err
		}
	}

	return nil
}

/*
BanComment flips a single comment's own moderation flag. Admin operation;
the comment is addressed directly, hidden or not.
*/
func (h *Handlers) BanComment(ctx context.Context, cmd command.BanComment) error {
	comment, err := h.repo.Load(ctx, cmd.CommentID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("Comment")
		}
		return err
	}

	comment.SetBan(cmd.IsBanned)

	return h.repo.Save(ctx, comment)
}

// loadVisible loads a comment and applies the shared visibility guard.
func (h *Handlers) loadVisible(ctx context.Context, commentID string) (*Comment, error) {
	comment, err := h.repo.Load(ctx, commentID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, err
	}
	if !comment.IsVisible() {
		return nil, apperr.NotFound("Comment")
	}
	return comment, nil
}
