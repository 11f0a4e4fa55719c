// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

/*
Package comments implements the comment domain: the reader-facing comment
tree of a post, reactions, and the two moderation dimensions a comment can
be hidden along.

# Architecture

A comment is a self-contained JSONB document. It denormalizes its full
parentage (post title, blog id, blog name, blog owner) at creation time so
the blogger comment feed and the per-blog commentator ban can be answered
from the comment collection alone, without joins.

Visibility is the conjunction of two independent flags: IsBanned set by an
admin on the single comment, and IsCommentatorBanned set per blog when the
blog owner bans the comment's author. Either flag hides the comment from
every read surface; clearing a flag restores it with content and reactions
intact.
*/
package comments

import (
	"time"

	"github.com/dkravets/inkwell/internal/reactions"
)

// Comment is the aggregate root of the comment domain, stored as one
// document in content.comment.
type Comment struct {
	ID     string `json:"id"`
	PostID string `json:"postId"`

	// Denormalized parentage, captured at creation time.
	BlogID      string `json:"blogId"`
	BlogName    string `json:"blogName"`
	BlogOwnerID string `json:"blogOwnerId"`
	PostTitle   string `json:"postTitle"`

	CommentatorID    string `json:"commentatorId"`
	CommentatorLogin string `json:"commentatorLogin"`

	Content string `json:"content"`

	IsBanned            bool `json:"isBanned"`
	IsCommentatorBanned bool `json:"isCommentatorBanned"`

	CreatedAt time.Time `json:"createdAt"`

	Likes reactions.List `json:"likes"`
}

// IsVisible reports whether any reader may see the comment.
func (comment *Comment) IsVisible() bool {
	return !comment.IsBanned && !comment.IsCommentatorBanned
}

// IsAuthoredBy reports whether the user wrote the comment.
func (comment *Comment) IsAuthoredBy(userID string) bool {
	return comment.CommentatorID == userID
}

// SetBan flips the admin moderation flag on the single comment.
func (comment *Comment) SetBan(isBanned bool) {
	comment.IsBanned = isBanned
}

// SetCommentatorBan flips the per-blog commentator flag. Content and
// reactions are untouched so an unban restores the comment as it was.
func (comment *Comment) SetCommentatorBan(isBanned bool) {
	comment.IsCommentatorBanned = isBanned
}

// React records or replaces the user's reaction.
func (comment *Comment) React(userID, login, status string, now time.Time) {
	comment.Likes = comment.Likes.Apply(userID, login, status, now)
}
