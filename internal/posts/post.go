// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

/*
Package posts handles the post aggregate: content fields, reactions and the
visibility state inherited from the parent blog.

# Architecture

  - Entities: Post (with an embedded reaction list).
  - Storage: document store; the whole aggregate travels as one JSONB doc.
  - Moderation: a post never carries its own ban; IsBanned mirrors the parent
    blog's state and is flipped by the BanPostsForBlog cascade.
*/
package posts

import (
	"time"

	"github.com/dkravets/inkwell/internal/reactions"
)

// Post is the post aggregate.
//
// BlogName and BlogOwnerID are denormalized at creation time; a later blog
// rename does not propagate (accepted staleness).
type Post struct {
	ID               string         `json:"id"`
	BlogID           string         `json:"blogId"`
	BlogName         string         `json:"blogName"`
	BlogOwnerID      string         `json:"blogOwnerId"`
	Title            string         `json:"title"`
	ShortDescription string         `json:"shortDescription"`
	Content          string         `json:"content"`
	IsBanned         bool           `json:"isBanned"`
	CreatedAt        time.Time      `json:"createdAt"`
	Likes            reactions.List `json:"likes"`
}

// SetParentBan mirrors the parent blog's ban state onto the post. Content
// and reactions are untouched, so unbanning restores the post verbatim.
func (post *Post) SetParentBan(isBanned bool) {
	post.IsBanned = isBanned
}

// React upserts the user's like status.
func (post *Post) React(userID, login, status string, now time.Time) {
	post.Likes = post.Likes.Apply(userID, login, status, now)
}
