// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

/*
Package blogs handles the blog aggregate: descriptive fields, ownership,
platform-level bans and the per-blog banned-commentator list.

# Architecture

  - Entities: Blog, BannedUser.
  - Storage: document store; the whole aggregate travels as one JSONB doc.
  - Moderation: banning a blog cascades to its posts through the command
    dispatcher; banning a user on a blog cascades to their comments there.
*/
package blogs

import (
	"time"
)

// # Domain Entities

// BannedUser is one entry on a blog's banned-commentator list.
type BannedUser struct {
	UserID    string    `json:"userId"`
	Login     string    `json:"login"`
	BanReason string    `json:"banReason"`
	BanDate   time.Time `json:"banDate"`
}

// Blog is the blog aggregate.
//
// OwnerID is nil until an administrator binds the blog to a blogger account
// or a blogger creates the blog themselves. OwnerLogin is denormalized at
// bind time for read paths.
type Blog struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	WebsiteURL  string       `json:"websiteUrl"`
	OwnerID     *string      `json:"ownerId"`
	OwnerLogin  *string      `json:"ownerLogin"`
	IsBanned    bool         `json:"isBanned"`
	BanDate     *time.Time   `json:"banDate"`
	CreatedAt   time.Time    `json:"createdAt"`
	BannedUsers []BannedUser `json:"bannedUsers"`
}

// # Aggregate Behaviour

// IsOwnedBy reports whether the given user owns this blog.
func (blog *Blog) IsOwnedBy(userID string) bool {
	return blog.OwnerID != nil && *blog.OwnerID == userID
}

// HasOwner reports whether the blog has been bound to a blogger account.
func (blog *Blog) HasOwner() bool {
	return blog.OwnerID != nil
}

// BindOwner assigns the owning blogger. The bind itself is unconditional;
// the one-time guarantee is enforced at the admin endpoint, which rejects
// binding an already-owned blog.
func (blog *Blog) BindOwner(userID, login string) {
	blog.OwnerID = &userID
	blog.OwnerLogin = &login
}

// SetBan flips the platform-level ban flag. Unbanning clears the date.
func (blog *Blog) SetBan(isBanned bool, now time.Time) {
	blog.IsBanned = isBanned
	if isBanned {
		blog.BanDate = &now
		return
	}
	blog.BanDate = nil
}

// RecordUserBan maintains the banned-commentator list. Banning upserts the
// entry; unbanning removes it.
func (blog *Blog) RecordUserBan(userID, login, reason string, isBanned bool, now time.Time) {
	if !isBanned {
		for i := range blog.BannedUsers {
			if blog.BannedUsers[i].UserID == userID {
				blog.BannedUsers = append(blog.BannedUsers[:i], blog.BannedUsers[i+1:]...)
				return
			}
		}
		return
	}

	for i := range blog.BannedUsers {
		if blog.BannedUsers[i].UserID == userID {
			blog.BannedUsers[i].BanReason = reason
			blog.BannedUsers[i].BanDate = now
			return
		}
	}
	blog.BannedUsers = append(blog.BannedUsers, BannedUser{
		UserID:    userID,
		Login:     login,
		BanReason: reason,
		BanDate:   now,
	})
}

// IsUserBanned reports whether a user is on this blog's banned list.
func (blog *Blog) IsUserBanned(userID string) bool {
	for i := range blog.BannedUsers {
		if blog.BannedUsers[i].UserID == userID {
			return true
		}
	}
	return false
}
