// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

/*
Package reactions implements the per-user like/dislike bookkeeping shared by
posts and comments.

A user has at most one entry per aggregate. Setting the status to None keeps
the entry (preserving the reaction timestamp history) but removes it from the
counts and from the newest-likes projection.
*/
package reactions

import (
	"sort"
	"time"
)

// Valid reaction states.
const (
	None    = "None"
	Like    = "Like"
	Dislike = "Dislike"
)

// IsValidStatus reports whether s is one of the three reaction states.
func IsValidStatus(s string) bool {
	return s == None || s == Like || s == Dislike
}

// Entry is one user's reaction on one aggregate.
type Entry struct {
	UserID  string    `json:"userId"`
	Login   string    `json:"login"`
	Status  string    `json:"status"`
	AddedAt time.Time `json:"addedAt"`
}

// List is the reaction set of a single aggregate.
type List []Entry

// Apply upserts the user's reaction and returns the updated list. The
// AddedAt timestamp is refreshed on every status change.
func (list List) Apply(userID, login, status string, now time.Time) List {
	for i := range list {
		if list[i].UserID == userID {
			list[i].Login = login
			list[i].Status = status
			list[i].AddedAt = now
			return list
		}
	}
	return append(list, Entry{UserID: userID, Login: login, Status: status, AddedAt: now})
}

// Likes counts entries currently in the Like state.
func (list List) Likes() int {
	count := 0
	for i := range list {
		if list[i].Status == Like {
			count++
		}
	}
	return count
}

// Dislikes counts entries currently in the Dislike state.
func (list List) Dislikes() int {
	count := 0
	for i := range list {
		if list[i].Status == Dislike {
			count++
		}
	}
	return count
}

// StatusOf returns the viewer's own reaction, None for strangers and
// anonymous readers.
func (list List) StatusOf(userID string) string {
	for i := range list {
		if list[i].UserID == userID {
			return list[i].Status
		}
	}
	return None
}

// NewestLikes returns up to n Like entries, most recent first.
func (list List) NewestLikes(n int) []Entry {
	likes := make([]Entry, 0, n)
	for i := range list {
		if list[i].Status == Like {
			likes = append(likes, list[i])
		}
	}
	sort.Slice(likes, func(i, j int) bool {
		return likes[i].AddedAt.After(likes[j].AddedAt)
	})
	if len(likes) > n {
		likes = likes[:n]
	}
	return likes
}
