// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

/*
Package users handles account identity, credentials, global bans and the
per-device session ledger.

# Architecture

  - Entities: User, DeviceSession, BanInfo.
  - Storage: relational (users.account + users.session); the session ledger
    lives on the User aggregate and is persisted with it.
  - Security: password hashes are salted per account; the session ledger is
    the single source of truth for refresh-token validity.
*/
package users

import (
	"time"
)

// # Domain Entities

// DeviceSession is one concurrently logged-in client of a user.
//
// IssuedAt mirrors the refresh token's iat claim; an exact match is required
// during session validation, which is what invalidates rotated tokens.
type DeviceSession struct {
	DeviceID     string
	IP           string
	Title        string
	IssuedAt     time.Time
	ExpiresAt    time.Time
	LastActiveAt time.Time
}

// BanInfo captures a user's global moderation state.
type BanInfo struct {
	IsBanned  bool
	BanReason *string
	BanDate   *time.Time
}

// User is the account aggregate.
type User struct {
	ID           string
	Login        string
	Email        string
	PasswordHash string
	PasswordSalt string
	IsConfirmed  bool
	Ban          BanInfo
	CreatedAt    time.Time
	Sessions     []DeviceSession
}

// # Aggregate Behaviour

// SignInDevice appends a fresh session row for a new device.
func (user *User) SignInDevice(deviceID, ip, title string, issuedAt, expiresAt time.Time) {
	user.Sessions = append(user.Sessions, DeviceSession{
		DeviceID:     deviceID,
		IP:           ip,
		Title:        title,
		IssuedAt:     issuedAt,
		ExpiresAt:    expiresAt,
		LastActiveAt: issuedAt,
	})
}

// RefreshDevice replaces the lifetime fields of an existing device session.
// It never creates a second row for the same device.
func (user *User) RefreshDevice(deviceID, ip string, issuedAt, expiresAt time.Time) bool {
	for i := range user.Sessions {
		if user.Sessions[i].DeviceID == deviceID {
			user.Sessions[i].IP = ip
			user.Sessions[i].IssuedAt = issuedAt
			user.Sessions[i].ExpiresAt = expiresAt
			user.Sessions[i].LastActiveAt = issuedAt
			return true
		}
	}
	return false
}

// HasValidSession reports whether a live session exists for the device with
// exactly the given issue time. Comparison is at second precision because JWT
// iat claims truncate to whole seconds.
func (user *User) HasValidSession(deviceID string, issuedAt time.Time) bool {
	for i := range user.Sessions {
		if user.Sessions[i].DeviceID == deviceID {
			return user.Sessions[i].IssuedAt.Unix() == issuedAt.Unix()
		}
	}
	return false
}

// DropSession removes the session for one device; reports whether it existed.
func (user *User) DropSession(deviceID string) bool {
	for i := range user.Sessions {
		if user.Sessions[i].DeviceID == deviceID {
			user.Sessions = append(user.Sessions[:i], user.Sessions[i+1:]...)
			return true
		}
	}
	return false
}

// DropOtherSessions removes every session except the current device's.
func (user *User) DropOtherSessions(currentDeviceID string) {
	kept := user.Sessions[:0]
	for _, session := range user.Sessions {
		if session.DeviceID == currentDeviceID {
			kept = append(kept, session)
		}
	}
	user.Sessions = kept
}

// DropAllSessions removes every device session, forcing re-authentication.
func (user *User) DropAllSessions() {
	user.Sessions = nil
}

// ActiveSessions returns the sessions that have not yet expired.
func (user *User) ActiveSessions(now time.Time) []DeviceSession {
	active := make([]DeviceSession, 0, len(user.Sessions))
	for _, session := range user.Sessions {
		if session.ExpiresAt.After(now) {
			active = append(active, session)
		}
	}
	return active
}

// SetBan flips the global ban state. Unbanning clears the reason and date.
func (user *User) SetBan(isBanned bool, reason string, now time.Time) {
	if isBanned {
		user.Ban = BanInfo{IsBanned: true, BanReason: &reason, BanDate: &now}
		return
	}
	user.Ban = BanInfo{}
}

// Confirm marks the account's email as verified.
func (user *User) Confirm() {
	user.IsConfirmed = true
}

// SetPassword replaces the credential with a new salted hash.
func (user *User) SetPassword(hash, salt string) {
	user.PasswordHash = hash
	user.PasswordSalt = salt
}
