// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package users_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkravets/inkwell/internal/users"
)

/*
TestRefreshDeviceReplacesSessionRow verifies that refreshing a device rotates
the issue time in place instead of appending a second ledger row.
*/
func TestRefreshDeviceReplacesSessionRow(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	user := &users.User{ID: "user-1"}

	user.SignInDevice("device-a", "10.0.0.1", "Chrome on Linux", base, base.Add(30*24*time.Hour))
	require.Len(t, user.Sessions, 1)

	rotated := base.Add(2 * time.Hour)
	ok := user.RefreshDevice("device-a", "10.0.0.2", rotated, rotated.Add(30*24*time.Hour))

	require.True(t, ok)
	require.Len(t, user.Sessions, 1)
	assert.Equal(t, rotated, user.Sessions[0].IssuedAt)
	assert.Equal(t, "10.0.0.2", user.Sessions[0].IP)
}

/*
TestHasValidSessionRejectsRotatedIssueTime verifies that the ledger only
accepts the exact issue time it recorded, which is what kills a refresh token
the moment a newer one is issued for the same device.
*/
func TestHasValidSessionRejectsRotatedIssueTime(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	user := &users.User{ID: "user-1"}
	user.SignInDevice("device-a", "10.0.0.1", "Firefox", base, base.Add(time.Hour))

	assert.True(t, user.HasValidSession("device-a", base))

	rotated := base.Add(10 * time.Minute)
	require.True(t, user.RefreshDevice("device-a", "10.0.0.1", rotated, rotated.Add(time.Hour)))

	assert.False(t, user.HasValidSession("device-a", base), "pre-rotation issue time must be rejected")
	assert.True(t, user.HasValidSession("device-a", rotated))
	assert.False(t, user.HasValidSession("device-b", rotated), "unknown device must be rejected")
}

/*
TestHasValidSessionIgnoresSubSecondDrift verifies the second-precision
comparison: JWT iat claims truncate to whole seconds, so nanosecond drift
between the ledger and the decoded claim must not invalidate a session.
*/
func TestHasValidSessionIgnoresSubSecondDrift(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 123456789, time.UTC)
	user := &users.User{ID: "user-1"}
	user.SignInDevice("device-a", "10.0.0.1", "CLI", base, base.Add(time.Hour))

	truncated := base.Truncate(time.Second)
	assert.True(t, user.HasValidSession("device-a", truncated))
}

/*
TestDropOtherSessionsKeepsCurrentDevice verifies per-device isolation of bulk
revocation.
*/
func TestDropOtherSessionsKeepsCurrentDevice(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	user := &users.User{ID: "user-1"}
	user.SignInDevice("device-a", "10.0.0.1", "Laptop", base, base.Add(time.Hour))
	user.SignInDevice("device-b", "10.0.0.2", "Phone", base, base.Add(time.Hour))
	user.SignInDevice("device-c", "10.0.0.3", "Tablet", base, base.Add(time.Hour))

	user.DropOtherSessions("device-b")

	require.Len(t, user.Sessions, 1)
	assert.Equal(t, "device-b", user.Sessions[0].DeviceID)
}

/*
TestDropSessionReportsAbsence verifies logout semantics: dropping a session
that is already gone must be distinguishable from a successful drop.
*/
func TestDropSessionReportsAbsence(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	user := &users.User{ID: "user-1"}
	user.SignInDevice("device-a", "10.0.0.1", "Laptop", base, base.Add(time.Hour))

	assert.True(t, user.DropSession("device-a"))
	assert.False(t, user.DropSession("device-a"))
}

/*
TestActiveSessionsFiltersExpired verifies that expired ledger rows are hidden
from the device listing without being deleted.
*/
func TestActiveSessionsFiltersExpired(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	user := &users.User{ID: "user-1"}
	user.SignInDevice("device-old", "10.0.0.1", "Old laptop", base.Add(-2*time.Hour), base.Add(-time.Hour))
	user.SignInDevice("device-new", "10.0.0.2", "Phone", base, base.Add(time.Hour))

	active := user.ActiveSessions(base)

	require.Len(t, active, 1)
	assert.Equal(t, "device-new", active[0].DeviceID)
	assert.Len(t, user.Sessions, 2, "expired sessions stay in the ledger")
}

/*
TestSetBanRoundTrip verifies that unbanning clears the reason and date set by
the ban.
*/
func TestSetBanRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	user := &users.User{ID: "user-1"}

	user.SetBan(true, "spamming promotional links across comments", now)
	require.True(t, user.Ban.IsBanned)
	require.NotNil(t, user.Ban.BanReason)
	assert.Equal(t, "spamming promotional links across comments", *user.Ban.BanReason)
	require.NotNil(t, user.Ban.BanDate)
	assert.Equal(t, now, *user.Ban.BanDate)

	user.SetBan(false, "", now)
	assert.False(t, user.Ban.IsBanned)
	assert.Nil(t, user.Ban.BanReason)
	assert.Nil(t, user.Ban.BanDate)
}
