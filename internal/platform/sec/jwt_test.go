// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkravets/inkwell/internal/platform/sec"
)

func newTestIssuer(now func() time.Time) *sec.TokenIssuer {
	return sec.NewTokenIssuer(sec.TokenIssuerConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    720 * time.Hour,
		Issuer:        "inkwell.test",
		Now:           now,
	})
}

/*
TestIssuePair verifies that both tokens carry the bound identity and that the
pair's lifetime is derived from the refresh token's own claims.
*/
func TestIssuePair(t *testing.T) {
	frozen := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	issuer := newTestIssuer(func() time.Time { return frozen })

	pair, err := issuer.IssuePair("user-1", "device-1")
	require.NoError(t, err)

	assert.Equal(t, frozen.Unix(), pair.IssuedAt.Unix())
	assert.Equal(t, frozen.Add(720*time.Hour).Unix(), pair.ExpiresAt.Unix())

	accessClaims, err := issuer.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", accessClaims.UserID)
	assert.Equal(t, "device-1", accessClaims.DeviceID)

	refreshClaims, err := issuer.VerifyRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", refreshClaims.UserID)
	assert.Equal(t, pair.IssuedAt.Unix(), refreshClaims.IssuedAt.Unix())
}

/*
TestSecretsAreIndependent verifies that a refresh token does not validate on
the access path and vice versa — the two secrets are independent.
*/
func TestSecretsAreIndependent(t *testing.T) {
	issuer := newTestIssuer(nil)

	pair, err := issuer.IssuePair("user-1", "device-1")
	require.NoError(t, err)

	_, err = issuer.VerifyAccessToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = issuer.VerifyRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

/*
TestExpiredToken verifies rejection of a token past its exp claim.
*/
func TestExpiredToken(t *testing.T) {
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := issued
	issuer := newTestIssuer(func() time.Time { return clock })

	pair, err := issuer.IssuePair("user-1", "device-1")
	require.NoError(t, err)

	// Advance past the access TTL but inside the refresh TTL.
	clock = issued.Add(16 * time.Minute)

	_, err = issuer.VerifyAccessToken(pair.AccessToken)
	assert.Error(t, err)

	_, err = issuer.VerifyRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}

/*
TestTamperedToken verifies signature enforcement.
*/
func TestTamperedToken(t *testing.T) {
	issuer := newTestIssuer(nil)

	pair, err := issuer.IssuePair("user-1", "device-1")
	require.NoError(t, err)

	tampered := pair.AccessToken[:len(pair.AccessToken)-2] + "xx"
	_, err = issuer.VerifyAccessToken(tampered)
	assert.Error(t, err)
}
