// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkravets/inkwell/internal/platform/sec"
)

/*
TestHashPassword_Deterministic verifies that the same (password, salt) pair
always derives the same hash, and that either input changing changes it.
*/
func TestHashPassword_Deterministic(t *testing.T) {
	saltA, err := sec.GenerateSalt()
	require.NoError(t, err)
	saltB, err := sec.GenerateSalt()
	require.NoError(t, err)
	require.NotEqual(t, saltA, saltB)

	hash := sec.HashPassword("pw12345", saltA)

	assert.Equal(t, hash, sec.HashPassword("pw12345", saltA))
	assert.NotEqual(t, hash, sec.HashPassword("pw12345", saltB))
	assert.NotEqual(t, hash, sec.HashPassword("pw12346", saltA))
}

/*
TestCheckPasswordHash verifies the login-time comparison path.
*/
func TestCheckPasswordHash(t *testing.T) {
	salt, err := sec.GenerateSalt()
	require.NoError(t, err)
	hash := sec.HashPassword("correct horse", salt)

	assert.True(t, sec.CheckPasswordHash("correct horse", salt, hash))
	assert.False(t, sec.CheckPasswordHash("wrong horse", salt, hash))
	assert.False(t, sec.CheckPasswordHash("correct horse", "other-salt", hash))
}

/*
TestGenerateSecureToken verifies token length and uniqueness.
*/
func TestGenerateSecureToken(t *testing.T) {
	a, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	b, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.Len(t, a, 64) // hex doubles the byte length
	assert.NotEqual(t, a, b)
}
