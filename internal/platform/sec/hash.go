// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Password hashing parameters.
//
// The identity store keeps the hash and the salt as two separate columns on
// the account row, so the KDF must accept an externally supplied salt —
// PBKDF2-SHA256 rather than an algorithm with an embedded salt.
const (
	// saltLength is the byte length of a freshly generated password salt.
	saltLength = 16

	// hashIterations is the PBKDF2 iteration count. Sized for interactive
	// login latency on current hardware.
	hashIterations = 120_000

	// hashKeyLength is the derived key length in bytes.
	hashKeyLength = 32
)

// GenerateSalt produces a new random per-user password salt, hex-encoded.
func GenerateSalt() (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec: failed to generate salt: %w", err)
	}
	return hex.EncodeToString(salt), nil
}

// HashPassword derives a password hash from a plain-text password and the
// user's stored salt. The same (password, salt) pair always yields the same hash.
func HashPassword(plainTextPassword, salt string) string {
	derived := pbkdf2.Key([]byte(plainTextPassword), []byte(salt), hashIterations, hashKeyLength, sha256.New)
	return hex.EncodeToString(derived)
}

// CheckPasswordHash re-derives the hash for a login attempt and compares it to
// the stored hash in constant time.
func CheckPasswordHash(plainTextPassword, salt, existingHash string) bool {
	candidate := HashPassword(plainTextPassword, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(existingHash)) == 1
}

// GenerateSecureToken returns a cryptographically random hex token of the
// given byte length. Used for recovery and confirmation codes.
func GenerateSecureToken(byteLength int) (string, error) {
	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
