// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the [TokenIssuer].
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside both token flavors.
//
// # Why device-bound claims?
//
// By embedding the UserID and DeviceID directly inside the JWT, the refresh
// flow can locate the exact device session to rotate WITHOUT any token store
// lookup, and the access-token middleware can reconstruct the active user
// context without querying the database on every API request.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"userId"`
	DeviceID string `json:"deviceId"`
}

// TokenPair is a freshly issued access/refresh token couple.
//
// IssuedAt and ExpiresAt are decoded back out of the signed refresh token
// rather than recomputed, so the device-session ledger and the token claims
// can never disagree about the session lifetime.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// TokenIssuerConfig collects the issuer's signing material and policies.
type TokenIssuerConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string

	// Now is the clock used for iat/exp computation. Defaults to [time.Now];
	// injectable for deterministic tests.
	Now func() time.Time
}

// TokenIssuer creates and verifies signed HS256 token pairs. Access and
// refresh tokens use independent secrets and independent expiry policies.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

// NewTokenIssuer creates a new TokenIssuer.
func NewTokenIssuer(cfg TokenIssuerConfig) *TokenIssuer {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &TokenIssuer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		issuer:        cfg.Issuer,
		now:           now,
	}
}

// IssuePair signs a new access/refresh token pair bound to (userID, deviceID).
//
// The returned IssuedAt/ExpiresAt are read back from the refresh token's own
// signed claims (second precision, as JWT numeric dates truncate to seconds).
func (issuer *TokenIssuer) IssuePair(userID, deviceID string) (*TokenPair, error) {
	accessToken, err := issuer.sign(userID, deviceID, issuer.accessSecret, issuer.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to sign access token: %w", err)
	}

	refreshToken, err := issuer.sign(userID, deviceID, issuer.refreshSecret, issuer.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to sign refresh token: %w", err)
	}

	// Decode the refresh token we just produced: its claims are the
	// authoritative source for the session lifetime.
	claims, err := issuer.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to decode issued refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		IssuedAt:     claims.IssuedAt.Time,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// VerifyAccessToken checks the signature and validity of an access token.
// This is the middleware-facing verification path.
func (issuer *TokenIssuer) VerifyAccessToken(tokenString string) (*AuthClaims, error) {
	return issuer.verify(tokenString, issuer.accessSecret)
}

// VerifyRefreshToken checks the signature and validity of a refresh token.
func (issuer *TokenIssuer) VerifyRefreshToken(tokenString string) (*AuthClaims, error) {
	return issuer.verify(tokenString, issuer.refreshSecret)
}

// sign produces a signed HS256 JWT for the given identity and lifetime.
func (issuer *TokenIssuer) sign(userID, deviceID string, secret []byte, timeToLive time.Duration) (string, error) {
	currentTime := issuer.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:   userID,
		DeviceID: deviceID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// verify parses and validates a token string against the given secret.
func (issuer *TokenIssuer) verify(tokenString string, secret []byte) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(issuer.now))

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
