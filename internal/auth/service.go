// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

/*
Package auth implements credential validation, the device-session token
flow, and the emailed code flows for registration confirmation and password
recovery.

# Architecture

Tokens are stateless JWTs; the session ledger on the user aggregate is the
revocation authority. An access token is honored for its whole lifetime
without a database lookup. A refresh token is honored only while the ledger
holds a session for its (deviceId, iat) pair, so rotation, logout and
password reset all revoke by editing the ledger.

Recovery and confirmation codes are random one-shot tokens kept in Redis
under a TTL; consuming a code deletes it atomically.
*/
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dkravets/inkwell/internal/platform/apperr"
	"github.com/dkravets/inkwell/internal/platform/dberr"
	"github.com/dkravets/inkwell/internal/platform/sec"
	"github.com/dkravets/inkwell/internal/users"
)

// errInvalidCredentials is the single client-facing failure for every
// credential problem: unknown identifier, wrong password, banned account.
// One surface, no account enumeration.
func errInvalidCredentials() *apperr.AppError {
	return apperr.Unauthorized("Invalid login or password")
}

// errInvalidSession is the single client-facing failure for every refresh
// problem: bad token, rotated-out token, revoked device, banned account.
func errInvalidSession() *apperr.AppError {
	return apperr.Unauthorized("Session is invalid or expired")
}

// Service validates credentials and device sessions against the account
// store.
type Service struct {
	users users.Repository
}

// NewService wires the auth domain service.
func NewService(repository users.Repository) *Service {
	return &Service{users: repository}
}

/*
ValidateCredentials resolves and checks a sign-in attempt.

Parameters:
  - context: context.Context
  - loginOrEmail: Either identifier, as the client presents one field
  - password: Plain-text password

Returns:
  - *users.User: The authenticated account
  - error: apperr.Unauthorized for any credential failure
*/
func (service *Service) ValidateCredentials(context context.Context, loginOrEmail, password string) (*users.User, error) {
	user, err := service.users.FindByLoginOrEmail(context, loginOrEmail)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, errInvalidCredentials()
		}
		return nil, err
	}

	if user.Ban.IsBanned {
		return nil, errInvalidCredentials()
	}

	if !sec.CheckPasswordHash(password, user.PasswordSalt, user.PasswordHash) {
		return nil, errInvalidCredentials()
	}

	return user, nil
}

/*
ValidateDeviceSession checks decoded refresh-token claims against the
session ledger.

The token signature alone is not enough: the ledger must hold a session for
the claimed device whose issue time matches the token's iat exactly (at
second precision). A rotated or revoked token decodes fine but fails here.

Returns:
  - *users.User: The account owning the session
  - error: apperr.Unauthorized if the session is not live
*/
func (service *Service) ValidateDeviceSession(context context.Context, claims *sec.AuthClaims) (*users.User, error) {
	user, err := service.users.FindByID(context, claims.UserID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, errInvalidSession()
		}
		return nil, err
	}

	if user.Ban.IsBanned {
		return nil, errInvalidSession()
	}

	if claims.IssuedAt == nil || !user.HasValidSession(claims.DeviceID, claims.IssuedAt.Time) {
		return nil, errInvalidSession()
	}

	return user, nil
}

// Code lifetimes and entropy.
const (
	// recoveryCodeTTL bounds how long a password-recovery code stays valid.
	recoveryCodeTTL = 15 * time.Minute

	// confirmationCodeTTL bounds how long a registration-confirmation code
	// stays valid.
	confirmationCodeTTL = 24 * time.Hour

	// codeByteLength is the entropy of a generated code before hex encoding.
	codeByteLength = 16
)
