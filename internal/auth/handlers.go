// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dkravets/inkwell/internal/command"
	"github.com/dkravets/inkwell/internal/platform/apperr"
	"github.com/dkravets/inkwell/internal/platform/dberr"
	"github.com/dkravets/inkwell/internal/platform/sec"
	"github.com/dkravets/inkwell/internal/users"
	"github.com/dkravets/inkwell/pkg/uuid"
)

// Handlers implements [command.AuthHandlers].
type Handlers struct {
	service *Service
	users   users.Repository
	tokens  *sec.TokenIssuer
	codes   CodeStore
	mail    Sender

	now func() time.Time
}

// NewHandlers wires the auth command handlers.
func NewHandlers(service *Service, repository users.Repository, tokens *sec.TokenIssuer, codes CodeStore, mail Sender) *Handlers {
	return &Handlers{
		service: service,
		users:   repository,
		tokens:  tokens,
		codes:   codes,
		mail:    mail,
		now:     time.Now,
	}
}

var _ command.AuthHandlers = (*Handlers)(nil)

// # Token Flow

/*
SignIn validates credentials and opens a fresh device session. Every sign-in
gets its own device id, so the same account on two browsers holds two
independent sessions.
*/
func (h *Handlers) SignIn(ctx context.Context, cmd command.SignIn) (*command.TokenPair, error) {
	user, err := h.service.ValidateCredentials(ctx, cmd.LoginOrEmail, cmd.Password)
	if err != nil {
		return nil, err
	}

	deviceID := uuid.New()
	pair, err := h.tokens.IssuePair(user.ID, deviceID)
	if err != nil {
		return nil, err
	}

	user.SignInDevice(deviceID, cmd.IP, cmd.DeviceTitle, pair.IssuedAt, pair.ExpiresAt)
	if err := h.users.Save(ctx, user); err != nil {
		return nil, err
	}

	return &command.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		IssuedAt:     pair.IssuedAt,
		ExpiresAt:    pair.ExpiresAt,
	}, nil
}

/*
RefreshTokens rotates the pair for one device session. The ledger row is
replaced with the new issue time, which is what invalidates the presented
token: its iat no longer matches.
*/
func (h *Handlers) RefreshTokens(ctx context.Context, cmd command.RefreshTokens) (*command.TokenPair, error) {
	claims, err := h.tokens.VerifyRefreshToken(cmd.RefreshToken)
	if err != nil {
		return nil, errInvalidSession()
	}

	user, err := h.service.ValidateDeviceSession(ctx, claims)
	if err != nil {
		return nil, err
	}

	pair, err := h.tokens.IssuePair(user.ID, claims.DeviceID)
	if err != nil {
		return nil, err
	}

	if !user.RefreshDevice(claims.DeviceID, cmd.IP, pair.IssuedAt, pair.ExpiresAt) {
		return nil, errInvalidSession()
	}
	if err := h.users.Save(ctx, user); err != nil {
		return nil, err
	}

	return &command.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		IssuedAt:     pair.IssuedAt,
		ExpiresAt:    pair.ExpiresAt,
	}, nil
}

/*
Logout drops the device session named by the presented refresh token. Other
devices of the same account stay signed in.
*/
func (h *Handlers) Logout(ctx context.Context, cmd command.Logout) error {
	claims, err := h.tokens.VerifyRefreshToken(cmd.RefreshToken)
	if err != nil {
		return errInvalidSession()
	}

	user, err := h.service.ValidateDeviceSession(ctx, claims)
	if err != nil {
		return err
	}

	if !user.DropSession(claims.DeviceID) {
		return errInvalidSession()
	}

	return h.users.Save(ctx, user)
}

// # Emailed Code Flows

/*
PasswordRecovery issues a recovery code for the account behind an email.
Unknown emails succeed silently so the endpoint cannot be used to probe for
registered addresses.
*/
func (h *Handlers) PasswordRecovery(ctx context.Context, cmd command.PasswordRecovery) error {
	user, err := h.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil
		}
		return err
	}

	code, err := sec.GenerateSecureToken(codeByteLength)
	if err != nil {
		return err
	}
	if err := h.codes.SetRecoveryCode(ctx, code, user.ID); err != nil {
		return err
	}

	return h.mail.SendRecoveryCode(ctx, user.Email, code)
}

/*
SetNewPassword consumes a recovery code and replaces the credential. All
device sessions are dropped: outstanding refresh tokens of a possibly
compromised account die with the old password.
*/
func (h *Handlers) SetNewPassword(ctx context.Context, cmd command.SetNewPassword) error {
	userID, err := h.codes.ConsumeRecoveryCode(ctx, cmd.RecoveryCode)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.ValidationError("Recovery code is incorrect or expired",
				apperr.FieldError{Field: "recoveryCode", Message: "Recovery code is incorrect or expired"})
		}
		return err
	}

	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	salt, err := sec.GenerateSalt()
	if err != nil {
		return err
	}
	user.SetPassword(sec.HashPassword(cmd.NewPassword, salt), salt)
	user.DropAllSessions()

	return h.users.Save(ctx, user)
}

/*
RegistrationConfirmation consumes an emailed confirmation code and marks the
account confirmed.
*/
func (h *Handlers) RegistrationConfirmation(ctx context.Context, cmd command.RegistrationConfirmation) error {
	userID, err := h.codes.ConsumeConfirmationCode(ctx, cmd.Code)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.ValidationError("Confirmation code is incorrect or expired",
				apperr.FieldError{Field: "code", Message: "Confirmation code is incorrect or expired"})
		}
		return err
	}

	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsConfirmed {
		return apperr.ValidationError("Account is already confirmed",
			apperr.FieldError{Field: "code", Message: "Account is already confirmed"})
	}

	user.Confirm()

	return h.users.Save(ctx, user)
}

/*
RegistrationEmailResend issues a fresh confirmation code for an unconfirmed
account, replacing the one emailed earlier.
*/
func (h *Handlers) RegistrationEmailResend(ctx context.Context, cmd command.RegistrationEmailResend) error {
	user, err := h.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.ValidationError("No account registered for this email",
				apperr.FieldError{Field: "email", Message: "No account registered for this email"})
		}
		return err
	}
	if user.IsConfirmed {
		return apperr.ValidationError("Account is already confirmed",
			apperr.FieldError{Field: "email", Message: "Account is already confirmed"})
	}

	code, err := sec.GenerateSecureToken(codeByteLength)
	if err != nil {
		return err
	}
	if err := h.codes.SetConfirmationCode(ctx, code, user.ID); err != nil {
		return err
	}

	return h.mail.SendConfirmationCode(ctx, user.Email, code)
}

// # Device Session Management

/*
DeleteSession revokes one of the acting user's device sessions. A session
owned by another account answers Forbidden, an unknown one NotFound.
*/
func (h *Handlers) DeleteSession(ctx context.Context, cmd command.DeleteSession) error {
	ownerID, err := h.users.SessionOwner(ctx, cmd.DeviceID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("Session")
		}
		return err
	}
	if ownerID != cmd.UserID {
		return apperr.Forbidden("Session belongs to another user")
	}

	user, err := h.users.FindByID(ctx, cmd.UserID)
	if err != nil {
		return err
	}

	user.DropSession(cmd.DeviceID)

	return h.users.Save(ctx, user)
}

/*
DeleteAllSessionsExceptCurrent revokes every device session except the one
making the request.
*/
func (h *Handlers) DeleteAllSessionsExceptCurrent(ctx context.Context, cmd command.DeleteAllSessionsExceptCurrent) error {
	user, err := h.users.FindByID(ctx, cmd.UserID)
	if err != nil {
		return err
	}

	user.DropOtherSessions(cmd.CurrentDeviceID)

	return h.users.Save(ctx, user)
}

/*
GetUserSessions lists the acting user's live device sessions, expired ones
filtered out.
*/
func (h *Handlers) GetUserSessions(ctx context.Context, cmd command.GetUserSessions) ([]command.DeviceSessionInfo, error) {
	user, err := h.users.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	active := user.ActiveSessions(h.now().UTC())
	infos := make([]command.DeviceSessionInfo, 0, len(active))
	for _, session := range active {
		infos = append(infos, command.DeviceSessionInfo{
			DeviceID:     session.DeviceID,
			IP:           session.IP,
			Title:        session.Title,
			LastActiveAt: session.LastActiveAt,
		})
	}

	return infos, nil
}
