// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package users

import (
	"context"
	"errors"
	"time"

	"github.com/dkravets/inkwell/internal/command"
	"github.com/dkravets/inkwell/internal/platform/apperr"
	"github.com/dkravets/inkwell/internal/platform/dberr"
	"github.com/dkravets/inkwell/internal/platform/sec"
	"github.com/dkravets/inkwell/pkg/uuid"
)

// Handlers implements [command.UserHandlers] on top of the account repository.
type Handlers struct {
	repo Repository

	// now is injectable for deterministic tests.
	now func() time.Time
}

// NewHandlers wires the user command handlers.
func NewHandlers(repo Repository) *Handlers {
	return &Handlers{
		repo: repo,
		now:  time.Now,
	}
}

var _ command.UserHandlers = (*Handlers)(nil)

/*
CreateUser registers a new account with a per-account salt.

Login and email must both be free; a taken identifier fails with a
field-scoped validation error so the client can highlight the input.
*/
func (h *Handlers) CreateUser(ctx context.Context, cmd command.CreateUser) (string, error) {

	// 1. Uniqueness checks, field by field.
	if _, err := h.repo.FindByLogin(ctx, cmd.Login); err == nil {
		return "", apperr.ValidationError("Login is already in use",
			apperr.FieldError{Field: "login", Message: "login is already in use"})
	} else if !errors.Is(err, dberr.ErrNotFound) {
		return "", err
	}

	if _, err := h.repo.FindByEmail(ctx, cmd.Email); err == nil {
		return "", apperr.ValidationError("Email is already in use",
			apperr.FieldError{Field: "email", Message: "email is already in use"})
	} else if !errors.Is(err, dberr.ErrNotFound) {
		return "", err
	}

	// 2. Derive the salted credential.
	salt, err := sec.GenerateSalt()
	if err != nil {
		return "", apperr.Internal(err)
	}
	hash := sec.HashPassword(cmd.Password, salt)

	// 3. Persist the aggregate.
	user := &User{
		ID:           uuid.New(),
		Login:        cmd.Login,
		Email:        cmd.Email,
		PasswordHash: hash,
		PasswordSalt: salt,
		IsConfirmed:  cmd.Confirmed,
		CreatedAt:    h.now().UTC(),
	}
	if err := h.repo.Create(ctx, user); err != nil {
		return "", err
	}

	return user.ID, nil
}

/*
DeleteUser removes an account. Device sessions go with it.
*/
func (h *Handlers) DeleteUser(ctx context.Context, cmd command.DeleteUser) error {
	if err := h.repo.Delete(ctx, cmd.UserID); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("User")
		}
		return err
	}
	return nil
}

/*
BanUser flips the account's global ban flag.

A global ban gates credential and session validation only; the user's blogs,
posts and comments stay visible. Per-blog moderation is a separate concern
handled by the blog owner.
*/
func (h *Handlers) BanUser(ctx context.Context, cmd command.BanUser) error {
	user, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("User")
		}
		return err
	}

	user.SetBan(cmd.IsBanned, cmd.BanReason, h.now().UTC())

	return h.repo.Save(ctx, user)
}
