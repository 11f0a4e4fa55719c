// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package users

import (
	"context"

	"github.com/dkravets/inkwell/pkg/pagination"
)

// # Repository Contracts

// Filter narrows admin account listings.
type Filter struct {
	SearchLoginTerm string
	SearchEmailTerm string
	// BanStatus is one of "all", "banned", "notBanned".
	BanStatus string
}

// Repository defines the persistence contract for user accounts and their
// device sessions. The session ledger is loaded and saved with the aggregate.
type Repository interface {
	/*
		FindByID retrieves a user with their session ledger.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *User: Hydrated aggregate
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByLogin retrieves a user by exact login.
	*/
	FindByLogin(context context.Context, login string) (*User, error)

	/*
		FindByEmail retrieves a user by exact email.
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByLoginOrEmail retrieves a user matching either identifier.
		Used by credential validation, where clients present one field.
	*/
	FindByLoginOrEmail(context context.Context, loginOrEmail string) (*User, error)

	/*
		Create inserts a new account. Login and email uniqueness is enforced
		by database constraints; violations surface as apperr.Conflict.
	*/
	Create(context context.Context, user *User) error

	/*
		Save persists the aggregate: account fields plus the full session
		ledger, replacing whatever sessions were stored before.
	*/
	Save(context context.Context, user *User) error

	/*
		Delete removes the account and, by cascade, its sessions.
	*/
	Delete(context context.Context, id string) error

	/*
		SessionOwner resolves which user owns a device session.

		Returns:
		  - string: Owning user's UUID
		  - error: apperr.NotFound if no such session exists
	*/
	SessionOwner(context context.Context, deviceID string) (string, error)

	/*
		FindAll lists accounts for the admin surface.

		Returns:
		  - []User: One page of accounts (sessions not hydrated)
		  - int: Total matching count
		  - error: Storage failures
	*/
	FindAll(context context.Context, filter Filter, page pagination.Params) ([]User, int, error)

	/*
		LoginOf resolves a user's login by id. Used by other domains to
		denormalize author identity without loading the aggregate.
	*/
	LoginOf(context context.Context, userID string) (string, error)
}
