// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkravets/inkwell/internal/command"
	"github.com/dkravets/inkwell/internal/platform/apperr"
	"github.com/dkravets/inkwell/internal/platform/dberr"
	"github.com/dkravets/inkwell/internal/platform/sec"
	"github.com/dkravets/inkwell/pkg/pagination"
)

// fakeRepo is an in-memory [Repository] for handler tests.
type fakeRepo struct {
	accounts map[string]*User
	saved    []*User
}

func newFakeRepo(seed ...*User) *fakeRepo {
	repo := &fakeRepo{accounts: make(map[string]*User)}
	for _, user := range seed {
		repo.accounts[user.ID] = user
	}
	return repo
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*User, error) {
	if user, ok := r.accounts[id]; ok {
		return user, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepo) FindByLogin(_ context.Context, login string) (*User, error) {
	for _, user := range r.accounts {
		if user.Login == login {
			return user, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range r.accounts {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepo) FindByLoginOrEmail(_ context.Context, loginOrEmail string) (*User, error) {
	for _, user := range r.accounts {
		if user.Login == loginOrEmail || user.Email == loginOrEmail {
			return user, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepo) Create(_ context.Context, user *User) error {
	r.accounts[user.ID] = user
	return nil
}

func (r *fakeRepo) Save(_ context.Context, user *User) error {
	r.accounts[user.ID] = user
	r.saved = append(r.saved, user)
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.accounts[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *fakeRepo) SessionOwner(_ context.Context, deviceID string) (string, error) {
	for _, user := range r.accounts {
		for _, session := range user.Sessions {
			if session.DeviceID == deviceID {
				return user.ID, nil
			}
		}
	}
	return "", dberr.ErrNotFound
}

func (r *fakeRepo) FindAll(context.Context, Filter, pagination.Params) ([]User, int, error) {
	return nil, 0, nil
}

func (r *fakeRepo) LoginOf(_ context.Context, userID string) (string, error) {
	if user, ok := r.accounts[userID]; ok {
		return user.Login, nil
	}
	return "", dberr.ErrNotFound
}

/*
TestCreateUserStoresSaltedCredential verifies that every new account gets its
own salt and a hash derived from it.
*/
func TestCreateUserStoresSaltedCredential(t *testing.T) {
	repo := newFakeRepo()
	handlers := NewHandlers(repo)

	userID, err := handlers.CreateUser(context.Background(), command.CreateUser{
		Login:     "alice",
		Email:     "alice@example.com",
		Password:  "pw12345",
		Confirmed: true,
	})

	require.NoError(t, err)
	user, ok := repo.accounts[userID]
	require.True(t, ok)
	assert.NotEmpty(t, user.PasswordSalt)
	assert.Equal(t, sec.HashPassword("pw12345", user.PasswordSalt), user.PasswordHash)
	assert.True(t, user.IsConfirmed)
	assert.NotEqual(t, "pw12345", user.PasswordHash)
}

/*
TestCreateUserRejectsTakenIdentifiers verifies field-scoped failures for
duplicate login and email.
*/
func TestCreateUserRejectsTakenIdentifiers(t *testing.T) {
	repo := newFakeRepo(&User{ID: "u1", Login: "alice", Email: "alice@example.com"})
	handlers := NewHandlers(repo)

	tests := []struct {
		name      string
		cmd       command.CreateUser
		wantField string
	}{
		{
			name:      "duplicate login",
			cmd:       command.CreateUser{Login: "alice", Email: "new@example.com", Password: "pw12345"},
			wantField: "login",
		},
		{
			name:      "duplicate email",
			cmd:       command.CreateUser{Login: "fresh", Email: "alice@example.com", Password: "pw12345"},
			wantField: "email",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := handlers.CreateUser(context.Background(), testCase.cmd)

			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, testCase.wantField, appErr.Details[0].Field)
		})
	}
}

/*
TestBanUserSetsAndClearsBanInfo verifies the global ban flip through the
command handler, including the timestamp source.
*/
func TestBanUserSetsAndClearsBanInfo(t *testing.T) {
	repo := newFakeRepo(&User{ID: "u1", Login: "bob"})
	handlers := NewHandlers(repo)
	frozen := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)
	handlers.now = func() time.Time { return frozen }

	err := handlers.BanUser(context.Background(), command.BanUser{
		UserID:    "u1",
		IsBanned:  true,
		BanReason: "posting the same advertisement in every thread",
	})

	require.NoError(t, err)
	require.True(t, repo.accounts["u1"].Ban.IsBanned)
	assert.Equal(t, frozen, *repo.accounts["u1"].Ban.BanDate)

	err = handlers.BanUser(context.Background(), command.BanUser{UserID: "u1", IsBanned: false})
	require.NoError(t, err)
	assert.False(t, repo.accounts["u1"].Ban.IsBanned)
	assert.Nil(t, repo.accounts["u1"].Ban.BanReason)
}

/*
TestDeleteUserMapsMissingAccount verifies the NotFound surface of deletion.
*/
func TestDeleteUserMapsMissingAccount(t *testing.T) {
	handlers := NewHandlers(newFakeRepo())

	err := handlers.DeleteUser(context.Background(), command.DeleteUser{UserID: "ghost"})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
