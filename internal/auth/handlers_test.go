// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkravets/inkwell/internal/command"
	"github.com/dkravets/inkwell/internal/platform/apperr"
	"github.com/dkravets/inkwell/internal/platform/dberr"
	"github.com/dkravets/inkwell/internal/platform/sec"
	"github.com/dkravets/inkwell/internal/users"
	"github.com/dkravets/inkwell/pkg/pagination"
)

// testClock is a manually advanced clock shared by the token issuer and the
// handlers, so token issue times are deterministic and distinguishable.
type testClock struct {
	current time.Time
}

func (clock *testClock) Now() time.Time { return clock.current }

func (clock *testClock) Advance(duration time.Duration) {
	clock.current = clock.current.Add(duration)
}

// fakeUserRepo is an in-memory [users.Repository]. Loads return copies so a
// mutation only lands when the handler saves, like the real store.
type fakeUserRepo struct {
	accounts map[string]*users.User
}

func newFakeUserRepo(seed ...*users.User) *fakeUserRepo {
	repo := &fakeUserRepo{accounts: make(map[string]*users.User)}
	for _, user := range seed {
		repo.store(user)
	}
	return repo
}

func (r *fakeUserRepo) store(user *users.User) {
	copied := *user
	copied.Sessions = append([]users.DeviceSession(nil), user.Sessions...)
	r.accounts[user.ID] = &copied
}

func (r *fakeUserRepo) load(user *users.User) *users.User {
	copied := *user
	copied.Sessions = append([]users.DeviceSession(nil), user.Sessions...)
	return &copied
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*users.User, error) {
	if user, ok := r.accounts[id]; ok {
		return r.load(user), nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeUserRepo) FindByLogin(_ context.Context, login string) (*users.User, error) {
	for _, user := range r.accounts {
		if user.Login == login {
			return r.load(user), nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*users.User, error) {
	for _, user := range r.accounts {
		if user.Email == email {
			return r.load(user), nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeUserRepo) FindByLoginOrEmail(_ context.Context, loginOrEmail string) (*users.User, error) {
	for _, user := range r.accounts {
		if user.Login == loginOrEmail || user.Email == loginOrEmail {
			return r.load(user), nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *users.User) error {
	r.store(user)
	return nil
}

func (r *fakeUserRepo) Save(_ context.Context, user *users.User) error {
	r.store(user)
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.accounts, id)
	return nil
}

func (r *fakeUserRepo) SessionOwner(_ context.Context, deviceID string) (string, error) {
	for _, user := range r.accounts {
		for _, session := range user.Sessions {
			if session.DeviceID == deviceID {
				return user.ID, nil
			}
		}
	}
	return "", dberr.ErrNotFound
}

func (r *fakeUserRepo) FindAll(context.Context, users.Filter, pagination.Params) ([]users.User, int, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) LoginOf(_ context.Context, userID string) (string, error) {
	if user, ok := r.accounts[userID]; ok {
		return user.Login, nil
	}
	return "", dberr.ErrNotFound
}

// fakeCodeStore is an in-memory [CodeStore] without TTL handling.
type fakeCodeStore struct {
	recovery     map[string]string
	confirmation map[string]string
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{
		recovery:     make(map[string]string),
		confirmation: make(map[string]string),
	}
}

func (s *fakeCodeStore) SetRecoveryCode(_ context.Context, code, userID string) error {
	s.recovery[code] = userID
	return nil
}

func (s *fakeCodeStore) ConsumeRecoveryCode(_ context.Context, code string) (string, error) {
	userID, ok := s.recovery[code]
	if !ok {
		return "", dberr.ErrNotFound
	}
	delete(s.recovery, code)
	return userID, nil
}

func (s *fakeCodeStore) SetConfirmationCode(_ context.Context, code, userID string) error {
	s.confirmation[code] = userID
	return nil
}

func (s *fakeCodeStore) ConsumeConfirmationCode(_ context.Context, code string) (string, error) {
	userID, ok := s.confirmation[code]
	if !ok {
		return "", dberr.ErrNotFound
	}
	delete(s.confirmation, code)
	return userID, nil
}

// recordingSender captures every code it is asked to deliver.
type recordingSender struct {
	recoveryCodes     []string
	confirmationCodes []string
}

func (s *recordingSender) SendConfirmationCode(_ context.Context, _, code string) error {
	s.confirmationCodes = append(s.confirmationCodes, code)
	return nil
}

func (s *recordingSender) SendRecoveryCode(_ context.Context, _, code string) error {
	s.recoveryCodes = append(s.recoveryCodes, code)
	return nil
}

// fixture bundles a wired auth stack over in-memory collaborators.
type fixture struct {
	clock   *testClock
	repo    *fakeUserRepo
	codes   *fakeCodeStore
	sender  *recordingSender
	service *Service
	tokens  *sec.TokenIssuer

	handlers *Handlers
}

func newFixture(t *testing.T, seed ...*users.User) *fixture {
	t.Helper()

	clock := &testClock{current: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	repo := newFakeUserRepo(seed...)
	codes := newFakeCodeStore()
	sender := &recordingSender{}
	service := NewService(repo)
	tokens := sec.NewTokenIssuer(sec.TokenIssuerConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
		Issuer:        "inkwell.test",
		Now:           clock.Now,
	})

	handlers := NewHandlers(service, repo, tokens, codes, sender)
	handlers.now = clock.Now

	return &fixture{
		clock:    clock,
		repo:     repo,
		codes:    codes,
		sender:   sender,
		service:  service,
		tokens:   tokens,
		handlers: handlers,
	}
}

func seedAccount(id, login, email, password string) *users.User {
	salt := "00aa11bb22cc33dd"
	return &users.User{
		ID:           id,
		Login:        login,
		Email:        email,
		PasswordHash: sec.HashPassword(password, salt),
		PasswordSalt: salt,
		IsConfirmed:  true,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) signIn(t *testing.T, loginOrEmail, password string) *command.TokenPair {
	t.Helper()
	pair, err := f.handlers.SignIn(context.Background(), command.SignIn{
		LoginOrEmail: loginOrEmail,
		Password:     password,
		IP:           "198.51.100.7",
		DeviceTitle:  "test agent",
	})
	require.NoError(t, err)
	return pair
}

/*
TestSignInCredentialFailuresShareOneSurface verifies that unknown
identifiers, wrong passwords and banned accounts are indistinguishable to
the caller.
*/
func TestSignInCredentialFailuresShareOneSurface(t *testing.T) {
	banned := seedAccount("user-2", "mallory", "mallory@example.com", "hunter22")
	banned.SetBan(true, "spamming every thread on the platform", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	fix := newFixture(t, seedAccount("user-1", "alice", "alice@example.com", "hunter22"), banned)

	tests := []struct {
		name         string
		loginOrEmail string
		password     string
	}{
		{name: "unknown identifier", loginOrEmail: "nobody", password: "hunter22"},
		{name: "wrong password", loginOrEmail: "alice", password: "wrong-pass"},
		{name: "banned account with correct password", loginOrEmail: "mallory", password: "hunter22"},
	}

	var messages []string
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := fix.handlers.SignIn(context.Background(), command.SignIn{
				LoginOrEmail: test.loginOrEmail,
				Password:     test.password,
			})
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "UNAUTHORIZED", appErr.Code)
			messages = append(messages, appErr.Message)
		})
	}

	assert.Len(t, messages, 3)
	assert.Equal(t, 1, len(uniqueStrings(messages)), "every credential failure must read identically")
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{})
	for _, value := range values {
		seen[strings.TrimSpace(value)] = struct{}{}
	}
	unique := make([]string, 0, len(seen))
	for value := range seen {
		unique = append(unique, value)
	}
	return unique
}

/*
TestBannedUserTokensStillDecode verifies a ban does not break token
signatures: the access token still decodes, but session validation refuses
the account.
*/
func TestBannedUserTokensStillDecode(t *testing.T) {
	fix := newFixture(t, seedAccount("user-1", "alice", "alice@example.com", "hunter22"))
	pair := fix.signIn(t, "alice", "hunter22")

	user, err := fix.repo.FindByID(context.Background(), "user-1")
	require.NoError(t, err)
	user.SetBan(true, "coordinated vote manipulation ring", fix.clock.Now())
	require.NoError(t, fix.repo.Save(context.Background(), user))

	claims, err := fix.tokens.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err, "signature stays valid after the ban")
	assert.Equal(t, "user-1", claims.UserID)

	refreshClaims, err := fix.tokens.VerifyRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	_, err = fix.service.ValidateDeviceSession(context.Background(), refreshClaims)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

/*
TestRefreshRotationInvalidatesPriorToken verifies that rotating a device
session leaves the superseded refresh token dead while the new one works.
*/
func TestRefreshRotationInvalidatesPriorToken(t *testing.T) {
	fix := newFixture(t, seedAccount("user-1", "alice", "alice@example.com", "hunter22"))
	first := fix.signIn(t, "alice", "hunter22")

	fix.clock.Advance(2 * time.Second)

	second, err := fix.handlers.RefreshTokens(context.Background(), command.RefreshTokens{
		RefreshToken: first.RefreshToken,
		IP:           "198.51.100.8",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	fix.clock.Advance(2 * time.Second)

	_, err = fix.handlers.RefreshTokens(context.Background(), command.RefreshTokens{
		RefreshToken: first.RefreshToken,
	})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code, "superseded token must be refused")

	third, err := fix.handlers.RefreshTokens(context.Background(), command.RefreshTokens{
		RefreshToken: second.RefreshToken,
	})
	require.NoError(t, err, "current token keeps working")
	assert.NotEqual(t, second.RefreshToken, third.RefreshToken)
}

/*
TestLogoutIsPerDevice verifies that logging out one device leaves the
account's other sessions untouched.
*/
func TestLogoutIsPerDevice(t *testing.T) {
	fix := newFixture(t, seedAccount("user-1", "alice", "alice@example.com", "hunter22"))

	laptop := fix.signIn(t, "alice", "hunter22")
	fix.clock.Advance(2 * time.Second)
	phone := fix.signIn(t, "alice", "hunter22")

	require.NoError(t, fix.handlers.Logout(context.Background(), command.Logout{
		RefreshToken: laptop.RefreshToken,
	}))

	err := fix.handlers.Logout(context.Background(), command.Logout{
		RefreshToken: laptop.RefreshToken,
	})
	require.NotNil(t, apperr.As(err), "logged-out session must be gone")

	fix.clock.Advance(2 * time.Second)
	_, err = fix.handlers.RefreshTokens(context.Background(), command.RefreshTokens{
		RefreshToken: phone.RefreshToken,
	})
	require.NoError(t, err, "the other device stays signed in")
}

/*
TestSetNewPasswordDropsAllSessionsAndConsumesCode verifies the recovery
flow end to end: code delivery, one-shot redemption, credential swap and
full session revocation.
*/
func TestSetNewPasswordDropsAllSessionsAndConsumesCode(t *testing.T) {
	fix := newFixture(t, seedAccount("user-1", "alice", "alice@example.com", "hunter22"))
	pair := fix.signIn(t, "alice", "hunter22")

	require.NoError(t, fix.handlers.PasswordRecovery(context.Background(), command.PasswordRecovery{
		Email: "alice@example.com",
	}))
	require.Len(t, fix.sender.recoveryCodes, 1)
	code := fix.sender.recoveryCodes[0]

	require.NoError(t, fix.handlers.SetNewPassword(context.Background(), command.SetNewPassword{
		RecoveryCode: code,
		NewPassword:  "new-pass-9",
	}))

	_, err := fix.handlers.SignIn(context.Background(), command.SignIn{
		LoginOrEmail: "alice",
		Password:     "hunter22",
	})
	require.NotNil(t, apperr.As(err), "old password must stop working")

	fix.clock.Advance(2 * time.Second)
	_, err = fix.handlers.RefreshTokens(context.Background(), command.RefreshTokens{
		RefreshToken: pair.RefreshToken,
	})
	require.NotNil(t, apperr.As(err), "pre-reset sessions must be revoked")

	err = fix.handlers.SetNewPassword(context.Background(), command.SetNewPassword{
		RecoveryCode: code,
		NewPassword:  "another-pass",
	})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code, "a recovery code is one-shot")

	fix.signIn(t, "alice", "new-pass-9")
}

/*
TestPasswordRecoveryIsSilentForUnknownEmail verifies the endpoint cannot be
used for account enumeration.
*/
func TestPasswordRecoveryIsSilentForUnknownEmail(t *testing.T) {
	fix := newFixture(t)

	require.NoError(t, fix.handlers.PasswordRecovery(context.Background(), command.PasswordRecovery{
		Email: "nobody@example.com",
	}))
	assert.Empty(t, fix.sender.recoveryCodes, "no code issued for unknown emails")
}

/*
TestRegistrationConfirmationFlow verifies resend, redemption and the
already-confirmed guard.
*/
func TestRegistrationConfirmationFlow(t *testing.T) {
	pending := seedAccount("user-1", "alice", "alice@example.com", "hunter22")
	pending.IsConfirmed = false
	fix := newFixture(t, pending)

	require.NoError(t, fix.handlers.RegistrationEmailResend(context.Background(), command.RegistrationEmailResend{
		Email: "alice@example.com",
	}))
	require.Len(t, fix.sender.confirmationCodes, 1)
	code := fix.sender.confirmationCodes[0]

	require.NoError(t, fix.handlers.RegistrationConfirmation(context.Background(), command.RegistrationConfirmation{
		Code: code,
	}))

	confirmed, err := fix.repo.FindByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, confirmed.IsConfirmed)

	err = fix.handlers.RegistrationEmailResend(context.Background(), command.RegistrationEmailResend{
		Email: "alice@example.com",
	})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	err = fix.handlers.RegistrationConfirmation(context.Background(), command.RegistrationConfirmation{
		Code: "bogus-code",
	})
	appErr = apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

/*
TestDeleteSessionGuards verifies the ownership surfaces of device-session
revocation.
*/
func TestDeleteSessionGuards(t *testing.T) {
	fix := newFixture(t,
		seedAccount("user-1", "alice", "alice@example.com", "hunter22"),
		seedAccount("user-2", "bob", "bob@example.com", "hunter22"),
	)

	alice := fix.signIn(t, "alice", "hunter22")
	aliceClaims, err := fix.tokens.VerifyRefreshToken(alice.RefreshToken)
	require.NoError(t, err)

	err = fix.handlers.DeleteSession(context.Background(), command.DeleteSession{
		UserID:   "user-2",
		DeviceID: aliceClaims.DeviceID,
	})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	err = fix.handlers.DeleteSession(context.Background(), command.DeleteSession{
		UserID:   "user-1",
		DeviceID: "ghost-device",
	})
	appErr = apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	require.NoError(t, fix.handlers.DeleteSession(context.Background(), command.DeleteSession{
		UserID:   "user-1",
		DeviceID: aliceClaims.DeviceID,
	}))
}

/*
TestGetUserSessionsFiltersExpired verifies only live sessions are listed.
*/
func TestGetUserSessionsFiltersExpired(t *testing.T) {
	fix := newFixture(t, seedAccount("user-1", "alice", "alice@example.com", "hunter22"))
	fix.signIn(t, "alice", "hunter22")

	infos, err := fix.handlers.GetUserSessions(context.Background(), command.GetUserSessions{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "198.51.100.7", infos[0].IP)
	assert.Equal(t, "test agent", infos[0].Title)

	fix.clock.Advance(25 * time.Hour)

	infos, err = fix.handlers.GetUserSessions(context.Background(), command.GetUserSessions{UserID: "user-1"})
	require.NoError(t, err)
	assert.Empty(t, infos, "expired sessions disappear from the listing")
}
