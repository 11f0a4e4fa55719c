// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

/*
Package command defines the platform's write-side protocol: a closed set of
command variants, the handler interfaces that consume them, and the dispatcher
contract handlers use to trigger cascades.

# Architecture

Every state change travels as an immutable command value through a single
[Dispatcher]. The command set is closed: variants carry an unexported marker
method, so no package outside this one can introduce a new variant, and the
bus matches them exhaustively. Handlers receive the dispatcher itself so that
moderation cascades (ban a blog, hide its posts; ban a commentator, hide their
comments) run through the same routing as top-level requests.
*/
package command

import (
	"context"
	"time"
)

// Command is the closed union of all write operations.
type Command interface {
	isCommand()
}

// Dispatcher routes a command to exactly one handler.
//
// The result type depends on the variant: creation commands return the new
// aggregate's id as a string, SignIn/RefreshTokens return *TokenPair,
// GetUserSessions returns []DeviceSessionInfo, and pure state transitions
// return nil.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd Command) (interface{}, error)
}

// ── Blog commands ────────────────────────────────────────────────────────────

// CreateBlog registers a new blog owned by the acting blogger.
type CreateBlog struct {
	OwnerID     string
	OwnerLogin  string
	Name        string
	Description string
	WebsiteURL  string
}

// EditBlog updates a blog's descriptive fields. Only the owner may edit.
type EditBlog struct {
	BlogID      string
	ActorID     string
	Name        string
	Description string
	WebsiteURL  string
}

// DeleteBlog removes a blog. Only the owner may delete.
type DeleteBlog struct {
	BlogID  string
	ActorID string
}

// BanBlog flips a blog's ban flag (admin operation). Hiding cascades to the
// blog's posts before the blog itself is persisted.
type BanBlog struct {
	BlogID   string
	IsBanned bool
}

// BindBlogOwner assigns an owner to a blog (one-time admin operation).
type BindBlogOwner struct {
	BlogID string
	UserID string
}

// BloggerBanUserForBlog bans or unbans a user from a single blog, hiding that
// user's comments on that blog only.
type BloggerBanUserForBlog struct {
	ActorID   string
	BlogID    string
	UserID    string
	IsBanned  bool
	BanReason string
}

// ── Post commands ────────────────────────────────────────────────────────────

// CreatePost adds a post under a blog. Only the blog owner may post.
type CreatePost struct {
	BlogID           string
	ActorID          string
	Title            string
	ShortDescription string
	Content          string
}

// EditPost updates a post's content fields.
type EditPost struct {
	BlogID           string
	PostID           string
	ActorID          string
	Title            string
	ShortDescription string
	Content          string
}

// DeletePost removes a post from a blog.
type DeletePost struct {
	BlogID  string
	PostID  string
	ActorID string
}

// UpdatePostLikeStatus records the acting user's reaction on a post.
type UpdatePostLikeStatus struct {
	PostID     string
	UserID     string
	UserLogin  string
	LikeStatus string
}

// BanPostsForBlog flips the parent-ban flag on every post of a blog.
// Dispatched as a cascade from BanBlog, never from the HTTP layer.
type BanPostsForBlog struct {
	BlogID   string
	IsBanned bool
}

// ── Comment commands ─────────────────────────────────────────────────────────

// CreateComment adds a comment to a post on behalf of the acting user.
type CreateComment struct {
	PostID    string
	UserID    string
	UserLogin string
	Content   string
}

// UpdateComment replaces a comment's content. Only the author may edit.
type UpdateComment struct {
	CommentID string
	ActorID   string
	Content   string
}

// DeleteComment removes a comment. Only the author may delete.
type DeleteComment struct {
	CommentID string
	ActorID   string
}

// UpdateCommentLikeStatus records the acting user's reaction on a comment.
type UpdateCommentLikeStatus struct {
	CommentID  string
	UserID     string
	UserLogin  string
	LikeStatus string
}

// BanCommentsByCommentator flips commentator-ban visibility on all of a
// user's comments scoped to one blog. Dispatched as a cascade from
// BloggerBanUserForBlog, never from the HTTP layer.
type BanCommentsByCommentator struct {
	UserID   string
	BlogID   string
	IsBanned bool
}

// BanComment flips a single comment's own ban flag (admin operation).
type BanComment struct {
	CommentID string
	IsBanned  bool
}

// ── User commands ────────────────────────────────────────────────────────────

// CreateUser registers a new account. Admin-created accounts arrive
// pre-confirmed; self-registered accounts must confirm by email code.
type CreateUser struct {
	Login     string
	Email     string
	Password  string
	Confirmed bool
}

// DeleteUser removes an account and all of its device sessions.
type DeleteUser struct {
	UserID string
}

// BanUser flips a user's global ban flag (admin operation). A banned user
// fails credential and session validation but keeps their content visible.
type BanUser struct {
	UserID    string
	IsBanned  bool
	BanReason string
}

// ── Auth commands ────────────────────────────────────────────────────────────

// SignIn validates credentials and opens a new device session.
type SignIn struct {
	LoginOrEmail string
	Password     string
	IP           string
	DeviceTitle  string
}

// RefreshTokens rotates the token pair for an existing device session.
type RefreshTokens struct {
	RefreshToken string
	IP           string
}

// Logout terminates the device session named by the presented refresh token.
type Logout struct {
	RefreshToken string
}

// PasswordRecovery emails a short-lived recovery code. Silently succeeds for
// unknown emails to avoid account enumeration.
type PasswordRecovery struct {
	Email string
}

// SetNewPassword consumes a recovery code and replaces the credential.
type SetNewPassword struct {
	RecoveryCode string
	NewPassword  string
}

// RegistrationConfirmation consumes an emailed confirmation code.
type RegistrationConfirmation struct {
	Code string
}

// RegistrationEmailResend re-issues the confirmation code for an
// unconfirmed account.
type RegistrationEmailResend struct {
	Email string
}

// DeleteSession revokes one of the acting user's device sessions.
type DeleteSession struct {
	UserID   string
	DeviceID string
}

// DeleteAllSessionsExceptCurrent revokes every device session of the acting
// user except the one making the request.
type DeleteAllSessionsExceptCurrent struct {
	UserID          string
	CurrentDeviceID string
}

// GetUserSessions lists the acting user's live device sessions.
type GetUserSessions struct {
	UserID string
}

// ── Results ──────────────────────────────────────────────────────────────────

// TokenPair is the result of SignIn and RefreshTokens.
//
// IssuedAt and ExpiresAt are taken from the refresh token's own signed claims,
// so the session ledger and the token can never disagree about lifetime.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// DeviceSessionInfo is one entry in the GetUserSessions result.
type DeviceSessionInfo struct {
	DeviceID     string
	IP           string
	Title        string
	LastActiveAt time.Time
}

func (CreateBlog) isCommand()            {}
func (EditBlog) isCommand()              {}
func (DeleteBlog) isCommand()            {}
func (BanBlog) isCommand()               {}
func (BindBlogOwner) isCommand()         {}
func (BloggerBanUserForBlog) isCommand() {}

func (CreatePost) isCommand()           {}
func (EditPost) isCommand()             {}
func (DeletePost) isCommand()           {}
func (UpdatePostLikeStatus) isCommand() {}
func (BanPostsForBlog) isCommand()      {}

func (CreateComment) isCommand()            {}
func (UpdateComment) isCommand()            {}
func (DeleteComment) isCommand()            {}
func (UpdateCommentLikeStatus) isCommand()  {}
func (BanCommentsByCommentator) isCommand() {}
func (BanComment) isCommand()               {}

func (CreateUser) isCommand() {}
func (DeleteUser) isCommand() {}
func (BanUser) isCommand()    {}

func (SignIn) isCommand()                         {}
func (RefreshTokens) isCommand()                  {}
func (Logout) isCommand()                         {}
func (PasswordRecovery) isCommand()               {}
func (SetNewPassword) isCommand()                 {}
func (RegistrationConfirmation) isCommand()       {}
func (RegistrationEmailResend) isCommand()        {}
func (DeleteSession) isCommand()                  {}
func (DeleteAllSessionsExceptCurrent) isCommand() {}
func (GetUserSessions) isCommand()                {}
