// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package command

import (
	"context"
	"fmt"

	"github.com/dkravets/inkwell/internal/platform/apperr"
)

// BlogHandlers owns blog lifecycle, moderation and per-blog user bans.
type BlogHandlers interface {
	CreateBlog(ctx context.Context, cmd CreateBlog) (string, error)
	EditBlog(ctx context.Context, cmd EditBlog) error
	DeleteBlog(ctx context.Context, cmd DeleteBlog) error
	BanBlog(ctx context.Context, cmd BanBlog) error
	BindBlogOwner(ctx context.Context, cmd BindBlogOwner) error
	BloggerBanUserForBlog(ctx context.Context, cmd BloggerBanUserForBlog) error
}

// PostHandlers owns post lifecycle, reactions and the blog-ban cascade.
type PostHandlers interface {
	CreatePost(ctx context.Context, cmd CreatePost) (string, error)
	EditPost(ctx context.Context, cmd EditPost) error
	DeletePost(ctx context.Context, cmd DeletePost) error
	UpdatePostLikeStatus(ctx context.Context, cmd UpdatePostLikeStatus) error
	BanPostsForBlog(ctx context.Context, cmd BanPostsForBlog) error
}

// CommentHandlers owns comment lifecycle, reactions and commentator bans.
type CommentHandlers interface {
	CreateComment(ctx context.Context, cmd CreateComment) (string, error)
	UpdateComment(ctx context.Context, cmd UpdateComment) error
	DeleteComment(ctx context.Context, cmd DeleteComment) error
	UpdateCommentLikeStatus(ctx context.Context, cmd UpdateCommentLikeStatus) error
	BanCommentsByCommentator(ctx context.Context, cmd BanCommentsByCommentator) error
	BanComment(ctx context.Context, cmd BanComment) error
}

// UserHandlers owns account lifecycle and global bans.
type UserHandlers interface {
	CreateUser(ctx context.Context, cmd CreateUser) (string, error)
	DeleteUser(ctx context.Context, cmd DeleteUser) error
	BanUser(ctx context.Context, cmd BanUser) error
}

// AuthHandlers owns credential validation, token rotation, registration
// and device-session management.
type AuthHandlers interface {
	SignIn(ctx context.Context, cmd SignIn) (*TokenPair, error)
	RefreshTokens(ctx context.Context, cmd RefreshTokens) (*TokenPair, error)
	Logout(ctx context.Context, cmd Logout) error
	PasswordRecovery(ctx context.Context, cmd PasswordRecovery) error
	SetNewPassword(ctx context.Context, cmd SetNewPassword) error
	RegistrationConfirmation(ctx context.Context, cmd RegistrationConfirmation) error
	RegistrationEmailResend(ctx context.Context, cmd RegistrationEmailResend) error
	DeleteSession(ctx context.Context, cmd DeleteSession) error
	DeleteAllSessionsExceptCurrent(ctx context.Context, cmd DeleteAllSessionsExceptCurrent) error
	GetUserSessions(ctx context.Context, cmd GetUserSessions) ([]DeviceSessionInfo, error)
}

// Bus routes commands to the per-domain handler sets.
//
// # Wiring
//
// The handler fields are assigned once during startup, after the handlers
// themselves have been constructed with the Bus as their [Dispatcher]. The
// two-phase wiring breaks the construction cycle between the bus and the
// cascade-dispatching handlers. The Bus is stateless beyond these fields and
// safe for concurrent use once wiring is complete.
type Bus struct {
	Blogs    BlogHandlers
	Posts    PostHandlers
	Comments CommentHandlers
	Users    UserHandlers
	Auth     AuthHandlers
}

// NewBus returns an unwired Bus; the caller assigns the handler fields.
func NewBus() *Bus {
	return &Bus{}
}

// Dispatch matches the command exhaustively and invokes its handler.
//
// The default branch is unreachable for any command this package defines;
// it guards against a variant added without a matching case.
func (b *Bus) Dispatch(ctx context.Context, cmd Command) (interface{}, error) {
	switch c := cmd.(type) {

	case CreateBlog:
		return b.Blogs.CreateBlog(ctx, c)
	case EditBlog:
		return nil, b.Blogs.EditBlog(ctx, c)
	case DeleteBlog:
		return nil, b.Blogs.DeleteBlog(ctx, c)
	case BanBlog:
		return nil, b.Blogs.BanBlog(ctx, c)
	case BindBlogOwner:
		return nil, b.Blogs.BindBlogOwner(ctx, c)
	case BloggerBanUserForBlog:
		return nil, b.Blogs.BloggerBanUserForBlog(ctx, c)

	case CreatePost:
		return b.Posts.CreatePost(ctx, c)
	case EditPost:
		return nil, b.Posts.EditPost(ctx, c)
	case DeletePost:
		return nil, b.Posts.DeletePost(ctx, c)
	case UpdatePostLikeStatus:
		return nil, b.Posts.UpdatePostLikeStatus(ctx, c)
	case BanPostsForBlog:
		return nil, b.Posts.BanPostsForBlog(ctx, c)

	case CreateComment:
		return b.Comments.CreateComment(ctx, c)
	case UpdateComment:
		return nil, b.Comments.UpdateComment(ctx, c)
	case DeleteComment:
		return nil, b.Comments.DeleteComment(ctx, c)
	case UpdateCommentLikeStatus:
		return nil, b.Comments.UpdateCommentLikeStatus(ctx, c)
	case BanCommentsByCommentator:
		return nil, b.Comments.BanCommentsByCommentator(ctx, c)
	case BanComment:
		return nil, b.Comments.BanComment(ctx, c)

	case CreateUser:
		return b.Users.CreateUser(ctx, c)
	case DeleteUser:
		return nil, b.Users.DeleteUser(ctx, c)
	case BanUser:
		return nil, b.Users.BanUser(ctx, c)

	case SignIn:
		return b.Auth.SignIn(ctx, c)
	case RefreshTokens:
		return b.Auth.RefreshTokens(ctx, c)
	case Logout:
		return nil, b.Auth.Logout(ctx, c)
	case PasswordRecovery:
		return nil, b.Auth.PasswordRecovery(ctx, c)
	case SetNewPassword:
		return nil, b.Auth.SetNewPassword(ctx, c)
	case RegistrationConfirmation:
		return nil, b.Auth.RegistrationConfirmation(ctx, c)
	case RegistrationEmailResend:
		return nil, b.Auth.RegistrationEmailResend(ctx, c)
	case DeleteSession:
		return nil, b.Auth.DeleteSession(ctx, c)
	case DeleteAllSessionsExceptCurrent:
		return nil, b.Auth.DeleteAllSessionsExceptCurrent(ctx, c)
	case GetUserSessions:
		return b.Auth.GetUserSessions(ctx, c)

	default:
		return nil, apperr.Internal(fmt.Errorf("command: no handler for %T", cmd))
	}
}
