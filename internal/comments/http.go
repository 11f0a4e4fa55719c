// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package comments

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dkravets/inkwell/internal/command"
	"github.com/dkravets/inkwell/internal/platform/apperr"
	"github.com/dkravets/inkwell/internal/platform/dberr"
	requestutil "github.com/dkravets/inkwell/internal/platform/request"
	"github.com/dkravets/inkwell/internal/platform/respond"
	"github.com/dkravets/inkwell/internal/platform/validate"
	"github.com/dkravets/inkwell/internal/reactions"
	"github.com/dkravets/inkwell/pkg/pagination"
)

// LoginResolver resolves the acting user's login for comment authorship and
// reaction entries. Wired from the users repository.
type LoginResolver func(request *http.Request, userID string) (string, error)

// HTTPHandler implements the comment HTTP layer.
type HTTPHandler struct {
	dispatcher command.Dispatcher
	repo       Repository
	logins     LoginResolver
}

// NewHTTPHandler constructs the comment [HTTPHandler].
func NewHTTPHandler(dispatcher command.Dispatcher, repo Repository, logins LoginResolver) *HTTPHandler {
	return &HTTPHandler{
		dispatcher: dispatcher,
		repo:       repo,
		logins:     logins,
	}
}

// Routes returns a [chi.Router] with the /comments endpoints.
func (handler *HTTPHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{commentId}", handler.getComment)
	router.Put("/{commentId}", handler.updateComment)
	router.Delete("/{commentId}", handler.deleteComment)
	router.Put("/{commentId}/like-status", handler.updateLikeStatus)

	return router
}

// # View Models

// commentatorView identifies the comment's author.
type commentatorView struct {
	UserID    string `json:"userId"`
	UserLogin string `json:"userLogin"`
}

// likesView is the reaction projection of a comment.
type likesView struct {
	LikesCount    int    `json:"likesCount"`
	DislikesCount int    `json:"dislikesCount"`
	MyStatus      string `json:"myStatus"`
}

// commentView is the reader-facing comment projection.
type commentView struct {
	ID               string          `json:"id"`
	Content          string          `json:"content"`
	CommentatorInfo  commentatorView `json:"commentatorInfo"`
	CreatedAt        time.Time       `json:"createdAt"`
	LikesInfo        likesView       `json:"likesInfo"`
}

// postInfoView locates a comment within the blogger feed.
type postInfoView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	BlogID   string `json:"blogId"`
	BlogName string `json:"blogName"`
}

// feedCommentView is the blogger-feed projection: a comment plus the post
// it was left under.
type feedCommentView struct {
	commentView
	PostInfo postInfoView `json:"postInfo"`
}

// newCommentView projects a comment for a given viewer ("" for anonymous
// readers).
func newCommentView(comment *Comment, viewerID string) commentView {
	return commentView{
		ID:      comment.ID,
		Content: comment.Content,
		CommentatorInfo: commentatorView{
			UserID:    comment.CommentatorID,
			UserLogin: comment.CommentatorLogin,
		},
		CreatedAt: comment.CreatedAt,
		LikesInfo: likesView{
			LikesCount:    comment.Likes.Likes(),
			DislikesCount: comment.Likes.Dislikes(),
			MyStatus:      comment.Likes.StatusOf(viewerID),
		},
	}
}

// viewerID extracts the optional authenticated user for myStatus projection.
func viewerID(request *http.Request) string {
	if claims := requestutil.Claims(request); claims != nil {
		return claims.UserID
	}
	return ""
}

// # Comment Endpoints

/*
GET /api/v1/comments/{commentId}.

Description: Retrieves a single visible comment. Comments hidden by either
moderation flag answer 404.

Response:
  - 200: commentView
  - 404: ErrNotFound: Unknown or hidden comment
*/
func (handler *HTTPHandler) getComment(writer http.ResponseWriter, request *http.Request) {
	comment, err := handler.repo.Load(request.Context(), requestutil.Param(request, "commentId"))
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			respond.Error(writer, request, apperr.NotFound("Comment"))
			return
		}
		respond.Error(writer, request, err)
		return
	}
	if !comment.IsVisible() {
		respond.Error(writer, request, apperr.NotFound("Comment"))
		return
	}

	respond.OK(writer, newCommentView(comment, viewerID(request)))
}

// commentInput defines the JSON payload shared by comment creation and
// update.
type commentInput struct {
	Content string `json:"content"`
}

// validateCommentInput applies the shared content rule.
func validateCommentInput(input commentInput) error {
	v := &validate.Validator{}
	v.Required("content", input.Content).
		MinLen("content", input.Content, 20).
		MaxLen("content", input.Content, 300)
	return v.Err()
}

/*
PUT /api/v1/comments/{commentId}.

Response:
  - 204: No Content
  - 400: Validation failure: content outside 20..300 characters
  - 401: ErrUnauthorized
  - 403: ErrForbidden: Not the author
  - 404: ErrNotFound: Unknown or hidden comment
*/
func (handler *HTTPHandler) updateComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateCommentInput(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.UpdateComment{
		CommentID: requestutil.Param(request, "commentId"),
		ActorID:   userID,
		Content:   input.Content,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/comments/{commentId}.

Response:
  - 204: No Content
  - 401: ErrUnauthorized
  - 403: ErrForbidden: Not the author
  - 404: ErrNotFound: Unknown or hidden comment
*/
func (handler *HTTPHandler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.DeleteComment{
		CommentID: requestutil.Param(request, "commentId"),
		ActorID:   userID,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// likeStatusRequest defines the JSON payload for reaction updates.
type likeStatusRequest struct {
	LikeStatus string `json:"likeStatus"`
}

/*
PUT /api/v1/comments/{commentId}/like-status.

Response:
  - 204: No Content
  - 400: Validation failure: likeStatus outside None|Like|Dislike
  - 401: ErrUnauthorized
  - 404: ErrNotFound: Unknown or hidden comment
*/
func (handler *HTTPHandler) updateLikeStatus(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input likeStatusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.OneOf("likeStatus", input.LikeStatus, reactions.None, reactions.Like, reactions.Dislike)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	login, err := handler.logins(request, claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.UpdateCommentLikeStatus{
		CommentID:  requestutil.Param(request, "commentId"),
		UserID:     claims.UserID,
		UserLogin:  login,
		LikeStatus: input.LikeStatus,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Post-Scoped Endpoints

/*
ListForPost serves GET /posts/{postId}/comments: the visible comments of one
post. Post existence is resolved by the post router before delegating here.

Response:
  - 200: []commentView with pagination metadata
*/
func (handler *HTTPHandler) ListForPost(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.Param(request, "postId")
	page := pagination.FromRequest(request)

	items, total, err := handler.repo.FindVisibleForPost(request.Context(), postID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	viewer := viewerID(request)
	views := make([]commentView, 0, len(items))
	for i := range items {
		views = append(views, newCommentView(&items[i], viewer))
	}
	respond.Paginated(writer, views, pagination.NewMeta(page.PageNumber, page.PageSize, total))
}

/*
CreateForPost serves POST /posts/{postId}/comments.

Response:
  - 201: commentView
  - 400: Validation failure: content outside 20..300 characters
  - 401: ErrUnauthorized
  - 403: ErrForbidden: Banned from the post's blog
  - 404: ErrNotFound: Unknown or hidden post
*/
func (handler *HTTPHandler) CreateForPost(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateCommentInput(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	login, err := handler.logins(request, claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.dispatcher.Dispatch(request.Context(), command.CreateComment{
		PostID:    requestutil.Param(request, "postId"),
		UserID:    claims.UserID,
		UserLogin: login,
		Content:   input.Content,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, _ := result.(string)
	comment, err := handler.repo.Load(request.Context(), commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, newCommentView(comment, claims.UserID))
}

// # Blogger Feed

/*
BloggerFeed serves GET /blogger/blogs/comments: every comment left under the
acting blogger's blogs, hidden ones included, each with its post location.

Response:
  - 200: []feedCommentView with pagination metadata
  - 401: ErrUnauthorized
*/
func (handler *HTTPHandler) BloggerFeed(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)

	items, total, err := handler.repo.FindForBlogOwner(request.Context(), userID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views := make([]feedCommentView, 0, len(items))
	for i := range items {
		views = append(views, feedCommentView{
			commentView: newCommentView(&items[i], userID),
			PostInfo: postInfoView{
				ID:       items[i].PostID,
				Title:    items[i].PostTitle,
				BlogID:   items[i].BlogID,
				BlogName: items[i].BlogName,
			},
		})
	}
	respond.Paginated(writer, views, pagination.NewMeta(page.PageNumber, page.PageSize, total))
}
