// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

/*
Package posts provides the HTTP delivery layer for the post domain: the
anonymous read surface, reactions, and the blogger post CRUD handlers that
the blog surfaces mount under /blogger/blogs/{blogId}/posts.
*/
package posts

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

// LoginResolver resolves the acting user's login for reaction entries.
// Wired from the users repository.
type LoginResolver func(request *http.Request, userID string) (string, error)

// HTTPHandler implements the post HTTP layer.
type HTTPHandler struct {
	dispatcher command.Dispatcher
	repo       Repository
	logins     LoginResolver

	// Comment sub-resources of a post; supplied by the comment domain so
	// this package carries no dependency on it.
	listComments  http.HandlerFunc
	createComment http.HandlerFunc
}

// NewHTTPHandler constructs the post [HTTPHandler].
func NewHTTPHandler(
	dispatcher command.Dispatcher,
	repo Repository,
	logins LoginResolver,
	listComments http.HandlerFunc,
	createComment http.HandlerFunc,
) *HTTPHandler {
	return &HTTPHandler{
		dispatcher:    dispatcher,
		repo:          repo,
		logins:        logins,
		listComments:  listComments,
		createComment: createComment,
	}
}

// Routes returns a [chi.Router] with the /posts endpoints.
func (handler *HTTPHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPosts)
	router.Get("/{postId}", handler.getPost)
	router.Put("/{postId}/like-status", handler.updateLikeStatus)
	router.Get("/{postId}/comments", handler.getPostComments)
	router.Post("/{postId}/comments", handler.createPostComment)

	return router
}

// # View Models

// newestLikeView is one entry of the newest-likes projection.
type newestLikeView struct {
	AddedAt time.Time `json:"addedAt"`
	UserID  string    `json:"userId"`
	Login   string    `json:"login"`
}

// extendedLikesView is the reaction projection of a post.
type extendedLikesView struct {
	LikesCount    int              `json:"likesCount"`
	DislikesCount int              `json:"dislikesCount"`
	MyStatus      string           `json:"myStatus"`
	NewestLikes   []newestLikeView `json:"newestLikes"`
}

// postView is the reader-facing post projection.
type postView struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	ShortDescription  string            `json:"shortDescription"`
	Content           string            `json:"content"`
	BlogID            string            `json:"blogId"`
	BlogName          string            `json:"blogName"`
	CreatedAt         time.Time         `json:"createdAt"`
	ExtendedLikesInfo extendedLikesView `json:"extendedLikesInfo"`
}

// newestLikesCap bounds the newest-likes projection.
const newestLikesCap = 3

// NewPostView projects a post for a given viewer ("" for anonymous readers).
func NewPostView(post *Post, viewerID string) postView {
	newest := post.Likes.NewestLikes(newestLikesCap)
	newestViews := make([]newestLikeView, 0, len(newest))
	for _, entry := range newest {
		newestViews = append(newestViews, newestLikeView{
			AddedAt: entry.AddedAt,
			UserID:  entry.UserID,
			Login:   entry.Login,
		})
	}

	return postView{
		ID:               post.ID,
		Title:            post.Title,
		ShortDescription: post.ShortDescription,
		Content:          post.Content,
		BlogID:           post.BlogID,
		BlogName:         post.BlogName,
		CreatedAt:        post.CreatedAt,
		ExtendedLikesInfo: extendedLikesView{
			LikesCount:    post.Likes.Likes(),
			DislikesCount: post.Likes.Dislikes(),
			MyStatus:      post.Likes.StatusOf(viewerID),
			NewestLikes:   newestViews,
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

// # Public Endpoints

/*
GET /api/v1/posts.

Description: Lists visible posts across all blogs. Posts of banned blogs are
excluded.

Response:
  - 200: []postView with pagination metadata
*/
func (handler *HTTPHandler) listPosts(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	items, total, err := handler.repo.FindVisible(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.respondPostPage(writer, request, items, total, page)
}

/*
GET /api/v1/posts/{postId}.

Description: Retrieves a single visible post. A post under a banned blog
answers 404 even though the document still exists.

Response:
  - 200: postView
  - 404: ErrNotFound: Unknown or hidden post
*/
func (handler *HTTPHandler) getPost(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.repo.Load(request.Context(), requestutil.Param(request, "postId"))
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			respond.Error(writer, request, apperr.NotFound("Post"))
			return
		}
		respond.Error(writer, request, err)
		return
	}
	if post.IsBanned {
		respond.Error(writer, request, apperr.NotFound("Post"))
		return
	}

	respond.OK(writer, NewPostView(post, viewerID(request)))
}

// likeStatusRequest defines the JSON payload for reaction updates.
type likeStatusRequest struct {
	LikeStatus string `json:"likeStatus"`
}

/*
PUT /api/v1/posts/{postId}/like-status.

Response:
  - 204: No Content
  - 400: Validation failure: likeStatus outside None|Like|Dislike
  - 401: ErrUnauthorized
  - 404: ErrNotFound: Unknown or hidden post
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

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.UpdatePostLikeStatus{
		PostID:     requestutil.Param(request, "postId"),
		UserID:     claims.UserID,
		UserLogin:  login,
		LikeStatus: input.LikeStatus,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Comment Sub-Resources

/*
GET /api/v1/posts/{postId}/comments.

Description: Lists the visible comments of one post. Existence and visibility
of the post are resolved here; the page itself comes from the comment domain.

Response:
  - 200: []commentView with pagination metadata
  - 404: ErrNotFound: Unknown or hidden post
*/
func (handler *HTTPHandler) getPostComments(writer http.ResponseWriter, request *http.Request) {
	handler.guardPostVisible(writer, request, handler.listComments)
}

/*
POST /api/v1/posts/{postId}/comments.

Response:
  - 201: commentView
  - 400: Validation failure
  - 401: ErrUnauthorized
  - 403: ErrForbidden: Banned from the post's blog
  - 404: ErrNotFound: Unknown or hidden post
*/
func (handler *HTTPHandler) createPostComment(writer http.ResponseWriter, request *http.Request) {
	handler.guardPostVisible(writer, request, handler.createComment)
}

// guardPostVisible delegates to next only when the post exists and is not
// hidden by a blog ban. Hidden posts answer 404 before the comment domain
// ever sees the request.
func (handler *HTTPHandler) guardPostVisible(writer http.ResponseWriter, request *http.Request, next http.HandlerFunc) {
	post, err := handler.repo.Load(request.Context(), requestutil.Param(request, "postId"))
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			respond.Error(writer, request, apperr.NotFound("Post"))
			return
		}
		respond.Error(writer, request, err)
		return
	}
	if post.IsBanned {
		respond.Error(writer, request, apperr.NotFound("Post"))
		return
	}

	next(writer, request)
}

// # Blog-Scoped Endpoints

/*
ListForBlog serves GET /blogs/{blogId}/posts: the visible posts of one blog.
Blog existence is resolved by the blog router before delegating here.

Response:
  - 200: []postView with pagination metadata
*/
func (handler *HTTPHandler) ListForBlog(writer http.ResponseWriter, request *http.Request) {
	blogID := requestutil.Param(request, "blogId")
	page := pagination.FromRequest(request)

	items, total, err := handler.repo.FindVisibleForBlog(request.Context(), blogID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.respondPostPage(writer, request, items, total, page)
}

// postInput defines the JSON payload shared by post creation and update.
type postInput struct {
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	Content          string `json:"content"`
}

// validatePostInput applies the shared field rules.
func validatePostInput(input postInput) error {
	v := &validate.Validator{}
	v.Required("title", input.Title).
		MaxLen("title", input.Title, 30).
		Required("shortDescription", input.ShortDescription).
		MaxLen("shortDescription", input.ShortDescription, 100).
		Required("content", input.Content).
		MaxLen("content", input.Content, 1000)
	return v.Err()
}

/*
CreateForBlog serves POST /blogger/blogs/{blogId}/posts.

Response:
  - 201: postView
  - 400: Validation failure
  - 403: ErrForbidden: Not the blog owner
  - 404: ErrNotFound: Unknown blog
*/
func (handler *HTTPHandler) CreateForBlog(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input postInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validatePostInput(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.dispatcher.Dispatch(request.Context(), command.CreatePost{
		BlogID:           requestutil.Param(request, "blogId"),
		ActorID:          userID,
		Title:            input.Title,
		ShortDescription: input.ShortDescription,
		Content:          input.Content,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	postID, _ := result.(string)
	post, err := handler.repo.Load(request.Context(), postID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, NewPostView(post, userID))
}

/*
UpdateForBlog serves PUT /blogger/blogs/{blogId}/posts/{postId}.

Response:
  - 204: No Content
  - 400: Validation failure
  - 403: ErrForbidden: Not the blog owner
  - 404: ErrNotFound: Unknown blog or post
*/
func (handler *HTTPHandler) UpdateForBlog(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input postInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validatePostInput(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.EditPost{
		BlogID:           requestutil.Param(request, "blogId"),
		PostID:           requestutil.Param(request, "postId"),
		ActorID:          userID,
		Title:            input.Title,
		ShortDescription: input.ShortDescription,
		Content:          input.Content,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DeleteForBlog serves DELETE /blogger/blogs/{blogId}/posts/{postId}.

Response:
  - 204: No Content
  - 403: ErrForbidden: Not the blog owner
  - 404: ErrNotFound: Unknown blog or post
*/
func (handler *HTTPHandler) DeleteForBlog(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.DeletePost{
		BlogID:  requestutil.Param(request, "blogId"),
		PostID:  requestutil.Param(request, "postId"),
		ActorID: userID,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// respondPostPage projects and writes one page of posts.
func (handler *HTTPHandler) respondPostPage(writer http.ResponseWriter, request *http.Request, items []Post, total int, page pagination.Params) {
	viewer := viewerID(request)
	views := make([]postView, 0, len(items))
	for i := range items {
		views = append(views, NewPostView(&items[i], viewer))
	}
	respond.Paginated(writer, views, pagination.NewMeta(page.PageNumber, page.PageSize, total))
}
