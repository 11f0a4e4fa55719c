// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package blogs

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dkravets/inkwell/internal/command"
	"github.com/dkravets/inkwell/internal/platform/apperr"
	requestutil "github.com/dkravets/inkwell/internal/platform/request"
	"github.com/dkravets/inkwell/internal/platform/respond"
	"github.com/dkravets/inkwell/internal/platform/validate"
	"github.com/dkravets/inkwell/pkg/pagination"
)

// PostEndpoints carries the post-domain handlers mounted under a blogger's
// blog, so this package stays decoupled from the post package.
type PostEndpoints struct {
	Create http.HandlerFunc // POST /{blogId}/posts
	Update http.HandlerFunc // PUT  /{blogId}/posts/{postId}
	Delete http.HandlerFunc // DELETE /{blogId}/posts/{postId}
}

// BloggerHandler implements the authenticated blogger management surface.
type BloggerHandler struct {
	dispatcher command.Dispatcher
	repo       Repository
	users      UserDirectory

	posts PostEndpoints
	// commentsFeed serves GET /comments: every comment left on the
	// blogger's posts, across all their blogs.
	commentsFeed http.HandlerFunc
}

// NewBloggerHandler constructs the /blogger [BloggerHandler].
func NewBloggerHandler(
	dispatcher command.Dispatcher,
	repo Repository,
	users UserDirectory,
	posts PostEndpoints,
	commentsFeed http.HandlerFunc,
) *BloggerHandler {
	return &BloggerHandler{
		dispatcher:   dispatcher,
		repo:         repo,
		users:        users,
		posts:        posts,
		commentsFeed: commentsFeed,
	}
}

// BlogRoutes returns a [chi.Router] with the /blogger/blogs endpoints.
// Mounted behind Authenticate + RequireAuth.
func (handler *BloggerHandler) BlogRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listOwnBlogs)
	router.Post("/", handler.createBlog)
	router.Get("/comments", handler.commentsFeed)
	router.Put("/{blogId}", handler.updateBlog)
	router.Delete("/{blogId}", handler.deleteBlog)

	router.Post("/{blogId}/posts", handler.posts.Create)
	router.Put("/{blogId}/posts/{postId}", handler.posts.Update)
	router.Delete("/{blogId}/posts/{postId}", handler.posts.Delete)

	return router
}

// UserRoutes returns a [chi.Router] with the /blogger/users endpoints.
// Mounted behind Authenticate + RequireAuth.
func (handler *BloggerHandler) UserRoutes() chi.Router {
	router := chi.NewRouter()

	router.Put("/{userId}/ban", handler.banUserForBlog)
	router.Get("/blog/{blogId}", handler.listBannedUsers)

	return router
}

// # Blog Management Endpoints

/*
GET /api/v1/blogger/blogs.

Description: Lists the acting blogger's own blogs, banned ones included.

Response:
  - 200: []blogView with pagination metadata
  - 401: ErrUnauthorized
*/
func (handler *BloggerHandler) listOwnBlogs(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	searchNameTerm := request.URL.Query().Get("searchNameTerm")

	items, total, err := handler.repo.FindForOwner(request.Context(), userID, searchNameTerm, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views := make([]blogView, 0, len(items))
	for i := range items {
		views = append(views, newBlogView(&items[i]))
	}

	respond.Paginated(writer, views, pagination.NewMeta(page.PageNumber, page.PageSize, total))
}

// blogInput defines the JSON payload shared by blog creation and update.
type blogInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	WebsiteURL  string `json:"websiteUrl"`
}

// validateBlogInput applies the shared field rules.
func validateBlogInput(input blogInput) error {
	v := &validate.Validator{}
	v.Required("name", input.Name).
		MaxLen("name", input.Name, 15).
		Required("description", input.Description).
		MaxLen("description", input.Description, 500).
		Required("websiteUrl", input.WebsiteURL).
		MaxLen("websiteUrl", input.WebsiteURL, 100).
		URL("websiteUrl", input.WebsiteURL)
	return v.Err()
}

/*
POST /api/v1/blogger/blogs.

Description: Creates a blog owned by the acting blogger.

Response:
  - 201: blogView
  - 400: Validation failure
  - 401: ErrUnauthorized
*/
func (handler *BloggerHandler) createBlog(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input blogInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateBlogInput(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	login, err := handler.users.LoginOf(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.dispatcher.Dispatch(request.Context(), command.CreateBlog{
		OwnerID:     claims.UserID,
		OwnerLogin:  login,
		Name:        input.Name,
		Description: input.Description,
		WebsiteURL:  input.WebsiteURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	blogID, _ := result.(string)
	blog, err := handler.repo.Load(request.Context(), blogID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, newBlogView(blog))
}

/*
PUT /api/v1/blogger/blogs/{blogId}.

Response:
  - 204: No Content
  - 400: Validation failure
  - 403: ErrForbidden: Not the owner
  - 404: ErrNotFound: Unknown blog
*/
func (handler *BloggerHandler) updateBlog(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input blogInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateBlogInput(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.EditBlog{
		BlogID:      requestutil.Param(request, "blogId"),
		ActorID:     userID,
		Name:        input.Name,
		Description: input.Description,
		WebsiteURL:  input.WebsiteURL,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/blogger/blogs/{blogId}.

Response:
  - 204: No Content
  - 403: ErrForbidden: Not the owner
  - 404: ErrNotFound: Unknown blog
*/
func (handler *BloggerHandler) deleteBlog(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.DeleteBlog{
		BlogID:  requestutil.Param(request, "blogId"),
		ActorID: userID,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Per-Blog User Moderation Endpoints

// banUserForBlogRequest defines the JSON payload for a per-blog user ban.
type banUserForBlogRequest struct {
	IsBanned  bool   `json:"isBanned"`
	BanReason string `json:"banReason"`
	BlogID    string `json:"blogId"`
}

/*
PUT /api/v1/blogger/users/{userId}/ban.

Description: Bans or unbans a user from one of the acting blogger's blogs.
The target's comments on that blog are hidden or restored; their comments on
other blogs are untouched.

Response:
  - 204: No Content
  - 400: Validation failure
  - 403: ErrForbidden: Acting user does not own the blog
  - 404: ErrNotFound: Unknown blog or user
*/
func (handler *BloggerHandler) banUserForBlog(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input banUserForBlogRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("blogId", input.BlogID).UUID("blogId", input.BlogID)
	if input.IsBanned {
		v.MinLen("banReason", input.BanReason, 20)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.BloggerBanUserForBlog{
		ActorID:   actorID,
		BlogID:    input.BlogID,
		UserID:    requestutil.Param(request, "userId"),
		IsBanned:  input.IsBanned,
		BanReason: input.BanReason,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// bannedUserView is one entry in a blog's banned-commentator listing.
type bannedUserView struct {
	ID      string `json:"id"`
	Login   string `json:"login"`
	BanInfo struct {
		IsBanned  bool      `json:"isBanned"`
		BanReason string    `json:"banReason"`
		BanDate   time.Time `json:"banDate"`
	} `json:"banInfo"`
}

/*
GET /api/v1/blogger/users/blog/{blogId}.

Description: Lists users currently banned from the given blog. Owner only.

Response:
  - 200: []bannedUserView with pagination metadata
  - 403: ErrForbidden: Acting user does not own the blog
  - 404: ErrNotFound: Unknown blog
*/
func (handler *BloggerHandler) listBannedUsers(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	blog, err := handler.repo.Load(request.Context(), requestutil.Param(request, "blogId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if !blog.IsOwnedBy(actorID) {
		respond.Error(writer, request, apperr.Forbidden("Only the blog owner may view its banned users"))
		return
	}

	page := pagination.FromRequest(request)
	searchLoginTerm := request.URL.Query().Get("searchLoginTerm")

	matching := make([]BannedUser, 0, len(blog.BannedUsers))
	for _, entry := range blog.BannedUsers {
		if searchLoginTerm == "" || containsFold(entry.Login, searchLoginTerm) {
			matching = append(matching, entry)
		}
	}

	start := page.Offset()
	if start > len(matching) {
		start = len(matching)
	}
	end := start + page.PageSize
	if end > len(matching) {
		end = len(matching)
	}

	views := make([]bannedUserView, 0, end-start)
	for _, entry := range matching[start:end] {
		view := bannedUserView{ID: entry.UserID, Login: entry.Login}
		view.BanInfo.IsBanned = true
		view.BanInfo.BanReason = entry.BanReason
		view.BanInfo.BanDate = entry.BanDate
		views = append(views, view)
	}

	respond.Paginated(writer, views, pagination.NewMeta(page.PageNumber, page.PageSize, len(matching)))
}

// containsFold reports a case-insensitive substring match.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
