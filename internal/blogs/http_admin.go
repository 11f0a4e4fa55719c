// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package blogs

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
	"github.com/dkravets/inkwell/pkg/pagination"
)

// AdminHandler implements the site-administrator blog surface.
//
// Mounted behind the BasicAdmin guard.
type AdminHandler struct {
	dispatcher command.Dispatcher
	repo       Repository
	users      UserDirectory
}

// NewAdminHandler constructs the /sa/blogs [AdminHandler].
func NewAdminHandler(dispatcher command.Dispatcher, repo Repository, users UserDirectory) *AdminHandler {
	return &AdminHandler{dispatcher: dispatcher, repo: repo, users: users}
}

// Routes returns a [chi.Router] with the /sa/blogs endpoints.
func (handler *AdminHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listBlogs)
	router.Put("/{blogId}/bind-with-user/{userId}", handler.bindWithUser)
	router.Put("/{blogId}/ban", handler.banBlog)

	return router
}

// # View Models

// adminBlogView is the admin projection: descriptive fields plus ownership
// and moderation state.
type adminBlogView struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	WebsiteURL    string    `json:"websiteUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	BlogOwnerInfo struct {
		UserID    *string `json:"userId"`
		UserLogin *string `json:"userLogin"`
	} `json:"blogOwnerInfo"`
	BanInfo struct {
		IsBanned bool       `json:"isBanned"`
		BanDate  *time.Time `json:"banDate"`
	} `json:"banInfo"`
}

func newAdminBlogView(blog *Blog) adminBlogView {
	view := adminBlogView{
		ID:          blog.ID,
		Name:        blog.Name,
		Description: blog.Description,
		WebsiteURL:  blog.WebsiteURL,
		CreatedAt:   blog.CreatedAt,
	}
	view.BlogOwnerInfo.UserID = blog.OwnerID
	view.BlogOwnerInfo.UserLogin = blog.OwnerLogin
	view.BanInfo.IsBanned = blog.IsBanned
	view.BanInfo.BanDate = blog.BanDate
	return view
}

// # Endpoints

/*
GET /api/v1/sa/blogs.

Description: Lists every blog, banned included, with ownership info.

Response:
  - 200: []adminBlogView with pagination metadata
*/
func (handler *AdminHandler) listBlogs(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	searchNameTerm := request.URL.Query().Get("searchNameTerm")

	items, total, err := handler.repo.FindAdmin(request.Context(), searchNameTerm, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views := make([]adminBlogView, 0, len(items))
	for i := range items {
		views = append(views, newAdminBlogView(&items[i]))
	}

	respond.Paginated(writer, views, pagination.NewMeta(page.PageNumber, page.PageSize, total))
}

/*
PUT /api/v1/sa/blogs/{blogId}/bind-with-user/{userId}.

Description: One-time assignment of an orphan blog to a blogger account.

Response:
  - 204: No Content
  - 400: Validation failure: Blog already has an owner
  - 404: ErrNotFound: Unknown blog or user
*/
func (handler *AdminHandler) bindWithUser(writer http.ResponseWriter, request *http.Request) {
	blogID := requestutil.Param(request, "blogId")
	userID := requestutil.Param(request, "userId")

	// 1. Existence checks run before the ownership guard so an unknown blog
	// answers 404 rather than 400.
	blog, err := handler.repo.Load(request.Context(), blogID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			respond.Error(writer, request, apperr.NotFound("Blog"))
			return
		}
		respond.Error(writer, request, err)
		return
	}
	if _, err := handler.users.LoginOf(request.Context(), userID); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			respond.Error(writer, request, apperr.NotFound("User"))
			return
		}
		respond.Error(writer, request, err)
		return
	}

	// 2. The one-time invariant lives here: re-binding is rejected.
	if blog.HasOwner() {
		respond.Error(writer, request, apperr.ValidationError("Blog is already bound to a user",
			apperr.FieldError{Field: "blogId", Message: "blog already has an owner"}))
		return
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.BindBlogOwner{
		BlogID: blogID,
		UserID: userID,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// banBlogRequest defines the JSON payload for a platform blog ban.
type banBlogRequest struct {
	IsBanned bool `json:"isBanned"`
}

/*
PUT /api/v1/sa/blogs/{blogId}/ban.

Description: Bans or unbans a blog platform-wide. The blog's posts are hidden
or restored before the blog's own flag flips.

Response:
  - 204: No Content
  - 404: ErrNotFound: Unknown blog
*/
func (handler *AdminHandler) banBlog(writer http.ResponseWriter, request *http.Request) {
	var input banBlogRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.BanBlog{
		BlogID:   requestutil.Param(request, "blogId"),
		IsBanned: input.IsBanned,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
