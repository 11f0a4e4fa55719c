// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

/*
Package blogs provides the HTTP delivery layers for the blog domain: the
anonymous read surface, the blogger management surface and the admin surface.
*/
package blogs

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dkravets/inkwell/internal/platform/apperr"
	"github.com/dkravets/inkwell/internal/platform/dberr"
	requestutil "github.com/dkravets/inkwell/internal/platform/request"
	"github.com/dkravets/inkwell/internal/platform/respond"
	"github.com/dkravets/inkwell/pkg/pagination"
)

// HTTPHandler implements the public, read-only blog surface.
type HTTPHandler struct {
	repo Repository

	// blogPosts serves GET /{blogId}/posts; supplied by the post domain so
	// this package carries no dependency on it.
	blogPosts http.HandlerFunc
}

// NewHTTPHandler constructs the public blog [HTTPHandler].
func NewHTTPHandler(repo Repository, blogPosts http.HandlerFunc) *HTTPHandler {
	return &HTTPHandler{repo: repo, blogPosts: blogPosts}
}

// Routes returns a [chi.Router] with the public /blogs endpoints.
func (handler *HTTPHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listBlogs)
	router.Get("/{blogId}", handler.getBlog)
	router.Get("/{blogId}/posts", handler.getBlogPosts)

	return router
}

// # View Models

// blogView is the public blog projection. Ownership and moderation state are
// not exposed to readers.
type blogView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	WebsiteURL  string    `json:"websiteUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newBlogView(blog *Blog) blogView {
	return blogView{
		ID:          blog.ID,
		Name:        blog.Name,
		Description: blog.Description,
		WebsiteURL:  blog.WebsiteURL,
		CreatedAt:   blog.CreatedAt,
	}
}

// # Endpoints

/*
GET /api/v1/blogs.

Description: Lists visible blogs with optional name search. Banned blogs are
excluded.

Request:
  - query: pageNumber, pageSize, sortBy (createdAt|name), sortDirection
  - query: searchNameTerm

Response:
  - 200: []blogView with pagination metadata
*/
func (handler *HTTPHandler) listBlogs(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	searchNameTerm := request.URL.Query().Get("searchNameTerm")

	items, total, err := handler.repo.FindPublic(request.Context(), searchNameTerm, page)
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

/*
GET /api/v1/blogs/{blogId}.

Description: Retrieves a single visible blog. A banned blog answers 404 as if
it never existed.

Response:
  - 200: blogView
  - 404: ErrNotFound: Unknown or banned blog
*/
func (handler *HTTPHandler) getBlog(writer http.ResponseWriter, request *http.Request) {
	blogID := requestutil.Param(request, "blogId")

	blog, err := handler.repo.Load(request.Context(), blogID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			respond.Error(writer, request, apperr.NotFound("Blog"))
			return
		}
		respond.Error(writer, request, err)
		return
	}

	if blog.IsBanned {
		respond.Error(writer, request, apperr.NotFound("Blog"))
		return
	}

	respond.OK(writer, newBlogView(blog))
}

/*
GET /api/v1/blogs/{blogId}/posts.

Description: Lists the visible posts of one blog. Existence and visibility of
the blog are resolved here; the page itself comes from the post domain.

Response:
  - 200: []postView with pagination metadata
  - 404: ErrNotFound: Unknown or banned blog
*/
func (handler *HTTPHandler) getBlogPosts(writer http.ResponseWriter, request *http.Request) {
	blogID := requestutil.Param(request, "blogId")

	blog, err := handler.repo.Load(request.Context(), blogID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			respond.Error(writer, request, apperr.NotFound("Blog"))
			return
		}
		respond.Error(writer, request, err)
		return
	}
	if blog.IsBanned {
		respond.Error(writer, request, apperr.NotFound("Blog"))
		return
	}

	handler.blogPosts(writer, request)
}
