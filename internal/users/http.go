// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

/*
Package users provides the HTTP delivery layer for the site-administrator
account surface.

# Security

Every endpoint here is mounted behind the BasicAdmin guard; these routes are
never reachable with a bearer token.
*/
package users

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dkravets/inkwell/internal/command"
	requestutil "github.com/dkravets/inkwell/internal/platform/request"
	"github.com/dkravets/inkwell/internal/platform/respond"
	"github.com/dkravets/inkwell/internal/platform/validate"
	"github.com/dkravets/inkwell/pkg/pagination"
)

// HTTPHandler implements the admin HTTP layer for account management.
//
// Writes travel through the command dispatcher; reads go straight to the
// repository.
type HTTPHandler struct {
	dispatcher command.Dispatcher
	repo       Repository
}

// NewHTTPHandler constructs the admin account [HTTPHandler].
func NewHTTPHandler(dispatcher command.Dispatcher, repo Repository) *HTTPHandler {
	return &HTTPHandler{dispatcher: dispatcher, repo: repo}
}

// Routes returns a [chi.Router] with the /sa/users endpoints.
func (handler *HTTPHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listUsers)
	router.Post("/", handler.createUser)
	router.Delete("/{id}", handler.deleteUser)
	router.Put("/{id}/ban", handler.banUser)

	return router
}

// # View Models

// banInfoView is the moderation block of a user view.
type banInfoView struct {
	IsBanned  bool       `json:"isBanned"`
	BanReason *string    `json:"banReason"`
	BanDate   *time.Time `json:"banDate"`
}

// userView is the admin-facing account projection.
type userView struct {
	ID        string      `json:"id"`
	Login     string      `json:"login"`
	Email     string      `json:"email"`
	CreatedAt time.Time   `json:"createdAt"`
	BanInfo   banInfoView `json:"banInfo"`
}

func newUserView(user *User) userView {
	return userView{
		ID:        user.ID,
		Login:     user.Login,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		BanInfo: banInfoView{
			IsBanned:  user.Ban.IsBanned,
			BanReason: user.Ban.BanReason,
			BanDate:   user.Ban.BanDate,
		},
	}
}

// # Endpoints

/*
GET /api/v1/sa/users.

Description: Lists accounts with ban-status filtering and login/email search.

Request:
  - query: pageNumber, pageSize, sortBy, sortDirection
  - query: searchLoginTerm, searchEmailTerm, banStatus (all|banned|notBanned)

Response:
  - 200: []userView with pagination metadata
*/
func (handler *HTTPHandler) listUsers(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	banStatus := request.URL.Query().Get("banStatus")
	if banStatus != "banned" && banStatus != "notBanned" {
		banStatus = "all"
	}

	filter := Filter{
		SearchLoginTerm: request.URL.Query().Get("searchLoginTerm"),
		SearchEmailTerm: request.URL.Query().Get("searchEmailTerm"),
		BanStatus:       banStatus,
	}

	accounts, total, err := handler.repo.FindAll(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views := make([]userView, 0, len(accounts))
	for i := range accounts {
		views = append(views, newUserView(&accounts[i]))
	}

	respond.Paginated(writer, views, pagination.NewMeta(page.PageNumber, page.PageSize, total))
}

// createUserRequest defines the expected JSON payload for admin creation.
type createUserRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
POST /api/v1/sa/users.

Description: Creates an account directly. Admin-created accounts skip email
confirmation.

Response:
  - 201: userView: The created account
  - 400: Validation failure or identifier already in use
*/
func (handler *HTTPHandler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("login", input.Login).
		MinLen("login", input.Login, 3).
		MaxLen("login", input.Login, 10).
		Login("login", input.Login).
		Required("email", input.Email).
		Email("email", input.Email).
		Required("password", input.Password).
		MinLen("password", input.Password, 6).
		MaxLen("password", input.Password, 20)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.dispatcher.Dispatch(request.Context(), command.CreateUser{
		Login:     input.Login,
		Email:     input.Email,
		Password:  input.Password,
		Confirmed: true,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, _ := result.(string)
	user, err := handler.repo.FindByID(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, newUserView(user))
}

/*
DELETE /api/v1/sa/users/{id}.

Response:
  - 204: No Content: Account and its sessions removed
  - 404: ErrNotFound: Unknown account
*/
func (handler *HTTPHandler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "id")

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.DeleteUser{UserID: userID}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// banUserRequest defines the expected JSON payload for a global ban flip.
type banUserRequest struct {
	IsBanned  bool   `json:"isBanned"`
	BanReason string `json:"banReason"`
}

/*
PUT /api/v1/sa/users/{id}/ban.

Description: Bans or unbans an account platform-wide. Banned accounts fail
sign-in and session validation; their published content stays visible.

Response:
  - 204: No Content
  - 400: Validation failure (ban requires a reason of 20+ characters)
  - 404: ErrNotFound: Unknown account
*/
func (handler *HTTPHandler) banUser(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "id")

	var input banUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.IsBanned {
		v := &validate.Validator{}
		v.MinLen("banReason", input.BanReason, 20)
		if err := v.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.BanUser{
		UserID:    userID,
		IsBanned:  input.IsBanned,
		BanReason: input.BanReason,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
