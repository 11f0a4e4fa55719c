// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dkravets/inkwell/internal/command"
	"github.com/dkravets/inkwell/internal/platform/apperr"
	"github.com/dkravets/inkwell/internal/platform/constants"
	"github.com/dkravets/inkwell/internal/platform/dberr"
	"github.com/dkravets/inkwell/internal/platform/middleware"
	requestutil "github.com/dkravets/inkwell/internal/platform/request"
	"github.com/dkravets/inkwell/internal/platform/respond"
	"github.com/dkravets/inkwell/internal/platform/validate"
	"github.com/dkravets/inkwell/internal/users"
)

// HTTPHandler implements the /auth HTTP layer: token flow, registration and
// password recovery. The refresh token travels exclusively in an httpOnly
// cookie scoped to the auth path; only the access token crosses into
// JavaScript-visible response bodies.
type HTTPHandler struct {
	dispatcher command.Dispatcher
	repo       users.Repository
}

// NewHTTPHandler constructs the auth [HTTPHandler].
func NewHTTPHandler(dispatcher command.Dispatcher, repo users.Repository) *HTTPHandler {
	return &HTTPHandler{
		dispatcher: dispatcher,
		repo:       repo,
	}
}

// Routes returns a [chi.Router] with the /auth endpoints.
func (handler *HTTPHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/refresh-token", handler.refreshToken)
	router.Post("/logout", handler.logout)
	router.Post("/registration", handler.registration)
	router.Post("/registration-confirmation", handler.registrationConfirmation)
	router.Post("/registration-email-resending", handler.registrationEmailResend)
	router.Post("/password-recovery", handler.passwordRecovery)
	router.Post("/new-password", handler.newPassword)
	router.Get("/me", handler.me)

	return router
}

// # Cookie Handling

// setRefreshCookie installs the rotated refresh token. The cookie is scoped
// to the auth path so it is never sent with ordinary API requests.
func setRefreshCookie(writer http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    token,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearRefreshCookie expires the refresh cookie immediately.
func clearRefreshCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// refreshTokenFromCookie extracts the refresh token, or fails Unauthorized.
func refreshTokenFromCookie(request *http.Request) (string, error) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		return "", apperr.Unauthorized("Refresh token cookie is missing")
	}
	return cookie.Value, nil
}

// accessTokenResponse is the body of login and refresh responses.
type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// # Token Endpoints

// loginRequest defines the JSON payload for sign-in.
type loginRequest struct {
	LoginOrEmail string `json:"loginOrEmail"`
	Password     string `json:"password"`
}

/*
POST /api/v1/auth/login.

Description: Validates credentials and opens a device session. The refresh
token is set as an httpOnly cookie; the access token is returned in the
body.

Response:
  - 200: accessTokenResponse
  - 400: Validation failure
  - 401: ErrUnauthorized: Unknown identifier, wrong password or banned account
*/
func (handler *HTTPHandler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("loginOrEmail", input.LoginOrEmail).
		Required("password", input.Password)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.dispatcher.Dispatch(request.Context(), command.SignIn{
		LoginOrEmail: input.LoginOrEmail,
		Password:     input.Password,
		IP:           middleware.RealIP(request),
		DeviceTitle:  request.UserAgent(),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, _ := result.(*command.TokenPair)
	setRefreshCookie(writer, pair.RefreshToken, pair.ExpiresAt)
	respond.OK(writer, accessTokenResponse{AccessToken: pair.AccessToken})
}

/*
POST /api/v1/auth/refresh-token.

Description: Rotates the token pair for the device session named by the
refresh cookie. The presented token is invalidated by the rotation.

Response:
  - 200: accessTokenResponse
  - 401: ErrUnauthorized: Missing, invalid or rotated-out refresh token
*/
func (handler *HTTPHandler) refreshToken(writer http.ResponseWriter, request *http.Request) {
	token, err := refreshTokenFromCookie(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.dispatcher.Dispatch(request.Context(), command.RefreshTokens{
		RefreshToken: token,
		IP:           middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, _ := result.(*command.TokenPair)
	setRefreshCookie(writer, pair.RefreshToken, pair.ExpiresAt)
	respond.OK(writer, accessTokenResponse{AccessToken: pair.AccessToken})
}

/*
POST /api/v1/auth/logout.

Response:
  - 204: No Content
  - 401: ErrUnauthorized: Missing or invalid refresh token
*/
func (handler *HTTPHandler) logout(writer http.ResponseWriter, request *http.Request) {
	token, err := refreshTokenFromCookie(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.Logout{
		RefreshToken: token,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	clearRefreshCookie(writer)
	respond.NoContent(writer)
}

// # Registration Endpoints

// registrationRequest defines the JSON payload for self-registration.
type registrationRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
POST /api/v1/auth/registration.

Description: Registers an unconfirmed account and emails a confirmation
code. The account cannot be told apart from a confirmed one by this
endpoint's responses.

Response:
  - 204: No Content
  - 400: Validation failure: Field rules or taken login/email
*/
func (handler *HTTPHandler) registration(writer http.ResponseWriter, request *http.Request) {
	var input registrationRequest
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

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.CreateUser{
		Login:     input.Login,
		Email:     input.Email,
		Password:  input.Password,
		Confirmed: false,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Issue the confirmation code through the same path the resend
	// endpoint uses.
	if _, err := handler.dispatcher.Dispatch(request.Context(), command.RegistrationEmailResend{
		Email: input.Email,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// codeRequest defines the JSON payload carrying an emailed code.
type codeRequest struct {
	Code string `json:"code"`
}

/*
POST /api/v1/auth/registration-confirmation.

Response:
  - 204: No Content
  - 400: Validation failure: Unknown, expired or already-consumed code
*/
func (handler *HTTPHandler) registrationConfirmation(writer http.ResponseWriter, request *http.Request) {
	var input codeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("code", input.Code)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.RegistrationConfirmation{
		Code: input.Code,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// emailRequest defines the JSON payload carrying a bare email.
type emailRequest struct {
	Email string `json:"email"`
}

/*
POST /api/v1/auth/registration-email-resending.

Response:
  - 204: No Content
  - 400: Validation failure: Unknown email or already-confirmed account
*/
func (handler *HTTPHandler) registrationEmailResend(writer http.ResponseWriter, request *http.Request) {
	var input emailRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("email", input.Email).
		Email("email", input.Email)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.RegistrationEmailResend{
		Email: input.Email,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Password Recovery Endpoints

/*
POST /api/v1/auth/password-recovery.

Description: Emails a recovery code. Answers 204 for unknown emails too, so
the endpoint cannot be used to probe for registered addresses.

Response:
  - 204: No Content
  - 400: Validation failure: Malformed email
*/
func (handler *HTTPHandler) passwordRecovery(writer http.ResponseWriter, request *http.Request) {
	var input emailRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("email", input.Email).
		Email("email", input.Email)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.PasswordRecovery{
		Email: input.Email,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// newPasswordRequest defines the JSON payload for completing recovery.
type newPasswordRequest struct {
	NewPassword  string `json:"newPassword"`
	RecoveryCode string `json:"recoveryCode"`
}

/*
POST /api/v1/auth/new-password.

Response:
  - 204: No Content
  - 400: Validation failure: Field rules or bad recovery code
*/
func (handler *HTTPHandler) newPassword(writer http.ResponseWriter, request *http.Request) {
	var input newPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("newPassword", input.NewPassword).
		MinLen("newPassword", input.NewPassword, 6).
		MaxLen("newPassword", input.NewPassword, 20).
		Required("recoveryCode", input.RecoveryCode)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.SetNewPassword{
		RecoveryCode: input.RecoveryCode,
		NewPassword:  input.NewPassword,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Identity Endpoint

// meView identifies the authenticated caller.
type meView struct {
	Email  string `json:"email"`
	Login  string `json:"login"`
	UserID string `json:"userId"`
}

/*
GET /api/v1/auth/me.

Response:
  - 200: meView
  - 401: ErrUnauthorized
*/
func (handler *HTTPHandler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.repo.FindByID(request.Context(), userID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			respond.Error(writer, request, apperr.Unauthorized("Account no longer exists"))
			return
		}
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, meView{
		Email:  user.Email,
		Login:  user.Login,
		UserID: user.ID,
	})
}
