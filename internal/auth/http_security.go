// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dkravets/inkwell/internal/command"
	"github.com/dkravets/inkwell/internal/platform/respond"
	"github.com/dkravets/inkwell/internal/platform/sec"
)

// SecurityHandler implements the /security/devices HTTP layer. These
// endpoints authenticate with the refresh cookie rather than an access
// token: managing sessions is itself a session-level act, and a caller who
// lost their access token must still be able to revoke devices.
type SecurityHandler struct {
	dispatcher command.Dispatcher
	service    *Service
	tokens     *sec.TokenIssuer
}

// NewSecurityHandler constructs the device-session [SecurityHandler].
func NewSecurityHandler(dispatcher command.Dispatcher, service *Service, tokens *sec.TokenIssuer) *SecurityHandler {
	return &SecurityHandler{
		dispatcher: dispatcher,
		service:    service,
		tokens:     tokens,
	}
}

// Routes returns a [chi.Router] with the /security/devices endpoints.
func (handler *SecurityHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listDevices)
	router.Delete("/", handler.deleteOtherDevices)
	router.Delete("/{deviceId}", handler.deleteDevice)

	return router
}

// sessionClaims authenticates the request by its refresh cookie and checks
// the session is still live in the ledger.
func (handler *SecurityHandler) sessionClaims(request *http.Request) (*sec.AuthClaims, error) {
	token, err := refreshTokenFromCookie(request)
	if err != nil {
		return nil, err
	}

	claims, err := handler.tokens.VerifyRefreshToken(token)
	if err != nil {
		return nil, errInvalidSession()
	}

	if _, err := handler.service.ValidateDeviceSession(request.Context(), claims); err != nil {
		return nil, err
	}

	return claims, nil
}

// deviceView is one entry of the device-session listing.
type deviceView struct {
	IP             string    `json:"ip"`
	Title          string    `json:"title"`
	LastActiveDate time.Time `json:"lastActiveDate"`
	DeviceID       string    `json:"deviceId"`
}

/*
GET /api/v1/security/devices.

Description: Lists the caller's live device sessions.

Response:
  - 200: []deviceView
  - 401: ErrUnauthorized: Missing or invalid refresh token
*/
func (handler *SecurityHandler) listDevices(writer http.ResponseWriter, request *http.Request) {
	claims, err := handler.sessionClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.dispatcher.Dispatch(request.Context(), command.GetUserSessions{
		UserID: claims.UserID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessions, _ := result.([]command.DeviceSessionInfo)
	views := make([]deviceView, 0, len(sessions))
	for _, session := range sessions {
		views = append(views, deviceView{
			IP:             session.IP,
			Title:          session.Title,
			LastActiveDate: session.LastActiveAt,
			DeviceID:       session.DeviceID,
		})
	}

	respond.OK(writer, views)
}

/*
DELETE /api/v1/security/devices.

Description: Revokes every device session except the caller's current one.

Response:
  - 204: No Content
  - 401: ErrUnauthorized: Missing or invalid refresh token
*/
func (handler *SecurityHandler) deleteOtherDevices(writer http.ResponseWriter, request *http.Request) {
	claims, err := handler.sessionClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.DeleteAllSessionsExceptCurrent{
		UserID:          claims.UserID,
		CurrentDeviceID: claims.DeviceID,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/security/devices/{deviceId}.

Response:
  - 204: No Content
  - 401: ErrUnauthorized: Missing or invalid refresh token
  - 403: ErrForbidden: Session belongs to another user
  - 404: ErrNotFound: Unknown session
*/
func (handler *SecurityHandler) deleteDevice(writer http.ResponseWriter, request *http.Request) {
	claims, err := handler.sessionClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.dispatcher.Dispatch(request.Context(), command.DeleteSession{
		UserID:   claims.UserID,
		DeviceID: chi.URLParam(request, "deviceId"),
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
