package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/chenterphai/article-stack/internal/common"
	"github.com/chenterphai/article-stack/internal/server/models"
)

// ResponseStatus is the status block of the uniform response envelope:
// code 0 for success, 1 for failure, plus a machine status and a
// human-readable message.
type ResponseStatus struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Msg    string `json:"msg"`
}

// UserData is the identity payload returned to clients. The password hash
// never appears here.
type UserData struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"creationtime"`
}

// AuthContent carries tokens and identity data on successful auth
// operations.
type AuthContent struct {
	AccessToken  string    `json:"accessToken,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	Data         *UserData `json:"data,omitempty"`
}

// AuthResponse is the envelope every auth endpoint returns:
// {status:{code,status,msg}, content}.
type AuthResponse struct {
	Status  ResponseStatus `json:"status"`
	Content *AuthContent   `json:"content"`
}

func userData(u *models.User) *UserData {
	return &UserData{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func okResponse(msg string, content *AuthContent) AuthResponse {
	return AuthResponse{
		Status:  ResponseStatus{Code: 0, Status: "OK", Msg: msg},
		Content: content,
	}
}

func failResponse(status, msg string) AuthResponse {
	return AuthResponse{
		Status:  ResponseStatus{Code: 1, Status: status, Msg: msg},
		Content: nil,
	}
}

// errorResponse maps service sentinels onto HTTP statuses and envelope
// codes. Unknown errors collapse to a generic internal failure so nothing
// leaks to the caller.
func errorResponse(err error) (int, AuthResponse) {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, failResponse("CONFLICT", "Username or email already taken.")
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, failResponse("NOT_FOUND", "Not found.")
	case errors.Is(err, common.ErrorInvalidCredentials):
		return http.StatusBadRequest, failResponse("BAD_REQUEST", "Invalid credentials.")
	case errors.Is(err, common.ErrorUnauthenticated),
		errors.Is(err, common.ErrRefreshTokenExpired),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, failResponse("UNAUTHENTICATED", "Invalid or expired session.")
	case errors.Is(err, common.ErrorForbidden),
		errors.Is(err, common.ErrInvalidToken):
		return http.StatusForbidden, failResponse("FORBIDDEN", "Invalid token.")
	default:
		return http.StatusInternalServerError, failResponse("INTERNAL_SERVER_ERROR", "Internal Server Error.")
	}
}
