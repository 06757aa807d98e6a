package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/campushq/attendance-backend-go/internal/domain/auth"
	"github.com/campushq/attendance-backend-go/internal/handler/http/response"
	"github.com/campushq/attendance-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	SendOTP(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &authHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

// Login implements AuthHandler.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(result.RefreshToken, result.RefreshExpiresAt))
	response.SuccessWithMessage(w, "Login successful", result)
}

// SendOTP implements AuthHandler.
func (h *authHandlerImpl) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req auth.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.authService.SendOTP(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "If the email is registered, an OTP has been sent", nil)
}

// ResetPassword implements AuthHandler.
func (h *authHandlerImpl) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.authService.ResetPassword(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password has been reset", nil)
}

// Refresh implements AuthHandler.
func (h *authHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	req, ok := refreshRequestFrom(r)
	if !ok {
		response.BadRequest(w, "refresh_token is required", nil)
		return
	}

	result, err := h.authService.Refresh(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(result.RefreshToken, result.RefreshExpiresAt))
	response.SuccessWithMessage(w, "Token refreshed", result)
}

// Logout implements AuthHandler.
func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	req, ok := refreshRequestFrom(r)
	if !ok {
		response.BadRequest(w, "refresh_token is required", nil)
		return
	}

	if err := h.authService.Logout(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	expired := h.jwtService.RefreshTokenCookie("", time.Now().Add(-time.Hour).Unix())
	expired.MaxAge = -1
	http.SetCookie(w, expired)
	response.SuccessWithMessage(w, "Logged out", nil)
}

// refreshRequestFrom reads the refresh token from the request body, falling
// back to the auth cookie set on login.
func refreshRequestFrom(r *http.Request) (auth.RefreshRequest, bool) {
	var req auth.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.RefreshToken != "" {
		return req, true
	}

	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		return auth.RefreshRequest{RefreshToken: cookie.Value}, true
	}

	return auth.RefreshRequest{}, false
}
