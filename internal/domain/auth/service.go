package auth

import "context"

// AuthService handles credential auth and the OTP password-reset flow.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// SendOTP emails a time-based OTP to the account. It succeeds quietly
	// for unknown emails so the endpoint cannot be used for enumeration.
	SendOTP(ctx context.Context, req SendOTPRequest) error

	// ResetPassword verifies the OTP and replaces the password. Every
	// refresh token of the account is revoked on success.
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	// Refresh rotates the refresh token and issues a new access token.
	Refresh(ctx context.Context, req RefreshRequest) (LoginResponse, error)

	// Logout revokes the presented refresh token.
	Logout(ctx context.Context, req RefreshRequest) error
}
