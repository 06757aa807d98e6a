package auth

import "errors"

// Auth domain errors
var (
	// Credential errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("this account has been deactivated")

	// Token errors
	ErrInvalidToken         = errors.New("invalid or malformed token")
	ErrTokenExpired         = errors.New("token has expired")
	ErrRefreshTokenRevoked  = errors.New("refresh token has been revoked")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")

	// OTP errors
	ErrInvalidOTP       = errors.New("invalid or expired OTP code")
	ErrOTPSecretMissing = errors.New("no OTP secret is configured for this account")
)
