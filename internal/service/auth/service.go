package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/campushq/attendance-backend-go/internal/domain/auth"
	"github.com/campushq/attendance-backend-go/internal/domain/user"
	"github.com/campushq/attendance-backend-go/internal/pkg/database"
	"github.com/campushq/attendance-backend-go/internal/pkg/email"
	"github.com/campushq/attendance-backend-go/internal/pkg/jwt"
	"github.com/campushq/attendance-backend-go/internal/pkg/otp"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	jwtService   jwt.Service
	emailService email.EmailService
	otpIssuer    string

	now func() time.Time
}

func NewAuthService(
	db *database.DB,
	userRepo user.UserRepository,
	jwtService jwt.Service,
	emailService email.EmailService,
	otpIssuer string,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepo,
		jwtService:     jwtService,
		emailService:   emailService,
		otpIssuer:      otpIssuer,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		// Hash anyway so response timing does not reveal unknown emails.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$invalidinvalidinvalidinvalidinv"), []byte(req.Password))
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountInactive
	}

	return s.issueTokens(u)
}

func (s *AuthServiceImpl) issueTokens(u *user.User) (auth.LoginResponse, error) {
	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(
		u.ID, u.Email, u.FullName, u.CampusID, u.Role,
	)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        accessExpiresAt - s.now().Unix(),
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

// SendOTP implements auth.AuthService.
func (s *AuthServiceImpl) SendOTP(ctx context.Context, req auth.SendOTPRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil || !u.IsActive {
		// Quiet success; the endpoint must not confirm account existence.
		slog.Info("OTP requested for unknown or inactive email", "email", req.Email)
		return nil
	}

	// Seed the account on first use.
	if u.TOTPSecret == nil {
		secret, err := otp.GenerateSecret(s.otpIssuer, u.Email)
		if err != nil {
			return fmt.Errorf("failed to generate OTP secret: %w", err)
		}
		u.TOTPSecret = &secret
		if err := s.UserRepository.Update(ctx, *u); err != nil {
			return fmt.Errorf("failed to store OTP secret: %w", err)
		}
	}

	code, err := otp.GenerateCode(*u.TOTPSecret, s.now())
	if err != nil {
		return fmt.Errorf("failed to generate OTP code: %w", err)
	}

	if err := s.emailService.SendOTP(u.Email, u.FullName, code, otp.ValidMinutes); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	return nil
}

// ResetPassword implements auth.AuthService.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return auth.ErrInvalidOTP
	}
	if u.TOTPSecret == nil {
		return auth.ErrOTPSecretMissing
	}

	if !otp.Verify(req.OTP, *u.TOTPSecret, s.now()) {
		return auth.ErrInvalidOTP
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.UserRepository.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("Password reset completed", "user_id", u.ID)
	return nil
}

// Refresh implements auth.AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, req auth.RefreshRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	userID, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountInactive
	}

	// Rotation: the presented token is spent whether or not issuing the
	// replacement succeeds.
	s.jwtService.RevokeToken(req.RefreshToken)

	return s.issueTokens(u)
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, req auth.RefreshRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	s.jwtService.RevokeToken(req.RefreshToken)
	return nil
}
