package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushq/attendance-backend-go/internal/domain/auth"
	"github.com/campushq/attendance-backend-go/internal/domain/user"
	"github.com/campushq/attendance-backend-go/internal/pkg/jwt"
	"github.com/campushq/attendance-backend-go/internal/pkg/otp"
)

type fakeUserRepo struct {
	users map[string]*user.User // by ID
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	u.ID = "u-" + u.Email
	f.users[u.ID] = &u
	return u, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ListByCampus(ctx context.Context, campusID string) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error {
	stored, ok := f.users[u.ID]
	if !ok {
		return user.ErrUserNotFound
	}
	*stored = u
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	stored, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	stored.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) UpdatePicture(ctx context.Context, id, pictureURL string) error {
	return nil
}

type recordingEmail struct {
	to   string
	code string
}

func (r *recordingEmail) SendOTP(to, fullName, code string, validMinutes int) error {
	r.to = to
	r.code = code
	return nil
}

func newTestService(t *testing.T) (*AuthServiceImpl, *fakeUserRepo, *recordingEmail) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{users: map[string]*user.User{
		"u-1": {
			ID:           "u-1",
			Email:        "worker@example.com",
			PasswordHash: string(hash),
			FullName:     "Ayu Lestari",
			Role:         user.RoleEmployee,
			IsActive:     true,
		},
	}}
	mail := &recordingEmail{}
	jwtSvc := jwt.NewJWTService("test-secret", "1h", "168h")

	svc := NewAuthService(nil, repo, jwtSvc, mail, "CampusHQ")
	return svc, repo, mail
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "worker@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.ExpiresIn, int64(0))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "worker@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.users["u-1"].IsActive = false

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "worker@example.com",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestSendOTP_SeedsSecretAndEmailsCode(t *testing.T) {
	svc, repo, mail := newTestService(t)

	err := svc.SendOTP(context.Background(), auth.SendOTPRequest{Email: "worker@example.com"})
	require.NoError(t, err)

	require.NotNil(t, repo.users["u-1"].TOTPSecret)
	assert.Equal(t, "worker@example.com", mail.to)
	assert.Len(t, mail.code, 6)
}

func TestSendOTP_UnknownEmailIsQuiet(t *testing.T) {
	svc, _, mail := newTestService(t)

	err := svc.SendOTP(context.Background(), auth.SendOTPRequest{Email: "nobody@example.com"})
	require.NoError(t, err)
	assert.Empty(t, mail.to)
}

func TestResetPassword(t *testing.T) {
	svc, _, mail := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SendOTP(ctx, auth.SendOTPRequest{Email: "worker@example.com"}))

	err := svc.ResetPassword(ctx, auth.ResetPasswordRequest{
		Email:       "worker@example.com",
		OTP:         mail.code,
		NewPassword: "brand new password",
	})
	require.NoError(t, err)

	// The old password no longer works, the new one does.
	_, err = svc.Login(ctx, auth.LoginRequest{Email: "worker@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "worker@example.com", Password: "brand new password"})
	assert.NoError(t, err)
}

func TestResetPassword_WrongCode(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SendOTP(ctx, auth.SendOTPRequest{Email: "worker@example.com"}))

	err := svc.ResetPassword(ctx, auth.ResetPasswordRequest{
		Email:       "worker@example.com",
		OTP:         "000000",
		NewPassword: "brand new password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidOTP)
}

func TestResetPassword_NoSecret(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.ResetPassword(context.Background(), auth.ResetPasswordRequest{
		Email:       "worker@example.com",
		OTP:         "123456",
		NewPassword: "brand new password",
	})
	assert.ErrorIs(t, err, auth.ErrOTPSecretMissing)
}

func TestResetPassword_ExpiredCode(t *testing.T) {
	svc, repo, mail := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SendOTP(ctx, auth.SendOTPRequest{Email: "worker@example.com"}))
	require.NotNil(t, repo.users["u-1"].TOTPSecret)

	// Jump far past the validity window before verifying.
	svc.now = func() time.Time { return time.Now().UTC().Add(10 * otp.Period * time.Second) }

	err := svc.ResetPassword(ctx, auth.ResetPasswordRequest{
		Email:       "worker@example.com",
		OTP:         mail.code,
		NewPassword: "brand new password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidOTP)
}

func TestRefreshAndLogout(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{
		Email:    "worker@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, auth.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The rotated-out token is spent.
	_, err = svc.Refresh(ctx, auth.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	// Logout revokes the current one too.
	require.NoError(t, svc.Logout(ctx, auth.RefreshRequest{RefreshToken: refreshed.RefreshToken}))
	_, err = svc.Refresh(ctx, auth.RefreshRequest{RefreshToken: refreshed.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{
		Email:    "worker@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, auth.RefreshRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
