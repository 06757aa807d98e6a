package profile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/campushq/attendance-backend-go/internal/domain/user"
	"github.com/campushq/attendance-backend-go/internal/pkg/database"
	"github.com/campushq/attendance-backend-go/internal/pkg/storage"
)

// maxPictureSize caps profile picture uploads at 5 MiB.
const maxPictureSize = 5 << 20

var allowedPictureExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type ProfileServiceImpl struct {
	db *database.DB
	user.UserRepository
	fileStorage storage.FileStorage
}

func NewProfileService(
	db *database.DB,
	userRepo user.UserRepository,
	fileStorage storage.FileStorage,
) *ProfileServiceImpl {
	return &ProfileServiceImpl{
		db:             db,
		UserRepository: userRepo,
		fileStorage:    fileStorage,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return id, nil
}

// GetMe implements user.ProfileService.
func (s *ProfileServiceImpl) GetMe(ctx context.Context) (user.ProfileResponse, error) {
	id, err := userIDFromContext(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return user.ProfileResponse{}, user.ErrUserNotFound
	}

	return user.ToResponse(*u), nil
}

// UpdateMe implements user.ProfileService.
func (s *ProfileServiceImpl) UpdateMe(ctx context.Context, req user.UpdateProfileRequest) (user.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return user.ProfileResponse{}, err
	}

	id, err := userIDFromContext(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return user.ProfileResponse{}, user.ErrUserNotFound
	}

	u.FullName = req.FullName
	if err := s.UserRepository.Update(ctx, *u); err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	return user.ToResponse(*u), nil
}

// UploadPicture implements user.ProfileService.
func (s *ProfileServiceImpl) UploadPicture(ctx context.Context, upload user.PictureUpload) (user.ProfileResponse, error) {
	id, err := userIDFromContext(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	ext := strings.ToLower(filepath.Ext(upload.FileName))
	contentType, ok := allowedPictureExts[ext]
	if !ok {
		return user.ProfileResponse{}, user.ErrInvalidPicture
	}
	if upload.Size > maxPictureSize {
		return user.ProfileResponse{}, user.ErrInvalidPicture
	}

	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return user.ProfileResponse{}, user.ErrUserNotFound
	}

	path := fmt.Sprintf("profile-pictures/%s/%s%s", id, uuid.NewString(), ext)
	storedPath, err := s.fileStorage.Upload(ctx, upload.Reader, path, contentType)
	if err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to store picture: %w", err)
	}

	url, err := s.fileStorage.GetURL(ctx, storedPath, 0)
	if err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to build picture URL: %w", err)
	}

	if err := s.UserRepository.UpdatePicture(ctx, id, url); err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to update picture: %w", err)
	}

	u.PictureURL = &url
	return user.ToResponse(*u), nil
}
