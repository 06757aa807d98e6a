package user

import "context"

// ProfileService serves the authenticated user's own profile.
type ProfileService interface {
	GetMe(ctx context.Context) (ProfileResponse, error)
	UpdateMe(ctx context.Context, req UpdateProfileRequest) (ProfileResponse, error)

	// UploadPicture stores the image and returns the refreshed profile.
	UploadPicture(ctx context.Context, upload PictureUpload) (ProfileResponse, error)
}

// UserService onboards and lists accounts. Admins manage their own campus;
// super admins see every campus and are the only role that may mint other
// admins.
type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (ProfileResponse, error)
	List(ctx context.Context) ([]ProfileResponse, error)
}
