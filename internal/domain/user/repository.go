package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// List returns every active user across all campuses.
	List(ctx context.Context) ([]User, error)

	// ListByCampus returns every active user assigned to the campus.
	ListByCampus(ctx context.Context, campusID string) ([]User, error)

	Update(ctx context.Context, u User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdatePicture(ctx context.Context, id, pictureURL string) error
}
