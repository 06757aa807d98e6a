package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/campushq/attendance-backend-go/internal/domain/user"
	"github.com/campushq/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const userColumns = `
	id, email, password_hash, full_name, role, campus_id, picture_url,
	totp_secret, is_active, created_at, updated_at
`

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role,
		&u.CampusID, &u.PictureURL, &u.TOTPSecret, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (email, password_hash, full_name, role, campus_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.Email, u.PasswordHash, u.FullName, u.Role, u.CampusID, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, nil
}

// List implements user.UserRepository.
func (r *userRepository) List(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE is_active = TRUE
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// ListByCampus implements user.UserRepository.
func (r *userRepository) ListByCampus(ctx context.Context, campusID string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE campus_id = $1
		  AND is_active = TRUE
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query, campusID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by campus: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// Update implements user.UserRepository.
func (r *userRepository) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET full_name = $1, campus_id = $2, totp_secret = $3, is_active = $4,
			updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, u.FullName, u.CampusID, u.TOTPSecret, u.IsActive, u.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`

	tag, err := q.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdatePicture implements user.UserRepository.
func (r *userRepository) UpdatePicture(ctx context.Context, id, pictureURL string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE users SET picture_url = $1, updated_at = NOW() WHERE id = $2`

	tag, err := q.Exec(ctx, query, pictureURL, id)
	if err != nil {
		return fmt.Errorf("failed to update picture: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
