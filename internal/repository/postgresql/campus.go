package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/campushq/attendance-backend-go/internal/domain/campus"
	"github.com/campushq/attendance-backend-go/internal/pkg/database"
	"github.com/campushq/attendance-backend-go/internal/pkg/geo"
	"github.com/jackc/pgx/v5"
)

type campusRepository struct {
	db *database.DB
}

func NewCampusRepository(db *database.DB) campus.CampusRepository {
	return &campusRepository{db: db}
}

// Boundaries are stored as a JSONB array of {lon, lat} objects.
func scanCampus(row pgx.Row) (campus.Campus, error) {
	var c campus.Campus
	var boundaryJSON []byte
	err := row.Scan(&c.ID, &c.Name, &c.Address, &boundaryJSON, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return campus.Campus{}, err
	}
	if len(boundaryJSON) > 0 {
		if err := json.Unmarshal(boundaryJSON, &c.Boundary); err != nil {
			return campus.Campus{}, fmt.Errorf("failed to decode boundary: %w", err)
		}
	}
	return c, nil
}

func encodeBoundary(b geo.Boundary) ([]byte, error) {
	if b == nil {
		b = geo.Boundary{}
	}
	return json.Marshal(b)
}

// Create implements campus.CampusRepository.
func (r *campusRepository) Create(ctx context.Context, c campus.Campus) (campus.Campus, error) {
	q := GetQuerier(ctx, r.db)

	boundaryJSON, err := encodeBoundary(c.Boundary)
	if err != nil {
		return campus.Campus{}, fmt.Errorf("failed to encode boundary: %w", err)
	}

	query := `
		INSERT INTO campuses (name, address, boundary)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query, c.Name, c.Address, boundaryJSON).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return campus.Campus{}, fmt.Errorf("failed to create campus: %w", err)
	}

	return c, nil
}

// GetByID implements campus.CampusRepository.
func (r *campusRepository) GetByID(ctx context.Context, id string) (*campus.Campus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, boundary, created_at, updated_at
		FROM campuses
		WHERE id = $1
	`

	c, err := scanCampus(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get campus: %w", err)
	}

	return &c, nil
}

// GetByName implements campus.CampusRepository.
func (r *campusRepository) GetByName(ctx context.Context, name string) (*campus.Campus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, boundary, created_at, updated_at
		FROM campuses
		WHERE LOWER(name) = LOWER($1)
	`

	c, err := scanCampus(q.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get campus by name: %w", err)
	}

	return &c, nil
}

// List implements campus.CampusRepository.
func (r *campusRepository) List(ctx context.Context) ([]campus.Campus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, boundary, created_at, updated_at
		FROM campuses
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list campuses: %w", err)
	}
	defer rows.Close()

	var campuses []campus.Campus
	for rows.Next() {
		c, err := scanCampus(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campus: %w", err)
		}
		campuses = append(campuses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate campuses: %w", err)
	}

	return campuses, nil
}

// Update implements campus.CampusRepository.
func (r *campusRepository) Update(ctx context.Context, c campus.Campus) error {
	q := GetQuerier(ctx, r.db)

	boundaryJSON, err := encodeBoundary(c.Boundary)
	if err != nil {
		return fmt.Errorf("failed to encode boundary: %w", err)
	}

	query := `
		UPDATE campuses
		SET name = $1, address = $2, boundary = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, c.Name, c.Address, boundaryJSON, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update campus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return campus.ErrCampusNotFound
	}

	return nil
}

// Delete implements campus.CampusRepository.
func (r *campusRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM campuses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete campus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return campus.ErrCampusNotFound
	}

	return nil
}
