package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campushq/attendance-backend-go/internal/domain/leave"
	"github.com/campushq/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveColumns = `
	id, worker_id, worker_name, campus_id, type, status, start_date, end_date,
	reason, reviewed_by, reviewed_at, reviewer_note, created_at, updated_at
`

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(
		&l.ID, &l.WorkerID, &l.WorkerName, &l.CampusID, &l.Type, &l.Status,
		&l.StartDate, &l.EndDate, &l.Reason,
		&l.ReviewedBy, &l.ReviewedAt, &l.ReviewerNote,
		&l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepository) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves (
			worker_id, worker_name, campus_id, type, status, start_date, end_date, reason
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		l.WorkerID, l.WorkerName, l.CampusID, l.Type, l.Status,
		l.StartDate, l.EndDate, l.Reason,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}

	return l, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (*leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leaves WHERE id = $1`

	l, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leave: %w", err)
	}

	return &l, nil
}

// ListByWorker implements leave.LeaveRepository.
func (r *leaveRepository) ListByWorker(ctx context.Context, workerID string) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves
		WHERE worker_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves by worker: %w", err)
	}
	defer rows.Close()

	return collectLeaves(rows)
}

// ListByCampus implements leave.LeaveRepository.
func (r *leaveRepository) ListByCampus(ctx context.Context, campusID string, status *leave.LeaveStatus) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves
		WHERE campus_id = $1
	`
	args := []interface{}{campusID}

	if status != nil {
		args = append(args, *status)
		query += " AND status = $2"
	}
	query += " ORDER BY created_at ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves by campus: %w", err)
	}
	defer rows.Close()

	return collectLeaves(rows)
}

// HasOverlap implements leave.LeaveRepository.
func (r *leaveRepository) HasOverlap(ctx context.Context, workerID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leaves
			WHERE worker_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, workerID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}

	return exists, nil
}

// Update implements leave.LeaveRepository.
func (r *leaveRepository) Update(ctx context.Context, l leave.Leave) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET status = $1, reviewed_by = $2, reviewed_at = $3, reviewer_note = $4,
			updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, l.Status, l.ReviewedBy, l.ReviewedAt, l.ReviewerNote, l.ID)
	if err != nil {
		return fmt.Errorf("failed to update leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}

func collectLeaves(rows pgx.Rows) ([]leave.Leave, error) {
	var leaves []leave.Leave
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaves: %w", err)
	}
	return leaves, nil
}
