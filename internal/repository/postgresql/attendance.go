package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campushq/attendance-backend-go/internal/domain/attendance"
	"github.com/campushq/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `
	id, worker_id, worker_name, campus_id, day, status, inside_campus,
	punch_in_at, punch_out_at, last_outside_at, out_of_bound_minutes,
	remarks, created_at, updated_at
`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	var punchInAt *time.Time
	err := row.Scan(
		&att.ID, &att.WorkerID, &att.WorkerName, &att.CampusID, &att.Day,
		&att.Status, &att.InsideCampus,
		&punchInAt, &att.PunchOutAt, &att.LastOutsideAt, &att.OutOfBoundMinutes,
		&att.Remarks, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	// Absent and on-leave rows have no punch-in.
	if punchInAt != nil {
		att.PunchInAt = *punchInAt
	}
	return att, nil
}

func nullablePunchIn(att attendance.Attendance) *time.Time {
	if att.PunchInAt.IsZero() {
		return nil
	}
	t := att.PunchInAt
	return &t
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			worker_id, worker_name, campus_id, day, status, inside_campus,
			punch_in_at, punch_out_at, last_outside_at, out_of_bound_minutes, remarks
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.WorkerID,
		record.WorkerName,
		record.CampusID,
		record.Day,
		record.Status,
		record.InsideCampus,
		nullablePunchIn(record),
		record.PunchOutAt,
		record.LastOutsideAt,
		record.OutOfBoundMinutes,
		record.Remarks,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return record, nil
}

// GetByWorkerAndDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByWorkerAndDay(ctx context.Context, workerID string, day time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE worker_id = $1
		  AND day = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, workerID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for this day
		}
		return nil, fmt.Errorf("failed to get attendance by worker and day: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET status = $1,
			inside_campus = $2,
			punch_out_at = $3,
			last_outside_at = $4,
			out_of_bound_minutes = $5,
			remarks = $6,
			updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		record.Status,
		record.InsideCampus,
		record.PunchOutAt,
		record.LastOutsideAt,
		record.OutOfBoundMinutes,
		record.Remarks,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListByWorker implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByWorker(ctx context.Context, workerID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	where := "WHERE worker_id = $1"
	args := []interface{}{workerID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += fmt.Sprintf(" AND day >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += fmt.Sprintf(" AND day <= $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendances " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendances
		%s
		ORDER BY day DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, total, nil
}

// ListByCampus implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByCampus(ctx context.Context, campusID string, workerID *string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE campus_id = $1
	`
	args := []interface{}{campusID}

	if workerID != nil {
		args = append(args, *workerID)
		query += " AND worker_id = $2"
	}
	query += " ORDER BY day ASC, worker_name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by campus: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, nil
}

// HasRecordForDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) HasRecordForDay(ctx context.Context, workerID string, day time.Time) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendances
			WHERE worker_id = $1 AND day = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, workerID, day).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance existence: %w", err)
	}

	return exists, nil
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE day < $1
		  AND punch_in_at IS NOT NULL
		  AND punch_out_at IS NULL
		ORDER BY day ASC
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, nil
}

// BulkCreate implements attendance.AttendanceRepository.
func (a *attendanceRepository) BulkCreate(ctx context.Context, records []attendance.Attendance) error {
	if len(records) == 0 {
		return nil
	}

	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			worker_id, worker_name, campus_id, day, status, inside_campus,
			punch_in_at, punch_out_at, last_outside_at, out_of_bound_minutes, remarks
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		ON CONFLICT (worker_id, day) DO NOTHING
	`

	for _, record := range records {
		_, err := q.Exec(ctx, query,
			record.WorkerID,
			record.WorkerName,
			record.CampusID,
			record.Day,
			record.Status,
			record.InsideCampus,
			nullablePunchIn(record),
			record.PunchOutAt,
			record.LastOutsideAt,
			record.OutOfBoundMinutes,
			record.Remarks,
		)
		if err != nil {
			return fmt.Errorf("failed to bulk create attendance: %w", err)
		}
	}

	return nil
}
