package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/campushq/attendance-backend-go/internal/domain/attendance"
	"github.com/campushq/attendance-backend-go/internal/domain/leave"
	"github.com/campushq/attendance-backend-go/internal/domain/user"
	"github.com/campushq/attendance-backend-go/internal/pkg/database"
	"github.com/campushq/attendance-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveRepository
	attendanceRepo attendance.AttendanceRepository

	now func() time.Time
}

func NewLeaveService(
	db *database.DB,
	leaveRepo leave.LeaveRepository,
	attendanceRepo attendance.AttendanceRepository,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		db:              db,
		LeaveRepository: leaveRepo,
		attendanceRepo:  attendanceRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

type identity struct {
	ID       string
	FullName string
	CampusID string
	Role     user.Role
}

func identityFromContext(ctx context.Context) (identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return identity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return identity{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	fullName, _ := claims["full_name"].(string)
	campusID, _ := claims["campus_id"].(string)
	role, _ := claims["role"].(string)

	return identity{ID: id, FullName: fullName, CampusID: campusID, Role: user.Role(role)}, nil
}

// Request implements leave.LeaveService.
func (s *LeaveServiceImpl) Request(ctx context.Context, req leave.RequestLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	who, err := identityFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	overlaps, err := s.LeaveRepository.HasOverlap(ctx, who.ID, start, end)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	if overlaps {
		return leave.LeaveResponse{}, leave.ErrLeaveOverlaps
	}

	created, err := s.LeaveRepository.Create(ctx, leave.Leave{
		WorkerID:   who.ID,
		WorkerName: who.FullName,
		CampusID:   who.CampusID,
		Type:       leave.LeaveType(req.Type),
		Status:     leave.LeaveStatusPending,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.ToResponse(created), nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context) ([]leave.LeaveResponse, error) {
	who, err := identityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	leaves, err := s.LeaveRepository.ListByWorker(ctx, who.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return toResponses(leaves), nil
}

// ListPending implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPending(ctx context.Context) ([]leave.LeaveResponse, error) {
	who, err := identityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	pending := leave.LeaveStatusPending
	leaves, err := s.LeaveRepository.ListByCampus(ctx, who.CampusID, &pending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}

	return toResponses(leaves), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	who, err := identityFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	l, err := s.loadPending(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	now := s.now()
	l.Status = leave.LeaveStatusApproved
	l.ReviewedBy = &who.ID
	l.ReviewedAt = &now
	if req.Note != "" {
		l.ReviewerNote = &req.Note
	}

	// Materialize on-leave days so the absence job skips this worker. The
	// update and the day records commit together.
	onLeaveDays := make([]attendance.Attendance, 0)
	for _, day := range l.Days() {
		onLeaveDays = append(onLeaveDays, attendance.Attendance{
			WorkerID:   l.WorkerID,
			WorkerName: l.WorkerName,
			CampusID:   l.CampusID,
			Day:        day,
			Status:     attendance.StatusOnLeave,
		})
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		if err := s.LeaveRepository.Update(txCtx, *l); err != nil {
			return err
		}
		return s.attendanceRepo.BulkCreate(txCtx, onLeaveDays)
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to approve leave: %w", err)
	}

	return leave.ToResponse(*l), nil
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, id string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	who, err := identityFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	l, err := s.loadPending(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	now := s.now()
	l.Status = leave.LeaveStatusRejected
	l.ReviewedBy = &who.ID
	l.ReviewedAt = &now
	if req.Note != "" {
		l.ReviewerNote = &req.Note
	}

	if err := s.LeaveRepository.Update(ctx, *l); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to reject leave: %w", err)
	}

	return leave.ToResponse(*l), nil
}

func (s *LeaveServiceImpl) loadPending(ctx context.Context, id string) (*leave.Leave, error) {
	l, err := s.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave request: %w", err)
	}
	if l == nil {
		return nil, leave.ErrLeaveNotFound
	}
	if l.Status != leave.LeaveStatusPending {
		return nil, leave.ErrLeaveAlreadyReviewed
	}
	return l, nil
}

func toResponses(leaves []leave.Leave) []leave.LeaveResponse {
	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, leave.ToResponse(l))
	}
	return responses
}
