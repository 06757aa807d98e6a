package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/campushq/attendance-backend-go/internal/domain/attendance"
	"github.com/campushq/attendance-backend-go/internal/domain/campus"
	"github.com/campushq/attendance-backend-go/internal/pkg/database"
	"github.com/campushq/attendance-backend-go/internal/pkg/geo"
	"github.com/campushq/attendance-backend-go/internal/pkg/keymutex"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	campusRepo campus.CampusRepository

	// locks serializes all lifecycle operations per (worker, day) so
	// concurrent punches and location checks never interleave.
	locks *keymutex.KeyMutex

	now func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	campusRepo campus.CampusRepository,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		campusRepo:           campusRepo,
		locks:                keymutex.New(),
		now:                  func() time.Time { return time.Now().UTC() },
	}
}

type workerIdentity struct {
	ID       string
	FullName string
	CampusID string
}

func workerFromContext(ctx context.Context) (workerIdentity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return workerIdentity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return workerIdentity{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	fullName, _ := claims["full_name"].(string)
	campusID, _ := claims["campus_id"].(string)

	return workerIdentity{ID: id, FullName: fullName, CampusID: campusID}, nil
}

func lockKey(workerID string, day time.Time) string {
	return workerID + "|" + day.Format("2006-01-02")
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func toResponse(rec attendance.Attendance, now time.Time) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:                rec.ID,
		WorkerID:          rec.WorkerID,
		WorkerName:        rec.WorkerName,
		Day:               rec.Day.Format("2006-01-02"),
		Status:            string(rec.Status),
		InsideCampus:      rec.InsideCampus,
		PunchOutAt:        timePtrToString(rec.PunchOutAt),
		OutOfBoundMinutes: rec.OutOfBoundMinutes,
		Remarks:           rec.Remarks,
	}
	// Absent and on-leave rows have no punch-in.
	if !rec.PunchInAt.IsZero() {
		resp.PunchInAt = rec.PunchInAt.Format("2006-01-02 15:04:05")
	}
	if rec.Terminal() {
		hours := rec.WorkedHours(now)
		resp.WorkedHours = &hours
	}
	return resp
}

// PunchIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PunchIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	worker, err := workerFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if worker.CampusID == "" {
		return attendance.AttendanceResponse{}, attendance.ErrBoundaryNotConfigured
	}

	now := a.now()
	day := now.Truncate(24 * time.Hour)

	key := lockKey(worker.ID, day)
	a.locks.Lock(key)
	defer a.locks.Unlock(key)

	existing, err := a.AttendanceRepository.GetByWorkerAndDay(ctx, worker.ID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	if existing != nil {
		if existing.Terminal() {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedOut
		}
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedIn
	}

	rec := attendance.NewRecord(worker.ID, worker.FullName, worker.CampusID, now)
	created, err := a.AttendanceRepository.Create(ctx, rec)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return toResponse(created, now), nil
}

// PunchOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PunchOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	worker, err := workerFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now()
	day := now.Truncate(24 * time.Hour)

	key := lockKey(worker.ID, day)
	a.locks.Lock(key)
	defer a.locks.Unlock(key)

	rec, err := a.AttendanceRepository.GetByWorkerAndDay(ctx, worker.ID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	if rec == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoRecordToday
	}

	// A worker still on duty is punched out directly; the duty simply ends
	// with the day.
	if rec.Status == attendance.StatusOnDuty {
		if err := rec.EndDuty(now); err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}

	if err := rec.ClosePunch(now); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.AttendanceRepository.Update(ctx, *rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return toResponse(*rec, now), nil
}

// CheckLocation implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckLocation(ctx context.Context, req attendance.CheckLocationRequest) (attendance.CheckLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckLocationResponse{}, err
	}

	worker, err := workerFromContext(ctx)
	if err != nil {
		return attendance.CheckLocationResponse{}, err
	}

	now := a.now()
	day := now.Truncate(24 * time.Hour)

	key := lockKey(worker.ID, day)
	a.locks.Lock(key)
	defer a.locks.Unlock(key)

	rec, err := a.AttendanceRepository.GetByWorkerAndDay(ctx, worker.ID, day)
	if err != nil {
		return attendance.CheckLocationResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	if rec == nil {
		return attendance.CheckLocationResponse{}, attendance.ErrNoRecordToday
	}

	boundary, err := a.campusBoundary(ctx, rec.CampusID)
	if err != nil {
		return attendance.CheckLocationResponse{}, err
	}

	inside, err := boundary.Contains(req.Longitude, req.Latitude)
	if err != nil {
		// Broken geometry must never pass anyone as inside. The geo error
		// stays in the chain so callers can tell malformed geometry apart
		// from a boundary that was never configured.
		return attendance.CheckLocationResponse{}, fmt.Errorf("location check rejected: %w", err)
	}

	result, err := rec.ApplyLocation(inside, now)
	if err != nil {
		return attendance.CheckLocationResponse{}, err
	}

	if err := a.AttendanceRepository.Update(ctx, *rec); err != nil {
		return attendance.CheckLocationResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	resp := attendance.CheckLocationResponse{
		Inside:                 result.Inside,
		TotalOutOfBoundMinutes: result.TotalOutOfBoundMinutes,
	}
	if result.Inside {
		resp.Message = "You are inside the campus area"
	} else {
		resp.Message = "You are outside the campus area"
	}
	if result.MinutesAdded > 0 {
		added := result.MinutesAdded
		resp.MinutesAdded = &added
	}

	return resp, nil
}

func (a *AttendanceServiceImpl) campusBoundary(ctx context.Context, campusID string) (geo.Boundary, error) {
	c, err := a.campusRepo.GetByID(ctx, campusID)
	if err != nil {
		return nil, fmt.Errorf("failed to load campus: %w", err)
	}
	if c == nil || len(c.Boundary) == 0 {
		return nil, attendance.ErrBoundaryNotConfigured
	}
	return c.Boundary, nil
}

// MarkOnDuty implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkOnDuty(ctx context.Context, req attendance.OnDutyRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	worker, err := workerFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now()
	day := now.Truncate(24 * time.Hour)

	key := lockKey(worker.ID, day)
	a.locks.Lock(key)
	defer a.locks.Unlock(key)

	rec, err := a.AttendanceRepository.GetByWorkerAndDay(ctx, worker.ID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	if rec == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoRecordToday
	}

	if err := rec.StartDuty(req.Remarks, now); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.AttendanceRepository.Update(ctx, *rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return toResponse(*rec, now), nil
}

// MarkOffDuty implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkOffDuty(ctx context.Context) (attendance.AttendanceResponse, error) {
	worker, err := workerFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now()
	day := now.Truncate(24 * time.Hour)

	key := lockKey(worker.ID, day)
	a.locks.Lock(key)
	defer a.locks.Unlock(key)

	rec, err := a.AttendanceRepository.GetByWorkerAndDay(ctx, worker.ID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	if rec == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoRecordToday
	}

	if err := rec.EndDuty(now); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.AttendanceRepository.Update(ctx, *rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return toResponse(*rec, now), nil
}

// TotalDuration implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) TotalDuration(ctx context.Context) (attendance.TotalDurationResponse, error) {
	worker, err := workerFromContext(ctx)
	if err != nil {
		return attendance.TotalDurationResponse{}, err
	}

	now := a.now()
	day := now.Truncate(24 * time.Hour)

	rec, err := a.AttendanceRepository.GetByWorkerAndDay(ctx, worker.ID, day)
	if err != nil {
		return attendance.TotalDurationResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	if rec == nil {
		return attendance.TotalDurationResponse{}, attendance.ErrNoRecordToday
	}

	d := rec.WorkedDuration(now)
	return attendance.TotalDurationResponse{
		Hours:     round2(d.Seconds() / 3600),
		Formatted: attendance.FormatDuration(d),
	}, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	worker, err := workerFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.ListByWorker(ctx, worker.ID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	now := a.now()
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toResponse(rec, now))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		Attendances: responses,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
