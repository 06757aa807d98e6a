package attendance

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/attendance-backend-go/internal/domain/attendance"
	"github.com/campushq/attendance-backend-go/internal/domain/campus"
	"github.com/campushq/attendance-backend-go/internal/pkg/geo"
)

// fakeAttendanceRepo is an in-memory attendance.AttendanceRepository.
type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance // worker|day
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) key(workerID string, day time.Time) string {
	return workerID + "|" + day.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	f.nextID++
	record.ID = "att-" + strconv.Itoa(f.nextID)
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	f.records[f.key(record.WorkerID, record.Day)] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByWorkerAndDay(ctx context.Context, workerID string, day time.Time) (*attendance.Attendance, error) {
	rec, ok := f.records[f.key(workerID, day)]
	if !ok {
		return nil, nil
	}
	cp := rec
	return &cp, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, record attendance.Attendance) error {
	for k, v := range f.records {
		if v.ID == record.ID {
			f.records[k] = record
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) ListByWorker(ctx context.Context, workerID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.WorkerID == workerID {
			out = append(out, rec)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) ListByCampus(ctx context.Context, campusID string, workerID *string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.CampusID == campusID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) HasRecordForDay(ctx context.Context, workerID string, day time.Time) (bool, error) {
	_, ok := f.records[f.key(workerID, day)]
	return ok, nil
}

func (f *fakeAttendanceRepo) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.Day.Before(cutoff) && !rec.PunchInAt.IsZero() && rec.PunchOutAt == nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) BulkCreate(ctx context.Context, records []attendance.Attendance) error {
	for _, rec := range records {
		if _, ok := f.records[f.key(rec.WorkerID, rec.Day)]; ok {
			continue
		}
		if _, err := f.Create(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// fakeCampusRepo serves a single campus with a unit-square boundary.
type fakeCampusRepo struct {
	campus *campus.Campus
}

func (f *fakeCampusRepo) Create(ctx context.Context, c campus.Campus) (campus.Campus, error) {
	return c, nil
}

func (f *fakeCampusRepo) GetByID(ctx context.Context, id string) (*campus.Campus, error) {
	if f.campus != nil && f.campus.ID == id {
		return f.campus, nil
	}
	return nil, nil
}

func (f *fakeCampusRepo) GetByName(ctx context.Context, name string) (*campus.Campus, error) {
	return nil, nil
}

func (f *fakeCampusRepo) List(ctx context.Context) ([]campus.Campus, error) {
	if f.campus == nil {
		return nil, nil
	}
	return []campus.Campus{*f.campus}, nil
}

func (f *fakeCampusRepo) Update(ctx context.Context, c campus.Campus) error { return nil }
func (f *fakeCampusRepo) Delete(ctx context.Context, id string) error       { return nil }

var testAuth = jwtauth.New("HS256", []byte("test-secret"), nil)

func authedContext(t *testing.T, workerID, fullName, campusID string) context.Context {
	t.Helper()
	token, _, err := testAuth.Encode(map[string]interface{}{
		"user_id":   workerID,
		"full_name": fullName,
		"campus_id": campusID,
		"type":      "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(t *testing.T) (*AttendanceServiceImpl, *fakeAttendanceRepo, *clock) {
	t.Helper()

	attRepo := newFakeAttendanceRepo()
	campusRepo := &fakeCampusRepo{
		campus: &campus.Campus{
			ID:   "campus-1",
			Name: "Main Campus",
			Boundary: geo.Boundary{
				{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 0, Lat: 1},
			},
		},
	}

	svc := NewAttendanceService(nil, attRepo, campusRepo)
	clk := &clock{now: time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)}
	svc.now = clk.Now

	return svc, attRepo, clk
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time          { return c.now }
func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestPunchIn(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "campus-1")

	resp, err := svc.PunchIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "present", resp.Status)
	assert.True(t, resp.InsideCampus)
	assert.Equal(t, "2026-03-09", resp.Day)
	assert.Nil(t, resp.PunchOutAt)

	// Second punch-in the same day is rejected.
	_, err = svc.PunchIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedIn)
}

func TestPunchIn_AfterPunchOut(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "campus-1")

	_, err := svc.PunchIn(ctx)
	require.NoError(t, err)

	clk.Advance(8 * time.Hour)
	_, err = svc.PunchOut(ctx)
	require.NoError(t, err)

	_, err = svc.PunchIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedOut)
}

func TestPunchOut(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "campus-1")

	_, err := svc.PunchOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNoRecordToday)

	_, err = svc.PunchIn(ctx)
	require.NoError(t, err)

	clk.Advance(8*time.Hour + 30*time.Minute)
	resp, err := svc.PunchOut(ctx)
	require.NoError(t, err)
	require.NotNil(t, resp.PunchOutAt)
	require.NotNil(t, resp.WorkedHours)
	assert.InDelta(t, 8.5, *resp.WorkedHours, 0.01)

	_, err = svc.PunchOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedOut)
}

func TestCheckLocation_AccrualFlow(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "campus-1")

	_, err := svc.PunchIn(ctx)
	require.NoError(t, err)

	// Step outside the unit square.
	clk.Advance(10 * time.Minute)
	resp, err := svc.CheckLocation(ctx, attendance.CheckLocationRequest{Longitude: 5, Latitude: 5})
	require.NoError(t, err)
	assert.False(t, resp.Inside)
	assert.Nil(t, resp.MinutesAdded)
	assert.Zero(t, resp.TotalOutOfBoundMinutes)

	// Come back 15 minutes later.
	clk.Advance(15 * time.Minute)
	resp, err = svc.CheckLocation(ctx, attendance.CheckLocationRequest{Longitude: 0.5, Latitude: 0.5})
	require.NoError(t, err)
	assert.True(t, resp.Inside)
	require.NotNil(t, resp.MinutesAdded)
	assert.Equal(t, 15.0, *resp.MinutesAdded)
	assert.Equal(t, 15.0, resp.TotalOutOfBoundMinutes)

	// Inside again: nothing credited, total unchanged, minutes omitted.
	clk.Advance(5 * time.Minute)
	resp, err = svc.CheckLocation(ctx, attendance.CheckLocationRequest{Longitude: 0.2, Latitude: 0.8})
	require.NoError(t, err)
	assert.Nil(t, resp.MinutesAdded)
	assert.Equal(t, 15.0, resp.TotalOutOfBoundMinutes)
}

func TestCheckLocation_RejectsBadCoordinates(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "campus-1")

	_, err := svc.PunchIn(ctx)
	require.NoError(t, err)

	_, err = svc.CheckLocation(ctx, attendance.CheckLocationRequest{Longitude: 200, Latitude: 0})
	assert.Error(t, err)
}

func TestCheckLocation_BrokenBoundaryFailsClosed(t *testing.T) {
	svc, repo, clk := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "campus-1")

	_, err := svc.PunchIn(ctx)
	require.NoError(t, err)

	// Degrade the campus boundary to a two-point line.
	svc.campusRepo.(*fakeCampusRepo).campus.Boundary = geo.Boundary{
		{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1},
	}

	clk.Advance(time.Minute)
	_, err = svc.CheckLocation(ctx, attendance.CheckLocationRequest{Longitude: 0.5, Latitude: 0.5})
	assert.ErrorIs(t, err, geo.ErrInvalidBoundary)
	assert.NotErrorIs(t, err, attendance.ErrBoundaryNotConfigured)

	// Nothing was applied: the record still counts as inside with no accrual.
	rec, err := repo.GetByWorkerAndDay(ctx, "worker-1", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.InsideCampus)
	assert.Zero(t, rec.OutOfBoundMinutes)
}

func TestCheckLocation_MissingBoundary(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "campus-1")

	_, err := svc.PunchIn(ctx)
	require.NoError(t, err)

	svc.campusRepo.(*fakeCampusRepo).campus.Boundary = nil

	clk.Advance(time.Minute)
	_, err = svc.CheckLocation(ctx, attendance.CheckLocationRequest{Longitude: 0.5, Latitude: 0.5})
	assert.ErrorIs(t, err, attendance.ErrBoundaryNotConfigured)
	assert.NotErrorIs(t, err, geo.ErrInvalidBoundary)
}

func TestOnDuty_SuspendsLocationChecks(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "campus-1")

	_, err := svc.PunchIn(ctx)
	require.NoError(t, err)

	resp, err := svc.MarkOnDuty(ctx, attendance.OnDutyRequest{Remarks: "client visit"})
	require.NoError(t, err)
	assert.Equal(t, "on_duty", resp.Status)

	clk.Advance(time.Hour)
	_, err = svc.CheckLocation(ctx, attendance.CheckLocationRequest{Longitude: 5, Latitude: 5})
	assert.ErrorIs(t, err, attendance.ErrInvalidStatus)

	resp, err = svc.MarkOffDuty(ctx)
	require.NoError(t, err)
	assert.Equal(t, "present", resp.Status)
	assert.Nil(t, resp.Remarks)

	// Checks work again after duty ends.
	_, err = svc.CheckLocation(ctx, attendance.CheckLocationRequest{Longitude: 0.5, Latitude: 0.5})
	assert.NoError(t, err)
}

func TestPunchOut_WhileOnDuty(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "campus-1")

	_, err := svc.PunchIn(ctx)
	require.NoError(t, err)

	_, err = svc.MarkOnDuty(ctx, attendance.OnDutyRequest{Remarks: "field survey"})
	require.NoError(t, err)

	clk.Advance(4 * time.Hour)
	resp, err := svc.PunchOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, "present", resp.Status)
	require.NotNil(t, resp.PunchOutAt)
}

func TestTotalDuration(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "campus-1")

	_, err := svc.TotalDuration(ctx)
	assert.ErrorIs(t, err, attendance.ErrNoRecordToday)

	_, err = svc.PunchIn(ctx)
	require.NoError(t, err)

	clk.Advance(8*time.Hour + 30*time.Minute + 15*time.Second)
	resp, err := svc.TotalDuration(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8.5, resp.Hours)
	assert.Equal(t, "8h 30m 15s", resp.Formatted)

	// After punch-out the figure is frozen.
	_, err = svc.PunchOut(ctx)
	require.NoError(t, err)
	clk.Advance(3 * time.Hour)

	resp, err = svc.TotalDuration(ctx)
	require.NoError(t, err)
	assert.Equal(t, "8h 30m 15s", resp.Formatted)
}

func TestGetMyAttendance(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "campus-1")

	_, err := svc.PunchIn(ctx)
	require.NoError(t, err)

	resp, err := svc.GetMyAttendance(ctx, attendance.MyAttendanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
	require.Len(t, resp.Attendances, 1)
	assert.Equal(t, "worker-1", resp.Attendances[0].WorkerID)
}

func TestPunchIn_NoCampusAssigned(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "")

	_, err := svc.PunchIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrBoundaryNotConfigured)
}
