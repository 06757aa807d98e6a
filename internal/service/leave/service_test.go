package leave

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/attendance-backend-go/internal/domain/leave"
)

// fakeLeaveRepo is an in-memory leave.LeaveRepository.
type fakeLeaveRepo struct {
	leaves map[string]leave.Leave
	nextID int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{leaves: make(map[string]leave.Leave)}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	f.nextID++
	l.ID = "leave-" + strconv.Itoa(f.nextID)
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	f.leaves[l.ID] = l
	return l, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (*leave.Leave, error) {
	l, ok := f.leaves[id]
	if !ok {
		return nil, nil
	}
	cp := l
	return &cp, nil
}

func (f *fakeLeaveRepo) ListByWorker(ctx context.Context, workerID string) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, l := range f.leaves {
		if l.WorkerID == workerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListByCampus(ctx context.Context, campusID string, status *leave.LeaveStatus) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, l := range f.leaves {
		if l.CampusID != campusID {
			continue
		}
		if status != nil && l.Status != *status {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLeaveRepo) HasOverlap(ctx context.Context, workerID string, start, end time.Time) (bool, error) {
	for _, l := range f.leaves {
		if l.WorkerID != workerID {
			continue
		}
		if l.Status == leave.LeaveStatusRejected {
			continue
		}
		if !l.StartDate.After(end) && !l.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaveRepo) Update(ctx context.Context, l leave.Leave) error {
	if _, ok := f.leaves[l.ID]; !ok {
		return leave.ErrLeaveNotFound
	}
	f.leaves[l.ID] = l
	return nil
}

var testAuth = jwtauth.New("HS256", []byte("test-secret"), nil)

func authedContext(t *testing.T, workerID, fullName, campusID, role string) context.Context {
	t.Helper()
	token, _, err := testAuth.Encode(map[string]interface{}{
		"user_id":   workerID,
		"full_name": fullName,
		"campus_id": campusID,
		"role":      role,
		"type":      "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(t *testing.T) (*LeaveServiceImpl, *fakeLeaveRepo) {
	t.Helper()

	repo := newFakeLeaveRepo()
	svc := NewLeaveService(nil, repo, nil)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	}

	return svc, repo
}

func TestRequest(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "campus-1", "employee")

	resp, err := svc.Request(ctx, leave.RequestLeaveRequest{
		Type:      "annual",
		StartDate: "2026-03-16",
		EndDate:   "2026-03-18",
		Reason:    "Family trip",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "worker-1", resp.WorkerID)
	assert.Equal(t, "2026-03-16", resp.StartDate)
	assert.Equal(t, "2026-03-18", resp.EndDate)
}

func TestRequest_RejectsOverlap(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "campus-1", "employee")

	req := leave.RequestLeaveRequest{
		Type:      "annual",
		StartDate: "2026-03-16",
		EndDate:   "2026-03-18",
		Reason:    "Family trip",
	}
	_, err := svc.Request(ctx, req)
	require.NoError(t, err)

	// Second request touching the same range is rejected.
	req.StartDate = "2026-03-18"
	req.EndDate = "2026-03-20"
	_, err = svc.Request(ctx, req)
	assert.ErrorIs(t, err, leave.ErrLeaveOverlaps)
}

func TestRequest_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "campus-1", "employee")

	_, err := svc.Request(ctx, leave.RequestLeaveRequest{
		Type:      "sabbatical",
		StartDate: "2026-03-18",
		EndDate:   "2026-03-16",
		Reason:    "",
	})
	require.Error(t, err)
}

func TestListMine(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "campus-1", "employee")

	_, err := svc.Request(ctx, leave.RequestLeaveRequest{
		Type:      "sick",
		StartDate: "2026-03-10",
		EndDate:   "2026-03-10",
		Reason:    "Fever",
	})
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "sick", mine[0].Type)

	other := authedContext(t, "worker-2", "Budi Santoso", "campus-1", "employee")
	none, err := svc.ListMine(other)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListPending(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "campus-1", "employee")

	resp, err := svc.Request(ctx, leave.RequestLeaveRequest{
		Type:      "annual",
		StartDate: "2026-03-16",
		EndDate:   "2026-03-16",
		Reason:    "Errand",
	})
	require.NoError(t, err)

	admin := authedContext(t, "admin-1", "Dewi Admin", "campus-1", "admin")
	pending, err := svc.ListPending(admin)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, resp.ID, pending[0].ID)

	// Reviewed requests drop out of the queue.
	l := repo.leaves[resp.ID]
	l.Status = leave.LeaveStatusRejected
	repo.leaves[resp.ID] = l

	pending, err = svc.ListPending(admin)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestReject(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := authedContext(t, "worker-1", "Ayu Lestari", "campus-1", "employee")
	admin := authedContext(t, "admin-1", "Dewi Admin", "campus-1", "admin")

	resp, err := svc.Request(ctx, leave.RequestLeaveRequest{
		Type:      "unpaid",
		StartDate: "2026-03-16",
		EndDate:   "2026-03-17",
		Reason:    "Personal",
	})
	require.NoError(t, err)

	rejected, err := svc.Reject(admin, resp.ID, leave.ReviewLeaveRequest{Note: "Short staffed"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	require.NotNil(t, rejected.ReviewedBy)
	assert.Equal(t, "admin-1", *rejected.ReviewedBy)
	require.NotNil(t, rejected.ReviewerNote)
	assert.Equal(t, "Short staffed", *rejected.ReviewerNote)

	stored := repo.leaves[resp.ID]
	assert.Equal(t, leave.LeaveStatusRejected, stored.Status)
	require.NotNil(t, stored.ReviewedAt)

	// A reviewed request cannot be reviewed again.
	_, err = svc.Reject(admin, resp.ID, leave.ReviewLeaveRequest{})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyReviewed)
}

func TestReject_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	admin := authedContext(t, "admin-1", "Dewi Admin", "campus-1", "admin")

	_, err := svc.Reject(admin, "leave-404", leave.ReviewLeaveRequest{})
	assert.ErrorIs(t, err, leave.ErrLeaveNotFound)
}

func TestLeaveDays(t *testing.T) {
	l := leave.Leave{
		StartDate: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
	}

	days := l.Days()
	require.Len(t, days, 3)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), days[0])
	assert.Equal(t, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), days[2])
}
