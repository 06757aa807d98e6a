package campus

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/attendance-backend-go/internal/domain/campus"
	"github.com/campushq/attendance-backend-go/internal/domain/user"
)

// fakeCampusRepo is an in-memory campus.CampusRepository.
type fakeCampusRepo struct {
	campuses map[string]campus.Campus
	nextID   int
}

func newFakeCampusRepo() *fakeCampusRepo {
	return &fakeCampusRepo{campuses: make(map[string]campus.Campus)}
}

func (f *fakeCampusRepo) Create(ctx context.Context, c campus.Campus) (campus.Campus, error) {
	f.nextID++
	c.ID = "campus-" + strconv.Itoa(f.nextID)
	f.campuses[c.ID] = c
	return c, nil
}

func (f *fakeCampusRepo) GetByID(ctx context.Context, id string) (*campus.Campus, error) {
	c, ok := f.campuses[id]
	if !ok {
		return nil, nil
	}
	cp := c
	return &cp, nil
}

func (f *fakeCampusRepo) GetByName(ctx context.Context, name string) (*campus.Campus, error) {
	for _, c := range f.campuses {
		if c.Name == name {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCampusRepo) List(ctx context.Context) ([]campus.Campus, error) {
	out := make([]campus.Campus, 0, len(f.campuses))
	for _, c := range f.campuses {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCampusRepo) Update(ctx context.Context, c campus.Campus) error {
	if _, ok := f.campuses[c.ID]; !ok {
		return campus.ErrCampusNotFound
	}
	f.campuses[c.ID] = c
	return nil
}

func (f *fakeCampusRepo) Delete(ctx context.Context, id string) error {
	delete(f.campuses, id)
	return nil
}

// fakeUserRepo only serves ListByCampus for the delete guard.
type fakeUserRepo struct {
	user.UserRepository

	byCampus map[string][]user.User
}

func (f *fakeUserRepo) ListByCampus(ctx context.Context, campusID string) ([]user.User, error) {
	return f.byCampus[campusID], nil
}

func newTestService(t *testing.T) (*CampusServiceImpl, *fakeCampusRepo, *fakeUserRepo) {
	t.Helper()

	repo := newFakeCampusRepo()
	users := &fakeUserRepo{byCampus: make(map[string][]user.User)}
	svc := NewCampusService(nil, repo, users)

	return svc, repo, users
}

func squareBoundary() []campus.BoundaryPoint {
	return []campus.BoundaryPoint{
		{Longitude: 106.80, Latitude: -6.20},
		{Longitude: 106.81, Latitude: -6.20},
		{Longitude: 106.81, Latitude: -6.19},
		{Longitude: 106.80, Latitude: -6.19},
	}
}

func TestCreate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, campus.CreateCampusRequest{
		Name:     "Main Campus",
		Address:  "Jl. Merdeka 1",
		Boundary: squareBoundary(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Main Campus", resp.Name)
	assert.Len(t, resp.Boundary, 4)

	// Names are unique.
	_, err = svc.Create(ctx, campus.CreateCampusRequest{
		Name:     "Main Campus",
		Address:  "Jl. Merdeka 2",
		Boundary: squareBoundary(),
	})
	assert.ErrorIs(t, err, campus.ErrCampusNameExists)
}

func TestCreate_RejectsDegenerateBoundary(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), campus.CreateCampusRequest{
		Name:    "Broken Campus",
		Address: "Jl. Merdeka 3",
		Boundary: []campus.BoundaryPoint{
			{Longitude: 106.80, Latitude: -6.20},
			{Longitude: 106.81, Latitude: -6.20},
		},
	})
	require.Error(t, err)
}

func TestUpdate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, campus.CreateCampusRequest{
		Name:     "Main Campus",
		Address:  "Jl. Merdeka 1",
		Boundary: squareBoundary(),
	})
	require.NoError(t, err)

	newName := "North Campus"
	updated, err := svc.Update(ctx, created.ID, campus.UpdateCampusRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "North Campus", updated.Name)
	assert.Equal(t, "Jl. Merdeka 1", updated.Address)

	_, err = svc.Update(ctx, "campus-404", campus.UpdateCampusRequest{Name: &newName})
	assert.ErrorIs(t, err, campus.ErrCampusNotFound)
}

func TestUpdate_NameConflict(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, campus.CreateCampusRequest{
		Name: "Main Campus", Address: "A", Boundary: squareBoundary(),
	})
	require.NoError(t, err)

	second, err := svc.Create(ctx, campus.CreateCampusRequest{
		Name: "North Campus", Address: "B", Boundary: squareBoundary(),
	})
	require.NoError(t, err)

	taken := "Main Campus"
	_, err = svc.Update(ctx, second.ID, campus.UpdateCampusRequest{Name: &taken})
	assert.ErrorIs(t, err, campus.ErrCampusNameExists)
}

func TestDelete(t *testing.T) {
	svc, repo, users := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, campus.CreateCampusRequest{
		Name: "Main Campus", Address: "A", Boundary: squareBoundary(),
	})
	require.NoError(t, err)

	// A campus with assigned workers cannot be removed.
	users.byCampus[created.ID] = []user.User{{ID: "worker-1"}}
	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, campus.ErrCampusHasWorkers)

	users.byCampus[created.ID] = nil
	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, repo.campuses)

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, campus.ErrCampusNotFound)
}
