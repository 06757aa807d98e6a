package campus

import "context"

// CampusService manages campuses and their geofence boundaries. All
// operations are admin-only; the handler layer enforces the role.
type CampusService interface {
	Create(ctx context.Context, req CreateCampusRequest) (CampusResponse, error)
	GetByID(ctx context.Context, id string) (CampusResponse, error)
	List(ctx context.Context) ([]CampusResponse, error)
	Update(ctx context.Context, id string, req UpdateCampusRequest) (CampusResponse, error)
	Delete(ctx context.Context, id string) error
}
