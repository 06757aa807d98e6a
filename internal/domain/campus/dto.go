package campus

import (
	"github.com/campushq/attendance-backend-go/internal/pkg/geo"
	"github.com/campushq/attendance-backend-go/internal/pkg/validator"
)

type BoundaryPoint struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type CreateCampusRequest struct {
	Name     string          `json:"name"`
	Address  string          `json:"address"`
	Boundary []BoundaryPoint `json:"boundary"`
}

func (r *CreateCampusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if err := toBoundary(r.Boundary).Validate(); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "boundary",
			Message: "boundary must be a valid simple polygon with at least 3 vertices",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateCampusRequest struct {
	Name     *string         `json:"name,omitempty"`
	Address  *string         `json:"address,omitempty"`
	Boundary []BoundaryPoint `json:"boundary,omitempty"`
}

func (r *UpdateCampusRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	// A boundary update must itself be a valid polygon; partial updates
	// never leave a campus with a broken fence.
	if r.Boundary != nil {
		if err := toBoundary(r.Boundary).Validate(); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "boundary",
				Message: "boundary must be a valid simple polygon with at least 3 vertices",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func toBoundary(points []BoundaryPoint) geo.Boundary {
	b := make(geo.Boundary, 0, len(points))
	for _, p := range points {
		b = append(b, geo.Point{Lon: p.Longitude, Lat: p.Latitude})
	}
	return b
}

// ToBoundary converts request points into the geofence representation.
func (r *CreateCampusRequest) ToBoundary() geo.Boundary {
	return toBoundary(r.Boundary)
}

// ToBoundary converts request points into the geofence representation.
func (r *UpdateCampusRequest) ToBoundary() geo.Boundary {
	return toBoundary(r.Boundary)
}

type CampusResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Address  string          `json:"address"`
	Boundary []BoundaryPoint `json:"boundary"`
}

func ToResponse(c Campus) CampusResponse {
	points := make([]BoundaryPoint, 0, len(c.Boundary))
	for _, p := range c.Boundary {
		points = append(points, BoundaryPoint{Longitude: p.Lon, Latitude: p.Lat})
	}
	return CampusResponse{
		ID:       c.ID,
		Name:     c.Name,
		Address:  c.Address,
		Boundary: points,
	}
}
