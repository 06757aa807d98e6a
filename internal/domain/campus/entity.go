package campus

import (
	"time"

	"github.com/campushq/attendance-backend-go/internal/pkg/geo"
)

type Campus struct {
	ID      string
	Name    string
	Address string

	// Boundary is the geofence polygon. A campus without a valid boundary
	// cannot serve location checks.
	Boundary geo.Boundary

	CreatedAt time.Time
	UpdatedAt time.Time
}
