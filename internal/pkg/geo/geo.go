package geo

import (
	"errors"
	"fmt"
	"math"
)

// Point is a single geographic coordinate in (longitude, latitude) order.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Boundary is an ordered ring of vertices forming a simple polygon.
// The ring is implicitly closed: the last vertex connects back to the first.
type Boundary []Point

// ErrInvalidBoundary is returned for malformed geometry. Callers must treat
// the point as outside when this error is returned (fail closed).
var ErrInvalidBoundary = errors.New("campus boundary geometry is invalid")

// areaEpsilon rejects rings whose vertices are (nearly) collinear.
const areaEpsilon = 1e-12

// Validate checks that the boundary is a usable simple polygon:
// at least 3 vertices, finite in-range coordinates, non-zero area and
// no self-intersecting edges.
func (b Boundary) Validate() error {
	if len(b) < 3 {
		return fmt.Errorf("%w: need at least 3 vertices, got %d", ErrInvalidBoundary, len(b))
	}

	for i, p := range b {
		if math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) || math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) {
			return fmt.Errorf("%w: vertex %d is not a finite coordinate", ErrInvalidBoundary, i)
		}
		if p.Lon < -180 || p.Lon > 180 || p.Lat < -90 || p.Lat > 90 {
			return fmt.Errorf("%w: vertex %d is out of coordinate range", ErrInvalidBoundary, i)
		}
	}

	if math.Abs(b.signedArea()) < areaEpsilon {
		return fmt.Errorf("%w: vertices are collinear (zero area)", ErrInvalidBoundary)
	}

	if b.selfIntersects() {
		return fmt.Errorf("%w: edges self-intersect", ErrInvalidBoundary)
	}

	return nil
}

// Contains reports whether the point (lon, lat) lies inside the boundary.
// Points exactly on an edge count as inside. Returns ErrInvalidBoundary
// (and false) for malformed geometry so a misconfigured campus never marks
// everyone inside.
func (b Boundary) Contains(lon, lat float64) (bool, error) {
	if err := b.Validate(); err != nil {
		return false, err
	}

	// Edge tie-break: on-boundary points are inside regardless of how the
	// crossing count falls.
	j := len(b) - 1
	for i := 0; i < len(b); i++ {
		if onSegment(b[j], b[i], lon, lat) {
			return true, nil
		}
		j = i
	}

	// Ray casting over the (lon, lat) plane. Campuses are small, so planar
	// math is accurate enough.
	inside := false
	j = len(b) - 1
	for i := 0; i < len(b); i++ {
		pi, pj := b[i], b[j]
		if (pi.Lat > lat) != (pj.Lat > lat) &&
			lon < (pj.Lon-pi.Lon)*(lat-pi.Lat)/(pj.Lat-pi.Lat)+pi.Lon {
			inside = !inside
		}
		j = i
	}

	return inside, nil
}

// signedArea is the shoelace sum; zero means a degenerate ring.
func (b Boundary) signedArea() float64 {
	var sum float64
	j := len(b) - 1
	for i := 0; i < len(b); i++ {
		sum += (b[j].Lon + b[i].Lon) * (b[j].Lat - b[i].Lat)
		j = i
	}
	return sum / 2
}

// selfIntersects reports whether any two non-adjacent edges cross.
func (b Boundary) selfIntersects() bool {
	n := len(b)
	for i := 0; i < n; i++ {
		a1, a2 := b[i], b[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Skip edges sharing a vertex with edge i.
			if j == i || (j+1)%n == i || j == (i+1)%n {
				continue
			}
			b1, b2 := b[j], b[(j+1)%n]
			if segmentsCross(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

func segmentsCross(p1, p2, q1, q2 Point) bool {
	d1 := cross(q1, q2, p1)
	d2 := cross(q1, q2, p2)
	d3 := cross(p1, p2, q1)
	d4 := cross(p1, p2, q2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func cross(o, a Point, b Point) float64 {
	return (a.Lon-o.Lon)*(b.Lat-o.Lat) - (a.Lat-o.Lat)*(b.Lon-o.Lon)
}

func onSegment(a, b Point, lon, lat float64) bool {
	p := Point{Lon: lon, Lat: lat}
	if math.Abs(cross(a, b, p)) > areaEpsilon {
		return false
	}
	return math.Min(a.Lon, b.Lon) <= lon && lon <= math.Max(a.Lon, b.Lon) &&
		math.Min(a.Lat, b.Lat) <= lat && lat <= math.Max(a.Lat, b.Lat)
}
