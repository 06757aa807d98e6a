package campus

import "errors"

// Campus domain errors
var (
	ErrCampusNotFound   = errors.New("campus not found")
	ErrCampusNameExists = errors.New("a campus with this name already exists")
	ErrCampusHasWorkers = errors.New("campus still has workers assigned")
	ErrInvalidBoundary  = errors.New("boundary must be a valid simple polygon with at least 3 vertices")
)
