package geo

import "errors"

var (
	// ErrMissingID is returned when a feature has no resolvable identifier
	ErrMissingID = errors.New("missing id")
	// ErrMissingName is returned when a feature lacks its name property
	ErrMissingName = errors.New("missing name")
	// ErrInvalidGeometry is returned for absent or non-polygonal geometry
	ErrInvalidGeometry = errors.New("missing or invalid geometry")
)
