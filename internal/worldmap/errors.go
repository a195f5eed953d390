package worldmap

import (
	"errors"
	"fmt"

	"mapgame/internal/geo"
)

// ErrorKind classifies map load failures
type ErrorKind int

const (
	MissingID ErrorKind = iota
	MissingName
	MissingOrInvalidGeometry
	MapReadFailure
	MapParseFailure
)

// String returns a string representation of the error kind
func (k ErrorKind) String() string {
	switch k {
	case MissingID:
		return "MissingId"
	case MissingName:
		return "MissingName"
	case MissingOrInvalidGeometry:
		return "MissingOrInvalidGeometry"
	case MapReadFailure:
		return "MapReadFailure"
	case MapParseFailure:
		return "MapParseFailure"
	default:
		return "Unknown"
	}
}

// MapLoadError reports why a whole map could not be loaded
type MapLoadError struct {
	Map    string
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *MapLoadError) Error() string {
	return fmt.Sprintf("failed to load map %s: %s", e.Map, e.Reason)
}

func (e *MapLoadError) Unwrap() error {
	return e.Err
}

// featureError maps a feature construction failure onto its load error kind
func featureError(mapName, source string, err error) *MapLoadError {
	kind := MapParseFailure
	switch {
	case errors.Is(err, geo.ErrMissingID):
		kind = MissingID
	case errors.Is(err, geo.ErrMissingName):
		kind = MissingName
	case errors.Is(err, geo.ErrInvalidGeometry):
		kind = MissingOrInvalidGeometry
	}

	return &MapLoadError{
		Map:    mapName,
		Kind:   kind,
		Reason: fmt.Sprintf("%s: %v", source, err),
		Err:    err,
	}
}
