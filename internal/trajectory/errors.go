package trajectory

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for empty input or negative thresholds
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMalformedObservation is returned when an observation has out-of-range
	// coordinates or a missing timestamp
	ErrMalformedObservation = errors.New("malformed observation")
)

// MalformedObservationError describes which observation failed validation
type MalformedObservationError struct {
	Index     int
	SubjectID string
	Reason    string
}

func (e *MalformedObservationError) Error() string {
	return fmt.Sprintf("%s: observation %d (subject %q): %s", ErrMalformedObservation, e.Index, e.SubjectID, e.Reason)
}

// Unwrap lets errors.Is match ErrMalformedObservation
func (e *MalformedObservationError) Unwrap() error {
	return ErrMalformedObservation
}
