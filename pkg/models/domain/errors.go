package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRequest is returned before any network interaction when a
	// request option is out of range or otherwise unusable.
	ErrMalformedRequest = errors.New("malformed request")
	// ErrUnclassifiable is returned when no report type matches the selected
	// dimensions and filters.
	ErrUnclassifiable = errors.New("no matching report type")
	// ErrInvalidForType is returned when a request was classified but breaks a
	// rule of the matched report type.
	ErrInvalidForType = errors.New("invalid request for report type")
	// ErrUnsupported is returned when an export target cannot be produced.
	ErrUnsupported = errors.New("unsupported capability")
	// ErrNoRows is returned when a tabular conversion is attempted on a report
	// without rows.
	ErrNoRows = fmt.Errorf("%w: report has no rows", ErrUnsupported)
	// ErrUnauthorized is returned when no valid credential is available.
	ErrUnauthorized = errors.New("not authorised")
)

// RemoteError is an API-level error payload returned by the analytics endpoint.
type RemoteError struct {
	Code    int
	Message string
	Status  string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}
