package gateway

import "errors"

// ErrNotFound is returned when the provider has no record for a
// requested identity.
var ErrNotFound = errors.New("record not found in the provider")

// ErrUnavailable is returned for point-query provider failures that
// must fail loud instead of degrading to placeholder data.
var ErrUnavailable = errors.New("provider unavailable")
