package valueobject

import "errors"

// ErrUnknownValue is returned when a raw string does not name a member of a closed set.
var ErrUnknownValue = errors.New("unknown value")
