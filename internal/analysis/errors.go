package analysis

import "errors"

// ErrInvalidInput is the only error the engine reports. Callers match it
// with errors.Is; the wrapping message names the offending field.
var ErrInvalidInput = errors.New("invalid input")
