package esg

import "errors"

// ErrInvalidInput marks input-contract violations. Everything else the engine
// does degrades to empty or neutral results.
var ErrInvalidInput = errors.New("esg: invalid input")
