package client

import "errors"

// ErrInvalidInput is wrapped by every problem found while validating client records.
var ErrInvalidInput = errors.New("invalid input")
