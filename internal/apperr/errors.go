// Package apperr defines sentinel errors shared across the application.
package apperr

import "errors"

// ErrNotFound reports that a requested document does not exist in the library.
var ErrNotFound = errors.New("not found")
