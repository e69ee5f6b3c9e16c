// Package apperr holds sentinel errors shared across the application.
package apperr

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrAmbiguous = errors.New("ambiguous match")
)
