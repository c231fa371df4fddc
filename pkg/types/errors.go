package types

import "errors"

// Domain errors for type validation
var (
	ErrInvalidElementKind = errors.New("invalid element kind")
	ErrEmptyTag           = errors.New("tag cannot be empty")
	ErrTagWhitespace      = errors.New("tag cannot contain whitespace")
)
