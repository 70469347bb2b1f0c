package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrUnknownCombination  = errors.New("unknown relationship/vibe combination")
	ErrCatalogNotAvailable = errors.New("catalog not available")
)
