package model

import "errors"

// Configuration errors. They are reported before any row is processed.
var (
	ErrUnknownStrategy = errors.New("unknown segmentation strategy")
	ErrColumnNotFound  = errors.New("column not found")
	ErrUnknownFormat   = errors.New("unknown table format")
	ErrInvalidConfig   = errors.New("invalid configuration")
)
