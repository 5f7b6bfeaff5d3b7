package table

import "errors"

var (
	ErrNotFound        = errors.New("table not found")
	ErrInvalidNumber   = errors.New("table number must be positive")
	ErrNameRequired    = errors.New("table name is required")
	ErrDuplicateNumber = errors.New("table number already in use")
)
