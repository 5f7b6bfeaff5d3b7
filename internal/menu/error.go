package menu

import "errors"

var (
	ErrNotFound     = errors.New("menu item not found")
	ErrNameRequired = errors.New("item name is required")
	ErrInvalidPrice = errors.New("item price cannot be negative")
)
