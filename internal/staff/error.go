package staff

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("staff member not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidRole        = errors.New("unknown staff role")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)
