package repositories

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already taken")
	ErrSupervisorTaken = errors.New("supervisor already exists for company")
)
