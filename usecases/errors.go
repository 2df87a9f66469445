package usecases

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrEmailRegistered  = errors.New("email is already registered")
	ErrSupervisorExists = errors.New("a supervisor already exists for this company")
)
