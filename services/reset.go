package services

import (
	"context"
	"errors"

	"account-server/entities"
)

// ErrResetNotImplemented is returned by dispatchers that cannot deliver a
// password reset yet.
var ErrResetNotImplemented = errors.New("password reset dispatch is not implemented")

// ResetDispatcher issues and delivers a password reset for an existing user.
type ResetDispatcher interface {
	DispatchReset(ctx context.Context, user *entities.User) error
}

// UnimplementedResetDispatcher is the default dispatcher. It delivers nothing
// and always reports ErrResetNotImplemented.
type UnimplementedResetDispatcher struct{}

func (UnimplementedResetDispatcher) DispatchReset(ctx context.Context, user *entities.User) error {
	return ErrResetNotImplemented
}
