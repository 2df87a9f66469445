package repositories

import (
	"context"

	"account-server/entities"
)

// UserRepository persists accounts. Implementations enforce email uniqueness
// and the one-supervisor-per-company rule themselves and report violations as
// ErrEmailTaken / ErrSupervisorTaken from Create.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// SupervisorExists matches companyName case-insensitively.
	SupervisorExists(ctx context.Context, companyName string) (bool, error)
}
