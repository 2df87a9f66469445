package repositories

import (
	"context"
	"sync"
	"time"

	"account-server/entities"

	"github.com/google/uuid"
)

type userMemRepository struct {
	mu          sync.RWMutex
	byEmail     map[string]entities.User // email -> user
	supervisors map[string]string        // company key -> user id
}

// NewUserMemRepository returns a process-local store, used for development
// and tests. Uniqueness checks and the insert happen under one lock.
func NewUserMemRepository() UserRepository {
	return &userMemRepository{
		byEmail:     make(map[string]entities.User),
		supervisors: make(map[string]string),
	}
}

func (r *userMemRepository) Create(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return ErrEmailTaken
	}
	key := user.CompanyKey()
	if user.Role == entities.RoleSupervisor {
		if _, exists := r.supervisors[key]; exists {
			return ErrSupervisorTaken
		}
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.byEmail[user.Email] = *user
	if user.Role == entities.RoleSupervisor {
		r.supervisors[key] = user.ID
	}
	return nil
}

func (r *userMemRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	// copy so callers cannot mutate stored state
	return &user, nil
}

func (r *userMemRepository) SupervisorExists(ctx context.Context, companyName string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.supervisors[entities.CompanyKey(companyName)]
	return ok, nil
}
