package repositories

import (
	"context"
	"errors"

	"account-server/db"
	"account-server/entities"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

type userPgRepository struct {
	db db.Database
}

func NewUserPgRepository(database db.Database) UserRepository {
	return &userPgRepository{db: database}
}

func (r *userPgRepository) Create(ctx context.Context, user *entities.User) error {
	err := r.db.GetDB().WithContext(ctx).Create(user).Error
	return translatePgError(err)
}

func (r *userPgRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userPgRepository) SupervisorExists(ctx context.Context, companyName string) (bool, error) {
	var count int64
	err := r.db.GetDB().WithContext(ctx).
		Model(&entities.User{}).
		Where("lower(company_name) = lower(?) AND role = ?", companyName, entities.RoleSupervisor).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// translatePgError maps unique violations to the repository sentinels by
// constraint name; anything else is returned unchanged.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case db.SupervisorIndexName:
		return ErrSupervisorTaken
	case db.EmailIndexName:
		return ErrEmailTaken
	}
	return err
}
