package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"account-server/auth"
	"account-server/entities"
	"account-server/repositories"
	"account-server/services"
)

// ProfilePicture is an uploaded image that has not been stored yet. Store
// returns the stored file name; Discard removes it again.
type ProfilePicture interface {
	Store() (string, error)
	Discard()
}

type SignupInput struct {
	FullName    string
	Email       string
	Password    string
	Role        entities.Role
	CompanyName string
	ProfilePic  ProfilePicture
}

// AuthResult is a user together with a freshly issued bearer token.
type AuthResult struct {
	Token string
	User  *entities.User
}

type AccountUseCase struct {
	users  repositories.UserRepository
	hasher auth.PasswordHasher
	tokens auth.TokenIssuer
	resets services.ResetDispatcher
}

func NewAccountUseCase(users repositories.UserRepository, hasher auth.PasswordHasher, tokens auth.TokenIssuer, resets services.ResetDispatcher) *AccountUseCase {
	if resets == nil {
		resets = services.UnimplementedResetDispatcher{}
	}
	return &AccountUseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		resets: resets,
	}
}

// Login verifies the credentials and issues a token for the account.
func (uc *AccountUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := uc.hasher.Verify(password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidPassword
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Signup registers a new account. Guards run in order and the first failing
// one decides the error; the store's own uniqueness constraints back up the
// pre-insert reads.
func (uc *AccountUseCase) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	_, err := uc.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, ErrEmailRegistered
	case !errors.Is(err, repositories.ErrUserNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	if in.Role == entities.RoleSupervisor {
		exists, err := uc.users.SupervisorExists(ctx, in.CompanyName)
		if err != nil {
			return nil, fmt.Errorf("find supervisor: %w", err)
		}
		if exists {
			return nil, ErrSupervisorExists
		}
	}

	if strings.TrimSpace(in.FullName) == "" {
		return nil, &ValidationError{Message: "Full name is required"}
	}
	if err := ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if !in.Role.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("%s is not a valid role", in.Role)}
	}
	if err := ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	profilePic := ""
	if in.ProfilePic != nil {
		name, err := in.ProfilePic.Store()
		if err != nil {
			return nil, fmt.Errorf("store profile picture: %w", err)
		}
		profilePic = "/uploads/" + name
	}

	user := &entities.User{
		FullName:    in.FullName,
		Email:       in.Email,
		Password:    hash,
		Role:        in.Role,
		CompanyName: in.CompanyName,
		ProfilePic:  profilePic,
		Profession:  "",
	}

	if err := uc.users.Create(ctx, user); err != nil {
		if in.ProfilePic != nil {
			in.ProfilePic.Discard()
		}
		switch {
		case errors.Is(err, repositories.ErrEmailTaken):
			return nil, ErrEmailRegistered
		case errors.Is(err, repositories.ErrSupervisorTaken):
			return nil, ErrSupervisorExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	slog.InfoContext(ctx, "user created", "op", "Signup", "user_id", user.ID, "role", user.Role)

	return &AuthResult{Token: token, User: user}, nil
}

// ForgotPassword hands a reset request for an existing account to the reset
// dispatcher. A dispatcher that is not implemented yet is logged, not surfaced.
func (uc *AccountUseCase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.users.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	err = uc.resets.DispatchReset(ctx, user)
	if errors.Is(err, services.ErrResetNotImplemented) {
		slog.WarnContext(ctx, "password reset requested but dispatch is not implemented", "op", "ForgotPassword", "user_id", user.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("dispatch reset: %w", err)
	}
	return nil
}
