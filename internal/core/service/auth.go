package service

import (
	"context"
	"log/slog"

	"focustime/internal/core/domain"
	"focustime/internal/core/port"
	"focustime/pkg/auth"
)

type AuthService struct {
	uow    port.UnitOfWork
	tokens *auth.JWT
}

func NewAuthService(uow port.UnitOfWork, tokens *auth.JWT) *AuthService {
	return &AuthService{uow: uow, tokens: tokens}
}

// Register creates an account. Username and email collisions surface as
// AlreadyExistsError before any row is written.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	var user domain.User

	err := s.uow.Do(ctx, func(r port.Repositories) error {
		existing, err := r.Users.GetByEmail(ctx, email)

		if err != nil {
			return err
		}

		if existing != nil {
			return domain.NewAlreadyExistsError("user", "email")
		}

		existing, err = r.Users.GetByUsername(ctx, username)

		if err != nil {
			return err
		}

		if existing != nil {
			return domain.NewAlreadyExistsError("user", "username")
		}

		user, err = domain.NewUser(username, email, password)

		if err != nil {
			return err
		}

		return r.Users.Add(ctx, user)
	})

	if err != nil {
		slog.Warn("user registration failed", "username", username, "error", err)
		return domain.User{}, err
	}

	slog.Info("user registered", "username", username, "user_id", user.Identificator)

	return user, nil
}

// Login verifies the credentials and issues a signed token carrying the user
// identificator.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	var user domain.User

	err := s.uow.Do(ctx, func(r port.Repositories) error {
		found, err := r.Users.GetByEmail(ctx, email)

		if err != nil {
			return err
		}

		if found == nil {
			return domain.NewNotFoundError("user", email)
		}

		if !found.VerifyPassword(password) {
			return &domain.InvalidPasswordError{}
		}

		user = *found

		return nil
	})

	if err != nil {
		slog.Warn("login failed", "email", email, "error", err)
		return domain.User{}, "", err
	}

	token, err := s.tokens.CreateToken(user.Identificator)

	if err != nil {
		slog.Error("token creation failed", "user_id", user.Identificator, "error", err)
		return domain.User{}, "", domain.NewDatabaseError("create token", err)
	}

	slog.Info("login succeeded", "username", user.Username, "user_id", user.Identificator)

	return user, token, nil
}

// GetUser loads a user by identificator, for the auth middleware.
func (s *AuthService) GetUser(ctx context.Context, identificator string) (domain.User, error) {
	var user domain.User

	err := s.uow.Do(ctx, func(r port.Repositories) error {
		found, err := r.Users.GetByIdentificator(ctx, identificator)

		if err != nil {
			return err
		}

		if found == nil {
			return domain.NewNotFoundError("user", identificator)
		}

		user = *found

		return nil
	})

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}
