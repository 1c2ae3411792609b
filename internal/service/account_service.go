package service

import (
	"context"
	"fmt"

	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/auth"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/models"
	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/repository"
	"github.com/rs/zerolog"
)

// AccountService handles registration and login
type AccountService struct {
	users repository.UserRepository
	log   zerolog.Logger
}

// NewAccountService creates a new account service
func NewAccountService(users repository.UserRepository, log zerolog.Logger) *AccountService {
	return &AccountService{
		users: users,
		log:   log.With().Str("component", "account_service").Logger(),
	}
}

// Register creates a new user with a hashed password. The email must not be
// taken; the caller logs the returned user in right away.
func (s *AccountService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can slip past the existence check;
		// the unique constraint reports it as the same duplicate.
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Msg("User registered")
	return user, nil
}

// Authenticate verifies an email/password pair and returns the matching user.
// Unknown emails and wrong passwords fail with distinct errors; the login
// page surfaces both messages verbatim.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrEmailNotFound
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrPasswordIncorrect
	}

	return user, nil
}
