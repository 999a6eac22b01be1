package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const (
	// BcryptCost is the cost factor for bcrypt password hashing.
	BcryptCost = 12

	MinPasswordLength = 8
	// bcrypt truncates input beyond 72 bytes.
	MaxPasswordLength = 72
)

type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type CreateParams struct {
	Username     string
	Email        string
	PasswordHash string
}

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// FieldError reports a validation failure for a single registration field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "users").Logger(),
	}
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
}

// Register creates a new user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	params.Username = strings.TrimSpace(params.Username)
	params.Email = strings.TrimSpace(params.Email)

	if params.Username == "" {
		return nil, FieldError{Field: "username", Message: "must not be empty"}
	}
	if params.Email != "" {
		if _, err := mail.ParseAddress(params.Email); err != nil {
			return nil, FieldError{Field: "email", Message: "must be a valid email address"}
		}
	}
	if len(params.Password) < MinPasswordLength {
		return nil, FieldError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", MinPasswordLength)}
	}
	if len(params.Password) > MaxPasswordLength {
		return nil, FieldError{Field: "password", Message: fmt.Sprintf("must be at most %d characters", MaxPasswordLength)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, CreateParams{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords both return ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
