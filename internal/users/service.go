// Package users registers account holders and issues their session tokens.
package users

import (
	"context" // Context for store calls
	"fmt"     // Error wrapping
	"strings" // Email normalization
	"time"    // Timestamps

	"golang.org/x/crypto/bcrypt" // Password hashing

	"fin_api/internal/domain" // Domain models and errors
	"fin_api/internal/store"  // Store interfaces
	"fin_api/internal/utils"  // JWT helpers
)

// Session is the result of a successful login
type Session struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Service implements registration, login and profile lookup
type Service struct {
	users      store.UserStore
	jwtSecret  string
	jwtTTL     time.Duration
	bcryptCost int
}

// NewService creates a Service
func NewService(users store.UserStore, jwtSecret string, jwtTTL time.Duration, bcryptCost int) *Service {
	return &Service{
		users:      users,
		jwtSecret:  jwtSecret,
		jwtTTL:     jwtTTL,
		bcryptCost: bcryptCost,
	}
}

// Create registers a new user with a hashed password
func (s *Service) Create(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email)) // Normalize email
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrUserAlreadyExists // Email taken
	}
	if domain.KindOf(err) != domain.KindUserNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost) // Hash the password
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks the credentials and returns the user with a signed token.
// Unknown email and wrong password fail the same way.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if domain.KindOf(err) == domain.KindUserNotFound {
		return nil, domain.ErrIncorrectEmailOrPassword
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrIncorrectEmailOrPassword // Wrong password
	}
	token, err := utils.GenerateJWT(user.ID, user.Email, s.jwtSecret, s.jwtTTL) // Subject is the user ID
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Session{User: user, Token: token}, nil
}

// Profile returns the user with the given id
func (s *Service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}
