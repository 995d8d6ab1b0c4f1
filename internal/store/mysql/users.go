package mysql

import (
	"context" // Context for store calls
	"errors"  // Error matching
	"fmt"     // Error wrapping
	"strings" // Email normalization

	"github.com/google/uuid" // UUID generation
	"gorm.io/gorm"           // GORM ORM library

	"fin_api/internal/domain" // Domain models and errors
	"fin_api/internal/store"  // Store interfaces
)

// UserStore persists users in the users table
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a UserStore backed by db
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByID fetches a user by primary key
func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// FindByEmail fetches a user by email, case-insensitively
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// Create inserts user; emails are stored lowercased so the unique index is case-insensitive
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Email = strings.ToLower(user.Email) // Normalize email
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrUserAlreadyExists // Unique index on email
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

var _ store.UserStore = (*UserStore)(nil)
