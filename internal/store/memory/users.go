package memory

import (
	"context" // Context for store calls
	"strings" // Email normalization
	"sync"    // Mutexes
	"time"    // Timestamps

	"github.com/google/uuid" // UUID generation

	"fin_api/internal/domain" // Domain models and errors
	"fin_api/internal/store"  // Store interfaces
)

// UserStore keeps users in maps guarded by a RWMutex
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string // lowercased email -> id
}

// NewUserStore creates an empty UserStore
func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

// FindByID returns a copy of the user with the given id
func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

// FindByEmail returns a copy of the user registered with email
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user := s.byID[id]
	return &user, nil
}

// Create stores user, filling in ID and timestamps
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, exists := s.byEmail[key]; exists {
		return domain.ErrUserAlreadyExists // Email taken
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.byID[user.ID] = *user
	s.byEmail[key] = user.ID // Index by email
	return nil
}

// Compile-time check: ensure UserStore implements store.UserStore
var _ store.UserStore = (*UserStore)(nil)
