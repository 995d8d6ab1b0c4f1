package memory

import (
	"context" // Context for store calls
	"sync"    // Mutexes
	"time"    // Timestamps

	"github.com/google/uuid" // UUID generation

	"fin_api/internal/domain" // Domain models and errors
	"fin_api/internal/store"  // Store interfaces
)

// StatementStore is an in-memory store.StatementStore.
//
// History is kept per user in insertion order. WithUserLock hands out one mutex per
// user, so check-then-append sequences on different users never contend.
type StatementStore struct {
	users store.UserStore

	mu     sync.RWMutex                  // guards byUser and byID
	byUser map[string][]domain.Statement // user id -> history
	byID   map[string]domain.Statement   // statement id -> statement

	locks   map[string]*sync.Mutex // per-user critical sections
	locksMu sync.Mutex             // guards locks
}

// NewStatementStore creates an empty StatementStore that validates owners against users
func NewStatementStore(users store.UserStore) *StatementStore {
	return &StatementStore{
		users:  users,
		byUser: make(map[string][]domain.Statement),
		byID:   make(map[string]domain.Statement),
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *StatementStore) userLock(userID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	if _, exists := s.locks[userID]; !exists {
		s.locks[userID] = &sync.Mutex{} // First use for this user
	}
	return s.locks[userID]
}

// Append saves statement at the end of its owner's history
func (s *StatementStore) Append(ctx context.Context, statement *domain.Statement) error {
	if _, err := s.users.FindByID(ctx, statement.UserID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if statement.ID == "" {
		statement.ID = uuid.NewString()
	}
	statement.CreatedAt = time.Now() // Creation timestamp
	s.byUser[statement.UserID] = append(s.byUser[statement.UserID], *statement)
	s.byID[statement.ID] = *statement
	return nil
}

// ListByUser returns a copy of the user's history so callers can't modify it
func (s *StatementStore) ListByUser(ctx context.Context, userID string) ([]domain.Statement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.byUser[userID]
	copied := make([]domain.Statement, len(history))
	copy(copied, history) // Detach from the store
	return copied, nil
}

// FindByID looks a statement up by id, then checks it belongs to userID
func (s *StatementStore) FindByID(ctx context.Context, userID, statementID string) (*domain.Statement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	statement, ok := s.byID[statementID]
	if !ok {
		return nil, domain.ErrStatementNotFound
	}
	if statement.UserID != userID {
		return nil, domain.ErrStatementNotFound // Hide other users' statements
	}
	return &statement, nil
}

// WithUserLock serializes fn against every other WithUserLock call for userID
func (s *StatementStore) WithUserLock(ctx context.Context, userID string, fn func(tx store.StatementStore) error) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err // Gave up while waiting
	}
	return fn(s)
}

// Compile-time check: ensure StatementStore implements store.StatementStore
var _ store.StatementStore = (*StatementStore)(nil)
