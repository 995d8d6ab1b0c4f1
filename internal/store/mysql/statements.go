package mysql

import (
	"context" // Context for store calls
	"errors"  // Error matching
	"fmt"     // Error wrapping
	"time"    // Timestamps

	"github.com/google/uuid" // UUID generation
	"gorm.io/gorm"           // GORM ORM library
	"gorm.io/gorm/clause"    // Row locking clause

	"fin_api/internal/domain" // Domain models and errors
	"fin_api/internal/store"  // Store interfaces
)

// StatementStore persists statements in the statements table.
// When db is a transaction handle every call runs inside that transaction.
type StatementStore struct {
	db *gorm.DB
}

// NewStatementStore creates a StatementStore backed by db
func NewStatementStore(db *gorm.DB) *StatementStore {
	return &StatementStore{db: db}
}

// Append inserts statement after checking its owner exists
func (s *StatementStore) Append(ctx context.Context, statement *domain.Statement) error {
	db := s.db.WithContext(ctx)
	var owners int64
	if err := db.Model(&domain.User{}).Where("id = ?", statement.UserID).Count(&owners).Error; err != nil {
		return fmt.Errorf("check statement owner: %w", err)
	}
	if owners == 0 {
		return domain.ErrUserNotFound // No such owner
	}
	if statement.ID == "" {
		statement.ID = uuid.NewString()
	}
	statement.CreatedAt = time.Now() // Creation timestamp
	if err := db.Create(statement).Error; err != nil {
		return fmt.Errorf("insert statement: %w", err)
	}
	return nil
}

// ListByUser returns the user's statements oldest first
func (s *StatementStore) ListByUser(ctx context.Context, userID string) ([]domain.Statement, error) {
	statements := make([]domain.Statement, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Order("id asc"). // Stable order for equal timestamps
		Find(&statements).Error
	if err != nil {
		return nil, fmt.Errorf("list statements: %w", err)
	}
	return statements, nil
}

// FindByID fetches a statement by id and rejects it if another user owns it
func (s *StatementStore) FindByID(ctx context.Context, userID, statementID string) (*domain.Statement, error) {
	var statement domain.Statement
	err := s.db.WithContext(ctx).Where("id = ?", statementID).First(&statement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrStatementNotFound // Statement does not exist
	}
	if err != nil {
		return nil, fmt.Errorf("find statement: %w", err)
	}
	if statement.UserID != userID {
		return nil, domain.ErrStatementNotFound
	}
	return &statement, nil
}

// WithUserLock opens a transaction and takes a row lock on the user
// (SELECT ... FOR UPDATE). Concurrent callers for the same user queue on the lock
// until the transaction commits or rolls back.
func (s *StatementStore) WithUserLock(ctx context.Context, userID string, fn func(tx store.StatementStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}). // SELECT ... FOR UPDATE
									Select("id").
									Where("id = ?", userID).
									First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("lock user: %w", err)
		}
		return fn(&StatementStore{db: tx}) // Runs inside the transaction
	})
}

var _ store.StatementStore = (*StatementStore)(nil)
