// Package store defines the persistence contracts for users and statements.
package store

import (
	"context" // Context for store calls

	"fin_api/internal/domain" // Domain models and errors
)

// UserStore resolves and registers account holders
type UserStore interface {
	// FindByID returns domain.ErrUserNotFound when no user has the id
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no user has the email
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create assigns the id and fails with domain.ErrUserAlreadyExists on a duplicate email
	Create(ctx context.Context, user *domain.User) error
}

// StatementStore is the append-only statement history
type StatementStore interface {
	// Append assigns id and created_at and persists the statement.
	// Fails with domain.ErrUserNotFound if the owner does not exist.
	Append(ctx context.Context, statement *domain.Statement) error
	// ListByUser returns the user's statements in creation order
	ListByUser(ctx context.Context, userID string) ([]domain.Statement, error)
	// FindByID returns domain.ErrStatementNotFound when the statement is missing
	// or belongs to a different user
	FindByID(ctx context.Context, userID, statementID string) (*domain.Statement, error)
	// WithUserLock runs fn while holding exclusive access to userID's history.
	// Appends made through the store passed to fn are committed only if fn returns nil.
	WithUserLock(ctx context.Context, userID string, fn func(tx StatementStore) error) error
}
