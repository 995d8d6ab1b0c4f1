package ledger

import (
	"context" // Context for store calls

	"fin_api/internal/domain" // Domain models and errors
	"fin_api/internal/store"  // Store interfaces
)

// Query serves the read side of the ledger
type Query struct {
	users      store.UserStore
	statements store.StatementStore
}

// NewQuery creates a Query
func NewQuery(users store.UserStore, statements store.StatementStore) *Query {
	return &Query{
		users:      users,
		statements: statements,
	}
}

// GetBalance returns the user's full history and the balance derived from it
func (q *Query) GetBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	if _, err := q.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	history, err := q.statements.ListByUser(ctx, userID) // Oldest first
	if err != nil {
		return nil, err
	}
	return &domain.Balance{
		Statements: history,
		Balance:    Balance(history), // Derived, never stored
	}, nil
}

// GetStatement returns one of the user's statements. Statements owned by other
// users are reported as not found.
func (q *Query) GetStatement(ctx context.Context, userID, statementID string) (*domain.Statement, error) {
	if _, err := q.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return q.statements.FindByID(ctx, userID, statementID)
}
