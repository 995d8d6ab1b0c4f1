package ledger

import (
	"context" // Context for store calls

	"github.com/shopspring/decimal" // Decimal amounts
	"github.com/sirupsen/logrus"    // Logging library

	"fin_api/internal/domain"  // Domain models and errors
	"fin_api/internal/events"  // Statement events
	"fin_api/internal/metrics" // Prometheus counters
	"fin_api/internal/store"   // Store interfaces
)

// Engine appends deposits and withdrawals to the statement history
type Engine struct {
	users      store.UserStore
	statements store.StatementStore
	publisher  events.Publisher
}

// NewEngine creates an Engine. A nil publisher disables statement events.
func NewEngine(users store.UserStore, statements store.StatementStore, publisher events.Publisher) *Engine {
	if publisher == nil {
		publisher = events.NopPublisher{} // Events disabled
	}
	return &Engine{
		users:      users,
		statements: statements,
		publisher:  publisher,
	}
}

// CreateStatement dispatches to Deposit or Withdraw
func (e *Engine) CreateStatement(ctx context.Context, userID string, op domain.OperationType, amount decimal.Decimal, description string) (*domain.Statement, error) {
	switch op {
	case domain.OperationDeposit:
		return e.Deposit(ctx, userID, amount, description)
	case domain.OperationWithdraw:
		return e.Withdraw(ctx, userID, amount, description)
	default:
		metrics.StatementRejected(op, domain.ErrInvalidOperation)
		return nil, domain.ErrInvalidOperation
	}
}

// Deposit credits amount to the user's account. It never fails on balance.
func (e *Engine) Deposit(ctx context.Context, userID string, amount decimal.Decimal, description string) (*domain.Statement, error) {
	statement, err := e.prepare(ctx, userID, domain.OperationDeposit, amount, description)
	if err != nil {
		return nil, err
	}
	if err := e.statements.Append(ctx, statement); err != nil { // Deposits need no lock
		metrics.StatementRejected(domain.OperationDeposit, err)
		return nil, err
	}
	e.committed(ctx, statement)
	return statement, nil
}

// Withdraw debits amount if the current balance covers it.
// Balance read and append happen under the user's lock, so concurrent withdrawals
// can never spend the same funds twice.
func (e *Engine) Withdraw(ctx context.Context, userID string, amount decimal.Decimal, description string) (*domain.Statement, error) {
	statement, err := e.prepare(ctx, userID, domain.OperationWithdraw, amount, description)
	if err != nil {
		return nil, err
	}
	err = e.statements.WithUserLock(ctx, userID, func(tx store.StatementStore) error {
		history, err := tx.ListByUser(ctx, userID) // History as of the lock
		if err != nil {
			return err
		}
		if amount.GreaterThan(Balance(history)) {
			return domain.ErrInsufficientFunds // Nothing appended
		}
		return tx.Append(ctx, statement) // Still holding the lock
	})
	if err != nil {
		metrics.StatementRejected(domain.OperationWithdraw, err)
		return nil, err
	}
	e.committed(ctx, statement)
	return statement, nil
}

// prepare validates the request and builds the statement to append
func (e *Engine) prepare(ctx context.Context, userID string, op domain.OperationType, amount decimal.Decimal, description string) (*domain.Statement, error) {
	if !domain.ValidAmount(amount) {
		metrics.StatementRejected(op, domain.ErrInvalidAmount)
		return nil, domain.ErrInvalidAmount
	}
	if _, err := e.users.FindByID(ctx, userID); err != nil { // Owner must exist
		metrics.StatementRejected(op, err)
		return nil, err
	}
	return &domain.Statement{
		UserID:      userID,
		Type:        op,
		Amount:      amount,
		Description: description,
	}, nil
}

// committed runs the post-append side effects. Failures here never undo the append.
func (e *Engine) committed(ctx context.Context, statement *domain.Statement) {
	metrics.StatementCreated(statement.Type) // Count the append
	if err := e.publisher.Publish(ctx, events.NewStatementCreated(statement)); err != nil {
		logrus.WithFields(logrus.Fields{
			"statement_id": statement.ID,
			"user_id":      statement.UserID,
			"error":        err.Error(),
		}).Error("Failed to publish statement event")
	}
}
