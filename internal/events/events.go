// Package events announces committed statements to other services.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fin_api/internal/domain"
)

// StatementCreated is emitted once a statement has been durably appended
type StatementCreated struct {
	StatementID string               `json:"statement_id"`
	UserID      string               `json:"user_id"`
	Type        domain.OperationType `json:"type"`
	Amount      decimal.Decimal      `json:"amount"`
	OccurredAt  time.Time            `json:"occurred_at"`
}

// NewStatementCreated builds the event for s
func NewStatementCreated(s *domain.Statement) StatementCreated {
	return StatementCreated{
		StatementID: s.ID,
		UserID:      s.UserID,
		Type:        s.Type,
		Amount:      s.Amount,
		OccurredAt:  s.CreatedAt,
	}
}

// Publisher delivers statement events
type Publisher interface {
	Publish(ctx context.Context, event StatementCreated) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, StatementCreated) error { return nil }
func (NopPublisher) Close() error                                    { return nil }

var _ Publisher = NopPublisher{}
