// Package metrics holds the Prometheus collectors for the statement ledger.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"fin_api/internal/domain"
)

var (
	statementsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "finapi",
		Name:      "statements_created_total",
		Help:      "Statements appended to the ledger, by operation type.",
	}, []string{"type"})

	statementsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "finapi",
		Name:      "statements_rejected_total",
		Help:      "Deposit and withdraw requests that did not append a statement, by reason.",
	}, []string{"type", "reason"})
)

// StatementCreated counts an appended statement
func StatementCreated(op domain.OperationType) {
	statementsCreated.WithLabelValues(string(op)).Inc()
}

// StatementRejected counts a failed deposit or withdraw
func StatementRejected(op domain.OperationType, err error) {
	statementsRejected.WithLabelValues(string(op), reason(err)).Inc()
}

func reason(err error) string {
	switch domain.KindOf(err) {
	case domain.KindUserNotFound:
		return "user_not_found"
	case domain.KindInsufficientFunds:
		return "insufficient_funds"
	case domain.KindInvalidAmount:
		return "invalid_amount"
	case domain.KindInvalidOperation:
		return "invalid_operation"
	default:
		return "internal"
	}
}
