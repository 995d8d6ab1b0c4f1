// Package ledger derives balances from statement history and enforces the
// deposit and withdraw rules against it.
package ledger

import (
	"github.com/shopspring/decimal" // Decimal amounts

	"fin_api/internal/domain" // Domain models and errors
)

// Balance sums a user's statements: deposits add, withdrawals subtract.
// The result does not depend on the order of statements.
func Balance(statements []domain.Statement) decimal.Decimal {
	total := decimal.Zero
	for _, s := range statements {
		switch s.Type {
		case domain.OperationDeposit:
			total = total.Add(s.Amount)
		case domain.OperationWithdraw:
			total = total.Sub(s.Amount)
		}
	}
	return total
}
