package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType is the kind of balance change a statement records
type OperationType string

const (
	OperationDeposit  OperationType = "deposit"  // Credit
	OperationWithdraw OperationType = "withdraw" // Debit
)

// Valid reports whether t is an operation the ledger accepts
func (t OperationType) Valid() bool {
	return t == OperationDeposit || t == OperationWithdraw
}

// Amounts are stored as decimal(12,2)
const AmountScale = 2 // Digits after the decimal point

// MaxAmount is the largest amount a statement column holds
var MaxAmount = decimal.RequireFromString("9999999999.99")

// ValidAmount reports whether amount is positive, has at most AmountScale decimal
// places and fits the statement column
func ValidAmount(amount decimal.Decimal) bool {
	if !amount.IsPositive() || amount.GreaterThan(MaxAmount) {
		return false
	}
	return amount.Equal(amount.Round(AmountScale)) // Rounding would change the stored value
}

// Statement Model
type Statement struct {
	ID          string          `gorm:"primaryKey;type:char(36)" json:"id"`                // UUID primary key
	UserID      string          `gorm:"type:char(36);index;not null" json:"user_id"`       // Owning user
	Type        OperationType   `gorm:"type:varchar(16);not null" json:"type"`             // deposit or withdraw
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`         // Always positive
	Description string          `gorm:"size:255" json:"description"`                       // Free text
	CreatedAt   time.Time       `gorm:"type:datetime(6);index;not null" json:"created_at"` // Timestamp of creation
}
