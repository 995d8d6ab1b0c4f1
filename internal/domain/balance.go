package domain

import "github.com/shopspring/decimal"

// Balance is the derived view of an account: its history and the sum over it
type Balance struct {
	Statements []Statement     `json:"statement"` // Statements in creation order
	Balance    decimal.Decimal `json:"balance"`   // Deposits minus withdrawals
}
