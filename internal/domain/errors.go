package domain

import "errors"

// ErrorKind identifies a failure the caller is expected to handle
type ErrorKind int

const (
	KindUnknown                  ErrorKind = iota // Not a domain error
	KindUserNotFound                              // User id does not resolve
	KindStatementNotFound                         // Statement missing or owned by someone else
	KindInsufficientFunds                         // Withdraw exceeds current balance
	KindInvalidAmount                             // Amount is not positive or does not fit decimal(12,2)
	KindInvalidOperation                          // Operation type is not deposit or withdraw
	KindMissingCredential                         // No bearer token on the request
	KindInvalidCredential                         // Bearer token failed verification
	KindUserAlreadyExists                         // Email already registered
	KindIncorrectEmailOrPassword                  // Login rejected
)

// Error is a domain failure tagged with its kind
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrUserNotFound             = &Error{Kind: KindUserNotFound, Message: "User not found"}
	ErrStatementNotFound        = &Error{Kind: KindStatementNotFound, Message: "Statement not found"}
	ErrInsufficientFunds        = &Error{Kind: KindInsufficientFunds, Message: "Insufficient funds"}
	ErrInvalidAmount            = &Error{Kind: KindInvalidAmount, Message: "Invalid amount"}
	ErrInvalidOperation         = &Error{Kind: KindInvalidOperation, Message: "Invalid operation type"}
	ErrMissingCredential        = &Error{Kind: KindMissingCredential, Message: "JWT token is missing!"}
	ErrInvalidCredential        = &Error{Kind: KindInvalidCredential, Message: "JWT invalid token!"}
	ErrUserAlreadyExists        = &Error{Kind: KindUserAlreadyExists, Message: "User already exists"}
	ErrIncorrectEmailOrPassword = &Error{Kind: KindIncorrectEmailOrPassword, Message: "Incorrect email or password"}
)

// KindOf returns the kind of the first domain error in err's chain
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
