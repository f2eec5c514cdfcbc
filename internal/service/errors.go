package service

import "errors"

// Operation failures are deterministic functions of current state and inputs;
// every one of them leaves state untouched.
var (
	ErrOwnerOnly          = errors.New("owner only")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrNotFound           = errors.New("not found")
	ErrInsufficientTokens = errors.New("insufficient tokens")
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrNotVerified        = errors.New("property not verified")
	ErrAlreadyVerified    = errors.New("property already verified")

	// ErrInsufficientFunds is returned by the funds primitive when a debit
	// would overdraw the payer.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// ErrorCode maps a service error to its stable numeric code, for clients that
// switch on codes rather than messages. Unknown errors map to 0.
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrOwnerOnly):
		return 100
	case errors.Is(err, ErrNotAuthorized):
		return 101
	case errors.Is(err, ErrNotFound):
		return 102
	case errors.Is(err, ErrInsufficientTokens):
		return 103
	case errors.Is(err, ErrInsufficientFunds):
		return 104
	case errors.Is(err, ErrInvalidParameter):
		return 105
	case errors.Is(err, ErrNotVerified):
		return 106
	case errors.Is(err, ErrAlreadyVerified):
		return 107
	}
	return 0
}
