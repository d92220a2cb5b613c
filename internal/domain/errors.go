package domain

import "fmt"

// ErrorKind enumerates the discriminated error taxonomy of §4.2/§7.
// A ValidationError never panics; every fallible core operation returns
// one of these (or an adapter-level Kind) instead.
type ErrorKind int

const (
	ErrNotEnoughFunds ErrorKind = iota
	ErrRiskPerTradeExceeded
	ErrRiskPerMonthExceeded
	ErrWrongTradeStatus
	ErrStopPriceNotValid
	ErrFillingMustBePositive
	ErrAmountMustBePositive
	ErrOverviewNotFound
	ErrArithmeticOverflow
	ErrBroker
	ErrStorage
	ErrNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNotEnoughFunds:
		return "NotEnoughFunds"
	case ErrRiskPerTradeExceeded:
		return "RiskPerTradeExceeded"
	case ErrRiskPerMonthExceeded:
		return "RiskPerMonthExceeded"
	case ErrWrongTradeStatus:
		return "WrongTradeStatus"
	case ErrStopPriceNotValid:
		return "StopPriceNotValid"
	case ErrFillingMustBePositive:
		return "FillingMustBePositive"
	case ErrAmountMustBePositive:
		return "AmountMustBePositive"
	case ErrOverviewNotFound:
		return "OverviewNotFound"
	case ErrArithmeticOverflow:
		return "ArithmeticOverflow"
	case ErrBroker:
		return "BrokerError"
	case ErrStorage:
		return "StorageError"
	case ErrNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// ValidationError is the single discriminated error type carrying the
// §4.2/§7 taxonomy, with a human-readable message that references the
// offending numeric values. It is the only error type the validators in
// internal/risk and the lifecycle in internal/lifecycle construct.
type ValidationError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause, if any, to errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewError builds a ValidationError with no wrapped cause.
func NewError(kind ErrorKind, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError builds a ValidationError around an adapter-level failure.
func WrapError(kind ErrorKind, cause error, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsKind reports whether err is a *ValidationError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	ve, ok := err.(*ValidationError)
	return ok && ve.Kind == kind
}
