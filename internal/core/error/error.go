package errx

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Kind classifies an AppError so callers can branch without string matching.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidQuantity
	KindInsufficientStock
	KindEmptyCart
	KindInsufficientFunds
	KindNotFound
	KindInvalidInput
	KindStorage
)

// String returns the string representation of the kind, e.g. "empty_cart".
func (k Kind) String() string {
	switch k {
	case KindInvalidQuantity:
		return "invalid_quantity"
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindEmptyCart:
		return "empty_cart"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindStorage:
		return "storage"
	default:
		return "internal"
	}
}

var (
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("empty cart")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrStorage           = errors.New("storage failure")
)

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidQuantity:
		return ErrInvalidQuantity
	case KindInsufficientStock:
		return ErrInsufficientStock
	case KindEmptyCart:
		return ErrEmptyCart
	case KindInsufficientFunds:
		return ErrInsufficientFunds
	case KindNotFound:
		return ErrNotFound
	case KindInvalidInput:
		return ErrInvalidInput
	case KindStorage:
		return ErrStorage
	default:
		return nil
	}
}

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
)

// AppError wraps an underlying error with a kind and a message that is safe
// to show to the shopper.
type AppError struct {
	Err     error
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind as well as anything in the
// wrapped chain.
func (e *AppError) Is(target error) bool {
	if s := e.Kind.sentinel(); s != nil && target == s {
		return true
	}
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	if e.Err != nil && errors.As(e.Err, target) {
		return true
	}
	return false
}

// New creates a new AppError with the provided information.
func New(err error, kind Kind, message string) *AppError {
	return &AppError{
		Err:     err,
		Kind:    kind,
		Message: message,
	}
}

// Newf creates an AppError of the given kind with a formatted message and no
// wrapped cause.
func Newf(kind Kind, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first AppError in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Message returns the shopper-facing text for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return err.Error()
}

// WrapRedis maps Redis errors to AppError with a consistent kind and message.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return New(err, KindNotFound, RedisNotFoundMessage)
	}
	return New(err, KindStorage, RedisErrorMessage)
}
