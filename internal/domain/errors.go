package domain

import "errors"

// Error kinds. Match with errors.Is.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrPersistence = errors.New("persistence failure")
)

// Messages surfaced to API callers.
const (
	MsgQuantityPositive   = "Quantity must be at least 1"
	MsgQuantityTooLarge   = "Quantity must be at most 50"
	MsgProductIDRequired  = "Product id is required"
	MsgProductNotFound    = "Product not found"
	MsgNotInCart          = "Product not found in cart"
	MsgNotInSaved         = "Product not found in saved items"
	MsgNotInWishlist      = "This product is not present in your wishlist"
	MsgAlreadyInWishlist  = "Product already in wishlist"
	MsgStaleCart          = "Cart was modified concurrently, please retry"
	MsgStaleWishlist      = "Wishlist was modified concurrently, please retry"
	MsgEmailTaken         = "Email is already registered"
	MsgStorageUnavailable = "Storage is unavailable"
	MsgInvalidCredentials = "Invalid email or password"
	MsgLoginRequired      = "Please login to access this resource"
)

// Error pairs a kind with a caller-facing message and an optional cause.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func Validation(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }
func NotFound(msg string) error   { return &Error{Kind: ErrNotFound, Message: msg} }
func Conflict(msg string) error   { return &Error{Kind: ErrConflict, Message: msg} }

// Persistence wraps a storage failure. A nil cause yields nil.
func Persistence(cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: ErrPersistence, Message: MsgStorageUnavailable, Cause: cause}
}

// PublicMessage returns the text safe to show an API caller.
func PublicMessage(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "Something went wrong. Please try again."
}
