package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNetworkFailure = errors.New("network error")
	ErrServerRejected = errors.New("server rejected request")
	ErrValidationGap  = errors.New("validation gap")
)

var (
	ErrEmptyEmail         = fmt.Errorf("%w: email is required", ErrValidationGap)
	ErrEmptyPassword      = fmt.Errorf("%w: password is required", ErrValidationGap)
	ErrEmptyCart          = fmt.Errorf("%w: cart is empty", ErrValidationGap)
	ErrIncompleteContact  = fmt.Errorf("%w: name, email and message are required", ErrValidationGap)
	ErrInvalidQuantity    = fmt.Errorf("%w: quantity must be between 1 and 999", ErrValidationGap)
	ErrMissingOrderID     = errors.New("order response carried no identifier")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrUnknownProduct     = fmt.Errorf("%w: product is not in the catalog", ErrValidationGap)
	ErrUnknownView        = errors.New("unknown view")
	ErrUnknownFilter      = errors.New("unknown filter domain")
)

// RemoteError is the failure value returned by the remote catalog client.
type RemoteError struct {
	Kind   error // ErrNetworkFailure or ErrServerRejected
	Status int
	Detail string
}

func (e *RemoteError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Status != 0 {
		return fmt.Sprintf("%v (status %d)", e.Kind, e.Status)
	}
	return e.Kind.Error()
}

func (e *RemoteError) Unwrap() error { return e.Kind }

// UserMessage turns err into text fit to show a visitor: the server detail
// when one was supplied, "Network error" for transport faults, otherwise
// fallback.
func UserMessage(err error, fallback string) string {
	var re *RemoteError
	if errors.As(err, &re) {
		if re.Detail != "" {
			return re.Detail
		}
		if errors.Is(re.Kind, ErrNetworkFailure) {
			return "Network error"
		}
	}
	return fallback
}

// ValidationText strips the sentinel prefix from a validation gap error.
func ValidationText(err error) string {
	msg := err.Error()
	prefix := ErrValidationGap.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
