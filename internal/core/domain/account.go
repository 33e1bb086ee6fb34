package domain

import (
	"errors"
	"fmt"
	"time"
)

// Account is a customer record held by the catalog backend. PasswordHash is
// empty for accounts created through the email-only login.
type Account struct {
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// User returns the session view of the account.
func (a Account) User() User {
	return User{Email: a.Email, Name: a.Name}
}

// PlacedOrder is an order accepted and stored by the catalog backend.
type PlacedOrder struct {
	ID string
	Order
	CreatedAt time.Time
}

// ContactMessage is a stored contact form submission.
type ContactMessage struct {
	Contact
	CreatedAt time.Time
}

var (
	ErrAccountExists      = errors.New("an account with this email already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = fmt.Errorf("%w: password must be at least 6 characters", ErrValidationGap)
	ErrOrderIncomplete    = fmt.Errorf("%w: order needs an email and at least one item", ErrValidationGap)
)
