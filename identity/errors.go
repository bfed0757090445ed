package identity

import "errors"

var (
	ErrValidation         = errors.New("invalid input")
	ErrDuplicateAccount   = errors.New("email already registered")
	ErrMissingCredentials = errors.New("provide email and password")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountPending     = errors.New("account awaiting admin approval")
	ErrAccountBlocked     = errors.New("your account is blocked, contact admin")
	ErrNotAuthenticated   = errors.New("not logged in")
	ErrLastAdmin          = errors.New("cannot delete the last admin account")
	ErrAccountNotFound    = errors.New("user not found")
)
