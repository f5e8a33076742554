package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrAccountNotFound     = errors.New("account not found")
	ErrDuplicateAccount    = errors.New("email already in use")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrExternalCallFailure = errors.New("external call failed")
)
