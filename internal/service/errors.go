package service

import "errors"

var (
	ErrValidation         = errors.New("validation")
	ErrNotFound           = errors.New("not found")
	ErrUserExists         = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
	// ErrConflict reports a cart mutation that kept losing its
	// compare-and-set race after retries.
	ErrConflict = errors.New("cart update conflict")
)
