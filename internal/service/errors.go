package service

import "errors"

var (
	ErrValidation         = errors.New("validation")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateInCart    = errors.New("book already in cart")
	ErrNotFound           = errors.New("not found")
)
