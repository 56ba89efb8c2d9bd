package service

import "errors"

// Error taxonomy shared by all services. Controllers and the error middleware
// match these with errors.Is.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrAuthenticationFailed = errors.New("invalid credentials")
	ErrDuplicateAccount     = errors.New("account already registered")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrSessionNotFound      = errors.New("session not found")
)
