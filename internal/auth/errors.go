package auth

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrInvalidUsername = errors.New("invalid or missing username")
	ErrInvalidEmail    = errors.New("invalid or missing email")
	ErrInvalidUserType = errors.New("invalid or missing user type")
	ErrInvalidPass     = errors.New("invalid or missing password")
	ErrUserExists      = errors.New("the username already exists")
	ErrEmailExists     = errors.New("email is already registered")
	ErrWeakPass        = errors.New("password needs at least 8 characters with upper and lower case, a digit and a symbol")
	ErrUserNotFound    = errors.New("user not found")
	ErrInactiveUser    = errors.New("account is inactive")
	ErrEmptyCreds      = errors.New("username and password cannot be empty")
	ErrUnauthorized    = errors.New("unauthorized")
)
