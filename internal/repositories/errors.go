package repositories

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrTransferNotFound  = errors.New("transfer not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicatePhone    = errors.New("phone already registered")
	ErrDatabaseOperation = errors.New("database operation failed")
)
