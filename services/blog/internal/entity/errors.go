package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is reserved; posts are never updated or deleted.
	ErrNotFound              = errors.New("not found")
	ErrInvalidQueryParameter = errors.New("invalid query parameter")
	ErrInvalidCredentials    = errors.New("invalid credentials")
)

// ValidationError carries every violated rule, never a partial list.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// StorageError wraps a failure of the backing store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// UploadError is a client-correctable upload rejection.
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string {
	return e.Message
}
