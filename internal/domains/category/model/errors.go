package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeCategoryNotFound = "CAT001"
	ErrCodeDuplicateName    = "CAT002"
	ErrCodeValidation       = "CAT003"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateName    = errors.New("category name already exists")
)

// CategoryError custom error type
type CategoryError struct {
	Code    string
	Message string
	Err     error
}

func (e *CategoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CategoryError) Unwrap() error { return e.Err }

func NewCategoryNotFoundError() *CategoryError {
	return &CategoryError{
		Code:    ErrCodeCategoryNotFound,
		Message: "Category not found",
		Err:     ErrCategoryNotFound,
	}
}

func NewDuplicateNameError(name string) *CategoryError {
	return &CategoryError{
		Code:    ErrCodeDuplicateName,
		Message: fmt.Sprintf("A category named %q already exists", name),
		Err:     ErrDuplicateName,
	}
}
