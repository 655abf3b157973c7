package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeBusinessNotFound = "BIZ001"
	ErrCodeCategoryNotFound = "BIZ002"
	ErrCodeForbidden        = "BIZ003"
	ErrCodeAlreadyActive    = "BIZ004"
	ErrCodeAlreadyRejected  = "BIZ005"
	ErrCodeNotRejected      = "BIZ006"
	ErrCodeAlreadyClaimed   = "BIZ007"
	ErrCodeClaimExists      = "BIZ008"
	ErrCodeClaimNotFound    = "BIZ009"
	ErrCodeClaimDecided     = "BIZ010"
	ErrCodeDuplicateName    = "BIZ011"
)

var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrCategoryNotFound = errors.New("category does not exist")
	ErrForbidden        = errors.New("not allowed to perform this action")
	ErrAlreadyActive    = errors.New("business is already active")
	ErrAlreadyRejected  = errors.New("business is already rejected")
	ErrNotRejected      = errors.New("business is not in rejected state")
	ErrAlreadyClaimed   = errors.New("business already has an owner")
	ErrClaimExists      = errors.New("a pending claim already exists")
	ErrClaimNotFound    = errors.New("claim not found")
	ErrClaimDecided     = errors.New("claim has already been decided")
	ErrDuplicateName    = errors.New("business name already exists")
)

// BusinessError custom error type
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error { return e.Err }

func NewBusinessNotFoundError() *BusinessError {
	return &BusinessError{
		Code:    ErrCodeBusinessNotFound,
		Message: "Business not found",
		Err:     ErrBusinessNotFound,
	}
}

func NewCategoryNotFoundError() *BusinessError {
	return &BusinessError{
		Code:    ErrCodeCategoryNotFound,
		Message: "Referenced category does not exist",
		Err:     ErrCategoryNotFound,
	}
}

func NewForbiddenError(action string) *BusinessError {
	return &BusinessError{
		Code:    ErrCodeForbidden,
		Message: fmt.Sprintf("Not allowed to %s", action),
		Err:     ErrForbidden,
	}
}

func NewAlreadyClaimedError() *BusinessError {
	return &BusinessError{
		Code:    ErrCodeAlreadyClaimed,
		Message: "This business already has an owner",
		Err:     ErrAlreadyClaimed,
	}
}

func NewClaimExistsError() *BusinessError {
	return &BusinessError{
		Code:    ErrCodeClaimExists,
		Message: "You already have a pending claim for this business",
		Err:     ErrClaimExists,
	}
}
