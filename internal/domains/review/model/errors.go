package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeReviewNotFound  = "REV001"
	ErrCodeDuplicateReview = "REV002"
	ErrCodeForbidden       = "REV003"
	ErrCodeNotReviewable   = "REV004"
	ErrCodeOwnBusiness     = "REV005"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("user has already reviewed this business")
	ErrForbidden       = errors.New("not allowed to perform this action")
	ErrNotReviewable   = errors.New("business cannot be reviewed")
	ErrOwnBusiness     = errors.New("owners cannot review their own business")
)

// ReviewError custom error type
type ReviewError struct {
	Code    string
	Message string
	Err     error
}

func (e *ReviewError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ReviewError) Unwrap() error { return e.Err }

func NewReviewNotFoundError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeReviewNotFound,
		Message: "Review not found",
		Err:     ErrReviewNotFound,
	}
}

func NewDuplicateReviewError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeDuplicateReview,
		Message: "You have already reviewed this business",
		Err:     ErrDuplicateReview,
	}
}

func NewForbiddenError(action string) *ReviewError {
	return &ReviewError{
		Code:    ErrCodeForbidden,
		Message: fmt.Sprintf("Not allowed to %s", action),
		Err:     ErrForbidden,
	}
}

func NewNotReviewableError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeNotReviewable,
		Message: "This business is not accepting reviews",
		Err:     ErrNotReviewable,
	}
}

func NewOwnBusinessError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeOwnBusiness,
		Message: "You cannot review your own business",
		Err:     ErrOwnBusiness,
	}
}
