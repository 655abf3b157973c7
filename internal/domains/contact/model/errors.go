package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeTicketNotFound = "CON001"
	ErrCodeInvalidStatus  = "CON002"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrInvalidStatus  = errors.New("invalid ticket status")
)

// ContactError custom error type
type ContactError struct {
	Code    string
	Message string
	Err     error
}

func (e *ContactError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ContactError) Unwrap() error { return e.Err }

func NewTicketNotFoundError() *ContactError {
	return &ContactError{
		Code:    ErrCodeTicketNotFound,
		Message: "Ticket not found",
		Err:     ErrTicketNotFound,
	}
}
