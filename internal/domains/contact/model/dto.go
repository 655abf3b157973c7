package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// SubmitTicketRequest is the public contact-form payload.
type SubmitTicketRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (r *SubmitTicketRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

func (r SubmitTicketRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(2, 100),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat,
		),
		validation.Field(&r.Subject,
			validation.Required.Error("subject is required"),
			validation.Length(2, 200),
		),
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
			validation.Length(10, 5000),
		),
	)
}

// UpdateTicketStatusRequest is the admin status transition.
type UpdateTicketStatusRequest struct {
	Status    string  `json:"status"`
	AdminNote *string `json:"admin_note"`
}

func (r UpdateTicketStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required.Error("status is required"),
			validation.In(StatusNew, StatusRead, StatusInProgress, StatusResolved).
				Error("unknown status"),
		),
	)
}

// ListTicketsResponse is the paginated admin inbox.
type ListTicketsResponse struct {
	Tickets []*Ticket `json:"tickets"`
	Total   int       `json:"total"`
	Page    int       `json:"page"`
	Pages   int       `json:"pages"`
}
