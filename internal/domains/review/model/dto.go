package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateReviewRequest is the submission payload.
type CreateReviewRequest struct {
	BusinessID uuid.UUID `json:"business_id"`
	Rating     int       `json:"rating"`
	Title      *string   `json:"title"`
	Comment    string    `json:"comment"`
	Images     []string  `json:"images"`
}

func (r *CreateReviewRequest) Normalize() {
	r.Comment = strings.TrimSpace(r.Comment)
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		if trimmed == "" {
			r.Title = nil
		} else {
			r.Title = &trimmed
		}
	}
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BusinessID,
			validation.Required.Error("business is required"),
		),
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(MinRating).Error("rating must be between 1 and 5"),
			validation.Max(MaxRating).Error("rating must be between 1 and 5"),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, MaxTitleLength),
		),
		validation.Field(&r.Comment,
			validation.Required.Error("comment is required"),
			validation.Length(1, MaxCommentLength),
		),
		validation.Field(&r.Images, validation.Length(0, MaxImages)),
	)
}

// UpdateReviewRequest edits an existing review. Any edit sends the review
// back through moderation.
type UpdateReviewRequest struct {
	Rating  *int     `json:"rating"`
	Title   *string  `json:"title"`
	Comment *string  `json:"comment"`
	Images  []string `json:"images"`
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating,
			validation.When(r.Rating != nil,
				validation.Min(MinRating).Error("rating must be between 1 and 5"),
				validation.Max(MaxRating).Error("rating must be between 1 and 5"),
			),
		),
		validation.Field(&r.Title,
			validation.When(r.Title != nil && *r.Title != "", validation.Length(1, MaxTitleLength)),
		),
		validation.Field(&r.Comment,
			validation.When(r.Comment != nil, validation.Length(1, MaxCommentLength)),
		),
		validation.Field(&r.Images, validation.Length(0, MaxImages)),
	)
}

// RespondRequest is the business owner's reply to a review.
type RespondRequest struct {
	Text string `json:"text"`
}

func (r RespondRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text,
			validation.Required.Error("response text is required"),
			validation.Length(1, MaxCommentLength),
		),
	)
}

// ReportRequest flags a review for admin attention.
type ReportRequest struct {
	Reason string `json:"reason"`
}

func (r ReportRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Reason,
			validation.Required.Error("report reason is required"),
			validation.Length(3, 1000),
		),
	)
}

// HelpfulResponse reports the new helpful state after a toggle.
type HelpfulResponse struct {
	Marked       bool `json:"marked"`
	HelpfulCount int  `json:"helpful_count"`
}

// BusinessReviewsResponse is the public review page for one business.
type BusinessReviewsResponse struct {
	Reviews []*Review `json:"reviews"`
	Total   int       `json:"total"`
	Page    int       `json:"page"`
	Pages   int       `json:"pages"`
}
