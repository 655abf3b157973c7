package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// CreateBusinessRequest is the owner submission payload.
type CreateBusinessRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CategoryID  *uuid.UUID `json:"category_id"`

	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Zip       string   `json:"zip"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Phone   string  `json:"phone"`
	Email   *string `json:"email"`
	Website *string `json:"website"`

	Hours map[string]DayHours `json:"hours"`
	Tags  []string            `json:"tags"`

	LogoURL   *string  `json:"logo_url"`
	Images    []string `json:"images"`
	VideoURLs []string `json:"video_urls"`
}

// Normalize trims the required text fields before validation, so a
// whitespace-only name cannot pass the Required rule.
func (r *CreateBusinessRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Address = strings.TrimSpace(r.Address)
	r.City = strings.TrimSpace(r.City)
	r.State = strings.TrimSpace(r.State)
	r.Zip = strings.TrimSpace(r.Zip)
	r.Country = strings.TrimSpace(r.Country)
	r.Phone = strings.TrimSpace(r.Phone)
}

func (r CreateBusinessRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(2, MaxNameLength),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
			validation.Length(1, MaxDescriptionLength),
		),
		validation.Field(&r.CategoryID,
			validation.Required.Error("category is required"),
		),
		validation.Field(&r.Address, validation.Required.Error("address is required")),
		validation.Field(&r.City, validation.Required.Error("city is required")),
		validation.Field(&r.State, validation.Required.Error("state is required")),
		validation.Field(&r.Phone, validation.Required.Error("phone is required")),
		validation.Field(&r.Email,
			validation.When(r.Email != nil && *r.Email != "", is.EmailFormat),
		),
		validation.Field(&r.Website,
			validation.When(r.Website != nil && *r.Website != "", is.URL),
		),
		validation.Field(&r.Tags, validation.Length(0, MaxTags)),
		validation.Field(&r.Images,
			validation.Length(0, MaxImages).Error("at most 10 images allowed"),
		),
		validation.Field(&r.VideoURLs,
			validation.Length(0, MaxVideoURLs).Error("at most 5 video urls allowed"),
		),
	)
}

// UpdateBusinessRequest is a generic patch. Lifecycle fields (is_active,
// is_verified, is_featured, rejection_reason) deliberately have no place
// here; those change only through the named transitions.
type UpdateBusinessRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	CategoryID  *uuid.UUID `json:"category_id"`

	Address   *string  `json:"address"`
	City      *string  `json:"city"`
	State     *string  `json:"state"`
	Zip       *string  `json:"zip"`
	Country   *string  `json:"country"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Website *string `json:"website"`

	Hours map[string]DayHours `json:"hours"`
	Tags  []string            `json:"tags"`

	LogoURL   *string  `json:"logo_url"`
	Images    []string `json:"images"`
	VideoURLs []string `json:"video_urls"`
}

func (r UpdateBusinessRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil,
				validation.By(requireNonBlank("name")),
				validation.Length(2, MaxNameLength),
			),
		),
		validation.Field(&r.Description,
			validation.When(r.Description != nil,
				validation.By(requireNonBlank("description")),
				validation.Length(1, MaxDescriptionLength),
			),
		),
		validation.Field(&r.Address,
			validation.When(r.Address != nil, validation.By(requireNonBlank("address"))),
		),
		validation.Field(&r.City,
			validation.When(r.City != nil, validation.By(requireNonBlank("city"))),
		),
		validation.Field(&r.State,
			validation.When(r.State != nil, validation.By(requireNonBlank("state"))),
		),
		validation.Field(&r.Phone,
			validation.When(r.Phone != nil, validation.By(requireNonBlank("phone"))),
		),
		validation.Field(&r.Email,
			validation.When(r.Email != nil && *r.Email != "", is.EmailFormat),
		),
		validation.Field(&r.Website,
			validation.When(r.Website != nil && *r.Website != "", is.URL),
		),
		validation.Field(&r.Tags, validation.Length(0, MaxTags)),
		validation.Field(&r.Images, validation.Length(0, MaxImages)),
		validation.Field(&r.VideoURLs, validation.Length(0, MaxVideoURLs)),
	)
}

// requireNonBlank rejects values that are empty after trimming.
func requireNonBlank(field string) validation.RuleFunc {
	return func(value interface{}) error {
		var s string
		switch v := value.(type) {
		case string:
			s = v
		case *string:
			if v == nil {
				return nil
			}
			s = *v
		default:
			return nil
		}
		if strings.TrimSpace(s) == "" {
			return validation.NewError("validation_blank", field+" must not be blank")
		}
		return nil
	}
}

// RejectBusinessRequest carries an admin rejection.
type RejectBusinessRequest struct {
	Reason string `json:"reason"`
}

func (r RejectBusinessRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Reason,
			validation.Required.Error("rejection reason is required"),
			validation.Length(3, 1000),
		),
	)
}

// ResubmitBusinessRequest optionally carries corrections along with the
// resubmission.
type ResubmitBusinessRequest struct {
	Patch *UpdateBusinessRequest `json:"patch"`
}

// DecideClaimRequest is the admin decision payload for an ownership claim.
type DecideClaimRequest struct {
	Note *string `json:"note"`
}

// SearchBusinessesRequest holds the public filter parameters. All filters
// are optional and AND-combined; public searches are always constrained to
// active listings by the service.
type SearchBusinessesRequest struct {
	Query      string     `form:"q"`
	CategoryID *uuid.UUID `form:"category"`
	City       string     `form:"city"`
	State      string     `form:"state"`
	MinRating  *float64   `form:"min_rating"`
	Featured   *bool      `form:"featured"`
	Sort       string     `form:"sort"`
	Page       int        `form:"page"`
	Limit      int        `form:"limit"`
}

// Normalize clamps pagination and falls back to the default sort key.
func (r *SearchBusinessesRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > MaxPageSize {
		r.Limit = DefaultPageSize
	}
	switch r.Sort {
	case SortRelevance, SortRating, SortName, SortViews, SortNewest:
	default:
		r.Sort = SortRelevance
	}
	if r.MinRating != nil && (*r.MinRating < 0 || *r.MinRating > 5) {
		r.MinRating = nil
	}
}

// AdminListBusinessesRequest is the moderation queue filter.
type AdminListBusinessesRequest struct {
	Status string `form:"status"` // pending | active | rejected | ""
	Query  string `form:"q"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (r *AdminListBusinessesRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
	switch r.Status {
	case StatusPending, StatusActive, StatusRejected:
	default:
		r.Status = ""
	}
}

// BusinessResponse decorates the entity with its derived moderation state.
type BusinessResponse struct {
	*Business
	Status string `json:"status"`
}

func NewBusinessResponse(b *Business) *BusinessResponse {
	return &BusinessResponse{Business: b, Status: b.Status()}
}

// ListBusinessesResponse is the paginated search payload.
type ListBusinessesResponse struct {
	Businesses []*BusinessResponse `json:"businesses"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	Pages      int                 `json:"pages"`
}
