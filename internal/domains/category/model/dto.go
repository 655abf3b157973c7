package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateCategoryRequest is the admin request to create a category.
type CreateCategoryRequest struct {
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(2, 100),
		),
		validation.Field(&r.Icon, validation.Length(0, 100)),
		validation.Field(&r.DisplayOrder, validation.Min(0)),
	)
}

// UpdateCategoryRequest is the admin request to patch a category.
type UpdateCategoryRequest struct {
	Name         *string `json:"name"`
	Icon         *string `json:"icon"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

func (r UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil, validation.Length(2, 100)),
		),
		validation.Field(&r.DisplayOrder,
			validation.When(r.DisplayOrder != nil, validation.Min(0)),
		),
	)
}

// ListCategoriesResponse is the public list payload.
type ListCategoriesResponse struct {
	Categories []*Category `json:"categories"`
}
