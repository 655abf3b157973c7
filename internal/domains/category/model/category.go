package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is a flat business category. BusinessCount is always computed
// at read time by aggregating businesses; it is never a stored counter.
type Category struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Icon         string    `json:"icon"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int       `json:"display_order"`

	BusinessCount int `json:"business_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
