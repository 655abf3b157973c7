package model

// Content limits.
const (
	MinRating        = 1
	MaxRating        = 5
	MaxTitleLength   = 150
	MaxCommentLength = 3000
	MaxImages        = 5

	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Admin queue filters.
const (
	FilterPending  = "pending"
	FilterApproved = "approved"
	FilterReported = "reported"
)
