package model

const (
	// Media limits
	MaxImages    = 10
	MaxVideoURLs = 5

	// Content limits
	MaxNameLength        = 150
	MaxDescriptionLength = 5000
	MaxTags              = 20

	// Search defaults
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Sort keys accepted by the search endpoint.
const (
	SortRelevance = "relevance"
	SortRating    = "rating"
	SortName      = "name"
	SortViews     = "views"
	SortNewest    = "newest"
)
