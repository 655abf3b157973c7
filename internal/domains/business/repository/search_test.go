package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"citylocal-backend/internal/domains/business/model"
)

func TestBuildSearchWhereActiveOnly(t *testing.T) {
	where, args := buildSearchWhere(SearchFilter{ActiveOnly: true})

	assert.Equal(t, "WHERE is_active = true", where)
	assert.Empty(t, args)
}

func TestBuildSearchWhereQuery(t *testing.T) {
	where, args := buildSearchWhere(SearchFilter{Query: "pizza", ActiveOnly: true})

	assert.Contains(t, where, "name ILIKE $1")
	assert.Contains(t, where, "description ILIKE $1")
	assert.Contains(t, where, "unnest(tags)")
	assert.Contains(t, where, "is_active = true")
	assert.Equal(t, []interface{}{"%pizza%"}, args)
}

func TestBuildSearchWhereAllFilters(t *testing.T) {
	categoryID := uuid.New()
	minRating := 4.0
	featured := true

	where, args := buildSearchWhere(SearchFilter{
		Query:      "coffee",
		CategoryID: &categoryID,
		City:       "Springfield",
		State:      "IL",
		MinRating:  &minRating,
		Featured:   &featured,
		ActiveOnly: true,
	})

	assert.Contains(t, where, "category_id = $2")
	assert.Contains(t, where, "city ILIKE $3")
	assert.Contains(t, where, "state ILIKE $4")
	assert.Contains(t, where, "rating_avg >= $5")
	assert.Contains(t, where, "is_featured = $6")
	assert.Len(t, args, 6)
}

func TestBuildSearchWhereStatus(t *testing.T) {
	where, _ := buildSearchWhere(SearchFilter{Status: model.StatusPending})
	assert.Contains(t, where, "is_active = false")
	assert.Contains(t, where, "rejection_reason IS NULL")

	where, _ = buildSearchWhere(SearchFilter{Status: model.StatusRejected})
	assert.Contains(t, where, "rejection_reason IS NOT NULL")

	where, _ = buildSearchWhere(SearchFilter{Status: model.StatusActive})
	assert.Contains(t, where, "is_active = true")

	// No status and no ActiveOnly means no WHERE clause at all.
	where, args := buildSearchWhere(SearchFilter{})
	assert.Equal(t, "", where)
	assert.Empty(t, args)
}

func TestSortClause(t *testing.T) {
	assert.Equal(t, "ORDER BY rating_avg DESC, rating_count DESC, created_at DESC", sortClause(model.SortRating))
	assert.Equal(t, "ORDER BY name ASC", sortClause(model.SortName))
	assert.Equal(t, "ORDER BY views DESC, created_at DESC", sortClause(model.SortViews))
	assert.Equal(t, "ORDER BY created_at DESC", sortClause(model.SortNewest))

	// Relevance is the default: featured first, then best rated.
	relevance := "ORDER BY is_featured DESC, rating_avg DESC, rating_count DESC, created_at DESC"
	assert.Equal(t, relevance, sortClause(model.SortRelevance))
	assert.Equal(t, relevance, sortClause("bogus"))
}
