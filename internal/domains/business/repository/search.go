package repository

import (
	"fmt"
	"strings"

	"citylocal-backend/internal/domains/business/model"
)

// buildSearchWhere translates a SearchFilter into a WHERE clause and its
// positional arguments. The same clause backs both the page query and the
// total count so they can never disagree.
func buildSearchWhere(f SearchFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Query != "" {
		p := arg("%" + f.Query + "%")
		clauses = append(clauses, fmt.Sprintf(
			"(name ILIKE %s OR description ILIKE %s OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE %s))",
			p, p, p,
		))
	}

	if f.CategoryID != nil {
		clauses = append(clauses, "category_id = "+arg(*f.CategoryID))
	}

	if f.City != "" {
		clauses = append(clauses, "city ILIKE "+arg("%"+f.City+"%"))
	}

	if f.State != "" {
		clauses = append(clauses, "state ILIKE "+arg("%"+f.State+"%"))
	}

	if f.MinRating != nil {
		clauses = append(clauses, "rating_avg >= "+arg(*f.MinRating))
	}

	if f.Featured != nil {
		clauses = append(clauses, "is_featured = "+arg(*f.Featured))
	}

	if f.ActiveOnly {
		clauses = append(clauses, "is_active = true")
	} else {
		switch f.Status {
		case model.StatusActive:
			clauses = append(clauses, "is_active = true")
		case model.StatusPending:
			clauses = append(clauses, "is_active = false AND rejection_reason IS NULL")
		case model.StatusRejected:
			clauses = append(clauses, "is_active = false AND rejection_reason IS NOT NULL")
		}
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// sortClause maps a sort key to its ORDER BY expression. Relevance is the
// default: featured first, then best rated, most reviewed, newest.
func sortClause(sort string) string {
	switch sort {
	case model.SortRating:
		return "ORDER BY rating_avg DESC, rating_count DESC, created_at DESC"
	case model.SortName:
		return "ORDER BY name ASC"
	case model.SortViews:
		return "ORDER BY views DESC, created_at DESC"
	case model.SortNewest:
		return "ORDER BY created_at DESC"
	default:
		return "ORDER BY is_featured DESC, rating_avg DESC, rating_count DESC, created_at DESC"
	}
}
