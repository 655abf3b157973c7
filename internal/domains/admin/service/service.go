package service

import (
	"context"

	businessmodel "citylocal-backend/internal/domains/business/model"
	contactmodel "citylocal-backend/internal/domains/contact/model"
	reviewmodel "citylocal-backend/internal/domains/review/model"
)

const recentLimit = 5

// BusinessStats is the per-moderation-state breakdown of the directory.
type BusinessStats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Active  int `json:"active"`
}

// ReviewStats counts the review corpus and the moderation backlog.
type ReviewStats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
}

// DashboardStats is the admin landing payload. All numbers are computed
// live; nothing here is a stored counter.
type DashboardStats struct {
	Users       int           `json:"users"`
	Businesses  BusinessStats `json:"businesses"`
	Reviews     ReviewStats   `json:"reviews"`
	OpenTickets int           `json:"open_tickets"`
	Categories  int           `json:"categories"`

	RecentBusinesses []*businessmodel.Business `json:"recent_businesses"`
	RecentReviews    []*reviewmodel.Review     `json:"recent_reviews"`
	RecentTickets    []*contactmodel.Ticket    `json:"recent_tickets"`
}

// UserCounter and friends are the read slices of the other domains the
// dashboard aggregates over.
type UserCounter interface {
	Count(ctx context.Context) (int, error)
}

type BusinessCounter interface {
	CountByStatus(ctx context.Context) (total, pending, active int, err error)
	ListRecent(ctx context.Context, limit int) ([]*businessmodel.Business, error)
}

type ReviewCounter interface {
	CountAll(ctx context.Context) (int, error)
	CountPending(ctx context.Context) (int, error)
	ListRecent(ctx context.Context, limit int) ([]*reviewmodel.Review, error)
}

type TicketCounter interface {
	CountOpen(ctx context.Context) (int, error)
	ListRecent(ctx context.Context, limit int) ([]*contactmodel.Ticket, error)
}

type CategoryCounter interface {
	Count(ctx context.Context) (int, error)
}

type ServiceInterface interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type adminService struct {
	users      UserCounter
	businesses BusinessCounter
	reviews    ReviewCounter
	tickets    TicketCounter
	categories CategoryCounter
}

func NewAdminService(
	users UserCounter,
	businesses BusinessCounter,
	reviews ReviewCounter,
	tickets TicketCounter,
	categories CategoryCounter,
) ServiceInterface {
	return &adminService{
		users:      users,
		businesses: businesses,
		reviews:    reviews,
		tickets:    tickets,
		categories: categories,
	}
}

func (s *adminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.Users, err = s.users.Count(ctx); err != nil {
		return nil, err
	}

	total, pending, active, err := s.businesses.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats.Businesses = BusinessStats{Total: total, Pending: pending, Active: active}

	if stats.Reviews.Total, err = s.reviews.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.Reviews.Pending, err = s.reviews.CountPending(ctx); err != nil {
		return nil, err
	}
	if stats.OpenTickets, err = s.tickets.CountOpen(ctx); err != nil {
		return nil, err
	}
	if stats.Categories, err = s.categories.Count(ctx); err != nil {
		return nil, err
	}

	if stats.RecentBusinesses, err = s.businesses.ListRecent(ctx, recentLimit); err != nil {
		return nil, err
	}
	if stats.RecentReviews, err = s.reviews.ListRecent(ctx, recentLimit); err != nil {
		return nil, err
	}
	if stats.RecentTickets, err = s.tickets.ListRecent(ctx, recentLimit); err != nil {
		return nil, err
	}

	if stats.RecentBusinesses == nil {
		stats.RecentBusinesses = []*businessmodel.Business{}
	}
	if stats.RecentReviews == nil {
		stats.RecentReviews = []*reviewmodel.Review{}
	}
	if stats.RecentTickets == nil {
		stats.RecentTickets = []*contactmodel.Ticket{}
	}

	return stats, nil
}
