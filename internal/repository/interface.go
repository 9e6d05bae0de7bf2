package repository

import (
	"context"
	"errors"

	"github.com/LenzB1987/maid-finderapp/internal/domain"
	"github.com/LenzB1987/maid-finderapp/internal/search"
)

var (
	ErrCaregiverNotFound = errors.New("caregiver not found")
)

// CaregiverRepository defines read access to caregiver profiles joined with
// their identity rows.
type CaregiverRepository interface {
	// FindCandidates returns every caregiver satisfying the plan's
	// predicates, unordered and unpaginated. An empty set is a valid result,
	// not an error.
	FindCandidates(ctx context.Context, plan *search.Plan) ([]domain.Caregiver, error)
	GetByID(ctx context.Context, caregiverID string) (*domain.Caregiver, error)
}

// ReviewRepository defines read access to reviews and their aggregates.
type ReviewRepository interface {
	// AggregateRatings computes {count, average} per caregiver in a single
	// grouped query. Caregivers without reviews are absent from the map.
	// A nil or empty caregiverIDs slice aggregates the full population.
	AggregateRatings(ctx context.Context, caregiverIDs []string) (map[string]domain.RatingAggregate, error)
	ListByCaregiver(ctx context.Context, caregiverID string, limit, offset int) ([]domain.Review, error)
}
