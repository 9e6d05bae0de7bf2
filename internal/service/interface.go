package service

import (
	"context"

	"github.com/LenzB1987/maid-finderapp/internal/domain"
)

// CaregiverSearchService is the read-side API over caregiver and review data.
type CaregiverSearchService interface {
	// Search runs the full pipeline: filter build, candidate query, rating
	// aggregation, ranking, pagination.
	Search(ctx context.Context, params domain.SearchParams) (*domain.SearchResponse, error)
	// GetCaregiver returns one caregiver merged with its rating aggregate.
	GetCaregiver(ctx context.Context, caregiverID string) (*domain.CaregiverResponse, error)
	// ListReviews returns one page of a caregiver's reviews, newest first.
	ListReviews(ctx context.Context, caregiverID string, limit, offset int) (*domain.ReviewListResponse, error)
}
