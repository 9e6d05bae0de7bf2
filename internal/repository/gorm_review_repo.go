package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/LenzB1987/maid-finderapp/internal/domain"
	"github.com/LenzB1987/maid-finderapp/pkg/log"
)

// GormReviewRepository implements ReviewRepository using GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GORM-based review repository.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

type ratingRow struct {
	RevieweeID  string
	ReviewCount int
	AvgRating   float64
}

// AggregateRatings groups reviews by subject in one query. Never issued per
// caregiver; the caller merges the map into its candidate set.
func (r *GormReviewRepository) AggregateRatings(ctx context.Context, caregiverIDs []string) (map[string]domain.RatingAggregate, error) {
	l := log.Ctx(ctx)

	query := r.db.WithContext(ctx).
		Model(&domain.ReviewModel{}).
		Select("reviewee_id, COUNT(id) AS review_count, COALESCE(AVG(rating), 0) AS avg_rating").
		Group("reviewee_id")
	if len(caregiverIDs) > 0 {
		query = query.Where("reviewee_id IN ?", caregiverIDs)
	}

	var rows []ratingRow
	if err := query.Scan(&rows).Error; err != nil {
		l.Error().Err(err).Msg("failed to aggregate ratings")
		return nil, domain.NewDataAccessError("aggregate ratings", err)
	}

	aggregates := make(map[string]domain.RatingAggregate, len(rows))
	for _, row := range rows {
		aggregates[row.RevieweeID] = domain.RatingAggregate{
			Count:   row.ReviewCount,
			Average: row.AvgRating,
		}
	}
	return aggregates, nil
}

type reviewRow struct {
	ID         int
	ReviewerID string
	FirstName  string
	LastName   string
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

// ListByCaregiver returns one page of reviews for a caregiver, newest first,
// with reviewer name fields joined in.
func (r *GormReviewRepository) ListByCaregiver(ctx context.Context, caregiverID string, limit, offset int) ([]domain.Review, error) {
	l := log.Ctx(ctx)

	var rows []reviewRow
	err := r.db.WithContext(ctx).
		Model(&domain.ReviewModel{}).
		Select("reviews.id, reviews.reviewer_id, reviews.rating, reviews.comment, reviews.created_at, "+
			"users.first_name, users.last_name").
		Joins("INNER JOIN users ON users.id = reviews.reviewer_id").
		Where("reviews.reviewee_id = ?", caregiverID).
		Order("reviews.created_at DESC, reviews.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		l.Error().Err(err).Str(log.FieldCaregiverID, caregiverID).Msg("failed to list reviews")
		return nil, domain.NewDataAccessError("list reviews", err)
	}

	reviews := make([]domain.Review, len(rows))
	for i, row := range rows {
		reviews[i] = domain.Review{
			ID:                row.ID,
			ReviewerID:        row.ReviewerID,
			ReviewerFirstName: row.FirstName,
			ReviewerLastName:  row.LastName,
			Rating:            row.Rating,
			Comment:           row.Comment,
			CreatedAt:         row.CreatedAt,
		}
	}
	return reviews, nil
}
