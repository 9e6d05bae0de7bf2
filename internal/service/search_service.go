package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/LenzB1987/maid-finderapp/internal/cache"
	"github.com/LenzB1987/maid-finderapp/internal/consumer"
	"github.com/LenzB1987/maid-finderapp/internal/domain"
	"github.com/LenzB1987/maid-finderapp/internal/repository"
	"github.com/LenzB1987/maid-finderapp/internal/search"
	"github.com/LenzB1987/maid-finderapp/pkg/log"
)

var (
	ErrCaregiverNotFound = errors.New("caregiver not found")
)

// defaultKeyPrefix groups singleflight calls when caching is disabled.
const defaultKeyPrefix = "caregiver-search"

// SearchService implements CaregiverSearchService and reacts to review
// events by invalidating the search cache.
type SearchService struct {
	caregivers repository.CaregiverRepository
	reviews    repository.ReviewRepository
	cache      cache.SearchCache // nil disables caching
	keyPrefix  string
	cacheTTL   time.Duration
	sf         singleflight.Group
}

// NewSearchService creates a new caregiver search service. searchCache may
// be nil, in which case every search hits the store. Cache keys live in the
// cache's own namespace so InvalidateAll covers everything Set wrote.
func NewSearchService(caregivers repository.CaregiverRepository, reviews repository.ReviewRepository, searchCache cache.SearchCache, cacheTTL time.Duration) *SearchService {
	keyPrefix := defaultKeyPrefix
	if searchCache != nil {
		keyPrefix = searchCache.Prefix()
	}
	return &SearchService{
		caregivers: caregivers,
		reviews:    reviews,
		cache:      searchCache,
		keyPrefix:  keyPrefix,
		cacheTTL:   cacheTTL,
	}
}

func (s *SearchService) Search(ctx context.Context, params domain.SearchParams) (*domain.SearchResponse, error) {
	plan, err := search.Build(params)
	if err != nil {
		return nil, err
	}

	key := cache.Key(s.keyPrefix, plan)

	// Concurrent identical searches collapse into one execution.
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if s.cache != nil {
			cached, err := s.cache.Get(ctx, key)
			if err == nil {
				return cached, nil
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				l := log.Ctx(ctx)
				l.Warn().Err(err).Msg("cache get error")
			}
		}

		resp, err := s.execute(ctx, plan)
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			s.asyncCacheSet(key, resp)
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.SearchResponse), nil
}

// execute runs the two-phase pipeline: load the full candidate set, merge
// the grouped rating aggregates in memory, then rank and slice one page.
func (s *SearchService) execute(ctx context.Context, plan *search.Plan) (*domain.SearchResponse, error) {
	l := log.Ctx(ctx)

	caregivers, err := s.caregivers.FindCandidates(ctx, plan)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, len(caregivers))
	if len(caregivers) > 0 {
		ids := make([]string, len(caregivers))
		for i := range caregivers {
			ids[i] = caregivers[i].ID
		}

		aggregates, err := s.reviews.AggregateRatings(ctx, ids)
		if err != nil {
			return nil, err
		}

		for i := range caregivers {
			candidates[i] = domain.Candidate{
				Caregiver: caregivers[i],
				Rating:    aggregates[caregivers[i].ID], // zero value means no reviews
			}
		}
	}

	search.Rank(candidates, plan.Sort)
	page := search.Page(candidates, plan.Limit, plan.Offset)

	results := make([]domain.CaregiverResponse, len(page))
	for i := range page {
		results[i] = page[i].ToResponse()
	}

	l.Debug().
		Str(log.FieldSortBy, string(plan.Sort)).
		Int(log.FieldResultCount, len(results)).
		Msg("search executed")

	return &domain.SearchResponse{
		Caregivers: results,
		Limit:      plan.Limit,
		Offset:     plan.Offset,
	}, nil
}

func (s *SearchService) GetCaregiver(ctx context.Context, caregiverID string) (*domain.CaregiverResponse, error) {
	caregiver, err := s.caregivers.GetByID(ctx, caregiverID)
	if err != nil {
		if errors.Is(err, repository.ErrCaregiverNotFound) {
			return nil, ErrCaregiverNotFound
		}
		return nil, err
	}

	aggregates, err := s.reviews.AggregateRatings(ctx, []string{caregiverID})
	if err != nil {
		return nil, err
	}

	candidate := domain.Candidate{
		Caregiver: *caregiver,
		Rating:    aggregates[caregiverID],
	}
	resp := candidate.ToResponse()
	return &resp, nil
}

func (s *SearchService) ListReviews(ctx context.Context, caregiverID string, limit, offset int) (*domain.ReviewListResponse, error) {
	if limit < 1 || limit > search.MaxLimit {
		limit = search.DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	reviews, err := s.reviews.ListByCaregiver(ctx, caregiverID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &domain.ReviewListResponse{
		Reviews: reviews,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

// HandleReviewEvent invalidates cached search pages when a new review lands.
// With caching disabled it is a no-op.
func (s *SearchService) HandleReviewEvent(ctx context.Context, event *consumer.ReviewEvent) error {
	if s.cache == nil {
		return nil
	}

	l := log.Ctx(ctx)
	if err := s.cache.InvalidateAll(ctx); err != nil {
		return err
	}
	l.Debug().Str(log.FieldCaregiverID, event.CaregiverID).Msg("search cache invalidated after review event")
	return nil
}

func (s *SearchService) asyncCacheSet(key string, resp *domain.SearchResponse) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil {
			l := log.L()
			l.Warn().Err(err).Str("key", key).Msg("cache set error")
		}
	}()
}
