package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/LenzB1987/maid-finderapp/internal/consumer"
	"github.com/LenzB1987/maid-finderapp/internal/domain"
	"github.com/LenzB1987/maid-finderapp/internal/repository"
	"github.com/LenzB1987/maid-finderapp/internal/search"
)

// fakeCaregiverRepo serves a fixture set, applying the plan's predicates the
// same way the GORM repository does in its authoritative in-memory pass.
type fakeCaregiverRepo struct {
	caregivers []domain.Caregiver
	err        error
}

func (f *fakeCaregiverRepo) FindCandidates(_ context.Context, plan *search.Plan) ([]domain.Caregiver, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Caregiver
	for i := range f.caregivers {
		if plan.Matches(&f.caregivers[i]) {
			out = append(out, f.caregivers[i])
		}
	}
	return out, nil
}

func (f *fakeCaregiverRepo) GetByID(_ context.Context, id string) (*domain.Caregiver, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.caregivers {
		if f.caregivers[i].ID == id {
			c := f.caregivers[i]
			return &c, nil
		}
	}
	return nil, repository.ErrCaregiverNotFound
}

type fakeReview struct {
	revieweeID string
	rating     int
}

// fakeReviewRepo aggregates fixture reviews in one grouped pass.
type fakeReviewRepo struct {
	reviews    []fakeReview
	err        error
	lastLimit  int
	lastOffset int
}

func (f *fakeReviewRepo) AggregateRatings(_ context.Context, ids []string) (map[string]domain.RatingAggregate, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range f.reviews {
		if len(ids) > 0 && !wanted[r.revieweeID] {
			continue
		}
		sums[r.revieweeID] += r.rating
		counts[r.revieweeID]++
	}

	aggregates := make(map[string]domain.RatingAggregate, len(counts))
	for id, count := range counts {
		aggregates[id] = domain.RatingAggregate{
			Count:   count,
			Average: float64(sums[id]) / float64(count),
		}
	}
	return aggregates, nil
}

func (f *fakeReviewRepo) ListByCaregiver(_ context.Context, _ string, limit, offset int) ([]domain.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastLimit = limit
	f.lastOffset = offset
	return []domain.Review{}, nil
}

func rate(v float64) *float64 { return &v }

func repeat(revieweeID string, rating, n int) []fakeReview {
	out := make([]fakeReview, n)
	for i := range out {
		out[i] = fakeReview{revieweeID: revieweeID, rating: rating}
	}
	return out
}

// Fixture from the end-to-end scenario: A and B tie on rating 4.8, A carries
// more reviews, C has no reviews at all.
func scenarioService() *SearchService {
	caregivers := &fakeCaregiverRepo{caregivers: []domain.Caregiver{
		{ID: "a", FirstName: "Amina", District: "Kampala", HourlyRate: rate(400000), CreatedAt: time.Now()},
		{ID: "b", FirstName: "Brenda", District: "Kampala", HourlyRate: rate(350000), CreatedAt: time.Now()},
		{ID: "c", FirstName: "Carol", District: "Kampala", HourlyRate: rate(200000), CreatedAt: time.Now()},
	}}

	// a: ten reviews averaging 4.8; b: five reviews averaging 4.8.
	reviews := append(repeat("a", 5, 8), repeat("a", 4, 2)...)
	reviews = append(reviews, repeat("b", 5, 4)...)
	reviews = append(reviews, fakeReview{revieweeID: "b", rating: 4})

	return NewSearchService(caregivers, &fakeReviewRepo{reviews: reviews}, nil, 0)
}

func resultIDs(resp *domain.SearchResponse) []string {
	out := make([]string, len(resp.Caregivers))
	for i, c := range resp.Caregivers {
		out[i] = c.ID
	}
	return out
}

func TestSearchRatingScenario(t *testing.T) {
	svc := scenarioService()
	ctx := context.Background()

	first, err := svc.Search(ctx, domain.SearchParams{SortBy: "rating", Limit: "2", Offset: "0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resultIDs(first); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("first page = %v, want [a b]", got)
	}
	if first.Caregivers[0].AvgRating != first.Caregivers[1].AvgRating {
		t.Fatalf("fixture broken: a and b must tie on average rating")
	}
	if first.Caregivers[0].ReviewCount <= first.Caregivers[1].ReviewCount {
		t.Errorf("tie must break on review count desc: %d vs %d",
			first.Caregivers[0].ReviewCount, first.Caregivers[1].ReviewCount)
	}

	second, err := svc.Search(ctx, domain.SearchParams{SortBy: "rating", Limit: "2", Offset: "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resultIDs(second); len(got) != 1 || got[0] != "c" {
		t.Fatalf("second page = %v, want [c]", got)
	}
	if second.Caregivers[0].AvgRating != 0 || second.Caregivers[0].ReviewCount != 0 {
		t.Errorf("zero-review caregiver must carry {0, 0}, got {%v, %d}",
			second.Caregivers[0].AvgRating, second.Caregivers[0].ReviewCount)
	}
}

func TestSearchRepeatedCallsAreIdentical(t *testing.T) {
	svc := scenarioService()
	ctx := context.Background()
	params := domain.SearchParams{SortBy: "rating", Limit: "3"}

	first, err := svc.Search(ctx, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := svc.Search(ctx, params)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		a, b := resultIDs(first), resultIDs(again)
		for j := range a {
			if a[j] != b[j] {
				t.Fatalf("ordering flapped between calls: %v vs %v", a, b)
			}
		}
	}
}

func TestSearchRateRangeFiltering(t *testing.T) {
	svc := scenarioService()
	ctx := context.Background()

	resp, err := svc.Search(ctx, domain.SearchParams{MinRate: "10000", MaxRate: "360000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range resp.Caregivers {
		if c.HourlyRate == nil || *c.HourlyRate < 10000 || *c.HourlyRate > 360000 {
			t.Errorf("caregiver %s violates rate constraint: %v", c.ID, c.HourlyRate)
		}
	}
	if got := resultIDs(resp); len(got) != 2 {
		t.Errorf("results = %v, want b and c only", got)
	}
}

func TestSearchValidationFailsBeforeStoreAccess(t *testing.T) {
	storeErr := errors.New("store must not be touched")
	svc := NewSearchService(&fakeCaregiverRepo{err: storeErr}, &fakeReviewRepo{err: storeErr}, nil, 0)

	_, err := svc.Search(context.Background(), domain.SearchParams{MinRate: "50000", MaxRate: "10000"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !domain.IsValidation(err) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	svc := scenarioService()

	resp, err := svc.Search(context.Background(), domain.SearchParams{District: "Gulu"})
	if err != nil {
		t.Fatalf("empty result must not error, got %v", err)
	}
	if len(resp.Caregivers) != 0 {
		t.Errorf("results = %v, want empty page", resultIDs(resp))
	}
}

func TestSearchSurfacesDataAccessError(t *testing.T) {
	svc := NewSearchService(
		&fakeCaregiverRepo{err: domain.NewDataAccessError("search caregivers", errors.New("connection refused"))},
		&fakeReviewRepo{},
		nil, 0,
	)

	_, err := svc.Search(context.Background(), domain.SearchParams{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !domain.IsDataAccess(err) {
		t.Errorf("error = %v, want DataAccessError", err)
	}
}

func TestGetCaregiver(t *testing.T) {
	svc := scenarioService()
	ctx := context.Background()

	got, err := svc.GetCaregiver(ctx, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "a" || got.ReviewCount != 10 {
		t.Errorf("caregiver = %s with %d reviews, want a with 10", got.ID, got.ReviewCount)
	}

	if _, err := svc.GetCaregiver(ctx, "nobody"); !errors.Is(err, ErrCaregiverNotFound) {
		t.Errorf("error = %v, want ErrCaregiverNotFound", err)
	}
}

func TestListReviewsClampsPaging(t *testing.T) {
	reviews := &fakeReviewRepo{}
	svc := NewSearchService(&fakeCaregiverRepo{}, reviews, nil, 0)
	ctx := context.Background()

	if _, err := svc.ListReviews(ctx, "a", -5, -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reviews.lastLimit != search.DefaultLimit || reviews.lastOffset != 0 {
		t.Errorf("limit/offset = %d/%d, want %d/0", reviews.lastLimit, reviews.lastOffset, search.DefaultLimit)
	}

	if _, err := svc.ListReviews(ctx, "a", 1000, 40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reviews.lastLimit != search.DefaultLimit || reviews.lastOffset != 40 {
		t.Errorf("limit/offset = %d/%d, want %d/40", reviews.lastLimit, reviews.lastOffset, search.DefaultLimit)
	}
}

// fakeCache records invalidations and every key written to it.
type fakeCache struct {
	prefix      string
	invalidated int

	mu      sync.Mutex
	setKeys []string
}

func (f *fakeCache) Get(context.Context, string) (*domain.SearchResponse, error) {
	return nil, errors.New("cache miss")
}
func (f *fakeCache) Set(_ context.Context, key string, _ *domain.SearchResponse, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setKeys = append(f.setKeys, key)
	return nil
}
func (f *fakeCache) InvalidateAll(context.Context) error {
	f.invalidated++
	return nil
}
func (f *fakeCache) Prefix() string {
	if f.prefix == "" {
		return "caregiver-search"
	}
	return f.prefix
}
func (f *fakeCache) Close() error { return nil }

func (f *fakeCache) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.setKeys...)
}

// Every key the service writes must live inside the cache's own namespace,
// or InvalidateAll's prefix scan never reaches it and review events stop
// flushing stale pages.
func TestSearchCacheKeysLiveInInvalidationNamespace(t *testing.T) {
	fc := &fakeCache{prefix: "tenant-a"}
	svc := NewSearchService(&fakeCaregiverRepo{}, &fakeReviewRepo{}, fc, time.Second)

	if _, err := svc.Search(context.Background(), domain.SearchParams{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The cache write is asynchronous.
	deadline := time.Now().Add(2 * time.Second)
	var keys []string
	for len(keys) == 0 && time.Now().Before(deadline) {
		keys = fc.keys()
		time.Sleep(10 * time.Millisecond)
	}
	if len(keys) == 0 {
		t.Fatal("no cache key written")
	}
	for _, key := range keys {
		if !strings.HasPrefix(key, "tenant-a:") {
			t.Errorf("cache key %q outside namespace tenant-a:*", key)
		}
	}
}

func TestHandleReviewEventInvalidatesCache(t *testing.T) {
	fc := &fakeCache{}
	svc := NewSearchService(&fakeCaregiverRepo{}, &fakeReviewRepo{}, fc, time.Second)

	event := &consumer.ReviewEvent{ReviewID: 1, CaregiverID: "a", Rating: 5}
	if err := svc.HandleReviewEvent(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc.invalidated != 1 {
		t.Errorf("invalidations = %d, want 1", fc.invalidated)
	}
}

func TestHandleReviewEventWithoutCacheIsNoop(t *testing.T) {
	svc := NewSearchService(&fakeCaregiverRepo{}, &fakeReviewRepo{}, nil, 0)
	if err := svc.HandleReviewEvent(context.Background(), &consumer.ReviewEvent{CaregiverID: "a"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
