package search

import (
	"sort"

	"github.com/LenzB1987/maid-finderapp/internal/domain"
)

// Rank imposes a total order on the candidate set in place. Every sort key
// ends in caregiver ID ascending, so the order is deterministic and page
// boundaries stay stable across repeated calls.
//
// Tie-break table:
//
//	rating      avg rating desc, review count desc, ID asc
//	rate-low    hourly rate asc (nulls last), ID asc
//	rate-high   hourly rate desc (nulls last), ID asc
//	experience  experience desc, ID asc
//	newest      created_at desc, ID asc
func Rank(candidates []domain.Candidate, key SortKey) {
	sort.Slice(candidates, func(i, j int) bool {
		return less(&candidates[i], &candidates[j], key)
	})
}

func less(a, b *domain.Candidate, key SortKey) bool {
	switch key {
	case SortRateLow:
		if c := compareRates(a, b); c != 0 {
			return c < 0
		}
	case SortRateHigh:
		if c := compareRates(a, b); c != 0 {
			// Null rates stay last regardless of direction.
			if a.HourlyRate == nil || b.HourlyRate == nil {
				return c < 0
			}
			return c > 0
		}
	case SortExperience:
		if a.Experience != b.Experience {
			return a.Experience > b.Experience
		}
	case SortNewest:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	default: // SortRating
		if a.Rating.Average != b.Rating.Average {
			return a.Rating.Average > b.Rating.Average
		}
		if a.Rating.Count != b.Rating.Count {
			return a.Rating.Count > b.Rating.Count
		}
	}
	return a.ID < b.ID
}

// compareRates orders hourly rates ascending with nil rates after every
// non-nil rate. Returns -1, 0, or 1.
func compareRates(a, b *domain.Candidate) int {
	switch {
	case a.HourlyRate == nil && b.HourlyRate == nil:
		return 0
	case a.HourlyRate == nil:
		return 1
	case b.HourlyRate == nil:
		return -1
	case *a.HourlyRate < *b.HourlyRate:
		return -1
	case *a.HourlyRate > *b.HourlyRate:
		return 1
	default:
		return 0
	}
}

// Page slices one page out of the fully ordered candidate set. A short page
// signals the last page to the caller.
func Page(candidates []domain.Candidate, limit, offset int) []domain.Candidate {
	if offset >= len(candidates) {
		return []domain.Candidate{}
	}
	end := offset + limit
	if end > len(candidates) {
		end = len(candidates)
	}
	return candidates[offset:end]
}
