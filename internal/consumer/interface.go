package consumer

import "context"

// ReviewEvent is emitted by the review-submission service whenever a review
// is created. The search service consumes it to invalidate cached pages
// whose rating aggregates just went stale.
type ReviewEvent struct {
	ReviewID    int    `json:"review_id"`
	CaregiverID string `json:"caregiver_id"`
	Rating      int    `json:"rating"`
}

// ReviewEventHandler reacts to review events.
type ReviewEventHandler interface {
	HandleReviewEvent(ctx context.Context, event *ReviewEvent) error
}
