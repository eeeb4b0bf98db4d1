package review

import "github.com/scholarnet/review-core/internal/models"

// DisplayStatus is the read-model status shown to users. It is distinct
// from models.ArticleStatus: once enough reviews are in, the verdict
// derived from scores overrides the persisted lifecycle without being
// written back.
type DisplayStatus string

const (
	DisplayDraft       DisplayStatus = "DRAFT"
	DisplayPending     DisplayStatus = "PENDING"
	DisplayUnderReview DisplayStatus = "UNDER_REVIEW"
	DisplayAccepted    DisplayStatus = "ACCEPTED"
	DisplayRejected    DisplayStatus = "REJECTED"
)

// Valid reports whether the value is a known display status.
func (s DisplayStatus) Valid() bool {
	switch s {
	case DisplayDraft, DisplayPending, DisplayUnderReview, DisplayAccepted, DisplayRejected:
		return true
	}
	return false
}

// StatusView is the resolved projection for one article.
type StatusView struct {
	Status           DisplayStatus `json:"status"`
	ReviewsCompleted int           `json:"reviewsCompleted"`
	ReviewsRequired  int           `json:"reviewsRequired"`
}

// ResolveStatus maps the review summary plus the persisted lifecycle status
// into the display status. With RequiredReviews or more reviews the verdict
// comes from the threshold alone, regardless of the stored status.
func ResolveStatus(persisted models.ArticleStatus, s Summary) StatusView {
	view := StatusView{
		ReviewsCompleted: s.ReviewCount,
		ReviewsRequired:  RequiredReviews,
	}

	if s.ReviewCount >= RequiredReviews {
		if s.PassesThreshold {
			view.Status = DisplayAccepted
		} else {
			view.Status = DisplayRejected
		}
		return view
	}

	switch persisted {
	case models.ArticlePending:
		view.Status = DisplayPending
	case models.ArticleUnderReview:
		view.Status = DisplayUnderReview
	case models.ArticleAccepted:
		view.Status = DisplayAccepted
	case models.ArticleRejected:
		view.Status = DisplayRejected
	default:
		view.Status = DisplayDraft
	}
	return view
}
