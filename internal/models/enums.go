// Package models defines the persisted entities and enum values shared by
// the review and moderation services. Field names and enum values are the
// storage contract other collaborators (UI, reports) depend on.
package models

// ArticleStatus is the persisted scholarly lifecycle of an article. The
// user-facing display status is a separate read-model projection derived in
// the review package and is never written back here.
type ArticleStatus string

const (
	ArticleDraft       ArticleStatus = "draft"
	ArticlePending     ArticleStatus = "pending"
	ArticleUnderReview ArticleStatus = "under_review"
	ArticleAccepted    ArticleStatus = "accepted"
	ArticleRejected    ArticleStatus = "rejected"
)

// Valid reports whether the value is a known lifecycle status.
func (s ArticleStatus) Valid() bool {
	switch s {
	case ArticleDraft, ArticlePending, ArticleUnderReview, ArticleAccepted, ArticleRejected:
		return true
	}
	return false
}

// ModerationStatus tracks content-safety state, independent of scholarly
// acceptance.
type ModerationStatus string

const (
	ModerationActive      ModerationStatus = "active"
	ModerationUnderReview ModerationStatus = "under_review"
	ModerationRemoved     ModerationStatus = "removed"
)

// Valid reports whether the value is a known moderation status.
func (s ModerationStatus) Valid() bool {
	switch s {
	case ModerationActive, ModerationUnderReview, ModerationRemoved:
		return true
	}
	return false
}

// FlagCategory classifies why a reader flagged an article.
type FlagCategory string

const (
	CategoryMisinformation FlagCategory = "misinformation"
	CategoryOffensive      FlagCategory = "offensive"
	CategoryPlagiarism     FlagCategory = "plagiarism"
	CategorySpam           FlagCategory = "spam"
	CategoryOther          FlagCategory = "other"
)

// Valid reports whether the value is a known flag category.
func (c FlagCategory) Valid() bool {
	switch c {
	case CategoryMisinformation, CategoryOffensive, CategoryPlagiarism, CategorySpam, CategoryOther:
		return true
	}
	return false
}

// FlagStatus is the resolution state of a single flag.
type FlagStatus string

const (
	FlagPending  FlagStatus = "pending"
	FlagAccepted FlagStatus = "accepted"
	FlagRejected FlagStatus = "rejected"
)

// Valid reports whether the value is a known flag status.
func (s FlagStatus) Valid() bool {
	switch s {
	case FlagPending, FlagAccepted, FlagRejected:
		return true
	}
	return false
}

// Recommendation is a reviewer's verdict accompanying a numeric score.
type Recommendation string

const (
	RecommendAccept         Recommendation = "accept"
	RecommendMinorRevisions Recommendation = "minor_revisions"
	RecommendMajorRevisions Recommendation = "major_revisions"
	RecommendReject         Recommendation = "reject"
)

// Valid reports whether the value is a known recommendation.
func (r Recommendation) Valid() bool {
	switch r {
	case RecommendAccept, RecommendMinorRevisions, RecommendMajorRevisions, RecommendReject:
		return true
	}
	return false
}

// ModerationAction is an admin decision on a flagged article.
type ModerationAction string

const (
	ActionApprove ModerationAction = "approve"
	ActionReject  ModerationAction = "reject"
)

// Valid reports whether the value is a known moderation action.
func (a ModerationAction) Valid() bool {
	switch a {
	case ActionApprove, ActionReject:
		return true
	}
	return false
}
