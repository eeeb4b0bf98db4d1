package services

import (
	"context"
	"errors"
	"log"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/scholarnet/review-core/internal/models"
	"github.com/scholarnet/review-core/internal/ratelimit"
)

const maxReasonLength = 500

// FlagService is the flag accumulator: it records one reader's flag against
// an article, keeps flagCount and flaggedBy consistent, and escalates the
// article into moderation review once EscalationCount distinct flags exist.
type FlagService struct {
	DB      *gorm.DB
	Limiter ratelimit.Limiter
	Log     *log.Logger

	RateLimit       int
	RateWindow      time.Duration
	EscalationCount int
}

// FlagOutcome is returned to the caller after a successful flag.
type FlagOutcome struct {
	FlagCount        int                     `json:"flagCount"`
	ModerationStatus models.ModerationStatus `json:"moderationStatus"`
}

// FlagArticle validates and records a flag by userID against articleID.
// Validation runs before any mutation; the flag insert and article update
// are one transaction. The rate limiter fails open: a limiter error is
// logged and the flag is admitted.
func (s *FlagService) FlagArticle(ctx context.Context, articleID, userID string, category models.FlagCategory, reason string) (*FlagOutcome, error) {
	res, err := s.Limiter.Allow(ctx, "flag:"+userID, s.RateLimit, s.RateWindow)
	if err != nil {
		s.Log.Printf("rate limiter unavailable for user %s, failing open: %v", userID, err)
	} else if !res.Allowed {
		return nil, &RateLimitError{Result: res}
	}

	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	if utf8.RuneCountInString(reason) > maxReasonLength {
		return nil, ErrInvalidReason
	}

	var article models.Article
	if err := s.DB.WithContext(ctx).First(&article, "id = ?", articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	if article.Removed() {
		return nil, ErrArticleRemoved
	}

	if article.FlaggedBy.Contains(userID) {
		return nil, ErrAlreadyFlagged
	}
	var existing int64
	if err := s.DB.WithContext(ctx).Model(&models.Flag{}).
		Where("article_id = ? AND reported_by = ?", articleID, userID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyFlagged
	}

	now := time.Now()
	newCount := article.FlagCount + 1
	newStatus := article.ModerationStatus
	// Monotonic escalation: crossing the threshold moves an active article
	// into review; nothing here ever de-escalates.
	if newCount >= s.EscalationCount && newStatus == models.ModerationActive {
		newStatus = models.ModerationUnderReview
	}

	flag := models.Flag{
		ArticleID:  articleID,
		ReportedBy: userID,
		Category:   category,
		Reason:     reason,
		Status:     models.FlagPending,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&flag).Error; err != nil {
			return err
		}
		return tx.Model(&models.Article{}).Where("id = ?", articleID).
			Updates(map[string]any{
				"flag_count":        newCount,
				"flagged_by":        append(article.FlaggedBy, userID),
				"last_flagged_at":   now,
				"moderation_status": newStatus,
			}).Error
	})
	if err != nil {
		// A concurrent flag from the same user loses on the composite
		// unique index rather than slipping past the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFlagged
		}
		return nil, err
	}

	return &FlagOutcome{FlagCount: newCount, ModerationStatus: newStatus}, nil
}
