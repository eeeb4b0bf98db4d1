package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/scholarnet/review-core/internal/models"
	"github.com/scholarnet/review-core/internal/review"
)

// ArticleService handles submissions, review intake and the read-model
// status projection.
type ArticleService struct {
	DB  *gorm.DB
	Log *log.Logger
}

// ArticleView is an article together with its resolved display status.
type ArticleView struct {
	Article models.Article    `json:"article"`
	Summary review.Summary    `json:"reviewSummary"`
	Status  review.StatusView `json:"displayStatus"`
}

// Submit creates a pending article for authorID.
func (s *ArticleService) Submit(ctx context.Context, authorID, title, abstract string) (*models.Article, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInvalidTitle
	}

	article := models.Article{
		AuthorID:         authorID,
		Title:            strings.TrimSpace(title),
		Abstract:         abstract,
		Status:           models.ArticlePending,
		ModerationStatus: models.ModerationActive,
		FlaggedBy:        models.UserIDList{},
	}
	if err := s.DB.WithContext(ctx).Create(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// Get loads one article with its aggregated review summary and resolved
// display status. The projection is read-only; the stored lifecycle status
// is never updated here even when the verdict overrides it.
func (s *ArticleService) Get(ctx context.Context, articleID string) (*ArticleView, error) {
	var article models.Article
	if err := s.DB.WithContext(ctx).First(&article, "id = ?", articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	summary, err := s.Summarize(ctx, articleID)
	if err != nil {
		return nil, err
	}

	return &ArticleView{
		Article: article,
		Summary: summary,
		Status:  review.ResolveStatus(article.Status, summary),
	}, nil
}

// Summarize aggregates all review scores for one article.
func (s *ArticleService) Summarize(ctx context.Context, articleID string) (review.Summary, error) {
	var reviews []models.Review
	if err := s.DB.WithContext(ctx).Where("article_id = ?", articleID).Find(&reviews).Error; err != nil {
		return review.Summary{}, err
	}

	scores := make([]float64, len(reviews))
	for i, r := range reviews {
		scores[i] = r.Score
	}
	return review.Aggregate(scores), nil
}

// SubmitReview records an immutable review. One review per reviewer per
// article; authors cannot review their own work. The first review moves a
// pending article into under_review.
func (s *ArticleService) SubmitReview(ctx context.Context, articleID, reviewerID string, score float64, recommendation models.Recommendation, comments string) (*models.Review, error) {
	if !recommendation.Valid() {
		return nil, ErrInvalidRecommendation
	}
	if score < 0 {
		return nil, ErrInvalidScore
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
	if article.AuthorID == reviewerID {
		return nil, ErrOwnArticle
	}

	var existing int64
	if err := s.DB.WithContext(ctx).Model(&models.Review{}).
		Where("article_id = ? AND reviewer_id = ?", articleID, reviewerID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyReviewed
	}

	rec := models.Review{
		ArticleID:      articleID,
		ReviewerID:     reviewerID,
		Score:          score,
		Recommendation: recommendation,
		Comments:       comments,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		if article.Status == models.ArticlePending {
			return tx.Model(&models.Article{}).Where("id = ?", articleID).
				Update("status", models.ArticleUnderReview).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return &rec, nil
}

// ListReviews returns all reviews for one article, oldest first.
func (s *ArticleService) ListReviews(ctx context.Context, articleID string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.DB.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at asc").
		Find(&reviews).Error
	return reviews, err
}
