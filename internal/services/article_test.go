package services_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/scholarnet/review-core/internal/models"
	"github.com/scholarnet/review-core/internal/review"
	"github.com/scholarnet/review-core/internal/services"
)

func TestSubmitRequiresTitle(t *testing.T) {
	db := setupTestDB(t)
	svc := &services.ArticleService{DB: db, Log: quietLogger()}

	if _, err := svc.Submit(context.Background(), "author-1", "   ", ""); !errors.Is(err, services.ErrInvalidTitle) {
		t.Errorf("blank title err = %v, want ErrInvalidTitle", err)
	}
}

func TestFirstReviewMovesPendingToUnderReview(t *testing.T) {
	db := setupTestDB(t)
	svc := &services.ArticleService{DB: db, Log: quietLogger()}
	article := createArticle(t, db, "author-1")
	ctx := context.Background()

	if _, err := svc.SubmitReview(ctx, article.ID, "reviewer-1", 4.0, models.RecommendAccept, "solid"); err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}

	var stored models.Article
	db.First(&stored, "id = ?", article.ID)
	if stored.Status != models.ArticleUnderReview {
		t.Errorf("status = %s, want under_review after first review", stored.Status)
	}
}

func TestSubmitReviewGuards(t *testing.T) {
	db := setupTestDB(t)
	svc := &services.ArticleService{DB: db, Log: quietLogger()}
	article := createArticle(t, db, "author-1")
	ctx := context.Background()

	if _, err := svc.SubmitReview(ctx, article.ID, "author-1", 4.0, models.RecommendAccept, ""); !errors.Is(err, services.ErrOwnArticle) {
		t.Errorf("self-review err = %v, want ErrOwnArticle", err)
	}

	if _, err := svc.SubmitReview(ctx, article.ID, "reviewer-1", 4.0, "strong_accept", ""); !errors.Is(err, services.ErrInvalidRecommendation) {
		t.Errorf("bad recommendation err = %v, want ErrInvalidRecommendation", err)
	}

	if _, err := svc.SubmitReview(ctx, article.ID, "reviewer-1", -1, models.RecommendAccept, ""); !errors.Is(err, services.ErrInvalidScore) {
		t.Errorf("negative score err = %v, want ErrInvalidScore", err)
	}

	if _, err := svc.SubmitReview(ctx, article.ID, "reviewer-1", 4.0, models.RecommendAccept, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SubmitReview(ctx, article.ID, "reviewer-1", 3.0, models.RecommendReject, ""); !errors.Is(err, services.ErrAlreadyReviewed) {
		t.Errorf("second review err = %v, want ErrAlreadyReviewed", err)
	}
}

func TestGetResolvesAcceptedFromScores(t *testing.T) {
	db := setupTestDB(t)
	svc := &services.ArticleService{DB: db, Log: quietLogger()}
	article := createArticle(t, db, "author-1")
	ctx := context.Background()

	for _, r := range []struct {
		reviewer string
		score    float64
	}{{"reviewer-1", 4.5}, {"reviewer-2", 2.0}} {
		if _, err := svc.SubmitReview(ctx, article.ID, r.reviewer, r.score, models.RecommendAccept, ""); err != nil {
			t.Fatal(err)
		}
	}

	view, err := svc.Get(ctx, article.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if math.Abs(view.Summary.AverageScore-3.25) > 1e-9 {
		t.Errorf("average = %v, want 3.25", view.Summary.AverageScore)
	}
	if view.Status.Status != review.DisplayAccepted {
		t.Errorf("display status = %s, want ACCEPTED", view.Status.Status)
	}
	// The verdict is a projection only; the stored lifecycle is untouched.
	var stored models.Article
	db.First(&stored, "id = ?", article.ID)
	if stored.Status != models.ArticleUnderReview {
		t.Errorf("persisted status = %s, want under_review (no write-back)", stored.Status)
	}
}

func TestGetResolvesSumScaleScores(t *testing.T) {
	db := setupTestDB(t)
	svc := &services.ArticleService{DB: db, Log: quietLogger()}
	article := createArticle(t, db, "author-1")
	ctx := context.Background()

	for _, r := range []struct {
		reviewer string
		score    float64
	}{{"reviewer-1", 12}, {"reviewer-2", 18}} {
		if _, err := svc.SubmitReview(ctx, article.ID, r.reviewer, r.score, models.RecommendMinorRevisions, ""); err != nil {
			t.Fatal(err)
		}
	}

	view, err := svc.Get(ctx, article.ID)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(view.Summary.AverageScore-3.0) > 1e-9 {
		t.Errorf("normalized average = %v, want 3.0", view.Summary.AverageScore)
	}
	if !view.Summary.PassesThreshold || view.Status.Status != review.DisplayAccepted {
		t.Errorf("summary = %+v status = %s, want passing/ACCEPTED", view.Summary, view.Status.Status)
	}
}
