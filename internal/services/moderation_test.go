package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/scholarnet/review-core/internal/models"
	"github.com/scholarnet/review-core/internal/services"
)

func setupFlaggedArticle(t *testing.T, svc *services.FlagService, numFlags int) *models.Article {
	t.Helper()

	article := createArticle(t, svc.DB, "author-1")
	for i := 0; i < numFlags; i++ {
		user := fmt.Sprintf("reader-%d", i+1)
		if _, err := svc.FlagArticle(context.Background(), article.ID, user, models.CategorySpam, ""); err != nil {
			t.Fatalf("flag %d: %v", i+1, err)
		}
	}
	return article
}

func TestResolveApproveRestoresArticleAndRejectsFlags(t *testing.T) {
	db := setupTestDB(t)
	flags := newFlagService(db)
	mod := &services.ModerationService{DB: db, Log: quietLogger()}
	article := setupFlaggedArticle(t, flags, 3)
	admin := services.Admin{ID: "admin-1", Email: "admin@example.org", Role: "admin"}

	updated, err := mod.Resolve(context.Background(), article.ID, models.ActionApprove, "flags unfounded", admin)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if updated.ModerationStatus != models.ModerationActive {
		t.Errorf("moderationStatus = %s, want active", updated.ModerationStatus)
	}

	var resolved []models.Flag
	if err := db.Where("article_id = ?", article.ID).Find(&resolved).Error; err != nil {
		t.Fatal(err)
	}
	if len(resolved) != 3 {
		t.Fatalf("flag count = %d, want 3", len(resolved))
	}
	for _, f := range resolved {
		if f.Status != models.FlagRejected {
			t.Errorf("flag %s status = %s, want rejected", f.ID, f.Status)
		}
		if f.ResolvedBy != "admin-1" || f.ResolvedAt == nil {
			t.Errorf("flag %s missing resolution metadata", f.ID)
		}
	}
}

func TestResolveRejectRemovesArticleAndAcceptsFlags(t *testing.T) {
	db := setupTestDB(t)
	flags := newFlagService(db)
	mod := &services.ModerationService{DB: db, Log: quietLogger()}
	article := setupFlaggedArticle(t, flags, 2)
	admin := services.Admin{ID: "admin-1", Email: "admin@example.org", Role: "moderator"}

	updated, err := mod.Resolve(context.Background(), article.ID, models.ActionReject, "plagiarized", admin)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if updated.ModerationStatus != models.ModerationRemoved {
		t.Errorf("moderationStatus = %s, want removed", updated.ModerationStatus)
	}

	var resolved []models.Flag
	db.Where("article_id = ?", article.ID).Find(&resolved)
	for _, f := range resolved {
		if f.Status != models.FlagAccepted {
			t.Errorf("flag %s status = %s, want accepted", f.ID, f.Status)
		}
	}

	var stored models.Article
	db.First(&stored, "id = ?", article.ID)
	if stored.ModerationNotes != "plagiarized" || stored.ModeratedBy != "admin-1" || stored.ModeratedAt == nil {
		t.Errorf("moderation metadata not stored: %+v", stored)
	}
}

func TestResolveWritesOneAuditEntry(t *testing.T) {
	db := setupTestDB(t)
	flags := newFlagService(db)
	mod := &services.ModerationService{DB: db, Log: quietLogger()}
	article := setupFlaggedArticle(t, flags, 3)
	admin := services.Admin{ID: "admin-1", Email: "admin@example.org", Role: "admin"}

	if _, err := mod.Resolve(context.Background(), article.ID, models.ActionApprove, "", admin); err != nil {
		t.Fatal(err)
	}

	var logs []models.AdminLog
	if err := db.Where("target_id = ?", article.ID).Find(&logs).Error; err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("audit entries = %d, want exactly 1", len(logs))
	}

	entry := logs[0]
	if entry.ActionType != "moderate_article" || entry.TargetType != "article" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Details["previousStatus"] != string(models.ModerationUnderReview) {
		t.Errorf("previousStatus = %v, want under_review", entry.Details["previousStatus"])
	}
	if entry.Details["newStatus"] != string(models.ModerationActive) {
		t.Errorf("newStatus = %v, want active", entry.Details["newStatus"])
	}
	// jsonb round-trips numbers as float64.
	if got, ok := entry.Details["flagCount"].(float64); !ok || got != 3 {
		t.Errorf("flagCount = %v, want 3", entry.Details["flagCount"])
	}
}

func TestResolveValidation(t *testing.T) {
	db := setupTestDB(t)
	mod := &services.ModerationService{DB: db, Log: quietLogger()}
	admin := services.Admin{ID: "admin-1"}
	ctx := context.Background()

	if _, err := mod.Resolve(ctx, uuid.New().String(), models.ActionApprove, "", admin); !errors.Is(err, services.ErrArticleNotFound) {
		t.Errorf("missing article err = %v, want ErrArticleNotFound", err)
	}

	article := createArticle(t, db, "author-1")
	if _, err := mod.Resolve(ctx, article.ID, "escalate", "", admin); !errors.Is(err, services.ErrInvalidAction) {
		t.Errorf("bad action err = %v, want ErrInvalidAction", err)
	}
}

func TestListFlagsFiltersByStatus(t *testing.T) {
	db := setupTestDB(t)
	flags := newFlagService(db)
	mod := &services.ModerationService{DB: db, Log: quietLogger()}
	ctx := context.Background()

	resolved := setupFlaggedArticle(t, flags, 2)
	setupFlaggedArticle(t, flags, 1)
	admin := services.Admin{ID: "admin-1"}
	if _, err := mod.Resolve(ctx, resolved.ID, models.ActionReject, "", admin); err != nil {
		t.Fatal(err)
	}

	pending, err := mod.ListFlags(ctx, models.FlagPending)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Errorf("pending flags = %d, want 1", len(pending))
	}

	all, err := mod.ListFlags(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("all flags = %d, want 3", len(all))
	}
}
