package services_test

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/scholarnet/review-core/internal/models"
	"github.com/scholarnet/review-core/internal/ratelimit"
	"github.com/scholarnet/review-core/internal/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Article{}, &models.Review{}, &models.Flag{}, &models.AdminLog{}); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return db
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newFlagService(db *gorm.DB) *services.FlagService {
	return &services.FlagService{
		DB:              db,
		Limiter:         ratelimit.NewMemory(),
		Log:             quietLogger(),
		RateLimit:       5,
		RateWindow:      24 * time.Hour,
		EscalationCount: 2,
	}
}

func createArticle(t *testing.T, db *gorm.DB, authorID string) *models.Article {
	t.Helper()

	svc := &services.ArticleService{DB: db, Log: quietLogger()}
	article, err := svc.Submit(context.Background(), authorID, "On the Stability of Results", "An abstract.")
	if err != nil {
		t.Fatalf("creating article: %v", err)
	}
	return article
}
