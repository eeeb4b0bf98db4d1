package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/scholarnet/review-core/internal/models"
)

// ModerationService applies admin decisions to flagged articles and keeps
// the audit trail.
type ModerationService struct {
	DB  *gorm.DB
	Log *log.Logger
}

// Admin identifies who is making a moderation decision, as recorded in the
// audit trail.
type Admin struct {
	ID    string
	Email string
	Role  string
}

// Resolve applies action to articleID. Approving the article rejects its
// flags (the flags were judged invalid); rejecting the article removes it
// and accepts the flags. The article update, flag updates and audit-log
// append run in one transaction so a crash cannot leave them disagreeing.
func (s *ModerationService) Resolve(ctx context.Context, articleID string, action models.ModerationAction, notes string, admin Admin) (*models.Article, error) {
	if !action.Valid() {
		return nil, ErrInvalidAction
	}

	var article models.Article
	if err := s.DB.WithContext(ctx).First(&article, "id = ?", articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	previousStatus := article.ModerationStatus
	newStatus := models.ModerationActive
	flagStatus := models.FlagRejected
	if action == models.ActionReject {
		newStatus = models.ModerationRemoved
		flagStatus = models.FlagAccepted
	}

	var flags []models.Flag
	if err := s.DB.WithContext(ctx).Where("article_id = ?", articleID).Find(&flags).Error; err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(flags))
	seen := make(map[models.FlagCategory]bool)
	for _, f := range flags {
		if !seen[f.Category] {
			seen[f.Category] = true
			categories = append(categories, string(f.Category))
		}
	}

	now := time.Now()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Article{}).Where("id = ?", articleID).
			Updates(map[string]any{
				"moderation_status": newStatus,
				"moderation_notes":  notes,
				"moderated_by":      admin.ID,
				"moderated_at":      now,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Flag{}).Where("article_id = ?", articleID).
			Updates(map[string]any{
				"status":      flagStatus,
				"resolved_by": admin.ID,
				"resolved_at": now,
			}).Error; err != nil {
			return err
		}

		entry := models.AdminLog{
			AdminID:    admin.ID,
			AdminEmail: admin.Email,
			AdminRole:  admin.Role,
			ActionType: "moderate_article",
			TargetID:   articleID,
			TargetType: "article",
			Details: models.JSONMap{
				"action":         string(action),
				"previousStatus": string(previousStatus),
				"newStatus":      string(newStatus),
				"notes":          notes,
				"flagCount":      len(flags),
				"categories":     categories,
			},
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	article.ModerationStatus = newStatus
	article.ModerationNotes = notes
	article.ModeratedBy = admin.ID
	article.ModeratedAt = &now
	s.Log.Printf("article %s moderated: %s -> %s by %s (%d flags)",
		articleID, previousStatus, newStatus, admin.ID, len(flags))
	return &article, nil
}

// ListFlags returns flags filtered by status (all statuses when empty),
// newest first.
func (s *ModerationService) ListFlags(ctx context.Context, status models.FlagStatus) ([]models.Flag, error) {
	q := s.DB.WithContext(ctx).Model(&models.Flag{}).Order("created_at desc")
	if status != "" {
		if !status.Valid() {
			return nil, errors.New("invalid flag status filter")
		}
		q = q.Where("status = ?", status)
	}
	var flags []models.Flag
	err := q.Find(&flags).Error
	return flags, err
}

// ListLogs returns the most recent audit entries, newest first.
func (s *ModerationService) ListLogs(ctx context.Context, limit int) ([]models.AdminLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var logs []models.AdminLog
	err := s.DB.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&logs).Error
	return logs, err
}
