package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Article is a submitted manuscript. Status tracks scholarly acceptance;
// ModerationStatus tracks content safety. FlagCount must equal
// len(FlaggedBy) for any consistent read.
type Article struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	AuthorID string        `gorm:"index;not null" json:"authorId"`
	Title    string        `gorm:"not null" json:"title"`
	Abstract string        `json:"abstract"`
	Status   ArticleStatus `gorm:"default:'pending'" json:"status"`

	ModerationStatus ModerationStatus `gorm:"default:'active'" json:"moderationStatus"`
	FlagCount        int              `gorm:"default:0" json:"flagCount"`
	FlaggedBy        UserIDList       `gorm:"type:jsonb" json:"flaggedBy"`
	LastFlaggedAt    *time.Time       `json:"lastFlaggedAt,omitempty"`
	ModerationNotes  string           `json:"moderationNotes,omitempty"`
	ModeratedBy      string           `json:"moderatedBy,omitempty"`
	ModeratedAt      *time.Time       `json:"moderatedAt,omitempty"`
	IsDeleted        bool             `gorm:"default:false" json:"isDeleted"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

// Removed reports whether the article is no longer flaggable.
func (a *Article) Removed() bool {
	return a.IsDeleted || a.ModerationStatus == ModerationRemoved
}

// Review is one reviewer's score and verdict for an article. Reviews are
// immutable once created; there is no update path.
type Review struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	ArticleID      string         `gorm:"index;uniqueIndex:idx_reviews_article_reviewer;not null" json:"articleId"`
	ReviewerID     string         `gorm:"uniqueIndex:idx_reviews_article_reviewer;not null" json:"reviewerId"`
	Score          float64        `json:"score"`
	Recommendation Recommendation `json:"recommendation"`
	Comments       string         `json:"comments,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// Flag is one reader's report against an article. At most one flag exists
// per (article, reporter) pair; the composite unique index backs the
// application-level duplicate check. Flags are never deleted.
type Flag struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `json:"timestamp"`

	ArticleID  string       `gorm:"index;uniqueIndex:idx_flags_article_reporter;not null" json:"articleId"`
	ReportedBy string       `gorm:"uniqueIndex:idx_flags_article_reporter;not null" json:"reportedBy"`
	Category   FlagCategory `gorm:"not null" json:"category"`
	Reason     string       `gorm:"size:500" json:"reason,omitempty"`
	Status     FlagStatus   `gorm:"default:'pending';index" json:"status"`
	ResolvedBy string       `json:"resolvedBy,omitempty"`
	ResolvedAt *time.Time   `json:"resolvedAt,omitempty"`
}

func (f *Flag) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}

// AdminLog is one entry in the append-only audit trail. Entries are written
// as a side effect of moderation decisions and never mutated.
type AdminLog struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `json:"timestamp"`

	AdminID    string  `gorm:"index;not null" json:"adminId"`
	AdminEmail string  `json:"adminEmail"`
	AdminRole  string  `json:"adminRole"`
	ActionType string  `gorm:"index;not null" json:"actionType"`
	TargetID   string  `gorm:"index" json:"targetId"`
	TargetType string  `json:"targetType"`
	Details    JSONMap `gorm:"type:jsonb" json:"details"`
}

func (l *AdminLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return
}
