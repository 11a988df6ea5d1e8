// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Guide represents a published knowledge article in the guild knowledge base.
// Guides are never deleted through the API; the cascade rules on comments and
// endorsements exist for referential integrity only.
type Guide struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:140;not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Category string `gorm:"not null;default:general;index" json:"category"`
	Author   string `gorm:"not null;default:unknown" json:"author"`
	// ContentHTML is not persisted; rendered from Content on read.
	ContentHTML string    `gorm:"-" json:"contentHtml,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `gorm:"index" json:"updatedAt"`
}

// GuideSummary is the list/create response shape: no content body,
// aggregate counts computed at query time.
type GuideSummary struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	Author        string    `json:"author"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Votes         int       `json:"votes"`
	CommentsCount int       `json:"commentsCount"`
}

// GuideDetail is the full guide view returned by GET /guides/{id}.
type GuideDetail struct {
	Guide    *Guide     `json:"guide"`
	Votes    int        `json:"votes"`
	Voted    bool       `json:"voted"`
	Comments []*Comment `json:"comments"`
}
