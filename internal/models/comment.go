package models

import (
	"time"
)

// Comment represents a comment on a guide. Append-only: no update or delete
// path exists; rows go away only if the referenced guide is ever deleted.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GuideID   uint      `gorm:"not null;index" json:"-"`
	Author    string    `gorm:"not null;default:unknown" json:"author"`
	Body      string    `gorm:"column:comment;type:text;not null" json:"comment"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	Guide Guide `gorm:"foreignKey:GuideID;constraint:OnDelete:CASCADE" json:"-"`
}
