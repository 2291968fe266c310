package models

import (
	"time"
)

// Session is a named meal slot (e.g. "DINNER DAY-1") that passes are scoped
// to. Names are unique and immutable after creation.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Session) TableName() string {
	return "sessions"
}
