package models

import "time"

const (
	NotificationTypeNews     = "news"
	NotificationTypeQuiz     = "quiz"
	NotificationTypeJobMatch = "job_match"
)

// Notification targets a profile row by its internal key plus role, since
// member and company keys live in separate tables.
type Notification struct {
	ID            uint   `gorm:"primaryKey"`
	RecipientID   uint   `gorm:"index:idx_notifications_recipient;not null"`
	RecipientRole Role   `gorm:"type:varchar(20);index:idx_notifications_recipient;not null"`
	Type          string `gorm:"size:20;not null"`
	Message       string `gorm:"size:512;not null"`
	IsRead        bool   `gorm:"default:false"`
	CreatedAt     time.Time
}

func (Notification) TableName() string { return "notifications" }
