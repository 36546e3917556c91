package models

import "time"

// CommunityMessage is one message in the shared community channel.
// Append-only; rows older than 24h are pruned by the background worker.
// The attachment's media kind is not stored: cleanup probes image first,
// then raw.
type CommunityMessage struct {
	ID             uint   `gorm:"primaryKey"`
	SenderMemberID string `gorm:"size:16;index;not null"`
	SenderRole     Role   `gorm:"type:varchar(20);not null"`
	Body           string `gorm:"type:text"`
	FilePath       string `gorm:"size:512"`
	FileName       string `gorm:"size:255"`
	FilePublicID   string `gorm:"size:255"`
	CreatedAt      time.Time `gorm:"index"`
}

func (CommunityMessage) TableName() string { return "community_messages" }

// ChatRetention is how long community messages are kept.
const ChatRetention = 24 * time.Hour

// ChatHistoryLimit caps the history returned to a joining client.
const ChatHistoryLimit = 50
