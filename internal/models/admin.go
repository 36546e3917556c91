package models

import "time"

// AdminAccount lives in its own credential space, separate from member
// accounts and member sessions.
type AdminAccount struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:60;uniqueIndex;not null"`
	Email        string `gorm:"size:120;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
}

func (AdminAccount) TableName() string { return "admins" }
