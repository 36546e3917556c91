package models

import "time"

// NewsPost is an admin-published news item shown on member dashboards.
type NewsPost struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:255;not null"`
	Body      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (NewsPost) TableName() string { return "news_posts" }

// DailyQuiz is the single-row daily quiz. Publishing wipes and replaces
// the row (fixed ID 1).
type DailyQuiz struct {
	ID        uint   `gorm:"primaryKey"`
	Question  string `gorm:"type:text;not null"`
	OptionA   string `gorm:"size:255;not null"`
	OptionB   string `gorm:"size:255;not null"`
	OptionC   string `gorm:"size:255;not null"`
	OptionD   string `gorm:"size:255;not null"`
	Answer    string `gorm:"size:255;not null"`
	UpdatedAt time.Time
}

func (DailyQuiz) TableName() string { return "daily_quiz" }

// DailyQuizID is the fixed primary key of the single quiz row.
const DailyQuizID uint = 1
