package database

import (
	"technest_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.MemberProfile{},
		&models.MemberSkill{},
		&models.CompanyProfile{},
		&models.CompanyService{},
		&models.Category{},
		&models.Profession{},
		&models.Skill{},
		&models.Job{},
		&models.JobSkill{},
		&models.CommunityMessage{},
		&models.Notification{},
		&models.NewsPost{},
		&models.DailyQuiz{},
		&models.AdminAccount{},
	)
}
