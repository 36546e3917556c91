package models

import "time"

// Job is a company posting. ExpiresAt is set to CreatedAt + 10 days on
// creation; a NULL value means the job never expires and counts as active.
type Job struct {
	ID          uint   `gorm:"primaryKey"`
	CompanyID   uint   `gorm:"index;not null"`
	RoleTitle   string `gorm:"size:120;not null"`
	Description string `gorm:"type:text"`
	JobType     string `gorm:"size:40"`
	ApplyLink   string `gorm:"size:512"`
	CreatedAt   time.Time
	ExpiresAt   *time.Time `gorm:"index"`
}

func (Job) TableName() string { return "jobs" }

// JobLifetime is how long a new posting stays visible.
const JobLifetime = 10 * 24 * time.Hour

// JobSkill is the job -> required skill join row.
type JobSkill struct {
	JobID   uint `gorm:"primaryKey;autoIncrement:false"`
	SkillID uint `gorm:"primaryKey;autoIncrement:false"`
}

func (JobSkill) TableName() string { return "job_skills" }
