package dto

import "time"

type CreateJobRequest struct {
	RoleTitle   string `json:"role_title" binding:"required"`
	Description string `json:"description"`
	JobType     string `json:"job_type"`
	ApplyLink   string `json:"apply_link"`
	SkillIDs    []uint `json:"skill_ids"`
}

type JobDTO struct {
	ID              uint       `json:"id"`
	RoleTitle       string     `json:"role_title"`
	Description     string     `json:"description,omitempty"`
	JobType         string     `json:"job_type,omitempty"`
	ApplyLink       string     `json:"apply_link,omitempty"`
	CompanyMemberID string     `json:"company_member_id"`
	CompanyName     string     `json:"company_name"`
	CompanyLogoURL  string     `json:"company_logo_url"`
	SkillNames      []string   `json:"skill_names"`
	CreatedAt       time.Time  `json:"created_at"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	DaysLeft        int        `json:"days_left"`
}

type JobListResponse struct {
	Jobs  []JobDTO `json:"jobs"`
	Total int64    `json:"total"`
}
