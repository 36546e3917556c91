package dto

import "time"

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AddProfessionRequest attaches the profession to an existing category, or
// creates a new one when CategoryName is given instead.
type AddProfessionRequest struct {
	Name         string `json:"name" binding:"required"`
	CategoryID   uint   `json:"category_id"`
	CategoryName string `json:"category_name"`
}

type AddSkillRequest struct {
	Name string `json:"name" binding:"required"`
}

type NewsRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

type QuizRequest struct {
	Question string `json:"question" binding:"required"`
	OptionA  string `json:"option_a" binding:"required"`
	OptionB  string `json:"option_b" binding:"required"`
	OptionC  string `json:"option_c" binding:"required"`
	OptionD  string `json:"option_d" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

type AdminStats struct {
	Members    int64 `json:"members"`
	Companies  int64 `json:"companies"`
	ActiveJobs int64 `json:"active_jobs"`
	Categories int64 `json:"categories"`
}

// AdminMemberRow / AdminCompanyRow back the admin console listings.
type AdminMemberRow struct {
	MemberID  string    `json:"member_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminCompanyRow struct {
	MemberID    string    `json:"member_id"`
	CompanyName string    `json:"company_name"`
	Email       string    `json:"email"`
	City        string    `json:"city,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
