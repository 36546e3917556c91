package dto

import (
	"time"

	"technest_backend/internal/models"
)

// DashboardCard is the compact identity block on the dashboard.
type DashboardCard struct {
	MemberID  string      `json:"member_id"`
	Role      models.Role `json:"role"`
	Name      string      `json:"name"`
	AvatarURL string      `json:"avatar_url"`
	Tagline   string      `json:"tagline,omitempty"`
	City      string      `json:"city,omitempty"`
}

// DashboardData is everything the dashboard view needs in one response.
type DashboardData struct {
	Card                DashboardCard  `json:"card"`
	UnreadNotifications int64          `json:"unread_notifications"`
	News                []NewsItemDTO  `json:"news"`
	Quiz                *QuizDTO       `json:"quiz,omitempty"`
}

type MemberProfileDTO struct {
	MemberID       string   `json:"member_id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Gender         string   `json:"gender,omitempty"`
	ContactNo      string   `json:"contact_no,omitempty"`
	City           string   `json:"city,omitempty"`
	DOB            string   `json:"dob,omitempty"`
	Education      string   `json:"education,omitempty"`
	Experience     string   `json:"experience,omitempty"`
	ProfessionID   *uint    `json:"profession_id,omitempty"`
	ProfessionName string   `json:"profession_name,omitempty"`
	Tagline        string   `json:"tagline,omitempty"`
	AvatarURL      string   `json:"avatar_url"`
	LinkedinURL    string   `json:"linkedin_url,omitempty"`
	GithubURL      string   `json:"github_url,omitempty"`
	SkillIDs       []uint   `json:"skill_ids"`
	SkillNames     []string `json:"skill_names"`
}

type CompanyProfileDTO struct {
	MemberID        string   `json:"member_id"`
	CompanyName     string   `json:"company_name"`
	OwnerName       string   `json:"owner_name,omitempty"`
	EstablishedYear int      `json:"established_year,omitempty"`
	EmployeeRange   string   `json:"employee_range,omitempty"`
	City            string   `json:"city,omitempty"`
	Address         string   `json:"address,omitempty"`
	MapURL          string   `json:"map_url,omitempty"`
	About           string   `json:"about,omitempty"`
	AvatarURL       string   `json:"avatar_url"`
	Email           string   `json:"email,omitempty"`
	WebsiteURL      string   `json:"website_url,omitempty"`
	LinkedinURL     string   `json:"linkedin_url,omitempty"`
	ContactNo       string   `json:"contact_no,omitempty"`
	ServiceIDs      []uint   `json:"service_ids"`
	ServiceNames    []string `json:"service_names"`
}

// ProfileResponse is the role-dispatched detailed profile: exactly one of
// Member/Company is set.
type ProfileResponse struct {
	Role    models.Role        `json:"role"`
	Member  *MemberProfileDTO  `json:"member,omitempty"`
	Company *CompanyProfileDTO `json:"company,omitempty"`
}

// UpdateMemberProfileRequest carries the editable profile fields. The
// picture arrives as a separate multipart part.
type UpdateMemberProfileRequest struct {
	FirstName    string `form:"first_name" json:"first_name" binding:"required"`
	LastName     string `form:"last_name" json:"last_name"`
	Gender       string `form:"gender" json:"gender"`
	ContactNo    string `form:"contact_no" json:"contact_no"`
	City         string `form:"city" json:"city"`
	DOB          string `form:"dob" json:"dob"`
	Education    string `form:"education" json:"education"`
	Experience   string `form:"experience" json:"experience"`
	ProfessionID *uint  `form:"profession_id" json:"profession_id"`
	Tagline      string `form:"tagline" json:"tagline"`
	LinkedinURL  string `form:"linkedin_url" json:"linkedin_url"`
	GithubURL    string `form:"github_url" json:"github_url"`
	SkillIDs     []uint `form:"skill_ids" json:"skill_ids"`
}

type UpdateCompanyProfileRequest struct {
	CompanyName     string `form:"company_name" json:"company_name" binding:"required"`
	OwnerName       string `form:"owner_name" json:"owner_name"`
	EstablishedYear int    `form:"established_year" json:"established_year"`
	EmployeeRange   string `form:"employee_range" json:"employee_range"`
	City            string `form:"city" json:"city"`
	Address         string `form:"address" json:"address"`
	MapURL          string `form:"map_url" json:"map_url"`
	About           string `form:"about" json:"about"`
	Email           string `form:"email" json:"email"`
	WebsiteURL      string `form:"website_url" json:"website_url"`
	LinkedinURL     string `form:"linkedin_url" json:"linkedin_url"`
	ContactNo       string `form:"contact_no" json:"contact_no"`
	ServiceIDs      []uint `form:"service_ids" json:"service_ids"`
}

// ImageUpload is an in-memory uploaded image handed to the profile service.
type ImageUpload struct {
	Data        []byte
	ContentType string
}

type NewsItemDTO struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type QuizDTO struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}
