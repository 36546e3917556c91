package dto

import "technest_backend/internal/models"

// SignupRequest starts the OTP flow. The company name is collected up front
// so the registration form can be prefilled after verification.
type SignupRequest struct {
	Email       string      `json:"email" binding:"required,email"`
	Password    string      `json:"password" binding:"required,min=8"`
	Role        models.Role `json:"role" binding:"required,oneof=individual company"`
	CompanyName string      `json:"company_name,omitempty" binding:"required_if=Role company"`
}

type VerifyOTPRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

// RegisterIndividualRequest completes an individual signup. DOB uses
// YYYY-MM-DD.
type RegisterIndividualRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name"`
	Gender       string `json:"gender"`
	ContactNo    string `json:"contact_no"`
	City         string `json:"city"`
	DOB          string `json:"dob"`
	Education    string `json:"education"`
	Experience   string `json:"experience"`
	ProfessionID *uint  `json:"profession_id"`
	Tagline      string `json:"tagline"`
	SkillIDs     []uint `json:"skill_ids"`
	LinkedinURL  string `json:"linkedin_url"`
	GithubURL    string `json:"github_url"`
}

// RegisterCompanyRequest completes a company signup.
type RegisterCompanyRequest struct {
	OwnerName       string `json:"owner_name"`
	EstablishedYear int    `json:"established_year"`
	EmployeeRange   string `json:"employee_range"`
	City            string `json:"city"`
	Address         string `json:"address"`
	MapURL          string `json:"map_url"`
	About           string `json:"about"`
	Email           string `json:"email"`
	WebsiteURL      string `json:"website_url"`
	LinkedinURL     string `json:"linkedin_url"`
	ContactNo       string `json:"contact_no"`
	ServiceIDs      []uint `json:"service_ids"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

// AuthResponse identifies the session owner after login or registration.
type AuthResponse struct {
	MemberID string      `json:"member_id"`
	Role     models.Role `json:"role"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type PasswordResetConfirm struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}
