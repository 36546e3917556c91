package dto

// MemberCard is a directory listing entry for an individual.
type MemberCard struct {
	MemberID   string   `json:"member_id"`
	Name       string   `json:"name"`
	AvatarURL  string   `json:"avatar_url"`
	Tagline    string   `json:"tagline,omitempty"`
	City       string   `json:"city,omitempty"`
	SkillNames []string `json:"skill_names"`
}

// CompanyCard is a directory listing entry for a company.
type CompanyCard struct {
	MemberID     string   `json:"member_id"`
	CompanyName  string   `json:"company_name"`
	AvatarURL    string   `json:"avatar_url"`
	City         string   `json:"city,omitempty"`
	About        string   `json:"about,omitempty"`
	ServiceNames []string `json:"service_names"`
}

type MemberListResponse struct {
	Members []MemberCard `json:"members"`
	Total   int64        `json:"total"`
}

type CompanyListResponse struct {
	Companies []CompanyCard `json:"companies"`
	Total     int64         `json:"total"`
}

// TaxonomyResponse feeds the signup and profile forms.
type TaxonomyResponse struct {
	Categories  []TaxonomyItem `json:"categories"`
	Professions []TaxonomyItem `json:"professions"`
	Skills      []TaxonomyItem `json:"skills"`
}

type TaxonomyItem struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	CategoryID uint   `json:"category_id,omitempty"`
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}
