package dto

// MatchedMember is a member surfaced by a matching query.
type MatchedMember struct {
	MemberID  string `json:"member_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Tagline   string `json:"tagline,omitempty"`
	City      string `json:"city,omitempty"`
}

// MatchedCompany is a company surfaced by a matching query.
type MatchedCompany struct {
	MemberID    string `json:"member_id"`
	CompanyName string `json:"company_name"`
	AvatarURL   string `json:"avatar_url"`
	City        string `json:"city,omitempty"`
	About       string `json:"about,omitempty"`
}

// MatchResults groups both result sets of one matching query.
type MatchResults struct {
	Members   []MatchedMember  `json:"members"`
	Companies []MatchedCompany `json:"companies"`
}
