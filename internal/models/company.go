package models

// CompanyProfile is the company's profile row.
type CompanyProfile struct {
	ID              uint   `gorm:"primaryKey"`
	MemberID        string `gorm:"size:16;uniqueIndex;not null"`
	CompanyName     string `gorm:"size:120;not null"`
	OwnerName       string `gorm:"size:120"`
	EstablishedYear int
	EmployeeRange   string `gorm:"size:40"`
	City            string `gorm:"size:80"`
	Address         string `gorm:"size:255"`
	MapURL          string `gorm:"size:512"`
	About           string `gorm:"type:text"`
	LogoPath        string `gorm:"size:512"`
	LogoPublicID    string `gorm:"size:255"`
	Email           string `gorm:"size:120"`
	WebsiteURL      string `gorm:"size:255"`
	LinkedinURL     string `gorm:"size:255"`
	ContactNo       string `gorm:"size:30"`
}

func (CompanyProfile) TableName() string { return "companies" }

// CompanyService is the company -> profession join row: professions the
// company offers as services. Replaced wholesale on profile update.
type CompanyService struct {
	CompanyID uint `gorm:"primaryKey;autoIncrement:false"`
	ServiceID uint `gorm:"primaryKey;autoIncrement:false"` // profession id
}

func (CompanyService) TableName() string { return "company_services" }
