package models

import (
	"gorm.io/datatypes"
)

// MemberProfile is the individual's profile. ID is the internal key used by
// join tables and notifications; MemberID is the external identifier.
type MemberProfile struct {
	ID           uint   `gorm:"primaryKey"`
	MemberID     string `gorm:"size:16;uniqueIndex;not null"`
	FirstName    string `gorm:"size:60"`
	LastName     string `gorm:"size:60"`
	Gender       string `gorm:"size:20"`
	ContactNo    string `gorm:"size:30"`
	City         string `gorm:"size:80"`
	DOB          *datatypes.Date
	Education    string `gorm:"size:255"`
	Experience   string `gorm:"size:255"`
	ProfessionID *uint  `gorm:"index"`
	Tagline      string `gorm:"size:255"`
	PicPath      string `gorm:"size:512"`
	PicPublicID  string `gorm:"size:255"`
	LinkedinURL  string `gorm:"size:255"`
	GithubURL    string `gorm:"size:255"`
}

func (MemberProfile) TableName() string { return "members" }

// DisplayName joins the name parts for avatars and chat.
func (m *MemberProfile) DisplayName() string {
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}

// MemberSkill is the member -> skill join row. Replaced wholesale on
// profile update.
type MemberSkill struct {
	MemberID uint `gorm:"primaryKey;autoIncrement:false"`
	SkillID  uint `gorm:"primaryKey;autoIncrement:false"`
}

func (MemberSkill) TableName() string { return "member_skills" }
