package models

import "time"

// Role distinguishes the two membership types. Immutable after signup.
type Role string

const (
	RoleIndividual Role = "individual"
	RoleCompany    Role = "company"
)

// MemberIDPrefix returns the external id prefix for the role.
func (r Role) MemberIDPrefix() string {
	if r == RoleCompany {
		return "com-"
	}
	return "ind-"
}

// Account is the credential row shared by individuals and companies.
// MemberID is the external identifier ("ind-xxxxxx" / "com-xxxxxx"); the
// profile row carries the numeric internal key.
type Account struct {
	ID           uint   `gorm:"primaryKey"`
	MemberID     string `gorm:"size:16;uniqueIndex;not null"`
	Email        string `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         Role   `gorm:"type:varchar(20);not null"`
	ResetToken   *string `gorm:"size:64;index"`
	ResetExpires *time.Time
	CreatedAt    time.Time
}

func (Account) TableName() string { return "accounts" }
