package models

// Category groups professions for the admin console and signup forms.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:80;uniqueIndex;not null"`
}

func (Category) TableName() string { return "categories" }

type Profession struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:80;uniqueIndex;not null"`
	CategoryID uint   `gorm:"index;not null"`
}

func (Profession) TableName() string { return "professions" }

type Skill struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:80;uniqueIndex;not null"`
}

func (Skill) TableName() string { return "skills" }
