package repositories

import (
	"errors"

	"technest_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMemberNotFound = errors.New("member profile not found")

type MemberRepository interface {
	Create(db *gorm.DB, member *models.MemberProfile) error
	FindByMemberID(db *gorm.DB, memberID string) (*models.MemberProfile, error)
	FindByID(db *gorm.DB, id uint) (*models.MemberProfile, error)
	UpdateScalars(db *gorm.DB, member *models.MemberProfile) error
	ReplaceSkills(db *gorm.DB, memberID uint, skillIDs []uint) error
	SkillIDs(db *gorm.DB, memberID uint) ([]uint, error)
	List(db *gorm.DB, limit, offset int) ([]models.MemberProfile, error)
	Count(db *gorm.DB) (int64, error)
	MatchByProfessionOrSkills(db *gorm.DB, excludeID uint, professionID *uint, skillIDs []uint) ([]models.MemberProfile, error)
	FindByProfessionIn(db *gorm.DB, professionIDs []uint) ([]models.MemberProfile, error)
	IDsWithAnySkill(db *gorm.DB, skillIDs []uint) ([]uint, error)
	AllIDs(db *gorm.DB) ([]uint, error)
	DeleteSkills(db *gorm.DB, memberID uint) error
	DeleteByID(db *gorm.DB, id uint) error
}

type MemberRepositoryImpl struct{}

func NewMemberRepository() MemberRepository {
	return &MemberRepositoryImpl{}
}

func (r *MemberRepositoryImpl) Create(db *gorm.DB, member *models.MemberProfile) error {
	return db.Create(member).Error
}

func (r *MemberRepositoryImpl) FindByMemberID(db *gorm.DB, memberID string) (*models.MemberProfile, error) {
	var member models.MemberProfile
	err := db.Where("member_id = ?", memberID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.MemberProfile, error) {
	var member models.MemberProfile
	err := db.First(&member, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// UpdateScalars writes the profile columns, including zero values, but never
// touches the identifiers.
func (r *MemberRepositoryImpl) UpdateScalars(db *gorm.DB, member *models.MemberProfile) error {
	return db.Model(&models.MemberProfile{}).
		Where("id = ?", member.ID).
		Select("first_name", "last_name", "gender", "contact_no", "city", "dob",
			"education", "experience", "profession_id", "tagline",
			"pic_path", "pic_public_id", "linkedin_url", "github_url").
		Updates(member).Error
}

// ReplaceSkills deletes the member's current skill rows and inserts the
// deduplicated new set.
func (r *MemberRepositoryImpl) ReplaceSkills(db *gorm.DB, memberID uint, skillIDs []uint) error {
	if err := db.Where("member_id = ?", memberID).Delete(&models.MemberSkill{}).Error; err != nil {
		return err
	}

	rows := dedupJoinRows(skillIDs)
	if len(rows) == 0 {
		return nil
	}

	joins := make([]models.MemberSkill, 0, len(rows))
	for _, id := range rows {
		joins = append(joins, models.MemberSkill{MemberID: memberID, SkillID: id})
	}
	return db.Create(&joins).Error
}

func (r *MemberRepositoryImpl) SkillIDs(db *gorm.DB, memberID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.MemberSkill{}).
		Where("member_id = ?", memberID).
		Pluck("skill_id", &ids).Error
	return ids, err
}

func (r *MemberRepositoryImpl) List(db *gorm.DB, limit, offset int) ([]models.MemberProfile, error) {
	var members []models.MemberProfile
	err := db.Order("id").Limit(limit).Offset(offset).Find(&members).Error
	return members, err
}

func (r *MemberRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.MemberProfile{}).Count(&count).Error
	return count, err
}

// MatchByProfessionOrSkills returns members sharing the profession or any of
// the skill ids, excluding the member itself. Distinct on the profile row.
func (r *MemberRepositoryImpl) MatchByProfessionOrSkills(db *gorm.DB, excludeID uint, professionID *uint, skillIDs []uint) ([]models.MemberProfile, error) {
	var profID uint
	if professionID != nil {
		profID = *professionID
	}

	var members []models.MemberProfile
	query := db.Model(&models.MemberProfile{}).
		Distinct("members.*").
		Joins("LEFT JOIN member_skills ms ON ms.member_id = members.id").
		Where("members.id <> ?", excludeID)

	if len(skillIDs) > 0 {
		query = query.Where("members.profession_id = ? OR ms.skill_id IN ?", profID, skillIDs)
	} else {
		query = query.Where("members.profession_id = ?", profID)
	}

	err := query.Order("members.id").Find(&members).Error
	return members, err
}

func (r *MemberRepositoryImpl) FindByProfessionIn(db *gorm.DB, professionIDs []uint) ([]models.MemberProfile, error) {
	if len(professionIDs) == 0 {
		return nil, nil
	}
	var members []models.MemberProfile
	err := db.Where("profession_id IN ?", professionIDs).Order("id").Find(&members).Error
	return members, err
}

// IDsWithAnySkill returns internal keys of members holding at least one of
// the skills. Used to fan out job match notifications.
func (r *MemberRepositoryImpl) IDsWithAnySkill(db *gorm.DB, skillIDs []uint) ([]uint, error) {
	if len(skillIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := db.Model(&models.MemberSkill{}).
		Distinct("member_id").
		Where("skill_id IN ?", skillIDs).
		Pluck("member_id", &ids).Error
	return ids, err
}

func (r *MemberRepositoryImpl) AllIDs(db *gorm.DB) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.MemberProfile{}).Pluck("id", &ids).Error
	return ids, err
}

func (r *MemberRepositoryImpl) DeleteSkills(db *gorm.DB, memberID uint) error {
	return db.Where("member_id = ?", memberID).Delete(&models.MemberSkill{}).Error
}

func (r *MemberRepositoryImpl) DeleteByID(db *gorm.DB, id uint) error {
	return db.Delete(&models.MemberProfile{}, id).Error
}

// dedupJoinRows drops duplicate ids preserving first-seen order.
func dedupJoinRows(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
