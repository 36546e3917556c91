package services

import (
	"context"
	"testing"
	"time"

	"technest_backend/internal/models"
	"technest_backend/internal/services/dto"
	"technest_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAdminService(store *fakeStorage) *AdminServiceImpl {
	repos := newTestRepos()
	svc := NewAdminService(repos.admins, repos.accounts, repos.members, repos.companies,
		repos.taxonomy, repos.jobs, repos.notifications, repos.content, store)
	return svc.(*AdminServiceImpl)
}

func seedAdminAccount(t *testing.T, db *gorm.DB, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.AdminAccount{
		Username:     username,
		Email:        username + "@test.local",
		PasswordHash: string(hash),
	}).Error)
}

func TestAdminLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(newFakeStorage())
	seedAdminAccount(t, db, "root", "hunter22")

	admin, err := svc.Login(db, &dto.AdminLoginRequest{Username: "root", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "root", admin.Username)

	_, err = svc.Login(db, &dto.AdminLoginRequest{Username: "root", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(db, &dto.AdminLoginRequest{Username: "nobody", Password: "hunter22"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAdminStats(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(newFakeStorage())
	now := time.Now()
	svc.now = fixedClock(now)

	seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)
	seedIndividual(t, db, "ind-bbbbbb", "Bob", nil)
	company := seedCompany(t, db, "com-aaaaaa", "Acme")
	seedProfession(t, db, "Web Development")

	expired := now.Add(-time.Hour)
	active := now.Add(time.Hour)
	require.NoError(t, db.Create(&models.Job{CompanyID: company.ID, RoleTitle: "Old", ExpiresAt: &expired}).Error)
	require.NoError(t, db.Create(&models.Job{CompanyID: company.ID, RoleTitle: "Live", ExpiresAt: &active}).Error)
	// NULL expiry counts as active.
	require.NoError(t, db.Create(&models.Job{CompanyID: company.ID, RoleTitle: "Evergreen"}).Error)

	stats, err := svc.Stats(db)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Members)
	assert.EqualValues(t, 1, stats.Companies)
	assert.EqualValues(t, 2, stats.ActiveJobs)
	assert.EqualValues(t, 1, stats.Categories)
}

func TestAddProfession(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(newFakeStorage())

	_, err := svc.AddProfession(db, &dto.AddProfessionRequest{Name: "Plumbing"})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)

	// New category created on the fly when only a name is given.
	item, err := svc.AddProfession(db, &dto.AddProfessionRequest{Name: "Plumbing", CategoryName: "Trades"})
	require.NoError(t, err)
	assert.NotZero(t, item.CategoryID)

	var category models.Category
	require.NoError(t, db.First(&category, item.CategoryID).Error)
	assert.Equal(t, "Trades", category.Name)

	// Reusing the existing category by id.
	item2, err := svc.AddProfession(db, &dto.AddProfessionRequest{Name: "Welding", CategoryID: category.ID})
	require.NoError(t, err)
	assert.Equal(t, category.ID, item2.CategoryID)

	var categoryCount int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categoryCount).Error)
	assert.EqualValues(t, 1, categoryCount)
}

func TestAddSkill(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(newFakeStorage())

	item, err := svc.AddSkill(db, &dto.AddSkillRequest{Name: "Kubernetes"})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, "Kubernetes", item.Name)
}

func TestAdminListIncludesAccountDetails(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(newFakeStorage())

	seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)
	seedCompany(t, db, "com-aaaaaa", "Acme")

	members, total, err := svc.ListIndividuals(db, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, members, 1)
	assert.Equal(t, "ind-aaaaaa@test.local", members[0].Email)

	companies, total, err := svc.ListCompanies(db, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, companies, 1)
	assert.Equal(t, "Acme", companies[0].CompanyName)
}

func TestDeleteIndividualCascades(t *testing.T) {
	db := newTestDB(t)
	store := newFakeStorage()
	svc := newAdminService(store)

	goID := seedSkill(t, db, "Go")
	member := seedIndividual(t, db, "ind-aaaaaa", "Alice", nil, goID)
	keep := seedIndividual(t, db, "ind-bbbbbb", "Bob", nil, goID)

	require.NoError(t, db.Create(&models.Notification{
		RecipientID:   member.ID,
		RecipientRole: models.RoleIndividual,
		Type:          models.NotificationTypeNews,
		Message:       "hi",
	}).Error)

	require.NoError(t, svc.DeleteMember(context.Background(), db, member.MemberID))

	var count int64
	require.NoError(t, db.Model(&models.Account{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	require.NoError(t, db.Model(&models.MemberProfile{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	require.NoError(t, db.Model(&models.MemberSkill{}).Where("member_id = ?", member.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// The survivor keeps their rows.
	require.NoError(t, db.Model(&models.MemberSkill{}).Where("member_id = ?", keep.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteCompanyCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(newFakeStorage())

	goID := seedSkill(t, db, "Go")
	webID := seedProfession(t, db, "Web Development")
	company := seedCompany(t, db, "com-aaaaaa", "Acme", webID)
	member := seedIndividual(t, db, "ind-aaaaaa", "Alice", nil, goID)

	jobSvc := newJobService()
	_, err := jobSvc.Create(db, company.MemberID, &dto.CreateJobRequest{RoleTitle: "Engineer", SkillIDs: []uint{goID}})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMember(context.Background(), db, company.MemberID))

	var count int64
	require.NoError(t, db.Model(&models.Job{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Model(&models.JobSkill{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Model(&models.CompanyService{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Model(&models.CompanyProfile{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// The member and their job_match notification recipient row survive
	// account-wise; only company-side data is gone.
	require.NoError(t, db.Model(&models.MemberProfile{}).Where("id = ?", member.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteMemberUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(newFakeStorage())

	err := svc.DeleteMember(context.Background(), db, "ind-missing")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestPublishNewsBroadcasts(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(newFakeStorage())

	member := seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)
	company := seedCompany(t, db, "com-aaaaaa", "Acme")

	require.NoError(t, svc.PublishNews(db, &dto.NewsRequest{Title: "Launch", Body: "We shipped."}))

	var posts []models.NewsPost
	require.NoError(t, db.Find(&posts).Error)
	require.Len(t, posts, 1)
	assert.Equal(t, "Launch", posts[0].Title)

	var notifications []models.Notification
	require.NoError(t, db.Order("recipient_role").Find(&notifications).Error)
	require.Len(t, notifications, 2)
	for _, n := range notifications {
		assert.Equal(t, models.NotificationTypeNews, n.Type)
		assert.Equal(t, "News: Launch", n.Message)
	}
	assert.Equal(t, company.ID, notifications[0].RecipientID)
	assert.Equal(t, member.ID, notifications[1].RecipientID)
}

func TestPublishQuizReplacesAndBroadcasts(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(newFakeStorage())
	seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)

	first := &dto.QuizRequest{Question: "Q1", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", Answer: "a"}
	require.NoError(t, svc.PublishQuiz(db, first))

	second := &dto.QuizRequest{Question: "Q2", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", Answer: "b"}
	require.NoError(t, svc.PublishQuiz(db, second))

	// Only the latest quiz survives.
	var quizzes []models.DailyQuiz
	require.NoError(t, db.Find(&quizzes).Error)
	require.Len(t, quizzes, 1)
	assert.Equal(t, "Q2", quizzes[0].Question)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Where("type = ?", models.NotificationTypeQuiz).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSeedAdminIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(newFakeStorage())

	require.NoError(t, svc.SeedAdmin(db, "root", "root@test.local", "hunter22"))
	require.NoError(t, svc.SeedAdmin(db, "second", "second@test.local", "hunter22"))

	var admins []models.AdminAccount
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "root", admins[0].Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admins[0].PasswordHash), []byte("hunter22")))
}
