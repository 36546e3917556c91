package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"technest_backend/internal/imageprocessor"
	"technest_backend/internal/models"
	"technest_backend/internal/services/dto"
	"technest_backend/internal/storage"
	"technest_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(store *fakeStorage) *ProfileServiceImpl {
	repos := newTestRepos()
	svc := NewProfileService(repos.members, repos.companies, repos.taxonomy, repos.content,
		repos.notifications, store, imageprocessor.NewProcessor(85), 1<<20)
	return svc.(*ProfileServiceImpl)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDashboard(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(newFakeStorage())

	member := seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)
	insertNotification(t, db, member.ID, models.RoleIndividual, models.NotificationTypeNews)
	insertNotification(t, db, member.ID, models.RoleIndividual, models.NotificationTypeQuiz)

	for i := 0; i < dashboardNewsLimit+2; i++ {
		require.NoError(t, db.Create(&models.NewsPost{Title: fmt.Sprintf("Post %d", i), Body: "b"}).Error)
	}
	require.NoError(t, db.Create(&models.DailyQuiz{
		Question: "Q", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", Answer: "a",
	}).Error)

	data, err := svc.Dashboard(db, member.MemberID, models.RoleIndividual)
	require.NoError(t, err)

	assert.Equal(t, "Alice", data.Card.Name)
	assert.EqualValues(t, 2, data.UnreadNotifications)
	assert.Len(t, data.News, dashboardNewsLimit)
	require.NotNil(t, data.Quiz)
	assert.Len(t, data.Quiz.Options, 4)
}

func TestDashboardWithoutQuiz(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(newFakeStorage())
	member := seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)

	data, err := svc.Dashboard(db, member.MemberID, models.RoleIndividual)
	require.NoError(t, err)
	assert.Nil(t, data.Quiz)
	assert.Empty(t, data.News)
}

func TestDetailedResolvesTaxonomyNames(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(newFakeStorage())

	devID := seedProfession(t, db, "Software Development")
	goID := seedSkill(t, db, "Go")
	member := seedIndividual(t, db, "ind-aaaaaa", "Alice", &devID, goID)

	resp, err := svc.Detailed(db, member.MemberID, models.RoleIndividual)
	require.NoError(t, err)
	require.NotNil(t, resp.Member)
	assert.Nil(t, resp.Company)
	assert.Equal(t, "Software Development", resp.Member.ProfessionName)
	assert.Equal(t, []string{"Go"}, resp.Member.SkillNames)
}

func TestPublicProfileRoleFromPrefix(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(newFakeStorage())

	seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)
	seedCompany(t, db, "com-aaaaaa", "Acme")

	resp, err := svc.PublicProfile(db, "ind-aaaaaa")
	require.NoError(t, err)
	assert.Equal(t, models.RoleIndividual, resp.Role)
	require.NotNil(t, resp.Member)

	resp, err = svc.PublicProfile(db, "com-aaaaaa")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCompany, resp.Role)
	require.NotNil(t, resp.Company)

	_, err = svc.PublicProfile(db, "ind-missing")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestUpdateIndividualReplacesSkills(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(newFakeStorage())

	goID := seedSkill(t, db, "Go")
	sqlID := seedSkill(t, db, "SQL")
	member := seedIndividual(t, db, "ind-aaaaaa", "Alice", nil, goID)

	err := svc.UpdateIndividual(context.Background(), db, member.MemberID, &dto.UpdateMemberProfileRequest{
		FirstName: "Alice",
		City:      "Almaty",
		SkillIDs:  []uint{sqlID, sqlID},
	}, nil)
	require.NoError(t, err)

	var skills []models.MemberSkill
	require.NoError(t, db.Where("member_id = ?", member.ID).Find(&skills).Error)
	require.Len(t, skills, 1)
	assert.Equal(t, sqlID, skills[0].SkillID)

	var updated models.MemberProfile
	require.NoError(t, db.First(&updated, member.ID).Error)
	assert.Equal(t, "Almaty", updated.City)
}

func TestUpdateIndividualStoresPicture(t *testing.T) {
	db := newTestDB(t)
	store := newFakeStorage()
	svc := newProfileService(store)
	member := seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)

	err := svc.UpdateIndividual(context.Background(), db, member.MemberID,
		&dto.UpdateMemberProfileRequest{FirstName: "Alice"},
		&dto.ImageUpload{Data: pngBytes(t, 10, 10), ContentType: "image/png"})
	require.NoError(t, err)

	var updated models.MemberProfile
	require.NoError(t, db.First(&updated, member.ID).Error)
	assert.Equal(t, "profiles/ind-aaaaaa", updated.PicPublicID)
	assert.True(t, store.has("profiles/ind-aaaaaa", storage.KindImage))
}

func TestUpdateIndividualRejectsBadImages(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(newFakeStorage())
	member := seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)
	req := &dto.UpdateMemberProfileRequest{FirstName: "Alice"}

	err := svc.UpdateIndividual(context.Background(), db, member.MemberID, req,
		&dto.ImageUpload{Data: make([]byte, 1<<20+1), ContentType: "image/png"})
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)

	err = svc.UpdateIndividual(context.Background(), db, member.MemberID, req,
		&dto.ImageUpload{Data: []byte("not an image"), ContentType: "image/png"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
}

func TestUpdateIndividualKeepsPictureWhenStorageFails(t *testing.T) {
	db := newTestDB(t)
	store := newFakeStorage()
	svc := newProfileService(store)

	member := seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)
	require.NoError(t, db.Model(member).Updates(map[string]any{
		"pic_path":      "https://cdn.test/image/profiles/ind-aaaaaa",
		"pic_public_id": "profiles/ind-aaaaaa",
	}).Error)

	store.failUpload = true
	err := svc.UpdateIndividual(context.Background(), db, member.MemberID,
		&dto.UpdateMemberProfileRequest{FirstName: "Alicia"},
		&dto.ImageUpload{Data: pngBytes(t, 10, 10), ContentType: "image/png"})
	require.NoError(t, err)

	// The scalar update landed while the old picture stayed referenced.
	var updated models.MemberProfile
	require.NoError(t, db.First(&updated, member.ID).Error)
	assert.Equal(t, "Alicia", updated.FirstName)
	assert.Equal(t, "profiles/ind-aaaaaa", updated.PicPublicID)
}

func TestUpdateIndividualRejectsBadDOB(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(newFakeStorage())
	member := seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)

	err := svc.UpdateIndividual(context.Background(), db, member.MemberID,
		&dto.UpdateMemberProfileRequest{FirstName: "Alice", DOB: "12/04/1995"}, nil)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestUpdateCompanyReplacesServices(t *testing.T) {
	db := newTestDB(t)
	store := newFakeStorage()
	svc := newProfileService(store)

	webID := seedProfession(t, db, "Web Development")
	seoID := seedProfession(t, db, "SEO")
	company := seedCompany(t, db, "com-aaaaaa", "Acme", webID)

	err := svc.UpdateCompany(context.Background(), db, company.MemberID, &dto.UpdateCompanyProfileRequest{
		CompanyName: "Acme Ltd",
		ServiceIDs:  []uint{seoID},
	}, &dto.ImageUpload{Data: pngBytes(t, 10, 10), ContentType: "image/png"})
	require.NoError(t, err)

	var services []models.CompanyService
	require.NoError(t, db.Where("company_id = ?", company.ID).Find(&services).Error)
	require.Len(t, services, 1)
	assert.Equal(t, seoID, services[0].ServiceID)

	var updated models.CompanyProfile
	require.NoError(t, db.First(&updated, company.ID).Error)
	assert.Equal(t, "Acme Ltd", updated.CompanyName)
	assert.Equal(t, "logos/com-aaaaaa", updated.LogoPublicID)
	assert.True(t, store.has("logos/com-aaaaaa", storage.KindImage))
}
