package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"technest_backend/database"
	"technest_backend/internal/models"
	"technest_backend/internal/repositories"
	"technest_backend/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an isolated in-memory database per test, with the full
// schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// fakeStorage keeps uploaded objects in memory and records destroys, so
// tests can assert on the image-then-raw cleanup probe.
type fakeStorage struct {
	mu         sync.Mutex
	objects    map[string]map[storage.Kind]bool
	destroyed  []string
	failUpload bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]map[storage.Kind]bool)}
}

func (f *fakeStorage) Upload(_ context.Context, reader io.Reader, _ string, p storage.UploadParams) (*storage.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failUpload {
		return nil, fmt.Errorf("storage unavailable")
	}
	if _, err := io.ReadAll(reader); err != nil {
		return nil, err
	}

	id := p.PublicID
	if id == "" {
		id = uuid.NewString()
	}
	publicID := id
	if p.Folder != "" {
		publicID = p.Folder + "/" + id
	}

	if f.objects[publicID] == nil {
		f.objects[publicID] = make(map[storage.Kind]bool)
	}
	f.objects[publicID][p.Kind] = true

	return &storage.UploadResult{
		SecureURL: "https://cdn.test/" + string(p.Kind) + "/" + publicID,
		PublicID:  publicID,
	}, nil
}

func (f *fakeStorage) Destroy(_ context.Context, publicID string, kind storage.Kind) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.objects[publicID][kind] {
		return storage.ErrObjectNotFound
	}
	delete(f.objects[publicID], kind)
	f.destroyed = append(f.destroyed, string(kind)+"/"+publicID)
	return nil
}

func (f *fakeStorage) has(publicID string, kind storage.Kind) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.objects[publicID][kind]
}

// fakeMailer records outgoing mail.
type fakeMailer struct {
	mu         sync.Mutex
	otps       []string
	resetLinks []string
	contacts   []string
}

func (f *fakeMailer) SendOTP(to, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.otps = append(f.otps, code)
	return nil
}

func (f *fakeMailer) SendPasswordReset(to, resetLink string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLinks = append(f.resetLinks, resetLink)
	return nil
}

func (f *fakeMailer) SendContactMessage(fromName, fromEmail, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = append(f.contacts, fromEmail)
	return nil
}

// --- seeding helpers ---

func seedIndividual(t *testing.T, db *gorm.DB, memberID, firstName string, professionID *uint, skillIDs ...uint) *models.MemberProfile {
	t.Helper()

	require.NoError(t, db.Create(&models.Account{
		MemberID:     memberID,
		Email:        memberID + "@test.local",
		PasswordHash: "x",
		Role:         models.RoleIndividual,
	}).Error)

	member := &models.MemberProfile{
		MemberID:     memberID,
		FirstName:    firstName,
		ProfessionID: professionID,
	}
	require.NoError(t, db.Create(member).Error)

	for _, id := range skillIDs {
		require.NoError(t, db.Create(&models.MemberSkill{MemberID: member.ID, SkillID: id}).Error)
	}
	return member
}

func seedCompany(t *testing.T, db *gorm.DB, memberID, name string, serviceIDs ...uint) *models.CompanyProfile {
	t.Helper()

	require.NoError(t, db.Create(&models.Account{
		MemberID:     memberID,
		Email:        memberID + "@test.local",
		PasswordHash: "x",
		Role:         models.RoleCompany,
	}).Error)

	company := &models.CompanyProfile{MemberID: memberID, CompanyName: name}
	require.NoError(t, db.Create(company).Error)

	for _, id := range serviceIDs {
		require.NoError(t, db.Create(&models.CompanyService{CompanyID: company.ID, ServiceID: id}).Error)
	}
	return company
}

func seedSkill(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	skill := &models.Skill{Name: name}
	require.NoError(t, db.Create(skill).Error)
	return skill.ID
}

func seedProfession(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	category := &models.Category{Name: name + " category"}
	require.NoError(t, db.Create(category).Error)
	profession := &models.Profession{Name: name, CategoryID: category.ID}
	require.NoError(t, db.Create(profession).Error)
	return profession.ID
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// testRepos bundles fresh repository instances for direct wiring in tests.
type testRepos struct {
	accounts      repositories.AccountRepository
	members       repositories.MemberRepository
	companies     repositories.CompanyRepository
	taxonomy      repositories.TaxonomyRepository
	jobs          repositories.JobRepository
	chat          repositories.ChatRepository
	notifications repositories.NotificationRepository
	content       repositories.ContentRepository
	admins        repositories.AdminRepository
}

func newTestRepos() testRepos {
	return testRepos{
		accounts:      repositories.NewAccountRepository(),
		members:       repositories.NewMemberRepository(),
		companies:     repositories.NewCompanyRepository(),
		taxonomy:      repositories.NewTaxonomyRepository(),
		jobs:          repositories.NewJobRepository(),
		chat:          repositories.NewChatRepository(),
		notifications: repositories.NewNotificationRepository(),
		content:       repositories.NewContentRepository(),
		admins:        repositories.NewAdminRepository(),
	}
}
