package services

import (
	"testing"
	"time"

	"technest_backend/internal/models"
	"technest_backend/internal/services/dto"
	"technest_backend/internal/session"
	"technest_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(mailer *fakeMailer) *AuthServiceImpl {
	repos := newTestRepos()
	svc := NewAuthService(repos.accounts, repos.members, repos.companies, mailer, "http://app.test")
	return svc.(*AuthServiceImpl)
}

func TestStartSignupIssuesOTP(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	svc := newAuthService(mailer)

	state, err := svc.StartSignup(db, &dto.SignupRequest{
		Email:    "alice@test.local",
		Password: "password1",
		Role:     models.RoleIndividual,
	})
	require.NoError(t, err)

	assert.Len(t, state.Code, 6)
	assert.Equal(t, []string{state.Code}, mailer.otps)
	assert.False(t, state.Verified)
	// Only the hash leaves the request.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(state.PasswordHash), []byte("password1")))
}

func TestStartSignupRejectsKnownEmail(t *testing.T) {
	db := newTestDB(t)
	seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)
	svc := newAuthService(&fakeMailer{})

	_, err := svc.StartSignup(db, &dto.SignupRequest{
		Email:    "ind-aaaaaa@test.local",
		Password: "password1",
		Role:     models.RoleIndividual,
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestVerifyOTP(t *testing.T) {
	svc := newAuthService(&fakeMailer{})
	now := time.Now()
	svc.now = fixedClock(now)

	state := &session.SignupState{Code: "123456", CodeExpiresAt: now.Add(session.OTPLifetime)}

	assert.ErrorIs(t, svc.VerifyOTP(nil, "123456"), apperrors.ErrSignupSessionMissing)
	assert.ErrorIs(t, svc.VerifyOTP(state, "654321"), apperrors.ErrOTPMismatch)
	assert.False(t, state.Verified)

	require.NoError(t, svc.VerifyOTP(state, "123456"))
	assert.True(t, state.Verified)

	svc.now = fixedClock(now.Add(session.OTPLifetime + time.Second))
	assert.ErrorIs(t, svc.VerifyOTP(state, "123456"), apperrors.ErrOTPExpired)
}

func TestResendOTPCapped(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newAuthService(mailer)

	state := &session.SignupState{Email: "alice@test.local", Code: "111111"}

	require.NoError(t, svc.ResendOTP(state))
	require.NoError(t, svc.ResendOTP(state))
	assert.Equal(t, session.MaxOTPResends, state.ResendCount)

	err := svc.ResendOTP(state)
	assert.ErrorIs(t, err, apperrors.ErrOTPResendLimit)
	assert.Len(t, mailer.otps, session.MaxOTPResends)
}

func TestResendOTPInvalidatesVerification(t *testing.T) {
	svc := newAuthService(&fakeMailer{})

	state := &session.SignupState{Email: "alice@test.local", Code: "111111", Verified: true}
	require.NoError(t, svc.ResendOTP(state))
	assert.False(t, state.Verified)
	assert.NotEqual(t, "111111", state.Code)
}

func TestRegisterIndividual(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(&fakeMailer{})
	goID := seedSkill(t, db, "Go")
	sqlID := seedSkill(t, db, "SQL")

	hash, _ := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	state := &session.SignupState{
		Email:        "alice@test.local",
		PasswordHash: string(hash),
		Role:         models.RoleIndividual,
		Verified:     true,
	}

	resp, err := svc.RegisterIndividual(db, state, &dto.RegisterIndividualRequest{
		FirstName: "Alice",
		LastName:  "Smith",
		DOB:       "1995-04-12",
		SkillIDs:  []uint{goID, sqlID, goID},
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleIndividual, resp.Role)
	assert.Regexp(t, `^ind-[0-9a-f]{6}$`, resp.MemberID)

	var account models.Account
	require.NoError(t, db.Where("member_id = ?", resp.MemberID).First(&account).Error)
	assert.Equal(t, "alice@test.local", account.Email)

	var member models.MemberProfile
	require.NoError(t, db.Where("member_id = ?", resp.MemberID).First(&member).Error)
	assert.Equal(t, "Alice Smith", member.DisplayName())

	// Duplicate skill ids collapse to one row each.
	var skillCount int64
	require.NoError(t, db.Model(&models.MemberSkill{}).Where("member_id = ?", member.ID).Count(&skillCount).Error)
	assert.EqualValues(t, 2, skillCount)
}

func TestRegisterRequiresVerifiedState(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(&fakeMailer{})

	_, err := svc.RegisterIndividual(db, nil, &dto.RegisterIndividualRequest{FirstName: "A"})
	assert.ErrorIs(t, err, apperrors.ErrSignupSessionMissing)

	_, err = svc.RegisterIndividual(db, &session.SignupState{Role: models.RoleIndividual}, &dto.RegisterIndividualRequest{FirstName: "A"})
	assert.ErrorIs(t, err, apperrors.ErrEmailNotVerified)

	_, err = svc.RegisterIndividual(db, &session.SignupState{Role: models.RoleCompany, Verified: true}, &dto.RegisterIndividualRequest{FirstName: "A"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

func TestRegisterCompany(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(&fakeMailer{})
	webID := seedProfession(t, db, "Web Development")

	state := &session.SignupState{
		Email:        "acme@test.local",
		PasswordHash: "x",
		Role:         models.RoleCompany,
		CompanyName:  "Acme Ltd",
		Verified:     true,
	}

	resp, err := svc.RegisterCompany(db, state, &dto.RegisterCompanyRequest{
		OwnerName:  "Bob",
		ServiceIDs: []uint{webID},
	})
	require.NoError(t, err)
	assert.Regexp(t, `^com-[0-9a-f]{6}$`, resp.MemberID)

	var company models.CompanyProfile
	require.NoError(t, db.Where("member_id = ?", resp.MemberID).First(&company).Error)
	assert.Equal(t, "Acme Ltd", company.CompanyName)

	var services []models.CompanyService
	require.NoError(t, db.Where("company_id = ?", company.ID).Find(&services).Error)
	require.Len(t, services, 1)
	assert.Equal(t, webID, services[0].ServiceID)
}

func TestRegisterDuplicateEmailLeavesNoProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(&fakeMailer{})
	seedIndividual(t, db, "ind-aaaaaa", "Existing", nil)

	state := &session.SignupState{
		Email:        "ind-aaaaaa@test.local", // already taken
		PasswordHash: "x",
		Role:         models.RoleIndividual,
		Verified:     true,
	}

	_, err := svc.RegisterIndividual(db, state, &dto.RegisterIndividualRequest{FirstName: "Dup"})
	require.Error(t, err)

	// The whole registration rolled back: no orphaned profile row.
	var count int64
	require.NoError(t, db.Model(&models.MemberProfile{}).Where("first_name = ?", "Dup").Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(&fakeMailer{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, db.Create(&models.Account{
		MemberID:     "ind-abc123",
		Email:        "alice@test.local",
		PasswordHash: string(hash),
		Role:         models.RoleIndividual,
	}).Error)

	resp, err := svc.Login(db, &dto.LoginRequest{Email: "alice@test.local", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "ind-abc123", resp.MemberID)

	_, err = svc.Login(db, &dto.LoginRequest{Email: "alice@test.local", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(db, &dto.LoginRequest{Email: "nobody@test.local", Password: "password1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	svc := newAuthService(mailer)

	seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)

	// Unknown email: silent no-op.
	require.NoError(t, svc.RequestPasswordReset(db, "nobody@test.local"))
	assert.Empty(t, mailer.resetLinks)

	require.NoError(t, svc.RequestPasswordReset(db, "ind-aaaaaa@test.local"))
	require.Len(t, mailer.resetLinks, 1)

	var account models.Account
	require.NoError(t, db.Where("member_id = ?", "ind-aaaaaa").First(&account).Error)
	require.NotNil(t, account.ResetToken)
	token := *account.ResetToken

	require.NoError(t, svc.ResetPassword(db, token, "newpassword1"))

	require.NoError(t, db.Where("member_id = ?", "ind-aaaaaa").First(&account).Error)
	assert.Nil(t, account.ResetToken)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("newpassword1")))

	// The token is single-use.
	err := svc.ResetPassword(db, token, "another1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestPasswordResetExpiredToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(&fakeMailer{})
	seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)

	now := time.Now()
	svc.now = fixedClock(now)
	require.NoError(t, svc.RequestPasswordReset(db, "ind-aaaaaa@test.local"))

	var account models.Account
	require.NoError(t, db.Where("member_id = ?", "ind-aaaaaa").First(&account).Error)
	require.NotNil(t, account.ResetToken)

	svc.now = fixedClock(now.Add(resetTokenLifetime + time.Minute))
	err := svc.ResetPassword(db, *account.ResetToken, "newpassword1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestGenerateMemberIDPrefixes(t *testing.T) {
	assert.Regexp(t, `^ind-[0-9a-f]{6}$`, generateMemberID(models.RoleIndividual))
	assert.Regexp(t, `^com-[0-9a-f]{6}$`, generateMemberID(models.RoleCompany))
}
