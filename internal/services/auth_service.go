package services

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"technest_backend/database"
	"technest_backend/internal/logger"
	"technest_backend/internal/models"
	"technest_backend/internal/repositories"
	"technest_backend/internal/services/dto"
	"technest_backend/internal/session"
	"technest_backend/pkg/apperrors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const resetTokenLifetime = time.Hour

// AuthService owns signup, login and password recovery. Signup runs as a
// three-step flow: StartSignup issues an OTP, VerifyOTP confirms it, and
// Register* creates the account plus profile in one transaction. Until the
// final step all state lives in the signed session cookie.
type AuthService interface {
	StartSignup(db *gorm.DB, req *dto.SignupRequest) (*session.SignupState, error)
	VerifyOTP(state *session.SignupState, code string) error
	ResendOTP(state *session.SignupState) error
	RegisterIndividual(db *gorm.DB, state *session.SignupState, req *dto.RegisterIndividualRequest) (*dto.AuthResponse, error)
	RegisterCompany(db *gorm.DB, state *session.SignupState, req *dto.RegisterCompanyRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RequestPasswordReset(db *gorm.DB, email string) error
	ResetPassword(db *gorm.DB, token, newPassword string) error
}

type AuthServiceImpl struct {
	accountRepo repositories.AccountRepository
	memberRepo  repositories.MemberRepository
	companyRepo repositories.CompanyRepository
	email       Mailer
	baseURL     string
	now         func() time.Time
}

// Mailer is the slice of the email provider the auth flow needs.
type Mailer interface {
	SendOTP(to, code string) error
	SendPasswordReset(to, resetLink string) error
}

func NewAuthService(
	accountRepo repositories.AccountRepository,
	memberRepo repositories.MemberRepository,
	companyRepo repositories.CompanyRepository,
	mailer Mailer,
	baseURL string,
) AuthService {
	return &AuthServiceImpl{
		accountRepo: accountRepo,
		memberRepo:  memberRepo,
		companyRepo: companyRepo,
		email:       mailer,
		baseURL:     baseURL,
		now:         time.Now,
	}
}

func (s *AuthServiceImpl) StartSignup(db *gorm.DB, req *dto.SignupRequest) (*session.SignupState, error) {
	exists, err := s.accountRepo.EmailExists(db, req.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	code, err := generateOTP()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.email.SendOTP(req.Email, code); err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("send otp: %w", err))
	}

	return &session.SignupState{
		Email:         req.Email,
		PasswordHash:  string(hash),
		Role:          req.Role,
		CompanyName:   req.CompanyName,
		Code:          code,
		CodeExpiresAt: s.now().Add(session.OTPLifetime),
	}, nil
}

func (s *AuthServiceImpl) VerifyOTP(state *session.SignupState, code string) error {
	if state == nil {
		return apperrors.ErrSignupSessionMissing
	}
	if s.now().After(state.CodeExpiresAt) {
		return apperrors.ErrOTPExpired
	}
	if state.Code != code {
		return apperrors.ErrOTPMismatch
	}

	state.Verified = true
	return nil
}

// ResendOTP issues a fresh code within the same signup attempt. The resend
// count caps at MaxOTPResends; after that the user starts over.
func (s *AuthServiceImpl) ResendOTP(state *session.SignupState) error {
	if state == nil {
		return apperrors.ErrSignupSessionMissing
	}
	if state.ResendCount >= session.MaxOTPResends {
		return apperrors.ErrOTPResendLimit
	}

	code, err := generateOTP()
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.email.SendOTP(state.Email, code); err != nil {
		return apperrors.InternalError(fmt.Errorf("send otp: %w", err))
	}

	state.Code = code
	state.CodeExpiresAt = s.now().Add(session.OTPLifetime)
	state.ResendCount++
	state.Verified = false
	return nil
}

func (s *AuthServiceImpl) RegisterIndividual(db *gorm.DB, state *session.SignupState, req *dto.RegisterIndividualRequest) (*dto.AuthResponse, error) {
	if err := checkRegistrationState(state, models.RoleIndividual); err != nil {
		return nil, err
	}

	var dob *datatypes.Date
	if req.DOB != "" {
		parsed, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid date of birth, expected YYYY-MM-DD")
		}
		d := datatypes.Date(parsed)
		dob = &d
	}

	memberID := generateMemberID(models.RoleIndividual)

	err := database.RunInTransaction(db, "auth.register_individual", func(tx *gorm.DB) error {
		account := &models.Account{
			MemberID:     memberID,
			Email:        state.Email,
			PasswordHash: state.PasswordHash,
			Role:         models.RoleIndividual,
		}
		if err := s.accountRepo.Create(tx, account); err != nil {
			return err
		}

		member := &models.MemberProfile{
			MemberID:     memberID,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Gender:       req.Gender,
			ContactNo:    req.ContactNo,
			City:         req.City,
			DOB:          dob,
			Education:    req.Education,
			Experience:   req.Experience,
			ProfessionID: req.ProfessionID,
			Tagline:      req.Tagline,
			LinkedinURL:  req.LinkedinURL,
			GithubURL:    req.GithubURL,
		}
		if err := s.memberRepo.Create(tx, member); err != nil {
			return err
		}

		return s.memberRepo.ReplaceSkills(tx, member.ID, req.SkillIDs)
	})
	if err != nil {
		return nil, registrationError(err)
	}

	return &dto.AuthResponse{MemberID: memberID, Role: models.RoleIndividual}, nil
}

func (s *AuthServiceImpl) RegisterCompany(db *gorm.DB, state *session.SignupState, req *dto.RegisterCompanyRequest) (*dto.AuthResponse, error) {
	if err := checkRegistrationState(state, models.RoleCompany); err != nil {
		return nil, err
	}

	memberID := generateMemberID(models.RoleCompany)

	err := database.RunInTransaction(db, "auth.register_company", func(tx *gorm.DB) error {
		account := &models.Account{
			MemberID:     memberID,
			Email:        state.Email,
			PasswordHash: state.PasswordHash,
			Role:         models.RoleCompany,
		}
		if err := s.accountRepo.Create(tx, account); err != nil {
			return err
		}

		company := &models.CompanyProfile{
			MemberID:        memberID,
			CompanyName:     state.CompanyName,
			OwnerName:       req.OwnerName,
			EstablishedYear: req.EstablishedYear,
			EmployeeRange:   req.EmployeeRange,
			City:            req.City,
			Address:         req.Address,
			MapURL:          req.MapURL,
			About:           req.About,
			Email:           req.Email,
			WebsiteURL:      req.WebsiteURL,
			LinkedinURL:     req.LinkedinURL,
			ContactNo:       req.ContactNo,
		}
		if err := s.companyRepo.Create(tx, company); err != nil {
			return err
		}

		return s.companyRepo.ReplaceServices(tx, company.ID, req.ServiceIDs)
	})
	if err != nil {
		return nil, registrationError(err)
	}

	return &dto.AuthResponse{MemberID: memberID, Role: models.RoleCompany}, nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	account, err := s.accountRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &dto.AuthResponse{MemberID: account.MemberID, Role: account.Role}, nil
}

// RequestPasswordReset issues a reset link. The response never reveals
// whether the email is registered.
func (s *AuthServiceImpl) RequestPasswordReset(db *gorm.DB, email string) error {
	account, err := s.accountRepo.FindByEmail(db, email)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	token, err := generateResetToken()
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.accountRepo.SetResetToken(db, account.ID, token, s.now().Add(resetTokenLifetime)); err != nil {
		return apperrors.InternalError(err)
	}

	link := s.baseURL + "/reset-password?token=" + token
	if err := s.email.SendPasswordReset(account.Email, link); err != nil {
		logger.WithError(err).Warn("failed to send password reset email", "email", account.Email)
	}
	return nil
}

func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, token, newPassword string) error {
	account, err := s.accountRepo.FindByResetToken(db, token)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if account.ResetExpires == nil || s.now().After(*account.ResetExpires) {
		return apperrors.ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.InternalError(err)
	}

	// Hash write and token clear are a single UPDATE, so a used token can
	// never be replayed.
	if err := s.accountRepo.UpdatePasswordAndClearToken(db, account.ID, string(hash)); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func checkRegistrationState(state *session.SignupState, role models.Role) error {
	if state == nil {
		return apperrors.ErrSignupSessionMissing
	}
	if !state.Verified {
		return apperrors.ErrEmailNotVerified
	}
	if state.Role != role {
		return apperrors.ErrInvalidUserRole
	}
	return nil
}

func registrationError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrEmailAlreadyExists
	}
	return apperrors.InternalError(err)
}

// generateMemberID builds the external identifier: role prefix plus six hex
// characters ("ind-a1b2c3" / "com-d4e5f6").
func generateMemberID(role models.Role) string {
	id := uuid.New()
	return role.MemberIDPrefix() + hex.EncodeToString(id[:])[:6]
}

// generateOTP returns a 6-digit code from crypto/rand.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
