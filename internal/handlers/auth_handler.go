package handlers

import (
	"technest_backend/internal/services"
	"technest_backend/internal/services/dto"
	"technest_backend/internal/session"
	"technest_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes signup, login and password recovery. The signup flow
// keeps its state in the signed session cookie between steps.
type AuthHandler struct {
	BaseHandler
	auth services.AuthService
}

func NewAuthHandler(base BaseHandler, auth services.AuthService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, auth: auth}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/signup", h.Signup)
	rg.POST("/verify-otp", h.VerifyOTP)
	rg.POST("/resend-otp", h.ResendOTP)
	rg.POST("/register/individual", h.RegisterIndividual)
	rg.POST("/register/company", h.RegisterCompany)
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
	rg.POST("/password-reset/request", h.RequestPasswordReset)
	rg.POST("/password-reset/confirm", h.ConfirmPasswordReset)
	rg.GET("/me", h.Me)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	state, err := h.auth.StartSignup(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.sessions.Write(c, &session.Session{Signup: state}); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	h.OK(c, gin.H{"message": "Verification code sent"})
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	s := h.Session(c)
	var state *session.SignupState
	if s != nil {
		state = s.Signup
	}

	if err := h.auth.VerifyOTP(state, req.Code); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Persist the verified flag back into the cookie.
	if err := h.sessions.Write(c, s); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	h.OK(c, gin.H{"message": "Email verified"})
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	s := h.Session(c)
	var state *session.SignupState
	if s != nil {
		state = s.Signup
	}

	if err := h.auth.ResendOTP(state); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.sessions.Write(c, s); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	h.OK(c, gin.H{"message": "Verification code sent"})
}

func (h *AuthHandler) RegisterIndividual(c *gin.Context) {
	var req dto.RegisterIndividualRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	s := h.Session(c)
	var state *session.SignupState
	if s != nil {
		state = s.Signup
	}

	resp, err := h.auth.RegisterIndividual(h.GetDB(c), state, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.startSession(c, resp, false)
}

func (h *AuthHandler) RegisterCompany(c *gin.Context) {
	var req dto.RegisterCompanyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	s := h.Session(c)
	var state *session.SignupState
	if s != nil {
		state = s.Signup
	}

	resp, err := h.auth.RegisterCompany(h.GetDB(c), state, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.startSession(c, resp, false)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.auth.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.startSession(c, resp, req.Remember)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	h.OK(c, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.auth.RequestPasswordReset(h.GetDB(c), req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "If the email is registered, a reset link has been sent"})
}

func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req dto.PasswordResetConfirm
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.auth.ResetPassword(h.GetDB(c), req.Token, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Password updated"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	s, ok := h.RequireSession(c)
	if !ok {
		return
	}
	h.OK(c, dto.AuthResponse{MemberID: s.UserID, Role: s.Role})
}

// startSession replaces whatever cookie the client had (signup scratch
// included) with a fresh logged-in session.
func (h *AuthHandler) startSession(c *gin.Context, resp *dto.AuthResponse, remember bool) {
	s := &session.Session{
		UserID:   resp.MemberID,
		Role:     resp.Role,
		Remember: remember,
	}
	if err := h.sessions.Write(c, s); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	h.OK(c, resp)
}
