package handlers

import (
	"technest_backend/internal/services"
	"technest_backend/internal/services/dto"
	"technest_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin console. Everything except login sits
// behind the admin cookie guard.
type AdminHandler struct {
	BaseHandler
	admin services.AdminService
}

func NewAdminHandler(base BaseHandler, admin services.AdminService) *AdminHandler {
	return &AdminHandler{BaseHandler: base, admin: admin}
}

// RegisterPublicRoutes wires login; RegisterRoutes wires the guarded rest.
func (h *AdminHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/logout", h.Logout)
	rg.GET("/stats", h.Stats)
	rg.POST("/professions", h.AddProfession)
	rg.POST("/skills", h.AddSkill)
	rg.GET("/individuals", h.Individuals)
	rg.GET("/companies", h.Companies)
	rg.DELETE("/members/:memberID", h.DeleteMember)
	rg.POST("/news", h.PublishNews)
	rg.POST("/quiz", h.PublishQuiz)
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	admin, err := h.admin.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.sessions.WriteAdmin(c, admin.Username); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	h.OK(c, gin.H{"username": admin.Username})
}

func (h *AdminHandler) Logout(c *gin.Context) {
	h.sessions.ClearAdmin(c)
	h.OK(c, gin.H{"message": "Logged out"})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, stats)
}

func (h *AdminHandler) AddProfession(c *gin.Context) {
	var req dto.AddProfessionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	item, err := h.admin.AddProfession(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, item)
}

func (h *AdminHandler) AddSkill(c *gin.Context) {
	var req dto.AddSkillRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	item, err := h.admin.AddSkill(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, item)
}

func (h *AdminHandler) Individuals(c *gin.Context) {
	limit, offset := h.ParsePagination(c)
	rows, total, err := h.admin.ListIndividuals(h.GetDB(c), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"members": rows, "total": total})
}

func (h *AdminHandler) Companies(c *gin.Context) {
	limit, offset := h.ParsePagination(c)
	rows, total, err := h.admin.ListCompanies(h.GetDB(c), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"companies": rows, "total": total})
}

func (h *AdminHandler) DeleteMember(c *gin.Context) {
	memberID := c.Param("memberID")
	if err := h.admin.DeleteMember(c.Request.Context(), h.GetDB(c), memberID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Member deleted"})
}

func (h *AdminHandler) PublishNews(c *gin.Context) {
	var req dto.NewsRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.admin.PublishNews(h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, gin.H{"message": "News published"})
}

func (h *AdminHandler) PublishQuiz(c *gin.Context) {
	var req dto.QuizRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.admin.PublishQuiz(h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, gin.H{"message": "Quiz published"})
}
