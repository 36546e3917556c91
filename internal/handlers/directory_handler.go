package handlers

import (
	"technest_backend/internal/services"
	"technest_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// DirectoryHandler serves the public directory, taxonomy lookups and the
// contact form.
type DirectoryHandler struct {
	BaseHandler
	directory services.DirectoryService
	profiles  services.ProfileService
}

func NewDirectoryHandler(base BaseHandler, directory services.DirectoryService, profiles services.ProfileService) *DirectoryHandler {
	return &DirectoryHandler{BaseHandler: base, directory: directory, profiles: profiles}
}

func (h *DirectoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/members", h.Members)
	rg.GET("/companies", h.Companies)
	rg.GET("/members/:memberID", h.Profile)
	rg.GET("/taxonomy", h.Taxonomy)
	rg.GET("/suggest", h.Suggest)
	rg.POST("/contact", h.Contact)
}

func (h *DirectoryHandler) Members(c *gin.Context) {
	limit, offset := h.ParsePagination(c)
	resp, err := h.directory.ListMembers(h.GetDB(c), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *DirectoryHandler) Companies(c *gin.Context) {
	limit, offset := h.ParsePagination(c)
	resp, err := h.directory.ListCompanies(h.GetDB(c), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *DirectoryHandler) Profile(c *gin.Context) {
	profile, err := h.profiles.PublicProfile(h.GetDB(c), c.Param("memberID"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, profile)
}

func (h *DirectoryHandler) Taxonomy(c *gin.Context) {
	resp, err := h.directory.Taxonomy(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *DirectoryHandler) Suggest(c *gin.Context) {
	names, err := h.directory.Suggest(h.GetDB(c), c.Query("kind"), c.Query("q"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, names)
}

func (h *DirectoryHandler) Contact(c *gin.Context) {
	var req dto.ContactRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.directory.Contact(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Message sent"})
}
