package handlers

import (
	"io"
	"mime/multipart"

	"technest_backend/internal/models"
	"technest_backend/internal/services"
	"technest_backend/internal/services/dto"
	"technest_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the dashboard and profile read/update endpoints.
type ProfileHandler struct {
	BaseHandler
	profiles services.ProfileService
}

func NewProfileHandler(base BaseHandler, profiles services.ProfileService) *ProfileHandler {
	return &ProfileHandler{BaseHandler: base, profiles: profiles}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/me", h.Me)
	rg.PUT("/me", h.Update)
}

func (h *ProfileHandler) Dashboard(c *gin.Context) {
	s, ok := h.RequireSession(c)
	if !ok {
		return
	}

	data, err := h.profiles.Dashboard(h.GetDB(c), s.UserID, s.Role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, data)
}

func (h *ProfileHandler) Me(c *gin.Context) {
	s, ok := h.RequireSession(c)
	if !ok {
		return
	}

	profile, err := h.profiles.Detailed(h.GetDB(c), s.UserID, s.Role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, profile)
}

// Update handles the multipart profile form for both roles. The picture part
// is named "image" and is optional.
func (h *ProfileHandler) Update(c *gin.Context) {
	s, ok := h.RequireSession(c)
	if !ok {
		return
	}

	image, ok := h.readImagePart(c)
	if !ok {
		return
	}

	if s.Role == models.RoleCompany {
		var req dto.UpdateCompanyProfileRequest
		if !h.BindAndValidateForm(c, &req) {
			return
		}
		if err := h.profiles.UpdateCompany(c.Request.Context(), h.GetDB(c), s.UserID, &req, image); err != nil {
			h.HandleServiceError(c, err)
			return
		}
	} else {
		var req dto.UpdateMemberProfileRequest
		if !h.BindAndValidateForm(c, &req) {
			return
		}
		if err := h.profiles.UpdateIndividual(c.Request.Context(), h.GetDB(c), s.UserID, &req, image); err != nil {
			h.HandleServiceError(c, err)
			return
		}
	}

	h.OK(c, gin.H{"message": "Profile updated"})
}

// readImagePart pulls the optional image file out of the multipart form.
// Returns (nil, true) when the form has no image.
func (h *ProfileHandler) readImagePart(c *gin.Context) (*dto.ImageUpload, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, true
	}

	data, contentType, err := readMultipartFile(file)
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return nil, false
	}

	return &dto.ImageUpload{Data: data, ContentType: contentType}, true
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, string, error) {
	f, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, header.Header.Get("Content-Type"), nil
}
