package handlers

import (
	"technest_backend/internal/models"
	"technest_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// MatchingHandler serves the "matches for you" endpoint for both roles.
type MatchingHandler struct {
	BaseHandler
	matching services.MatchingService
}

func NewMatchingHandler(base BaseHandler, matching services.MatchingService) *MatchingHandler {
	return &MatchingHandler{BaseHandler: base, matching: matching}
}

func (h *MatchingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Matches)
}

func (h *MatchingHandler) Matches(c *gin.Context) {
	s, ok := h.RequireSession(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	var err error
	var results interface{}

	if s.Role == models.RoleCompany {
		results, err = h.matching.MatchesForCompany(db, s.UserID)
	} else {
		results, err = h.matching.MatchesForIndividual(db, s.UserID)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, results)
}
