package handlers

import (
	"technest_backend/internal/services"
	"technest_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// JobHandler serves the job board. Posting and deleting are company-only,
// the feed is individual-only; the guards live in the route wiring.
type JobHandler struct {
	BaseHandler
	jobs services.JobService
}

func NewJobHandler(base BaseHandler, jobs services.JobService) *JobHandler {
	return &JobHandler{BaseHandler: base, jobs: jobs}
}

// RegisterPublicRoutes wires the unauthenticated listing.
func (h *JobHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

// RegisterCompanyRoutes wires the company-only posting management.
func (h *JobHandler) RegisterCompanyRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/mine", h.Mine)
	rg.DELETE("/:id", h.Delete)
}

// RegisterMemberRoutes wires the individual-only feed.
func (h *JobHandler) RegisterMemberRoutes(rg *gin.RouterGroup) {
	rg.GET("/feed", h.Feed)
}

func (h *JobHandler) List(c *gin.Context) {
	limit, offset := h.ParsePagination(c)
	resp, err := h.jobs.ListPublic(h.GetDB(c), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *JobHandler) Create(c *gin.Context) {
	s, ok := h.RequireSession(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobs.Create(h.GetDB(c), s.UserID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, job)
}

func (h *JobHandler) Mine(c *gin.Context) {
	s, ok := h.RequireSession(c)
	if !ok {
		return
	}

	jobs, err := h.jobs.MyActiveJobs(h.GetDB(c), s.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, jobs)
}

func (h *JobHandler) Feed(c *gin.Context) {
	s, ok := h.RequireSession(c)
	if !ok {
		return
	}

	jobs, err := h.jobs.FeedForMember(h.GetDB(c), s.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, jobs)
}

func (h *JobHandler) Delete(c *gin.Context) {
	s, ok := h.RequireSession(c)
	if !ok {
		return
	}

	jobID, ok := h.ParseParamUint(c, "id")
	if !ok {
		return
	}

	if err := h.jobs.Delete(h.GetDB(c), s.UserID, jobID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Job deleted"})
}
