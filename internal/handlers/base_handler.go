package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"technest_backend/internal/middleware"
	"technest_backend/internal/session"
	"technest_backend/internal/validator"
	"technest_backend/pkg/apperrors"
	"technest_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// BaseHandler carries the pieces every handler needs: the validator, the
// session manager, and helpers for the db handle and common parsing.
type BaseHandler struct {
	validator *validator.Validator
	sessions  *session.Manager
}

func NewBaseHandler(sessions *session.Manager) BaseHandler {
	return BaseHandler{
		validator: validator.New(),
		sessions:  sessions,
	}
}

// GetDB fetches the connection handle placed by DBMiddleware.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	value, exists := c.Get(string(contextkeys.DBContextKey))
	if !exists {
		return nil
	}
	db, ok := value.(*gorm.DB)
	if !ok {
		return nil
	}
	return db
}

// BindAndValidateJSON binds the body and validates it, writing the error
// response itself. Returns false when the request was rejected.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var ve *validator.ValidationError
		if validationErr := h.validator.Validate(obj); errors.As(validationErr, &ve) {
			h.HandleServiceError(c, apperrors.ValidationError(ve.Errors))
			return false
		}
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid request body"))
		return false
	}
	return true
}

// BindAndValidateForm is the multipart/form counterpart of
// BindAndValidateJSON.
func (h *BaseHandler) BindAndValidateForm(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBind(obj); err != nil {
		var ve *validator.ValidationError
		if validationErr := h.validator.Validate(obj); errors.As(validationErr, &ve) {
			h.HandleServiceError(c, apperrors.ValidationError(ve.Errors))
			return false
		}
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid form data"))
		return false
	}
	return true
}

// HandleServiceError writes any error in the standard envelope.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// Session returns the decoded session, or nil for anonymous requests.
func (h *BaseHandler) Session(c *gin.Context) *session.Session {
	return middleware.GetSession(c)
}

// RequireSession returns the logged-in session, writing a 401 and false
// otherwise. Route guards normally make the failure path unreachable.
func (h *BaseHandler) RequireSession(c *gin.Context) (*session.Session, bool) {
	s := h.Session(c)
	if s == nil || s.UserID == "" {
		h.HandleServiceError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return nil, false
	}
	return s, true
}

// ParseParamUint parses a numeric path parameter.
func (h *BaseHandler) ParseParamUint(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid "+name+" parameter"))
		return 0, false
	}
	return uint(value), true
}

// ParsePagination reads page/per_page query params into limit and offset.
func (h *BaseHandler) ParsePagination(c *gin.Context) (limit, offset int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPageSize)))
	if err != nil || perPage < 1 {
		perPage = defaultPageSize
	}
	if perPage > maxPageSize {
		perPage = maxPageSize
	}

	return perPage, (page - 1) * perPage
}

// OK writes the standard success envelope.
func (h *BaseHandler) OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes the standard 201 envelope.
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}
