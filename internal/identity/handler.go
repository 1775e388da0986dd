package identity

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/franchisemedia/adengine/pkg/common"
	"github.com/franchisemedia/adengine/pkg/middleware"
)

// Handler handles HTTP requests for identity lookups
type Handler struct {
	service *Service
}

// NewHandler creates a new identity handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetFranchiseHolder returns a franchise holder by ID
func (h *Handler) GetFranchiseHolder(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "franchise holder ID")
	if !ok {
		return
	}

	holder, err := h.service.GetFranchiseHolder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrHolderNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "franchise holder not found")
			return
		}
		common.HandleServiceError(c, err, "failed to get franchise holder")
		return
	}

	common.SuccessResponse(c, holder)
}

// GetMyOfficeLevel returns the caller's resolved office level
func (h *Handler) GetMyOfficeLevel(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	level, err := h.service.ResolveOfficeLevel(c.Request.Context(), userID, c.Query("group_name"))
	if common.HandleServiceError(c, err, "failed to resolve office level") {
		return
	}

	common.SuccessResponse(c, gin.H{"office_level": level})
}

// RegisterRoutes registers identity routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/franchise-holders/:id", h.GetFranchiseHolder)
	rg.GET("/me/office-level", h.GetMyOfficeLevel)
}
