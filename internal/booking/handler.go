package booking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/franchisemedia/adengine/pkg/common"
	"github.com/franchisemedia/adengine/pkg/middleware"
)

// Handler handles HTTP requests for bookings
type Handler struct {
	service *Service
}

// NewHandler creates a new booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateBooking books header-ad days for the caller.
func (h *Handler) CreateBooking(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateBookingRequest
	if !common.BindJSON(c, &req) {
		return
	}

	b, err := h.service.Book(c.Request.Context(), userID, req)
	if common.HandleServiceError(c, err, "failed to create booking") {
		return
	}

	common.CreatedResponse(c, b)
}

// GetBooking returns one booking with its reserved days.
func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "booking ID")
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to get booking") {
		return
	}

	common.SuccessResponse(c, b)
}

// ListBookings returns the caller's bookings.
func (h *Handler) ListBookings(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var status *BookingStatus
	if raw := c.Query("status"); raw != "" {
		s := BookingStatus(raw)
		if !s.Valid() {
			common.ErrorResponse(c, http.StatusBadRequest, "invalid status")
			return
		}
		status = &s
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	bookings, err := h.service.ListForUser(c.Request.Context(), userID, status, limit, offset)
	if common.HandleServiceError(c, err, "failed to list bookings") {
		return
	}

	common.SuccessResponseWithMeta(c, bookings, &common.Meta{Count: len(bookings)})
}

// RecordClick is the public click-through counter endpoint.
func (h *Handler) RecordClick(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "booking ID")
	if !ok {
		return
	}

	linkURL, err := h.service.RecordClick(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to record click") {
		return
	}

	common.SuccessResponse(c, gin.H{"link_url": linkURL})
}

// UpdateStatus moves a booking between lifecycle states.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "booking ID")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !common.BindJSON(c, &req) {
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if common.HandleServiceError(c, err, "failed to update booking status") {
		return
	}

	common.SuccessResponse(c, b)
}

// RegisterRoutes registers authenticated booking routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	ads := rg.Group("/header-ads")
	{
		ads.POST("", h.CreateBooking)
		ads.GET("", h.ListBookings)
		ads.GET("/:id", h.GetBooking)
	}
}

// RegisterPublicRoutes registers unauthenticated booking routes
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/header-ads/:id/click", h.RecordClick)
}

// RegisterAdminRoutes registers admin booking routes
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/header-ads/:id/status", h.UpdateStatus)
}
