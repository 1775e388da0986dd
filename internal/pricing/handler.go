package pricing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/franchisemedia/adengine/pkg/common"
	"github.com/franchisemedia/adengine/pkg/middleware"
)

// Handler handles HTTP requests for pricing
type Handler struct {
	service *Service
}

// NewHandler creates a new pricing handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetPricing returns the per-day price series for the caller's office scope.
func (h *Handler) GetPricing(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	appID, ok := common.ParseUUIDQuery(c, "app_id", "app ID", true)
	if !ok {
		return
	}
	categoryID, ok := common.ParseUUIDQuery(c, "category_id", "category ID", true)
	if !ok {
		return
	}
	startDate, ok := common.ParseDateQuery(c, "start_date", "start date", true)
	if !ok {
		return
	}
	endDate, ok := common.ParseDateQuery(c, "end_date", "end date", true)
	if !ok {
		return
	}

	slot := PricingSlot(c.DefaultQuery("pricing_slot", string(SlotGeneral)))
	if !slot.Valid() {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid pricing_slot")
		return
	}
	adsType := AdsType(c.DefaultQuery("ads_type", string(AdsTypeHeader)))
	if !adsType.Valid() {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid ads_type")
		return
	}

	explicit := c.Query("office_level")
	if explicit == "" {
		explicit = c.Query("group_name")
	}

	quote, err := h.service.GetQuote(c.Request.Context(), QuoteInput{
		UserID:        userID,
		AppID:         *appID,
		CategoryID:    *categoryID,
		Slot:          slot,
		AdsType:       adsType,
		StartDate:     startDate,
		EndDate:       endDate,
		ExplicitLevel: explicit,
	})
	if common.HandleServiceError(c, err, "failed to resolve pricing") {
		return
	}

	common.SuccessResponse(c, quote)
}

// UpsertMaster creates or updates a master price row
func (h *Handler) UpsertMaster(c *gin.Context) {
	var req UpsertMasterRequest
	if !common.BindJSON(c, &req) {
		return
	}

	master, err := h.service.UpsertMaster(c.Request.Context(), req)
	if common.HandleServiceError(c, err, "failed to upsert pricing master") {
		return
	}

	common.CreatedResponse(c, master)
}

// UpsertSlave creates or updates a per-date override row
func (h *Handler) UpsertSlave(c *gin.Context) {
	var req UpsertSlaveRequest
	if !common.BindJSON(c, &req) {
		return
	}

	slave, err := h.service.UpsertSlave(c.Request.Context(), req)
	if common.HandleServiceError(c, err, "failed to upsert pricing override") {
		return
	}

	common.CreatedResponse(c, slave)
}

// RegisterRoutes registers authenticated pricing routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pricing", h.GetPricing)
}

// RegisterAdminRoutes registers admin pricing routes
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/pricing")
	{
		admin.POST("/masters", h.UpsertMaster)
		admin.POST("/slaves", h.UpsertSlave)
	}
}
