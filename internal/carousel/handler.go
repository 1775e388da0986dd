package carousel

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/franchisemedia/adengine/pkg/common"
)

// Handler handles HTTP requests for the carousel
type Handler struct {
	service *Service
}

// NewHandler creates a new carousel handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetCarousel returns the four-position header carousel for a placement.
func (h *Handler) GetCarousel(c *gin.Context) {
	appID, ok := common.ParseUUIDQuery(c, "app_id", "app ID", true)
	if !ok {
		return
	}
	categoryID, ok := common.ParseUUIDQuery(c, "category_id", "category ID", true)
	if !ok {
		return
	}
	countryID, ok := common.ParseUUIDQuery(c, "country_id", "country ID", false)
	if !ok {
		return
	}
	stateID, ok := common.ParseUUIDQuery(c, "state_id", "state ID", false)
	if !ok {
		return
	}
	districtID, ok := common.ParseUUIDQuery(c, "district_id", "district ID", false)
	if !ok {
		return
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if c.Query("selected_date") != "" {
		parsed, ok := common.ParseDateQuery(c, "selected_date", "selected date", false)
		if !ok {
			return
		}
		date = parsed
	}

	result, err := h.service.Compose(c.Request.Context(), ComposeRequest{
		AppID:      *appID,
		CategoryID: *categoryID,
		CountryID:  countryID,
		StateID:    stateID,
		DistrictID: districtID,
		Date:       date,
	})
	if common.HandleServiceError(c, err, "failed to compose carousel") {
		return
	}

	if len(result.Items) == 0 {
		common.SuccessResponseWithMessage(c, result.Items, "no ads available")
		return
	}

	common.SuccessResponseWithMeta(c, result.Items, &common.Meta{Count: len(result.Items)})
}

// RegisterRoutes registers public carousel routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/carousel", h.GetCarousel)
}
