package geography

import (
	"github.com/gin-gonic/gin"
	"github.com/franchisemedia/adengine/pkg/common"
)

// Handler handles HTTP requests for geography lookups
type Handler struct {
	service *Service
}

// NewHandler creates a new geography handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListCountries returns all active countries
func (h *Handler) ListCountries(c *gin.Context) {
	countries, err := h.service.ListCountries(c.Request.Context())
	if common.HandleServiceError(c, err, "failed to list countries") {
		return
	}

	common.SuccessResponseWithMeta(c, countries, &common.Meta{Count: len(countries)})
}

// ListStates returns all active states for a country
func (h *Handler) ListStates(c *gin.Context) {
	countryID, ok := common.ParseUUIDParam(c, "id", "country ID")
	if !ok {
		return
	}

	states, err := h.service.ListStatesByCountry(c.Request.Context(), countryID)
	if common.HandleServiceError(c, err, "failed to list states") {
		return
	}

	common.SuccessResponseWithMeta(c, states, &common.Meta{Count: len(states)})
}

// ListDistricts returns all active districts for a state
func (h *Handler) ListDistricts(c *gin.Context) {
	stateID, ok := common.ParseUUIDParam(c, "id", "state ID")
	if !ok {
		return
	}

	districts, err := h.service.ListDistrictsByState(c.Request.Context(), stateID)
	if common.HandleServiceError(c, err, "failed to list districts") {
		return
	}

	common.SuccessResponseWithMeta(c, districts, &common.Meta{Count: len(districts)})
}

// RegisterRoutes registers geography routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	geo := rg.Group("/geography")
	{
		geo.GET("/countries", h.ListCountries)
		geo.GET("/countries/:id/states", h.ListStates)
		geo.GET("/states/:id/districts", h.ListDistricts)
	}
}
