package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dispatch/internal/domain"
	"dispatch/internal/service"
)

// AdminHandler handles HTTP requests that maintain reference data.
type AdminHandler struct {
	catalog *service.CatalogService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(catalog *service.CatalogService) *AdminHandler {
	return &AdminHandler{catalog: catalog}
}

// LocationResponse is the HTTP response for location data.
type LocationResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// CommissionSlabResponse is the HTTP response for a commission slab.
type CommissionSlabResponse struct {
	ID                   string `json:"id"`
	FromKm               string `json:"from_km"`
	ToKm                 string `json:"to_km"`
	CommissionPercentage string `json:"commission_percentage"`
}

// ActivateLocation handles POST /v1/admin/locations/:id/activate
func (h *AdminHandler) ActivateLocation(c *gin.Context) {
	h.setLocationActive(c, true)
}

// InactivateLocation handles POST /v1/admin/locations/:id/inactivate
func (h *AdminHandler) InactivateLocation(c *gin.Context) {
	h.setLocationActive(c, false)
}

func (h *AdminHandler) setLocationActive(c *gin.Context, active bool) {
	loc, err := h.catalog.SetLocationActive(c.Request.Context(), c.Param("id"), active)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, LocationResponse{ID: loc.ID, Name: loc.Name, IsActive: loc.IsActive})
}

// RefreshCommissionSlabs handles POST /v1/admin/commission-slabs/refresh
func (h *AdminHandler) RefreshCommissionSlabs(c *gin.Context) {
	slabs, err := h.catalog.RefreshCommissionSlabs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCommissionSlabResponses(slabs))
}

func toCommissionSlabResponses(slabs []domain.CommissionSlab) []CommissionSlabResponse {
	result := make([]CommissionSlabResponse, len(slabs))
	for i, s := range slabs {
		result[i] = CommissionSlabResponse{
			ID:                   s.ID,
			FromKm:               s.FromKm.String(),
			ToKm:                 s.ToKm.String(),
			CommissionPercentage: s.CommissionPercentage.String(),
		}
	}
	return result
}
