package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstitc/internal/domain"
	"gstitc/internal/service"
)

// VendorHandler handles supplier master-data endpoints.
type VendorHandler struct {
	vendorService service.VendorService
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(vendorService service.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// Create handles POST /api/v1/vendors
func (h *VendorHandler) Create(c *gin.Context) {
	var req struct {
		GSTIN             string            `json:"gstin" binding:"required"`
		Name              string            `json:"name" binding:"required"`
		Type              domain.VendorType `json:"vendor_type"`
		RegistrationValid bool              `json:"registration_valid"`
		IsActive          bool              `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "gstin and name are required")
		return
	}

	vendor, err := h.vendorService.Create(c.Request.Context(), &domain.Vendor{
		GSTIN:             req.GSTIN,
		Name:              req.Name,
		Type:              req.Type,
		RegistrationValid: req.RegistrationValid,
		IsActive:          req.IsActive,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, vendor)
}

// GetByGSTIN handles GET /api/v1/vendors/:gstin
func (h *VendorHandler) GetByGSTIN(c *gin.Context) {
	vendor, err := h.vendorService.GetByGSTIN(c.Request.Context(), c.Param("gstin"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, vendor)
}

// List handles GET /api/v1/vendors
func (h *VendorHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	vendors, total, err := h.vendorService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, vendors, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/vendors/:gstin
func (h *VendorHandler) Update(c *gin.Context) {
	var req struct {
		Name              string            `json:"name" binding:"required"`
		Type              domain.VendorType `json:"vendor_type"`
		RegistrationValid bool              `json:"registration_valid"`
		IsActive          bool              `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}

	vendor, err := h.vendorService.Update(c.Request.Context(), &domain.Vendor{
		GSTIN:             c.Param("gstin"),
		Name:              req.Name,
		Type:              req.Type,
		RegistrationValid: req.RegistrationValid,
		IsActive:          req.IsActive,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, vendor)
}
