package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstitc/internal/domain"
	"gstitc/internal/service"
)

// InvoiceHandler handles purchase invoice endpoints. The owner GSTIN comes
// from the :owner path segment; authentication is an external collaborator.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles POST /api/v1/owners/:owner/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed invoice payload")
		return
	}
	req.OwnerGSTIN = c.Param("owner")

	inv, err := h.invoiceService.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, inv)
}

// GetByID handles GET /api/v1/owners/:owner/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invoice id must be a UUID")
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), c.Param("owner"), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, inv)
}

// List handles GET /api/v1/owners/:owner/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	owner := c.Param("owner")

	if period := c.Query("period"); period != "" {
		invoices, err := h.invoiceService.ListByPeriod(c.Request.Context(), owner, period)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, invoices)
		return
	}

	offset, limit := parsePagination(c)
	invoices, total, err := h.invoiceService.List(c.Request.Context(), owner, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/owners/:owner/invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invoice id must be a UUID")
		return
	}

	var req service.UpdateInvoiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed invoice payload")
		return
	}
	req.ID = id
	req.OwnerGSTIN = c.Param("owner")

	inv, err := h.invoiceService.Update(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, inv)
}

// MarkPayment handles POST /api/v1/owners/:owner/invoices/:id/payment
func (h *InvoiceHandler) MarkPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invoice id must be a UUID")
		return
	}

	var req struct {
		Status      domain.PaymentStatus `json:"status" binding:"required"`
		PaymentDate *time.Time           `json:"payment_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status is required")
		return
	}

	if err := h.invoiceService.MarkPayment(c.Request.Context(), c.Param("owner"), id, req.Status, req.PaymentDate); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"updated": true})
}

// Delete handles DELETE /api/v1/owners/:owner/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invoice id must be a UUID")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), c.Param("owner"), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
