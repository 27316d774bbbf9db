package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gstitc/internal/csvexport"
	"gstitc/internal/domain"
	"gstitc/internal/service"
)

// ReconciliationHandler handles GSTR-2B reconciliation endpoints.
type ReconciliationHandler struct {
	reconciliationService service.ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconciliationService service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationService: reconciliationService}
}

// Run handles POST /api/v1/owners/:owner/reconciliation/:period
func (h *ReconciliationHandler) Run(c *gin.Context) {
	result, err := h.reconciliationService.Reconcile(c.Request.Context(), c.Param("owner"), c.Param("period"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Export handles GET /api/v1/owners/:owner/reconciliation/:period/export
// It re-runs the matching and streams the partitioning as CSV.
func (h *ReconciliationHandler) Export(c *gin.Context) {
	result, err := h.reconciliationService.Reconcile(c.Request.Context(), c.Param("owner"), c.Param("period"))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="reconciliation_`+c.Param("period")+`.csv"`)
	c.Writer.WriteHeader(http.StatusOK)
	_, _ = c.Writer.Write(csvexport.BOM)

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteResult(result); err != nil {
		return
	}
	w.Flush()
}

// PotentialMatches handles GET /api/v1/owners/:owner/reconciliation/:period/candidates
func (h *ReconciliationHandler) PotentialMatches(c *gin.Context) {
	vendorGSTIN := c.Query("vendor_gstin")
	invoiceNumber := c.Query("invoice_number")
	if vendorGSTIN == "" || invoiceNumber == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "vendor_gstin and invoice_number are required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	matches, err := h.reconciliationService.PotentialMatches(
		c.Request.Context(), c.Param("owner"), c.Param("period"), vendorGSTIN, invoiceNumber, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, matches)
}

// ImportReference handles PUT /api/v1/owners/:owner/reference/:period
// It replaces the period's GSTR-2B snapshot wholesale.
func (h *ReconciliationHandler) ImportReference(c *gin.Context) {
	var req struct {
		Entries []domain.ReferenceLedgerEntry `json:"entries" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "entries are required")
		return
	}

	if err := h.reconciliationService.ImportReference(c.Request.Context(), c.Param("owner"), c.Param("period"), req.Entries); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"imported": len(req.Entries)})
}
