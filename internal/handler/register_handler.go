package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gstitc/internal/domain"
	"gstitc/internal/service"
)

// RegisterHandler handles ITC register and report endpoints.
type RegisterHandler struct {
	registerService service.RegisterService
	reportService   service.ReportService
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(registerService service.RegisterService, reportService service.ReportService) *RegisterHandler {
	return &RegisterHandler{
		registerService: registerService,
		reportService:   reportService,
	}
}

// Initialize handles POST /api/v1/owners/:owner/register/:period
func (h *RegisterHandler) Initialize(c *gin.Context) {
	var req struct {
		FinancialYear  string       `json:"financial_year"`
		OpeningBalance domain.Money `json:"opening_balance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed register payload")
		return
	}

	row, err := h.registerService.Initialize(c.Request.Context(), c.Param("owner"), c.Param("period"), req.FinancialYear, req.OpeningBalance)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, row)
}

// Summary handles GET /api/v1/owners/:owner/register/:period
func (h *RegisterHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.MonthlySummary(c.Request.Context(), c.Param("owner"), c.Param("period"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}

// Utilize handles POST /api/v1/owners/:owner/register/:period/utilize
// It answers what would remain after the proposed utilization; the balance
// itself is not mutated.
func (h *RegisterHandler) Utilize(c *gin.Context) {
	var req struct {
		Amount domain.Money `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "amount is required")
		return
	}

	remaining, err := h.registerService.Utilize(c.Request.Context(), c.Param("owner"), c.Param("period"), req.Amount)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"remaining_balance": remaining})
}

// ApplyReversal handles POST /api/v1/owners/:owner/register/:period/reversals
func (h *RegisterHandler) ApplyReversal(c *gin.Context) {
	var req struct {
		Amount domain.Money `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "amount is required")
		return
	}

	row, err := h.registerService.ApplyReversal(c.Request.Context(), c.Param("owner"), c.Param("period"), req.Amount)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, row)
}

// VendorBreakdown handles GET /api/v1/owners/:owner/reports/:period/vendors
func (h *RegisterHandler) VendorBreakdown(c *gin.Context) {
	rows, err := h.reportService.VendorBreakdown(c.Request.Context(), c.Param("owner"), c.Param("period"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rows)
}

// HSNBreakdown handles GET /api/v1/owners/:owner/reports/:period/hsn
func (h *RegisterHandler) HSNBreakdown(c *gin.Context) {
	rows, err := h.reportService.HSNBreakdown(c.Request.Context(), c.Param("owner"), c.Param("period"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rows)
}

// Utilization handles GET /api/v1/owners/:owner/reports/utilization?from=&to=
func (h *RegisterHandler) Utilization(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	metrics, err := h.reportService.UtilizationMetrics(c.Request.Context(), c.Param("owner"), from, to)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, metrics)
}

// Aging handles GET /api/v1/owners/:owner/reports/aging?as_of=YYYY-MM-DD
func (h *RegisterHandler) Aging(c *gin.Context) {
	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}
	report, err := h.reportService.Aging(c.Request.Context(), c.Param("owner"), asOf)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// Compliance handles GET /api/v1/owners/:owner/reports/:period/compliance
func (h *RegisterHandler) Compliance(c *gin.Context) {
	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}
	status, err := h.reportService.Compliance(c.Request.Context(), c.Param("owner"), c.Param("period"), asOf)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, status)
}

func parseAsOf(c *gin.Context) (time.Time, bool) {
	raw := c.Query("as_of")
	if raw == "" {
		return time.Now().UTC(), true
	}
	asOf, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "as_of must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return asOf, true
}
