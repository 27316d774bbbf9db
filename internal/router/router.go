package router

import (
	"github.com/gin-gonic/gin"

	"gstitc/internal/config"
	"gstitc/internal/handler"
	"gstitc/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	invoiceH *handler.InvoiceHandler,
	vendorH *handler.VendorHandler,
	reconciliationH *handler.ReconciliationHandler,
	registerH *handler.RegisterHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Supplier master data
	vendors := v1.Group("/vendors")
	vendors.POST("", vendorH.Create)
	vendors.GET("", vendorH.List)
	vendors.GET("/:gstin", vendorH.GetByGSTIN)
	vendors.PUT("/:gstin", vendorH.Update)

	// Owner-scoped resources
	owners := v1.Group("/owners/:owner")

	invoices := owners.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.PUT("/:id", invoiceH.Update)
	invoices.POST("/:id/payment", invoiceH.MarkPayment)
	invoices.DELETE("/:id", invoiceH.Delete)

	reconciliation := owners.Group("/reconciliation")
	reconciliation.POST("/:period", reconciliationH.Run)
	reconciliation.GET("/:period/export", reconciliationH.Export)
	reconciliation.GET("/:period/candidates", reconciliationH.PotentialMatches)

	owners.PUT("/reference/:period", reconciliationH.ImportReference)

	register := owners.Group("/register")
	register.POST("/:period", registerH.Initialize)
	register.GET("/:period", registerH.Summary)
	register.POST("/:period/utilize", registerH.Utilize)
	register.POST("/:period/reversals", registerH.ApplyReversal)

	reports := owners.Group("/reports")
	reports.GET("/utilization", registerH.Utilization)
	reports.GET("/aging", registerH.Aging)
	reports.GET("/:period/vendors", registerH.VendorBreakdown)
	reports.GET("/:period/hsn", registerH.HSNBreakdown)
	reports.GET("/:period/compliance", registerH.Compliance)

	return r
}
