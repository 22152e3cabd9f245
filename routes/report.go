package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	reportController "github.com/bbenammar-07/analyse-magazin-AXONEDATA/controllers/report"
)

func SetupReportRoutes(r *gin.Engine, db *gorm.DB) {
	// Ranked spending per user, by summed discounted cart totals
	r.GET("/top-spenders", reportController.TopSpenders(db))

	// Same ranking as a downloadable spreadsheet
	r.GET("/top-spenders/export", reportController.ExportTopSpendersToExcel(db))

	// Ranked products by quantity sold across all carts
	r.GET("/top-products", reportController.TopProducts(db))
}
