package reportController

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /top-spenders/export
func ExportTopSpendersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireStorage(c, db) {
			return
		}

		var rows []TopSpender
		if err := db.Raw(topSpendersQuery, 100).Scan(&rows).Error; err != nil {
			log.Println("❌ Top spenders export query failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run analysis query"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Top Spenders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headerRow := sheet.AddRow()
		for _, h := range []string{"UserID", "FirstName", "LastName", "TotalSpent"} {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, r := range rows {
			row := sheet.AddRow()
			row.AddCell().SetValue(r.UserID)
			row.AddCell().SetValue(r.FirstName)
			row.AddCell().SetValue(r.LastName)
			row.AddCell().SetValue(r.TotalSpent)
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=top_spenders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			log.Println("❌ Failed to write Excel file:", err)
		}
	}
}
