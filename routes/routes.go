package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	SetupReportRoutes(r, db)
}
