package reportController

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TopSpender is one row of the spending ranking, revenue measured by the
// discounted cart totals.
type TopSpender struct {
	UserID     int     `json:"user_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	TotalSpent float64 `json:"total_spent"`
}

// TopProduct is one row of the product ranking by quantity sold.
type TopProduct struct {
	ProductID         int     `json:"product_id"`
	Title             string  `json:"title"`
	TotalQuantitySold int     `json:"total_quantity_sold"`
	TotalRevenue      float64 `json:"total_revenue"`
}

const topSpendersQuery = `
	SELECT u.id AS user_id, u.first_name, u.last_name,
	       SUM(c.discounted_total) AS total_spent
	FROM carts c
	JOIN users u ON c.user_id = u.id
	GROUP BY u.id, u.first_name, u.last_name
	ORDER BY total_spent DESC
	LIMIT ?`

const topProductsQuery = `
	SELECT product_id, title,
	       SUM(quantity) AS total_quantity_sold,
	       SUM(total) AS total_revenue
	FROM cart_products
	GROUP BY product_id, title
	ORDER BY total_quantity_sold DESC
	LIMIT ?`

// GET /top-spenders?limit=1..100 (default 10)
func TopSpenders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, ok := parseLimit(c, 10, 100)
		if !ok {
			return
		}
		if !requireStorage(c, db) {
			return
		}

		var rows []TopSpender
		if err := db.Raw(topSpendersQuery, limit).Scan(&rows).Error; err != nil {
			log.Println("❌ Top spenders query failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run analysis query"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// GET /top-products?limit=1..20 (default 1)
func TopProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, ok := parseLimit(c, 1, 20)
		if !ok {
			return
		}
		if !requireStorage(c, db) {
			return
		}

		var rows []TopProduct
		if err := db.Raw(topProductsQuery, limit).Scan(&rows).Error; err != nil {
			log.Println("❌ Top products query failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run analysis query"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// parseLimit validates ?limit before any query runs. Out-of-bounds values
// are rejected, not clamped.
func parseLimit(c *gin.Context, def, max int) (int, bool) {
	raw := c.DefaultQuery("limit", strconv.Itoa(def))
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > max {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "limit must be an integer between 1 and " + strconv.Itoa(max),
		})
		return 0, false
	}
	return limit, true
}

// requireStorage answers 503 and returns false when the database cannot be
// reached. Query failures on a reachable database are 500s, handled by the
// callers.
func requireStorage(c *gin.Context, db *gorm.DB) bool {
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		log.Println("❌ Storage unreachable:", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database unavailable"})
		return false
	}
	return true
}
