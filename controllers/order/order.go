package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sareen-software-solution/django-project/logging"
	"github.com/sareen-software-solution/django-project/models"
)

// ListByUserAndStatus returns the identity's orders carrying the given
// status, newest first. Orders are only ever written by the checkout
// service; this store is read-only to the web layer.
func ListByUserAndStatus(db *gorm.DB, userID string, status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	if err := db.
		Preload("Items").
		Where("user_id = ? AND status = ?", userID, status).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GET /orders?status=Pending
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		status := models.OrderStatus(c.DefaultQuery("status", string(models.OrderStatusPending)))

		orders, err := ListByUserAndStatus(db, userID, status)
		if err != nil {
			logging.From(c).Error("list orders failed", "user_id", userID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
