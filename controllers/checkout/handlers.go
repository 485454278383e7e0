package checkoutControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sareen-software-solution/django-project/logging"
	"github.com/sareen-software-solution/django-project/models"
)

// POST /checkout
//
// Authenticated identities only; the success response points the caller at
// its freshly created Pending orders.
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		order, err := Checkout(db, userID)
		if err != nil {
			switch {
			case errors.Is(err, ErrNoActiveCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "No active cart"})
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			default:
				logging.From(c).Error("checkout failed", "user_id", userID, "err", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
			}
			return
		}

		logging.From(c).Info("checkout complete",
			"user_id", userID, "order_id", order.ID, "items", len(order.Items))

		c.Header("Location", "/orders?status="+string(models.OrderStatusPending))
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order placed successfully",
			"order":   order,
		})
	}
}
