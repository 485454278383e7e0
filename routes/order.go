package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	checkoutControllers "github.com/sareen-software-solution/django-project/controllers/checkout"
	orderControllers "github.com/sareen-software-solution/django-project/controllers/order"

	"github.com/sareen-software-solution/django-project/configs"
	"github.com/sareen-software-solution/django-project/middleware"
)

// SetupOrderRoutes registers checkout and order history. Both require a real
// session: guests can browse and fill carts but cannot place orders.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg configs.Config) {
	authed := r.Group("/")
	authed.Use(middleware.ValidateToken(cfg.Security.JWTSecret))
	{
		authed.POST("/checkout", checkoutControllers.CheckoutHandler(db))
		authed.GET("/orders", orderControllers.ListOrdersHandler(db))
	}
}
