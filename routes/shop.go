package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/sareen-software-solution/django-project/controllers/cart"
	productControllers "github.com/sareen-software-solution/django-project/controllers/product"

	"github.com/sareen-software-solution/django-project/configs"
	"github.com/sareen-software-solution/django-project/middleware"
)

// SetupShopRoutes registers catalog browsing and cart endpoints. Requests
// without a session token operate on the shared guest identity's cart.
func SetupShopRoutes(r *gin.Engine, db *gorm.DB, cfg configs.Config) {
	// ──────────────── Browse Products ────────────────
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/search", productControllers.SearchProductsHandler(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))

	// ──────────────── Shopping Cart ────────────────
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ResolveIdentity(cfg.Security.JWTSecret))
	{
		cartGroup.GET("", cartControllers.GetCart(db))
		cartGroup.POST("", cartControllers.UpdateCartItem(db))
		cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db))
		cartGroup.DELETE("", cartControllers.ClearCart(db))
	}
}
