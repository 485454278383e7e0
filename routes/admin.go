package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/sareen-software-solution/django-project/controllers/product"

	"github.com/sareen-software-solution/django-project/configs"
	"github.com/sareen-software-solution/django-project/middleware"
)

// SetupAdminRoutes registers catalog mutation endpoints. Every route requires
// an authenticated session; the write/delete capabilities come from the
// token's perm claims.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg configs.Config) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken(cfg.Security.JWTSecret))
	{
		adminGroup.POST("/products", middleware.RequirePerms("products.write"), productControllers.CreateProductHandler(db))
		adminGroup.PUT("/products/:id", middleware.RequirePerms("products.write"), productControllers.UpdateProductHandler(db))
		adminGroup.DELETE("/products/:id", middleware.RequirePerms("products.delete"), productControllers.DeleteProductHandler(db))
		adminGroup.GET("/products/export", middleware.RequirePerms("products.write"), productControllers.ExportProductsToExcel(db))
	}
}
