package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sareen-software-solution/django-project/configs"
)

// SetupRoutes is the single entry-point that wires up Auth, Shop, Admin and
// Order route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg configs.Config) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, cfg)

	// Catalog browsing + cart (guest identities allowed)
	SetupShopRoutes(r, db, cfg)

	// Catalog mutation (capability-gated)
	SetupAdminRoutes(r, db, cfg)

	// Checkout + order history (authenticated only)
	SetupOrderRoutes(r, db, cfg)
}
