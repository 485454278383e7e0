package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sareen-software-solution/django-project/auth"
	"github.com/sareen-software-solution/django-project/configs"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, cfg configs.Config) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(db))
		authGroup.POST("/login", auth.LoginHandler(db, cfg.Security.JWTSecret, cfg.Security.TokenTTL))
		authGroup.POST("/logout", auth.LogoutHandler())
	}
}
