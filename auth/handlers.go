package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sareen-software-solution/django-project/logging"
	"github.com/sareen-software-solution/django-project/models"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/register
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, err := RegisterUser(db, in)
		if err != nil {
			var v *models.ValidationError
			if errors.As(err, &v) {
				c.JSON(http.StatusBadRequest, gin.H{
					"message": MsgRegisterFailed,
					"errors":  v.Fields,
				})
				return
			}
			logging.From(c).Error("register failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": MsgRegisterSuccess,
			"user":    user,
		})
	}
}

// POST /auth/login
func LoginHandler(db *gorm.DB, secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in LoginInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, err := AuthenticateUser(db, in.Username, in.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": MsgLoginFailed})
				return
			}
			logging.From(c).Error("login failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
			return
		}

		token, err := IssueToken(user, secret, ttl)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": MsgLoginSuccess,
			"token":   token,
			"user":    user,
		})
	}
}

// POST /auth/logout
//
// Sessions are bearer tokens, so logout is a client-side discard; the
// endpoint exists so the web layer has a stable redirect target.
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
