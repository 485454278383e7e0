package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sareen-software-solution/django-project/auth"
	"github.com/sareen-software-solution/django-project/configs"
	"github.com/sareen-software-solution/django-project/logging"
	"github.com/sareen-software-solution/django-project/middleware"
	"github.com/sareen-software-solution/django-project/models"
	"github.com/sareen-software-solution/django-project/routes"
)

func main() {
	// Load environment variables; real config values come through koanf.
	_ = godotenv.Load()

	envName := os.Getenv("APP_ENV")
	if envName == "" {
		envName = "dev"
	}
	cfg, err := configs.Load("./configs", envName)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logger := logging.Init(cfg.App.Name, cfg.App.LogFile, cfg.App.LogLevel)

	db := initDatabase(cfg)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// The shared guest identity must exist before the first anonymous cart.
	if err := auth.EnsureGuestUser(db); err != nil {
		log.Fatalf("guest user seed failed: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics(), middleware.RequestLogger(logging.New("http")))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Location", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.SetupRoutes(r, db, cfg)

	logger.Info("server starting", "addr", cfg.App.HTTPAddr, "env", envName)
	if err := r.Run(cfg.App.HTTPAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection and its pool.
func initDatabase(cfg configs.Config) *gorm.DB {
	dsn := cfg.Postgres.DSN
	if envDSN := os.Getenv("DATABASE_URL"); envDSN != "" {
		dsn = envDSN
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("DB handle failed: %v", err)
	}
	if cfg.Postgres.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	}
	if cfg.Postgres.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	}
	if cfg.Postgres.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
	}
	return db
}
