package server

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/cmondlane/moztickets/config"
	"github.com/cmondlane/moztickets/internal/cache"
	"github.com/cmondlane/moztickets/internal/handlers"
	"github.com/cmondlane/moztickets/internal/middleware"
	"github.com/cmondlane/moztickets/internal/models"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	// The catalog cache is optional; a missing Redis only costs read
	// performance.
	catalog, err := cache.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Printf("catalog cache disabled: %v", err)
		catalog = nil
	}

	r := gin.Default()

	setupRoutes(r, db, catalog)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, catalog *cache.Catalog) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.CacheMiddleware(catalog))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		public.GET("/events", handlers.ListEvents)
		public.GET("/events/:id", handlers.GetEvent)
		public.GET("/artists", handlers.ListArtists)
		public.GET("/artists/:id", handlers.GetArtist)
		public.GET("/videos", handlers.ListVideos)
		public.GET("/ads", handlers.ListAds)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/profile", handlers.GetProfile)

		protected.POST("/checkout", handlers.Checkout)
		protected.GET("/purchases", handlers.ListMyPurchases)
		protected.GET("/purchases/:id", handlers.GetPurchase)
		protected.GET("/purchases/:id/qr", handlers.GenerateTicketQR)
		protected.GET("/purchases/:id/share", handlers.SharePurchase)

		gate := protected.Group("")
		gate.Use(middleware.RequireRoles(models.RoleStaff, models.RoleAdmin))
		{
			gate.POST("/validate", handlers.ValidateTicket)
		}

		admin := protected.Group("")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			admin.POST("/events", handlers.CreateEvent)
			admin.PUT("/events/:id", handlers.UpdateEvent)
			admin.DELETE("/events/:id", handlers.DeleteEvent)

			admin.POST("/artists", handlers.CreateArtist)
			admin.DELETE("/artists/:id", handlers.DeleteArtist)
			admin.POST("/videos", handlers.CreateVideo)
			admin.DELETE("/videos/:id", handlers.DeleteVideo)
			admin.POST("/ads", handlers.CreateAd)
			admin.DELETE("/ads/:id", handlers.DeleteAd)

			admin.POST("/purchases/:id/settle", handlers.ConfirmReceipt)
			admin.POST("/purchases/:id/fail", handlers.FailPurchase)
			admin.GET("/admin/purchases", handlers.ListPurchases)
			admin.GET("/admin/reports", handlers.GetReports)
		}
	}
}
