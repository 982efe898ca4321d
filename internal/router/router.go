// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/stalkershop/stalker-backend/internal/config"
	"github.com/stalkershop/stalker-backend/internal/events"
	"github.com/stalkershop/stalker-backend/internal/handlers"
	"github.com/stalkershop/stalker-backend/internal/middleware"
	"github.com/stalkershop/stalker-backend/internal/models"
	"github.com/stalkershop/stalker-backend/internal/services"
	"github.com/stalkershop/stalker-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, rdb *redis.Client, publisher *events.Publisher) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	currencyService := services.NewCurrencyService(db, rdb, cfg)

	authService := services.NewAuthService(db, cfg)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db)
	resellerService := services.NewResellerService(db)
	orderService := services.NewOrderService(db, cfg, currencyService, publisher)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, storageService)
	currencyHandler := handlers.NewCurrencyHandler(currencyService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	resellerHandler := handlers.NewResellerHandler(resellerService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
			auth.PUT("/profile", middleware.AuthRequired(), authHandler.UpdateProfile)
		}

		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("/tree", middleware.OptionalAuth(), categoryHandler.GetTree)
			categories.GET("/:id", categoryHandler.GetCategory)

			protected := categories.Group("")
			protected.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				protected.POST("", categoryHandler.CreateCategory)
				protected.PUT("/:id", categoryHandler.UpdateCategory)
				protected.DELETE("/:id", categoryHandler.DeleteCategory)
				protected.POST("/:id/image", middleware.UploadRateLimit(), categoryHandler.UploadImage)
			}
		}

		// Currency routes
		currencies := v1.Group("/currencies")
		{
			currencies.GET("", currencyHandler.GetCurrencies)
			currencies.GET("/default", currencyHandler.GetDefaultCurrency)
			currencies.GET("/convert", currencyHandler.Convert)

			protected := currencies.Group("")
			protected.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				protected.POST("", currencyHandler.CreateCurrency)
				protected.PUT("/:code", currencyHandler.UpdateCurrency)
			}
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.GetProducts)
			products.GET("/featured", productHandler.GetFeaturedProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.GET("/:id/prices", productHandler.GetProductPrices)

			protected := products.Group("")
			protected.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
				protected.POST("/:id/stock", productHandler.AdjustStock)
				protected.PUT("/:id/prices", productHandler.SetProductPrice)
				protected.POST("/upload-images", middleware.UploadRateLimit(), productHandler.UploadProductImages)
			}
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.POST("", middleware.OrderRateLimit(), orderHandler.CreateOrder)
			orders.GET("", orderHandler.GetOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PUT("/:id/status", middleware.AdminRequired(), orderHandler.UpdateOrderStatus)
		}

		// Reseller routes
		reseller := v1.Group("/reseller")
		reseller.Use(middleware.AuthRequired(), middleware.RolesRequired(models.UserRoleReseller, models.UserRoleAdmin))
		{
			reseller.POST("/listings", resellerHandler.CreateListing)
			reseller.GET("/listings", resellerHandler.GetListings)
			reseller.GET("/listings/:id", resellerHandler.GetListing)
			reseller.PUT("/listings/:id", resellerHandler.UpdateListing)
			reseller.DELETE("/listings/:id", resellerHandler.DeleteListing)
			reseller.GET("/stats", resellerHandler.GetStats)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
