// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bazaarline/storefront-backend/internal/config"
	"github.com/bazaarline/storefront-backend/internal/handlers"
	"github.com/bazaarline/storefront-backend/internal/middleware"
	"github.com/bazaarline/storefront-backend/internal/services"
	"github.com/bazaarline/storefront-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(cfg)
	storageService, _ := services.NewStorageService(cfg)
	paymentService := services.NewPaymentService(cfg)

	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	productService := services.NewProductService(db)
	categoryService := services.NewCategoryService(db)
	popupService := services.NewPopupService(db)
	settingsService := services.NewSettingsService(db)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, cartService, paymentService, notificationService)
	chatService := services.NewChatService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService, userService, storageService)
	catalogHandler := handlers.NewCatalogHandler(categoryService, popupService, settingsService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService, userService, settingsService)
	chatHandler := handlers.NewChatHandler(chatService)
	adminHandler := handlers.NewAdminHandler(orderService, userService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	v1 := r.Group("/api/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Public storefront routes; product views personalize when a
		// valid token is presented
		v1.GET("/products", middleware.OptionalAuth(), productHandler.GetProducts)
		v1.GET("/products/:id", middleware.OptionalAuth(), productHandler.GetProduct)
		v1.GET("/categories", catalogHandler.GetCategories)
		v1.GET("/popups", catalogHandler.GetPopups)
		v1.GET("/settings", catalogHandler.GetSettings)

		// Authenticated customer routes
		authed := v1.Group("")
		authed.Use(middleware.AuthRequired())
		{
			authed.PUT("/profile", userHandler.UpdateProfile)

			authed.GET("/wishlist", userHandler.GetWishlist)
			authed.POST("/wishlist/:productId", userHandler.ToggleWishlist)

			authed.POST("/addresses", userHandler.SaveAddress)
			authed.DELETE("/addresses/:id", userHandler.DeleteAddress)

			authed.POST("/products/:id/reviews", productHandler.AddReview)

			authed.GET("/cart", cartHandler.GetCart)
			authed.POST("/cart/items", cartHandler.AddToCart)
			authed.PUT("/cart/items/:productId", cartHandler.UpdateQuantity)
			authed.DELETE("/cart/items/:productId", cartHandler.RemoveFromCart)
			authed.DELETE("/cart", cartHandler.ClearCart)

			authed.POST("/orders", orderHandler.Checkout)
			authed.GET("/orders", orderHandler.GetMyOrders)
			authed.GET("/orders/:id", orderHandler.GetOrder)
			authed.POST("/orders/:id/cancel", orderHandler.CancelOrder)
			authed.GET("/orders/:id/qr", orderHandler.GetOrderQR)
			authed.GET("/orders/:id/receipt", orderHandler.GetOrderReceipt)

			authed.GET("/chat/messages", chatHandler.GetMyThread)
			authed.POST("/chat/messages", chatHandler.SendMessage)
			authed.POST("/chat/read", chatHandler.MarkRead)
			authed.GET("/chat/ws", chatHandler.StreamMyThread)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)

			admin.POST("/products", productHandler.CreateProduct)
			admin.PUT("/products/:id", productHandler.UpdateProduct)
			admin.DELETE("/products/:id", productHandler.DeleteProduct)
			admin.DELETE("/products/:id/reviews/:reviewId", productHandler.DeleteReview)

			admin.POST("/categories", catalogHandler.CreateCategory)
			admin.PUT("/categories/:id", catalogHandler.UpdateCategory)
			admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)

			admin.GET("/popups", catalogHandler.GetAllPopups)
			admin.POST("/popups", catalogHandler.CreatePopup)
			admin.PUT("/popups/:id", catalogHandler.UpdatePopup)
			admin.POST("/popups/:id/toggle", catalogHandler.TogglePopup)
			admin.DELETE("/popups/:id", catalogHandler.DeletePopup)

			admin.PUT("/settings", catalogHandler.UpdateSettings)

			admin.GET("/orders", adminHandler.GetOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)

			admin.GET("/customers", adminHandler.GetCustomers)

			admin.GET("/chat/conversations", chatHandler.GetConversations)
			admin.GET("/chat/ws", chatHandler.StreamAllThreads)
			admin.GET("/chat/:userId/messages", chatHandler.GetThread)
			admin.POST("/chat/:userId/messages", chatHandler.SendAdminMessage)
			admin.POST("/chat/:userId/read", chatHandler.MarkThreadRead)

			admin.POST("/uploads/:category", middleware.UploadRateLimit(), productHandler.UploadImages)
		}
	}

	return r
}
