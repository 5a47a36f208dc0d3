// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/gophershop/backend/internal/config"
	"github.com/gophershop/backend/internal/handlers"
	"github.com/gophershop/backend/internal/middleware"
	"github.com/gophershop/backend/internal/models"
	"github.com/gophershop/backend/internal/services"
	"github.com/gophershop/backend/internal/utils"
)

// Initialize wires services, handlers and middleware into the HTTP surface.
// rdb may be nil; the cart routes and token revocation then degrade as the
// services document.
func Initialize(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	// Services
	revocationStore := services.NewRevocationStore(rdb)
	authService := services.NewAuthService(db, revocationStore)
	userService := services.NewUserService(db)
	catalogService := services.NewCatalogService(db)
	orderService := services.NewOrderService(db)
	cartService := services.NewCartService(rdb)
	paymentService := services.NewPaymentService(orderService, cfg)
	storageService, _ := services.NewStorageService(cfg)

	// Handlers
	userHandler := handlers.NewUserHandler(authService, userService, cfg)
	productHandler := handlers.NewProductHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	cartHandler := handlers.NewCartHandler(cartService, catalogService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	uploadHandler := handlers.NewUploadHandler(storageService)

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	session := middleware.Session(db, revocationStore.AsRevoker())
	manageCatalog := middleware.RequireCapability(models.CapabilityManageCatalog)
	manageOrders := middleware.RequireCapability(models.CapabilityManageOrders)
	manageUsers := middleware.RequireCapability(models.CapabilityManageUsers)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", middleware.AuthRateLimit(), userHandler.Login)
			users.POST("/signup", middleware.AuthRateLimit(), userHandler.Signup)
			users.POST("/logout", userHandler.Logout)

			users.GET("/profile", session, userHandler.GetProfile)
			users.PUT("/profile", session, userHandler.UpdateProfile)

			admin := users.Group("", session, manageUsers)
			{
				admin.GET("", userHandler.ListUsers)
				admin.GET("/:id", userHandler.GetUser)
				admin.PUT("/:id", userHandler.UpdateUser)
				admin.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/top", productHandler.GetTopProducts)
			products.GET("/:id", productHandler.GetProduct)

			products.POST("", session, manageCatalog, productHandler.CreateProduct)
			products.PUT("/:id", session, manageCatalog, productHandler.UpdateProduct)
			products.DELETE("/:id", session, manageCatalog, productHandler.DeleteProduct)

			products.POST("/:id/reviews", session, productHandler.CreateReview)
		}

		orders := api.Group("/orders", session)
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/myorders", orderHandler.GetMyOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PUT("/:id/pay", orderHandler.PayOrder)

			orders.GET("", manageOrders, orderHandler.GetOrders)
			orders.PUT("/:id/deliver", manageOrders, orderHandler.DeliverOrder)
		}

		cart := api.Group("/cart", session)
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("/items", cartHandler.AddCartItem)
			cart.DELETE("/items/:id", cartHandler.RemoveCartItem)
			cart.PUT("/shipping", cartHandler.SaveShippingAddress)
			cart.PUT("/payment", cartHandler.SavePaymentMethod)
		}

		api.GET("/config/paypal", paymentHandler.GetPayPalConfig)
		api.POST("/payments/intent", session, paymentHandler.CreatePaymentIntent)

		api.POST("/upload", session, manageCatalog, middleware.UploadRateLimit(), uploadHandler.UploadImage)
	}

	// Static file serving for locally stored uploads
	if cfg.IsDevelopment() {
		r.Static("/uploads", "./uploads")
	}

	return r
}
