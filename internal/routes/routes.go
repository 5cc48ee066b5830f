package routes

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopello/shopello-golang/internal/handlers"
	"github.com/shopello/shopello-golang/internal/middleware"
)

// CORSMiddleware allows the browser frontend (CORS_ORIGIN, default any) to
// call the API with the Authorization header.
func CORSMiddleware() gin.HandlerFunc {
	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "*"
	}

	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(CORSMiddleware())

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	router.Static("/uploads", uploadDir)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"success":   true,
				"message":   "Server is running",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		})

		// --- Auth (Public) ---
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)

		// --- Public Catalog ---
		api.GET("/products", h.GetProducts)
		api.GET("/products/categories", h.GetCategories)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/reviews/product/:id", h.GetProductReviews)

		// --- Protected Routes (Login Required) ---
		auth := api.Group("/")
		auth.Use(middleware.AuthMiddleware())
		{
			auth.GET("/auth/me", h.GetMe)
			auth.PUT("/auth/profile", h.UpdateProfile)

			auth.GET("/cart", h.GetCart)
			auth.POST("/cart", h.AddToCart)
			auth.PUT("/cart/:id", h.UpdateCartItem)
			auth.DELETE("/cart/:id", h.RemoveFromCart)
			auth.DELETE("/cart", h.ClearCart)

			auth.POST("/orders", h.CreateOrder)
			auth.GET("/orders", h.GetMyOrders)
			auth.GET("/orders/:id", h.GetOrder)
			auth.PUT("/orders/:id/confirm", h.ConfirmOrderReceipt)

			auth.GET("/addresses", h.GetAddresses)
			auth.POST("/addresses", h.AddAddress)
			auth.PUT("/addresses/:id", h.UpdateAddress)
			auth.DELETE("/addresses/:id", h.DeleteAddress)
			auth.PUT("/addresses/:id/default", h.SetDefaultAddress)

			auth.GET("/wishlist", h.GetWishlist)
			auth.POST("/wishlist", h.AddToWishlist)
			auth.DELETE("/wishlist/:id", h.RemoveFromWishlist)

			auth.POST("/reviews", h.AddReview)
			auth.DELETE("/reviews/:id", h.DeleteReview)
		}

		// --- Admin-Only Routes ---
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware())
		admin.Use(middleware.AdminMiddleware())
		{
			admin.GET("/users", h.GetUsers)
			admin.PUT("/users/:id", h.UpdateUserRole)
			admin.DELETE("/users/:id", h.DeleteUser)
			admin.POST("/create-admin", h.CreateAdmin)

			admin.GET("/orders", h.GetAllOrders)
			admin.PUT("/orders/:id", h.UpdateOrderStatus)

			admin.POST("/categories", h.CreateCategory)
			admin.PUT("/categories/:id", h.UpdateCategory)
			admin.DELETE("/categories/:id", h.DeleteCategory)
		}

		// --- Admin Catalog Writes ---
		catalog := api.Group("/")
		catalog.Use(middleware.AuthMiddleware())
		catalog.Use(middleware.AdminMiddleware())
		{
			catalog.POST("/products", h.CreateProduct)
			catalog.PUT("/products/:id", h.UpdateProduct)
			catalog.DELETE("/products/:id", h.DeleteProduct)
			catalog.POST("/upload", h.UploadFile)
		}
	}

	return router
}
