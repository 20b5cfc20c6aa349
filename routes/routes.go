package routes

import (
	"net/http"
	"time"

	"fixly/handlers"
	"fixly/middleware"
	"fixly/models"
	"fixly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint group onto the engine.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())

	registerHealthRoute(r)
	registerAuthRoutes(r, hb)
	registerUserRoutes(r, hb)
	registerProviderRoutes(r, hb)
	registerCategoryRoutes(r, hb)
	registerListingRoutes(r, hb)
	registerBookingRoutes(r, hb)
	registerReviewRoutes(r, hb)
	registerAdminRoutes(r, hb)
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

func registerAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)
		api.POST("/forgot-password", hb.Auth.ForgotPassword)
		api.POST("/reset-password", hb.Auth.ResetPassword)

		api.POST("/logout", middleware.JWTAuthMiddleware(hb.UserRepo), hb.Auth.Logout)
	}
}

func registerUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("/me", hb.User.GetMe)
		api.POST("/me/profile-image", hb.User.UploadProfileImage)
		api.GET("/:id", hb.User.GetByID)
		api.PATCH("/:id", hb.User.Update)
		api.DELETE("/:id", hb.User.Delete)
	}
}

func registerProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.POST("/register", hb.Provider.Register)
		api.GET("", hb.Provider.Search)
		api.GET("/:id", hb.Provider.GetByID)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo),
			middleware.RequireRoles(models.RoleServiceProvider))
		protected.GET("/me/profile", hb.Provider.GetProfile)
		protected.PATCH("/me/profile", hb.Provider.Update)
		protected.PUT("/me/location", hb.Provider.UpdateLocation)
	}
}

func registerCategoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/categories")
	{
		api.GET("", hb.Category.List)
		api.GET("/:id", hb.Category.GetByID)
	}
}

func registerListingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/listings")
	{
		api.GET("", hb.Listing.Search)
		api.GET("/:id", hb.Listing.GetByID)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo),
			middleware.RequireRoles(models.RoleServiceProvider, models.RoleAdmin))
		protected.POST("", hb.Listing.Create)
		protected.GET("/mine/all", hb.Listing.ListOwn)
		protected.PATCH("/:id", hb.Listing.Update)
		protected.POST("/:id/image", hb.Listing.UploadImage)
	}
}

func registerBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.POST("", middleware.RequireRoles(models.RoleCustomer), hb.Booking.Create)
		api.GET("/mine", hb.Booking.ListMine)
		api.GET("/provider", middleware.RequireRoles(models.RoleServiceProvider), hb.Booking.ListProvider)
		api.GET("/:id", hb.Booking.GetByID)
		api.PUT("/:id/status", hb.Booking.UpdateStatus)
	}
}

func registerReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.GET("/booking/:bookingId", hb.Review.GetForBooking)
		api.POST("", middleware.JWTAuthMiddleware(hb.UserRepo),
			middleware.RequireRoles(models.RoleCustomer), hb.Review.Create)
	}
}

func registerAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRoles(models.RoleAdmin))
	{
		api.GET("/users", hb.Admin.ListUsers)
		api.POST("/users", hb.Admin.CreateAdmin)
		api.DELETE("/users/:id", hb.User.Delete)

		api.GET("/providers", hb.Provider.Search)
		api.PUT("/providers/:id/verification", hb.Admin.SetProviderVerification)

		api.GET("/categories", hb.Category.List)
		api.POST("/categories", hb.Category.Create)
		api.PATCH("/categories/:id", hb.Category.Update)
		api.DELETE("/categories/:id", hb.Category.Delete)
		api.POST("/categories/:id/image", hb.Category.UploadImage)

		api.GET("/earnings", hb.Admin.EarningsList)
		api.GET("/earnings/summary", hb.Admin.EarningsSummary)
		api.POST("/earnings/rollup", hb.Admin.TriggerRollup)
		api.PATCH("/earnings/:id/notes", hb.Admin.UpdateEarningsNotes)
	}
}
