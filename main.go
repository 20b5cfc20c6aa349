package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fixly/config"
	"fixly/cron"
	"fixly/database"
	bookingRepoPkg "fixly/database/repository/booking"
	categoryRepoPkg "fixly/database/repository/category"
	earningsRepoPkg "fixly/database/repository/earnings"
	listingRepoPkg "fixly/database/repository/listing"
	providerRepoPkg "fixly/database/repository/provider"
	reviewRepoPkg "fixly/database/repository/review"
	userRepoPkg "fixly/database/repository/user"
	"fixly/handlers"
	"fixly/routes"
	"fixly/services/booking"
	"fixly/services/category"
	"fixly/services/earnings"
	"fixly/services/listing"
	"fixly/services/provider"
	"fixly/services/review"
	"fixly/services/user"
	"fixly/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Indexes are idempotent; create them on every boot.
	for name, ensure := range map[string]func() error{
		"users":      userRepoPkg.EnsureIndexes,
		"providers":  providerRepoPkg.EnsureIndexes,
		"categories": categoryRepoPkg.EnsureIndexes,
		"listings":   listingRepoPkg.EnsureIndexes,
		"bookings":   bookingRepoPkg.EnsureIndexes,
		"reviews":    reviewRepoPkg.EnsureIndexes,
		"earnings":   earningsRepoPkg.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	providerRepo := providerRepoPkg.NewMongoProviderRepo()
	categoryRepo := categoryRepoPkg.NewMongoCategoryRepo()
	listingRepo := listingRepoPkg.NewMongoListingRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	earningsRepo := earningsRepoPkg.NewMongoEarningsRepo()

	// Services.
	userService := &user.DefaultUserService{
		UserRepo:     userRepo,
		ProviderRepo: providerRepo,
		Storage:      storageService,
	}
	providerService := &provider.DefaultProviderService{
		ProviderRepo: providerRepo,
		UserRepo:     userRepo,
		CategoryRepo: categoryRepo,
	}
	categoryService := &category.DefaultCategoryService{
		CategoryRepo: categoryRepo,
		ListingRepo:  listingRepo,
		Storage:      storageService,
	}
	listingService := &listing.DefaultListingService{
		ListingRepo:  listingRepo,
		ProviderRepo: providerRepo,
		CategoryRepo: categoryRepo,
		Storage:      storageService,
	}
	bookingService := &booking.DefaultBookingService{
		BookingRepo:  bookingRepo,
		ListingRepo:  listingRepo,
		ProviderRepo: providerRepo,
		UserRepo:     userRepo,
	}
	reviewService := &review.DefaultReviewService{
		ReviewRepo:   reviewRepo,
		BookingRepo:  bookingRepo,
		ListingRepo:  listingRepo,
		ProviderRepo: providerRepo,
	}
	earningsService := &earnings.DefaultEarningsService{
		EarningsRepo: earningsRepo,
		BookingRepo:  bookingRepo,
		ProviderRepo: providerRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:     &handlers.AuthHandler{UserSvc: userService},
		User:     &handlers.UserHandler{UserSvc: userService},
		Provider: &handlers.ProviderHandler{ProviderSvc: providerService},
		Listing:  &handlers.ListingHandler{ListingSvc: listingService},
		Booking:  &handlers.BookingHandler{BookingSvc: bookingService},
		Review:   &handlers.ReviewHandler{ReviewSvc: reviewService},
		Category: &handlers.CategoryHandler{CategorySvc: categoryService},
		Admin: &handlers.AdminHandler{
			UserSvc:     userService,
			ProviderSvc: providerService,
			EarningsSvc: earningsService,
		},
		UserRepo: userRepo,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background workers.
	cron.InitEarningsWorker(earningsService)
	utils.StartHealthMonitor(utils.GetAuthCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
