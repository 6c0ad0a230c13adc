package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"roomrental-backend/config"
	"roomrental-backend/controllers"
	"roomrental-backend/routes"
	"roomrental-backend/services"
	"roomrental-backend/utils"
)

func newFileStorage(cfg config.AppConfig) services.FileStorage {
	if cfg.StorageDriver == "s3" {
		storage, err := services.NewS3FileStorage(context.Background(), cfg.S3Bucket)
		if err != nil {
			log.Fatalf("❌ S3 storage init failed: %v", err)
		}
		log.Printf("✅ Storing uploads in s3://%s", cfg.S3Bucket)
		return storage
	}
	log.Printf("✅ Storing uploads under %s", cfg.UploadDir)
	return services.NewLocalFileStorage(cfg.UploadDir)
}

func newCatalogCache(cfg config.AppConfig) services.CatalogCache {
	rdb := config.NewRedisClient(cfg.RedisURL)
	if rdb == nil {
		log.Println("⚠️  REDIS_URL not set or unreachable; catalog cache disabled")
		return services.NoopCatalogCache{}
	}
	log.Println("✅ Redis catalog cache enabled.")
	return services.NewRedisCatalogCache(rdb, cfg.CachePrefix, cfg.CacheTTL)
}

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	cfg := config.Load()
	if err := utils.RegisterValidators(); err != nil {
		log.Fatalf("❌ Validator registration failed: %v", err)
	}

	if err := config.ConnectDatabase(cfg.Seed); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	storage := newFileStorage(cfg)
	cache := newCatalogCache(cfg)

	roomService := services.NewRoomService(db, storage, cache)
	amenityService := services.NewAmenityService(db, cache)
	rateService := services.NewRatePlanService(db, cache)
	bookingService := services.NewBookingService(db, services.NewClock(cfg.Timezone))

	uploadDir := ""
	if cfg.StorageDriver != "s3" {
		uploadDir = cfg.UploadDir
	}
	router := routes.SetupRouter(routes.Controllers{
		Rooms:     controllers.NewRoomController(roomService, amenityService, rateService),
		Amenities: controllers.NewAmenityController(amenityService),
		Rates:     controllers.NewRatePlanController(rateService),
		Bookings:  controllers.NewBookingController(bookingService),
	}, cfg.CorsOrigins, uploadDir)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
