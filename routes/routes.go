package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"roomrental-backend/controllers"
	"roomrental-backend/middleware"
)

// Controllers bundles the handlers mounted under /api.
type Controllers struct {
	Rooms     *controllers.RoomController
	Amenities *controllers.AmenityController
	Rates     *controllers.RatePlanController
	Bookings  *controllers.BookingController
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

// SetupRouter wires the controllers into a gin engine. uploadDir is served
// at /uploads for the local storage driver; pass "" to skip it.
func SetupRouter(ctl Controllers, origins []string, uploadDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	r.Use(cors.New(corsConfig(origins)))

	if uploadDir != "" {
		r.Static("/uploads", uploadDir)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		rooms := api.Group("/rooms")
		{
			rooms.GET("", ctl.Rooms.GetRooms)
			rooms.POST("", ctl.Rooms.CreateRoom)

			// must stay ahead of /:id
			rooms.GET("/board", ctl.Rooms.GetBoard)

			rooms.GET("/:id", ctl.Rooms.GetRoom)
			rooms.PUT("/:id", ctl.Rooms.UpdateRoom)
			rooms.POST("/:id", ctl.Rooms.UpdateRoom)
			rooms.DELETE("/:id", ctl.Rooms.DeleteRoom)
			rooms.GET("/:id/rates", ctl.Rooms.GetRoomRates)
		}

		amenities := api.Group("/amenities")
		{
			amenities.GET("", ctl.Amenities.GetAmenities)
			amenities.POST("", ctl.Amenities.CreateAmenity)
			amenities.GET("/active", ctl.Amenities.GetActiveAmenities)
			amenities.GET("/:id", ctl.Amenities.GetAmenity)
			amenities.PUT("/:id", ctl.Amenities.UpdateAmenity)
			amenities.DELETE("/:id", ctl.Amenities.DeleteAmenity)
		}

		rates := api.Group("/rates")
		{
			rates.GET("", ctl.Rates.GetRates)
			rates.POST("", ctl.Rates.CreateRate)
			rates.GET("/active", ctl.Rates.GetActiveRates)
			rates.GET("/:id", ctl.Rates.GetRate)
			rates.PUT("/:id", ctl.Rates.UpdateRate)
			rates.DELETE("/:id", ctl.Rates.DeleteRate)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", ctl.Bookings.GetBookings)
			bookings.POST("", ctl.Bookings.CreateBooking)
			bookings.GET("/:id", ctl.Bookings.GetBooking)
			bookings.POST("/:id/checkout", ctl.Bookings.CompleteBooking)
		}
	}

	return r
}
