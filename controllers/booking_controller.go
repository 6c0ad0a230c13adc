package controllers

import (
	"log"
	"net/http"

	"roomrental-backend/services"
	"roomrental-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	var q services.BookingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	page, err := ctrl.Bookings.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Booking not found.", "Failed to fetch bookings. Please try again.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, page)
}

func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		respondBadID(c)
		return
	}
	booking, err := ctrl.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Booking not found.", "Failed to fetch booking.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// CreateBooking checks a walk-in tenant into a room.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var in services.CreateBookingInput
	if err := c.ShouldBind(&in); err != nil {
		respondBindError(c, err)
		return
	}

	booking, err := ctrl.Bookings.CreateBooking(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Room not found.", "Failed to create booking.")
		return
	}

	log.Printf("✅ Booking %d created for room %d", booking.ID, booking.RoomID)
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// CompleteBooking checks the tenant out.
func (ctrl *BookingController) CompleteBooking(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		respondBadID(c)
		return
	}

	booking, err := ctrl.Bookings.CompleteBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Booking not found.", "Failed to complete booking.")
		return
	}

	log.Printf("✅ Booking %d completed", booking.ID)
	utils.JSONSuccess(c, http.StatusOK, booking)
}
