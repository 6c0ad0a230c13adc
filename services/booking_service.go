// services/booking_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"roomrental-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateBookingInput is the walk-in booking form. Either RateID or both
// TotalDurationHours and TotalAmount must be given; a rate wins.
type CreateBookingInput struct {
	Name               string   `form:"name" json:"name" binding:"required,notblank,max=255"`
	Contact            *string  `form:"contact" json:"contact" binding:"omitempty,max=255"`
	Address            *string  `form:"address" json:"address" binding:"omitempty,max=255"`
	RoomID             uint     `form:"room_id" json:"room_id" binding:"required"`
	TotalDurationHours int      `form:"total_duration_hours" json:"total_duration_hours" binding:"omitempty,min=1,max=8760"`
	TotalAmount        *float64 `form:"total_amount" json:"total_amount" binding:"omitempty,gte=0"`
	RateID             *uint    `form:"rate_id" json:"rate_id"`
}

// MaxBookingHours caps a stay at one year so check-out stays representable.
const MaxBookingHours = 8760

type BookingQuery struct {
	Status  string `form:"status"`
	RoomID  uint   `form:"room_id"`
	PerPage int    `form:"per_page"`
	Page    int    `form:"page"`
}

type rateSnapshot struct {
	ID             uint    `json:"id"`
	DurationsHours int     `json:"durations_hours"`
	Price          float64 `json:"price"`
}

// BookingService owns the tenant/booking lifecycle. Check-in times come
// from Clock so the reference zone is explicit.
type BookingService struct {
	DB    *gorm.DB
	Clock Clock
}

func NewBookingService(db *gorm.DB, clock Clock) *BookingService {
	if clock == nil {
		clock = NewClock(time.UTC)
	}
	return &BookingService{DB: db, Clock: clock}
}

// resolveTerms picks duration and amount, from the rate plan when one is
// referenced.
func resolveTerms(tx *gorm.DB, in CreateBookingInput) (int, float64, datatypes.JSON, error) {
	if in.RateID != nil {
		var rate models.RatePlan
		err := tx.Where("id = ? AND room_id = ? AND is_active = ?", *in.RateID, in.RoomID, true).First(&rate).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, nil, NewValidationError("rate_id", "is not an active rate of this room")
		}
		if err != nil {
			return 0, 0, nil, err
		}
		if rate.DurationsHours < 1 || rate.DurationsHours > MaxBookingHours {
			return 0, 0, nil, NewValidationError("rate_id", "has a duration outside 1 to 8760 hours")
		}
		snap, err := json.Marshal(rateSnapshot{ID: rate.ID, DurationsHours: rate.DurationsHours, Price: rate.Price})
		if err != nil {
			return 0, 0, nil, err
		}
		return rate.DurationsHours, rate.Price, datatypes.JSON(snap), nil
	}

	ve := &ValidationError{Fields: map[string]string{}}
	if in.TotalDurationHours <= 0 {
		ve.Fields["total_duration_hours"] = "is required"
	} else if in.TotalDurationHours > MaxBookingHours {
		ve.Fields["total_duration_hours"] = "may not be greater than 8760"
	}
	if in.TotalAmount == nil {
		ve.Fields["total_amount"] = "is required"
	} else if *in.TotalAmount < 0 {
		ve.Fields["total_amount"] = "must not be negative"
	}
	if len(ve.Fields) > 0 {
		return 0, 0, nil, ve
	}
	return in.TotalDurationHours, *in.TotalAmount, nil, nil
}

// CreateBooking registers a new tenant and an active booking for the room,
// checked in now and due out after the booked hours. Both rows are written
// in one transaction.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, NewValidationError("name", "is required")
	}

	var booking models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, in.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewValidationError("room_id", "references a room that does not exist")
			}
			return err
		}

		hours, amount, snapshot, err := resolveTerms(tx, in)
		if err != nil {
			return err
		}

		tenant := models.Tenant{
			Name:     name,
			Contact:  trimmedPtr(in.Contact),
			Address:  trimmedPtr(in.Address),
			IsActive: true,
		}
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}

		checkIn := s.Clock.Now().Truncate(time.Second)
		checkOut := checkIn.Add(time.Duration(hours) * time.Hour)

		booking = models.Booking{
			TenantID:           tenant.ID,
			RoomID:             room.ID,
			TotalDurationHours: hours,
			TotalAmount:        amount,
			CheckIn:            &checkIn,
			CheckOut:           &checkOut,
			Status:             models.BookingActive,
			IsActive:           true,
			RateSnapshot:       snapshot,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		booking.Tenant = &tenant
		booking.Room = &room
		return nil
	})
	if err != nil {
		log.Printf("Error creating booking (room_id=%d): %v", in.RoomID, err)
		return nil, classify("create booking", err, "room_id")
	}

	log.Printf("Booking %d created for room %d (%dh, tenant %d)", booking.ID, booking.RoomID, booking.TotalDurationHours, booking.TenantID)
	return &booking, nil
}

// CompleteBooking marks the booking completed whatever its current status.
// Concurrent calls are last-write-wins.
func (s *BookingService) CompleteBooking(ctx context.Context, id uint) (*models.Booking, error) {
	db := s.DB.WithContext(ctx)

	var booking models.Booking
	if err := db.First(&booking, id).Error; err != nil {
		log.Printf("Booking not found: ID %d (%v)", id, err)
		return nil, classify("complete booking", err, "")
	}

	if err := db.Model(&booking).Update("status", models.BookingCompleted).Error; err != nil {
		log.Printf("Failed to update booking status (ID %d): %v", id, err)
		return nil, classify("complete booking", err, "")
	}
	booking.Status = models.BookingCompleted
	return &booking, nil
}

func (s *BookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.WithContext(ctx).Preload("Tenant").Preload("Room").First(&booking, id).Error; err != nil {
		log.Printf("Booking not found: ID %d (%v)", id, err)
		return nil, classify("get booking", err, "")
	}
	return &booking, nil
}

// List pages bookings newest first, optionally narrowed to a status or room.
func (s *BookingService) List(ctx context.Context, q BookingQuery) (Page[models.Booking], error) {
	lq := ListQuery{Sort: "created_at", Direction: "desc", PerPage: q.PerPage, Page: q.Page}.
		normalized(map[string]bool{"created_at": true})

	query := s.DB.WithContext(ctx).Model(&models.Booking{})
	if status := strings.ToLower(strings.TrimSpace(q.Status)); status != "" && status != "all" {
		query = query.Where("bookings.status = ?", status)
	}
	if q.RoomID != 0 {
		query = query.Where("bookings.room_id = ?", q.RoomID)
	}

	page, err := paginate[models.Booking](query, "bookings", lq, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Tenant").Preload("Room")
	})
	if err != nil {
		log.Printf("Error fetching bookings: %v", err)
		return page, classify("list bookings", err, "")
	}
	return page, nil
}
