package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"roomrental-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type BookingServiceSuite struct {
	suite.Suite
	DB      *gorm.DB
	Service *BookingService
	Room    models.Room
	At      time.Time
}

func (s *BookingServiceSuite) SetupTest() {
	s.DB = newTestDB(s.T())
	s.At = time.Date(2025, 4, 20, 10, 0, 0, 0, manila)
	s.Service = NewBookingService(s.DB, FixedClock{At: s.At})

	// rooms 1 and 2 exist so the walk-in lands in room 3
	seedRoom(s.T(), s.DB, "101", "Garden")
	seedRoom(s.T(), s.DB, "102", "Pool")
	s.Room = seedRoom(s.T(), s.DB, "103", "Deluxe")
}

func (s *BookingServiceSuite) TestCreateBookingWalkIn() {
	booking, err := s.Service.CreateBooking(ctx, CreateBookingInput{
		Name:               "Juan Dela Cruz",
		Contact:            strPtr("09171234567"),
		RoomID:             s.Room.ID,
		TotalDurationHours: 3,
		TotalAmount:        floatPtr(450),
	})
	s.Require().NoError(err)
	s.Require().NotNil(booking.Tenant)

	s.Equal(uint(3), booking.RoomID)
	s.Equal(models.BookingActive, booking.Status)
	s.True(booking.IsActive)
	s.Equal(450.0, booking.TotalAmount)
	s.Equal(booking.Tenant.ID, booking.TenantID)
	s.True(booking.CheckIn.Equal(s.At))
	s.True(booking.CheckOut.Equal(time.Date(2025, 4, 20, 13, 0, 0, 0, manila)))
	s.Equal(3*time.Hour, booking.CheckOut.Sub(*booking.CheckIn))

	var stored models.Booking
	s.Require().NoError(s.DB.Preload("Tenant").First(&stored, booking.ID).Error)
	s.Equal("Juan Dela Cruz", stored.Tenant.Name)
	s.Equal("09171234567", *stored.Tenant.Contact)
	s.Nil(stored.Tenant.Address)
	s.True(stored.CheckIn.Equal(s.At))
	s.Equal(3*time.Hour, stored.CheckOut.Sub(*stored.CheckIn))
}

func (s *BookingServiceSuite) TestCreateBookingFromRate() {
	rate := models.RatePlan{RoomID: s.Room.ID, DurationsHours: 12, Price: 1200, IsActive: true}
	s.Require().NoError(s.DB.Create(&rate).Error)

	booking, err := s.Service.CreateBooking(ctx, CreateBookingInput{
		Name:               "Maria Clara",
		RoomID:             s.Room.ID,
		TotalDurationHours: 1,
		TotalAmount:        floatPtr(1),
		RateID:             uintPtr(rate.ID),
	})
	s.Require().NoError(err)
	s.Equal(12, booking.TotalDurationHours)
	s.Equal(1200.0, booking.TotalAmount)
	s.Equal(12*time.Hour, booking.CheckOut.Sub(*booking.CheckIn))

	var snap rateSnapshot
	s.Require().NoError(json.Unmarshal(booking.RateSnapshot, &snap))
	s.Equal(rate.ID, snap.ID)
	s.Equal(12, snap.DurationsHours)
}

func (s *BookingServiceSuite) TestCreateBookingRejectsForeignRate() {
	other := seedRoom(s.T(), s.DB, "201", "Annex")
	rate := models.RatePlan{RoomID: other.ID, DurationsHours: 6, Price: 600, IsActive: true}
	s.Require().NoError(s.DB.Create(&rate).Error)

	_, err := s.Service.CreateBooking(ctx, CreateBookingInput{Name: "Jose", RoomID: s.Room.ID, RateID: uintPtr(rate.ID)})
	ve, ok := IsValidation(err)
	s.Require().True(ok)
	s.Contains(ve.Fields, "rate_id")
	s.assertNothingPersisted()
}

func (s *BookingServiceSuite) TestCreateBookingUnknownRoom() {
	_, err := s.Service.CreateBooking(ctx, CreateBookingInput{
		Name: "Juan Dela Cruz", RoomID: 999, TotalDurationHours: 3, TotalAmount: floatPtr(450),
	})
	ve, ok := IsValidation(err)
	s.Require().True(ok)
	s.Contains(ve.Fields, "room_id")
	s.assertNothingPersisted()
}

func (s *BookingServiceSuite) TestCreateBookingMissingTerms() {
	_, err := s.Service.CreateBooking(ctx, CreateBookingInput{Name: "Juan", RoomID: s.Room.ID})
	ve, ok := IsValidation(err)
	s.Require().True(ok)
	s.Contains(ve.Fields, "total_duration_hours")
	s.Contains(ve.Fields, "total_amount")
	s.assertNothingPersisted()
}

func (s *BookingServiceSuite) TestCreateBookingRejectsOversizedDuration() {
	_, err := s.Service.CreateBooking(ctx, CreateBookingInput{
		Name: "Juan Dela Cruz", RoomID: s.Room.ID, TotalDurationHours: 3_000_000, TotalAmount: floatPtr(450),
	})
	ve, ok := IsValidation(err)
	s.Require().True(ok)
	s.Contains(ve.Fields, "total_duration_hours")
	s.assertNothingPersisted()

	// a rate written around the service is still checked
	rate := models.RatePlan{RoomID: s.Room.ID, DurationsHours: 3_000_000, Price: 1, IsActive: true}
	s.Require().NoError(s.DB.Create(&rate).Error)
	_, err = s.Service.CreateBooking(ctx, CreateBookingInput{Name: "Juan", RoomID: s.Room.ID, RateID: uintPtr(rate.ID)})
	ve, ok = IsValidation(err)
	s.Require().True(ok)
	s.Contains(ve.Fields, "rate_id")
	s.assertNothingPersisted()

	booking, err := s.Service.CreateBooking(ctx, CreateBookingInput{
		Name: "Juan", RoomID: s.Room.ID, TotalDurationHours: MaxBookingHours, TotalAmount: floatPtr(1),
	})
	s.Require().NoError(err)
	s.True(booking.CheckOut.After(*booking.CheckIn))
	s.Equal(time.Duration(MaxBookingHours)*time.Hour, booking.CheckOut.Sub(*booking.CheckIn))
}

func (s *BookingServiceSuite) TestCreateBookingBlankName() {
	_, err := s.Service.CreateBooking(ctx, CreateBookingInput{
		Name: "   ", RoomID: s.Room.ID, TotalDurationHours: 3, TotalAmount: floatPtr(450),
	})
	_, ok := IsValidation(err)
	s.True(ok)
	s.assertNothingPersisted()
}

func (s *BookingServiceSuite) TestCompleteBookingIsIdempotent() {
	booking, err := s.Service.CreateBooking(ctx, CreateBookingInput{
		Name: "Juan Dela Cruz", RoomID: s.Room.ID, TotalDurationHours: 3, TotalAmount: floatPtr(450),
	})
	s.Require().NoError(err)

	for i := 0; i < 2; i++ {
		done, err := s.Service.CompleteBooking(ctx, booking.ID)
		s.Require().NoError(err)
		s.Equal(models.BookingCompleted, done.Status)
	}

	var stored models.Booking
	s.Require().NoError(s.DB.First(&stored, booking.ID).Error)
	s.Equal(models.BookingCompleted, stored.Status)
	s.True(stored.CheckOut.Equal(*booking.CheckOut))
}

func (s *BookingServiceSuite) TestCompleteBookingMissing() {
	booking, err := s.Service.CreateBooking(ctx, CreateBookingInput{
		Name: "Juan Dela Cruz", RoomID: s.Room.ID, TotalDurationHours: 3, TotalAmount: floatPtr(450),
	})
	s.Require().NoError(err)

	_, err = s.Service.CompleteBooking(ctx, booking.ID+100)
	s.ErrorIs(err, ErrNotFound)

	var stored models.Booking
	s.Require().NoError(s.DB.First(&stored, booking.ID).Error)
	s.Equal(models.BookingActive, stored.Status)
}

func (s *BookingServiceSuite) TestListAndGet() {
	for _, name := range []string{"A", "B", "C"} {
		_, err := s.Service.CreateBooking(ctx, CreateBookingInput{
			Name: name, RoomID: s.Room.ID, TotalDurationHours: 2, TotalAmount: floatPtr(200),
		})
		s.Require().NoError(err)
	}
	_, err := s.Service.CompleteBooking(ctx, 1)
	s.Require().NoError(err)

	page, err := s.Service.List(ctx, BookingQuery{Status: "active", PerPage: 1})
	s.Require().NoError(err)
	s.Equal(int64(2), page.Total)
	s.Equal(2, page.LastPage)
	s.Require().Len(page.Data, 1)
	s.NotNil(page.Data[0].Tenant)
	s.NotNil(page.Data[0].Room)

	got, err := s.Service.Get(ctx, 2)
	s.Require().NoError(err)
	s.Equal("B", got.Tenant.Name)
	s.Equal("Deluxe", got.Room.Name)

	_, err = s.Service.Get(ctx, 42)
	s.ErrorIs(err, ErrNotFound)
}

func (s *BookingServiceSuite) assertNothingPersisted() {
	var tenants, bookings int64
	s.Require().NoError(s.DB.Model(&models.Tenant{}).Count(&tenants).Error)
	s.Require().NoError(s.DB.Model(&models.Booking{}).Count(&bookings).Error)
	s.Zero(tenants)
	s.Zero(bookings)
}

func TestBookingService(t *testing.T) {
	suite.Run(t, new(BookingServiceSuite))
}

func TestCreateBookingRollsBackTenant(t *testing.T) {
	db, mock := NewMockDB(t)
	service := NewBookingService(db, FixedClock{At: time.Date(2025, 4, 20, 10, 0, 0, 0, manila)})

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "name"}).AddRow(3, "103", "Deluxe"))
	mock.ExpectExec("INSERT INTO `tenants`").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO `bookings`").WillReturnError(errors.New("lock wait timeout exceeded"))
	mock.ExpectRollback()

	_, err := service.CreateBooking(ctx, CreateBookingInput{
		Name: "Juan Dela Cruz", RoomID: 3, TotalDurationHours: 3, TotalAmount: floatPtr(450),
	})

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "create booking", perr.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteBookingStoreFailures(t *testing.T) {
	t.Run("missing row is not found and nothing is written", func(t *testing.T) {
		db, mock := NewMockDB(t)
		service := NewBookingService(db, nil)

		mock.ExpectQuery("SELECT (.+) FROM `bookings`").WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := service.CompleteBooking(ctx, 5)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update failure is a persistence error", func(t *testing.T) {
		db, mock := NewMockDB(t)
		service := NewBookingService(db, nil)

		mock.ExpectQuery("SELECT (.+) FROM `bookings`").
			WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(5, "active"))
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `bookings` SET").WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		_, err := service.CompleteBooking(ctx, 5)
		var perr *PersistenceError
		require.ErrorAs(t, err, &perr)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
