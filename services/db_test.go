package services

import (
	"context"
	"log"
	"strings"
	"testing"
	"time"

	"roomrental-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	manila      = time.FixedZone("PHT", 8*60*60)
	testCheckIn = time.Date(2025, 4, 20, 10, 0, 0, 0, manila)
)

// newTestDB opens a private in-memory SQLite database with the full
// schema. One connection keeps the memory database alive.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Room{},
		&models.Amenity{},
		&models.RoomAmenity{},
		&models.RatePlan{},
		&models.Tenant{},
		&models.Booking{},
	))
	return db
}

// NewMockDB wraps a sqlmock connection in the MySQL dialector so failure
// paths can be scripted.
func NewMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}
	return gormDB, mock
}

func seedRoom(t *testing.T, db *gorm.DB, number, name string) models.Room {
	t.Helper()
	room := models.Room{RoomNumber: number, Name: name, Type: "Standard", Status: models.RoomStatusVacant, IsActive: true}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func seedAmenity(t *testing.T, db *gorm.DB, name string) models.Amenity {
	t.Helper()
	amenity := models.Amenity{Name: name, IsActive: true}
	require.NoError(t, db.Create(&amenity).Error)
	return amenity
}

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool { return &b }
func uintPtr(u uint) *uint { return &u }

var ctx = context.Background()

func csv(ids ...string) *string {
	s := strings.Join(ids, ",")
	return &s
}
