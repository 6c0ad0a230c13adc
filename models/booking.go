package models

import (
	"time"

	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
)

type Booking struct {
	ID                 uint          `gorm:"primaryKey" json:"id"`
	TenantID           uint          `gorm:"column:tenant_id;index" json:"tenant_id"`
	RoomID             uint          `gorm:"column:room_id;index" json:"room_id"`
	TotalDurationHours int           `gorm:"column:total_duration_hours" json:"total_duration_hours"`
	TotalAmount        float64       `gorm:"column:total_amount;type:decimal(10,2)" json:"total_amount"`
	CheckIn            *time.Time    `gorm:"column:check_in" json:"check_in"`
	CheckOut           *time.Time    `gorm:"column:check_out" json:"check_out"`
	Status             BookingStatus `gorm:"column:status;size:32;index" json:"status"`
	IsActive           bool          `gorm:"column:is_active;not null" json:"is_active"`

	// RateSnapshot keeps the rate plan a booking was priced from, if any.
	RateSnapshot datatypes.JSON `gorm:"column:rate_snapshot" json:"rate_snapshot,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tenant *Tenant `gorm:"foreignKey:TenantID;references:ID;constraint:OnDelete:CASCADE" json:"tenant,omitempty"`
	Room   *Room   `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
