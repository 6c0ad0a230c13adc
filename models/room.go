package models

import "time"

const (
	RoomStatusVacant   = "VACANT"
	RoomStatusOccupied = "OCCUPIED"
)

type Room struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	RoomNumber string  `gorm:"column:room_number;uniqueIndex;type:varchar(250)" json:"room_number"`
	Name       string  `gorm:"size:255" json:"name"`
	Type       string  `gorm:"size:255" json:"type"`
	Image      *string `gorm:"size:255" json:"image"`
	Status     string  `gorm:"size:255" json:"status"`
	IsActive   bool    `gorm:"column:is_active;not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RoomAmenities []RoomAmenity `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"room_amenities,omitempty"`
	Rates         []RatePlan    `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"rates,omitempty"`
	Bookings      []Booking     `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`
}
