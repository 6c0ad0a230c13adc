package models

import "time"

// RatePlan prices a fixed number of hours in one room.
type RatePlan struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	RoomID         uint    `gorm:"column:room_id;not null;index:idx_rate_room_duration,unique" json:"room_id"`
	DurationsHours int     `gorm:"column:durations_hours;not null;index:idx_rate_room_duration,unique" json:"durations_hours"`
	Price          float64 `gorm:"type:decimal(10,2)" json:"price"`
	IsActive       bool    `gorm:"column:is_active;not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Room *Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

func (RatePlan) TableName() string {
	return "rates"
}
