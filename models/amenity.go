package models

import "time"

type Amenity struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"uniqueIndex;type:varchar(250)" json:"name"`
	Icon     *string `gorm:"size:255" json:"icon"`
	IsActive bool    `gorm:"column:is_active;not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoomAmenity links a room to an amenity. Rows are replaced wholesale
// whenever a room's amenity list changes.
type RoomAmenity struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	RoomID    uint `gorm:"column:room_id;index" json:"room_id"`
	AmenityID uint `gorm:"column:amenity_id;index" json:"amenity_id"`
	IsActive  bool `gorm:"column:is_active;not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Amenity Amenity `gorm:"foreignKey:AmenityID;references:ID;constraint:OnDelete:CASCADE" json:"amenity"`
}

func (RoomAmenity) TableName() string {
	return "room_amenity"
}
