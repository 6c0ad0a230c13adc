package models

import "time"

type Tenant struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"size:255" json:"name"`
	Contact  *string `gorm:"size:255" json:"contact"`
	Address  *string `gorm:"size:255" json:"address"`
	IsActive bool    `gorm:"column:is_active;not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
