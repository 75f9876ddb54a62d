package models

import (
	"time"

	"gorm.io/gorm"
)

type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `json:"name" gorm:"size:100"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	MaxGuests   uint    `json:"max_guests"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
