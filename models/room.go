package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	Name        string `json:"name" gorm:"column:name;uniqueIndex;type:varchar(50)"`
	RoomTypeID  uint   `json:"room_type_id" gorm:"column:room_type_id;index"`
	Description string `json:"description" gorm:"type:text"`

	// Free-form amenity list, e.g. ["wifi","balcony"].
	Amenities datatypes.JSON `json:"amenities,omitempty" gorm:"column:amenities"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}
