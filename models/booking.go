package models

import (
	"time"
)

// Booking states. DEL marks a soft-deleted booking; soft-deleted rows stay in
// the table but never count against availability.
const (
	StateNew       = "NEW"
	StateConfirmed = "CONF"
	StateDeleted   = "DEL"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	RoomID     uint `gorm:"column:room_id;index" json:"room_id"`
	CustomerID uint `gorm:"column:customer_id;index" json:"customer_id"`

	Checkin  time.Time `gorm:"column:checkin;type:date;index" json:"checkin"`
	Checkout time.Time `gorm:"column:checkout;type:date" json:"checkout"`

	Guests int     `gorm:"column:guests;default:1" json:"guests"`
	Total  float64 `gorm:"column:total" json:"total"`
	Code   string  `gorm:"column:code;size:32;uniqueIndex" json:"code"`
	State  string  `gorm:"column:state;size:8;default:NEW;index" json:"state"`

	Room     Room     `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Customer Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
}

// Active reports whether the booking still blocks its room's calendar.
func (b *Booking) Active() bool {
	return b.State != StateDeleted
}

// Nights is the length of the stay under the half-open [checkin, checkout)
// convention.
func (b *Booking) Nights() int {
	n := int(b.Checkout.Sub(b.Checkin).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}
