package models

import (
	"gorm.io/gorm"
)

type Customer struct {
	gorm.Model

	Name  string `json:"name" gorm:"size:255"`
	Email string `json:"email" gorm:"size:150"`
	Phone string `json:"phone" gorm:"size:50"`
}
