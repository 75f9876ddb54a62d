package models

import (
	"gorm.io/gorm"
)

type Admin struct {
	gorm.Model

	FullName string `json:"full_name" gorm:"size:255"`
	Username string `json:"username" gorm:"size:150;uniqueIndex"`
	Password string `json:"-" gorm:"size:255"`
}
