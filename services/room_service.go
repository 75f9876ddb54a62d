package services

import (
	"hotel-pms/config"
	"hotel-pms/models"
)

type RoomService struct{}

func (s RoomService) Create(room *models.Room) error {
	return config.DB.Create(room).Error
}

// GetAll lists rooms with their type, optionally filtered by a name
// substring.
func (s RoomService) GetAll(nameFilter string) ([]models.Room, error) {
	var rooms []models.Room
	q := config.DB.Preload("RoomType").Order("name")
	if nameFilter != "" {
		q = q.Where("name LIKE ?", "%"+nameFilter+"%")
	}
	err := q.Find(&rooms).Error
	return rooms, err
}

func (s RoomService) GetByID(id int) (models.Room, error) {
	var room models.Room
	err := config.DB.Preload("RoomType").First(&room, id).Error
	return room, err
}

func (s RoomService) Update(room models.Room) error {
	return config.DB.Model(&models.Room{}).Where("id = ?", room.ID).Updates(room).Error
}

func (s RoomService) Delete(id int) error {
	return config.DB.Delete(&models.Room{}, id).Error
}
