package services

import (
	"errors"

	"hotel-pms/models"

	"gorm.io/gorm"
)

type CustomerService struct {
	DB *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{DB: db}
}

func (s *CustomerService) Create(customer *models.Customer) error {
	return s.DB.Create(customer).Error
}

func (s *CustomerService) GetAll() ([]models.Customer, error) {
	var customers []models.Customer
	err := s.DB.Order("name").Find(&customers).Error
	return customers, err
}

func (s *CustomerService) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// Update overwrites the customer's contact fields. The edit-booking screen
// saves customer data through here while booking dates go through
// BookingService.EditDates.
func (s *CustomerService) Update(customer *models.Customer) error {
	res := s.DB.Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(map[string]interface{}{
		"name":  customer.Name,
		"email": customer.Email,
		"phone": customer.Phone,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (s *CustomerService) Delete(id uint) error {
	return s.DB.Delete(&models.Customer{}, id).Error
}
