// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hotel-pms/models"
	"hotel-pms/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService wraps *gorm.DB and owns all booking mutations. Every
// check-then-write path (create, edit dates) runs inside a transaction that
// locks the target room row first, so two requests racing on the same room
// cannot both pass the availability check.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// ValidateDates enforces strict ordering: checkout must fall after checkin.
// Pure, no I/O.
func (s *BookingService) ValidateDates(checkin, checkout time.Time) error {
	if !checkout.After(checkin) {
		return ErrInvalidRange
	}
	return nil
}

// IsAvailable reports whether [checkin, checkout) is free of conflicting
// active bookings on the room. excludeBookingID skips one booking, used when
// re-validating an edit against itself. Overlap is half-open: a booking
// ending exactly when another starts does not conflict.
func (s *BookingService) IsAvailable(roomID uint, checkin, checkout time.Time, excludeBookingID *uint) (bool, error) {
	return isAvailable(s.DB, roomID, checkin, checkout, excludeBookingID)
}

func isAvailable(tx *gorm.DB, roomID uint, checkin, checkout time.Time, excludeBookingID *uint) (bool, error) {
	q := tx.Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Where("state <> ?", models.StateDeleted).
		Where("checkin < ? AND checkout > ?", checkout, checkin)
	if excludeBookingID != nil {
		q = q.Where("id <> ?", *excludeBookingID)
	}

	var conflicts int64
	if err := q.Count(&conflicts).Error; err != nil {
		return false, fmt.Errorf("failed to count conflicting bookings: %w", err)
	}
	return conflicts == 0, nil
}

// lockRoom takes a FOR UPDATE lock on the room row, serializing availability
// checks per room for the rest of the transaction. sqlite has no row locks;
// MySQL is the production dialect.
func lockRoom(tx *gorm.DB, roomID uint) (*models.Room, error) {
	q := tx
	if tx.Dialector.Name() == "mysql" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var room models.Room
	if err := q.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// EditDates changes a booking's checkin/checkout, leaving every other field
// untouched. The booking is loaded first, so an unknown id always reports
// not-found even when the dates are bad too. Ordering is validated next, then
// availability is re-checked (excluding the booking itself) under the room
// lock; on conflict the transaction rolls back and the stored dates stay as
// they were.
func (s *BookingService) EditDates(bookingID uint, checkin, checkout time.Time) (*models.Booking, error) {
	checkin = utils.DateOnly(checkin)
	checkout = utils.DateOnly(checkout)

	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if err := s.ValidateDates(checkin, checkout); err != nil {
			return err
		}

		if _, err := lockRoom(tx, booking.RoomID); err != nil {
			return err
		}

		free, err := isAvailable(tx, booking.RoomID, checkin, checkout, &booking.ID)
		if err != nil {
			return err
		}
		if !free {
			return ErrNoAvailability
		}

		return tx.Model(&booking).Updates(map[string]interface{}{
			"checkin":  checkin,
			"checkout": checkout,
		}).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	booking.Checkin = checkin
	booking.Checkout = checkout
	return &booking, nil
}

// CreateBooking books a room for a customer. state is NEW for bookings coming
// out of the search-and-confirm flow and CONF for direct back-office entry.
// Total is nights * nightly price of the room's type; the reservation code
// comes from the generator, retried on a unique-key collision.
func (s *BookingService) CreateBooking(customerID, roomID uint, checkin, checkout time.Time, guests int, state string) (*models.Booking, error) {
	checkin = utils.DateOnly(checkin)
	checkout = utils.DateOnly(checkout)

	if err := s.ValidateDates(checkin, checkout); err != nil {
		return nil, err
	}
	if state == "" {
		state = models.StateConfirmed
	}
	if guests <= 0 {
		guests = 1
	}

	var cust models.Customer
	if err := s.DB.First(&cust, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("db error checking customer %d: %w", customerID, err)
	}

	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, roomID)
		if err != nil {
			return err
		}

		free, err := isAvailable(tx, roomID, checkin, checkout, nil)
		if err != nil {
			return err
		}
		if !free {
			return ErrNoAvailability
		}

		var roomType models.RoomType
		if err := tx.First(&roomType, room.RoomTypeID).Error; err != nil {
			return fmt.Errorf("failed to load room type %d: %w", room.RoomTypeID, err)
		}

		nights := int(checkout.Sub(checkin).Hours() / 24)
		booking = models.Booking{
			RoomID:     roomID,
			CustomerID: customerID,
			Checkin:    checkin,
			Checkout:   checkout,
			Guests:     guests,
			Total:      float64(nights) * roomType.Price,
			State:      state,
		}

		// retry on code collision, same as any unique human-readable id
		const maxRetries = 5
		var createErr error
		for attempt := 0; attempt < maxRetries; attempt++ {
			code, gErr := utils.GenerateReservationCode(8)
			if gErr != nil {
				return fmt.Errorf("failed to generate reservation code: %w", gErr)
			}
			booking.Code = code

			createErr = tx.Create(&booking).Error
			if createErr == nil {
				return nil
			}
			lc := strings.ToLower(createErr.Error())
			if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") || strings.Contains(lc, "constraint") {
				log.Printf("reservation code collision (attempt %d) - retrying", attempt+1)
				booking.ID = 0
				continue
			}
			return fmt.Errorf("failed to create booking: %w", createErr)
		}
		return fmt.Errorf("failed to create booking after retries: %w", createErr)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &booking, nil
}

// SoftDelete marks the booking DEL. Rows are never physically removed; a
// deleted booking stops blocking its room's calendar immediately.
func (s *BookingService) SoftDelete(bookingID uint) error {
	res := s.DB.Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("state", models.StateDeleted)
	if res.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// GetByID loads a booking with its room, room type and customer.
func (s *BookingService) GetByID(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Room.RoomType").Preload("Customer").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	return &booking, nil
}

// All returns every booking, newest first.
func (s *BookingService) All() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Room.RoomType").
		Preload("Customer").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// Search matches the filter against the reservation code and the customer
// name, newest first.
func (s *BookingService) Search(filter string) ([]models.Booking, error) {
	like := "%" + strings.TrimSpace(filter) + "%"

	var list []models.Booking
	if err := s.DB.
		Joins("JOIN customers ON customers.id = bookings.customer_id").
		Where("bookings.code LIKE ? OR customers.name LIKE ?", like, like).
		Preload("Room.RoomType").
		Preload("Customer").
		Order("bookings.created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to search bookings: %w", err)
	}
	return list, nil
}

// ForRoom returns the room's bookings, newest first.
func (s *BookingService) ForRoom(roomID uint) ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Where("room_id = ?", roomID).
		Preload("Customer").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve room bookings: %w", err)
	}
	return list, nil
}

// AvailableRoom is a room offered by the availability search, priced for the
// requested stay.
type AvailableRoom struct {
	Room   models.Room `json:"room"`
	Nights int         `json:"nights"`
	Total  float64     `json:"total"`
}

// AvailableRooms lists rooms that sleep at least the requested guests and
// have no active booking overlapping [checkin, checkout), ordered by capacity
// then name.
func (s *BookingService) AvailableRooms(checkin, checkout time.Time, guests int) ([]AvailableRoom, error) {
	checkin = utils.DateOnly(checkin)
	checkout = utils.DateOnly(checkout)

	if err := s.ValidateDates(checkin, checkout); err != nil {
		return nil, err
	}
	if guests <= 0 {
		guests = 1
	}

	conflicting := s.DB.Model(&models.Booking{}).
		Select("room_id").
		Where("state <> ?", models.StateDeleted).
		Where("checkin < ? AND checkout > ?", checkout, checkin)

	var rooms []models.Room
	if err := s.DB.
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Where("room_types.max_guests >= ?", guests).
		Where("rooms.id NOT IN (?)", conflicting).
		Preload("RoomType").
		Order("room_types.max_guests, rooms.name").
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to search available rooms: %w", err)
	}

	nights := int(checkout.Sub(checkin).Hours() / 24)
	out := make([]AvailableRoom, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, AvailableRoom{
			Room:   room,
			Nights: nights,
			Total:  float64(nights) * room.RoomType.Price,
		})
	}
	return out, nil
}
