// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
	mysql "github.com/go-sql-driver/mysql"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

// CreateBookingRequest creates a booking directly (state CONF) or from the
// room search flow (source "search" -> state NEW).
type CreateBookingRequest struct {
	CustomerID uint   `json:"customer_id" binding:"required"`
	RoomID     uint   `json:"room_id" binding:"required"`
	Checkin    string `json:"checkin" binding:"required"`
	Checkout   string `json:"checkout" binding:"required"`
	Guests     int    `json:"guests"`
	Source     string `json:"source"`
}

type EditDatesRequest struct {
	Checkin  string `json:"checkin" binding:"required"`
	Checkout string `json:"checkout" binding:"required"`
}

type AvailabilityRequest struct {
	Checkin  string `json:"checkin"`
	Checkout string `json:"checkout"`
}

type RoomSearchRequest struct {
	Checkin  string `json:"checkin" binding:"required"`
	Checkout string `json:"checkout" binding:"required"`
	Guests   int    `json:"guests"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

func bookingIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidBookingId", "booking id must be numeric")
		return 0, false
	}
	return uint(id), true
}

func parseDatePair(checkin, checkout string) (time.Time, time.Time, error) {
	ci, err := utils.ParseDate(checkin)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	co, err := utils.ParseDate(checkout)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return ci, co, nil
}

// GetBookings lists all bookings, or searches by reservation code / customer
// name when ?filter= is present. Newest first either way.
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	filter := strings.TrimSpace(c.Query("filter"))

	var (
		bookings []models.Booking
		err      error
	)
	if filter != "" {
		bookings, err = ctrl.BookingSvc.Search(filter)
	} else {
		bookings, err = ctrl.BookingSvc.All()
	}
	if err != nil {
		log.Printf("GetBookings error: %v", err)
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.fetchBookings", "could not fetch bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONErrorCode(c, http.StatusNotFound, "error.bookingNotFound", err.Error())
			return
		}
		log.Printf("GetBookingDetails error: %v", err)
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.fetchBooking", "could not fetch booking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload CreateBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	ci, co, err := parseDatePair(payload.Checkin, payload.Checkout)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidDateFormat", "dates must be YYYY-MM-DD")
		return
	}

	state := models.StateConfirmed
	if strings.EqualFold(payload.Source, "search") {
		state = models.StateNew
	}

	booking, err := ctrl.BookingSvc.CreateBooking(payload.CustomerID, payload.RoomID, ci, co, payload.Guests, state)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRange):
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidRange", err.Error())
		case errors.Is(err, services.ErrNoAvailability):
			utils.JSONErrorCode(c, http.StatusConflict, "error.noAvailability", err.Error())
		case errors.Is(err, services.ErrRoomNotFound), errors.Is(err, services.ErrCustomerNotFound):
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.unknownReference", err.Error())
		case isForeignKeyError(err):
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.foreignKey", err.Error())
		default:
			log.Printf("CreateBooking error: %v", err)
			utils.JSONErrorCode(c, http.StatusInternalServerError, "error.createBooking", "failed to create booking")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully", "data": booking})
}

// EditBookingDates changes only checkin/checkout. Ordering violations and
// availability conflicts leave the booking untouched and return the fixed
// contract messages.
func (ctrl *BookingController) EditBookingDates(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var payload EditDatesRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	ci, co, err := parseDatePair(payload.Checkin, payload.Checkout)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidDateFormat", "dates must be YYYY-MM-DD")
		return
	}

	booking, err := ctrl.BookingSvc.EditDates(id, ci, co)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			utils.JSONErrorCode(c, http.StatusNotFound, "error.bookingNotFound", err.Error())
		case errors.Is(err, services.ErrInvalidRange):
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidRange", err.Error())
		case errors.Is(err, services.ErrNoAvailability):
			utils.JSONErrorCode(c, http.StatusConflict, "error.noAvailability", err.Error())
		default:
			log.Printf("EditBookingDates error (booking=%d): %v", id, err)
			utils.JSONErrorCode(c, http.StatusInternalServerError, "error.editDates", "failed to update booking dates")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}

// CheckAvailability is the form-side availability probe used while the user
// picks dates. It always answers 200 with {"available": bool} plus the
// user-facing message on failure, mirroring what the edit form shows inline.
func (ctrl *BookingController) CheckAvailability(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var payload AvailabilityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusOK, gin.H{"available": false, "error": "both dates are required"})
		return
	}
	if strings.TrimSpace(payload.Checkin) == "" || strings.TrimSpace(payload.Checkout) == "" {
		c.JSON(http.StatusOK, gin.H{"available": false, "error": "both dates are required"})
		return
	}

	ci, co, err := parseDatePair(payload.Checkin, payload.Checkout)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"available": false, "error": "dates must be YYYY-MM-DD"})
		return
	}

	booking, err := ctrl.BookingSvc.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONErrorCode(c, http.StatusNotFound, "error.bookingNotFound", err.Error())
			return
		}
		log.Printf("CheckAvailability error (booking=%d): %v", id, err)
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.checkAvailability", "availability check failed")
		return
	}

	if err := ctrl.BookingSvc.ValidateDates(ci, co); err != nil {
		c.JSON(http.StatusOK, gin.H{"available": false, "error": err.Error()})
		return
	}

	free, err := ctrl.BookingSvc.IsAvailable(booking.RoomID, ci, co, &booking.ID)
	if err != nil {
		log.Printf("CheckAvailability error (booking=%d): %v", id, err)
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.checkAvailability", "availability check failed")
		return
	}
	if !free {
		c.JSON(http.StatusOK, gin.H{"available": false, "error": services.ErrNoAvailability.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true})
}

// DeleteBooking soft-deletes: the row keeps its history but the room frees up.
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.BookingSvc.SoftDelete(id); err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONErrorCode(c, http.StatusNotFound, "error.bookingNotFound", err.Error())
			return
		}
		log.Printf("DeleteBooking error: %v", err)
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.deleteBooking", "failed to delete booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "booking deleted"})
}

// SearchAvailableRooms lists free rooms for a stay, priced per room type.
func (ctrl *BookingController) SearchAvailableRooms(c *gin.Context) {
	var payload RoomSearchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	ci, co, err := parseDatePair(payload.Checkin, payload.Checkout)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidDateFormat", "dates must be YYYY-MM-DD")
		return
	}

	rooms, err := ctrl.BookingSvc.AvailableRooms(ci, co, payload.Guests)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRange) {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidRange", err.Error())
			return
		}
		log.Printf("SearchAvailableRooms error: %v", err)
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.roomSearch", "room search failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// isForeignKeyError detects MySQL error 1452 (FK violation).
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1452
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "foreign key") || strings.Contains(lower, "1452")
}
