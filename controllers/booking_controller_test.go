package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type bookingTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func newBookingTestEnv(t *testing.T) *bookingTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.RoomType{},
		&models.Customer{},
		&models.Room{},
		&models.Booking{},
	))

	ctrl := NewBookingController(services.NewBookingService(db))

	r := gin.New()
	bookings := r.Group("/api/bookings")
	{
		bookings.GET("", ctrl.GetBookings)
		bookings.POST("", ctrl.CreateBooking)
		bookings.GET("/:id", ctrl.GetBookingDetails)
		bookings.PUT("/:id/dates", ctrl.EditBookingDates)
		bookings.POST("/:id/availability", ctrl.CheckAvailability)
		bookings.DELETE("/:id", ctrl.DeleteBooking)
	}
	r.POST("/api/rooms/search", ctrl.SearchAvailableRooms)

	return &bookingTestEnv{db: db, router: r}
}

func (env *bookingTestEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "expected error object in %s", w.Body.String())
	msg, _ := errObj["message"].(string)
	return msg
}

func (env *bookingTestEnv) seedRoom(t *testing.T, name string, price float64, maxGuests uint) models.Room {
	t.Helper()
	rt := models.RoomType{Name: name + " type", Price: price, MaxGuests: maxGuests}
	require.NoError(t, env.db.Create(&rt).Error)
	room := models.Room{Name: name, RoomTypeID: rt.ID}
	require.NoError(t, env.db.Create(&room).Error)
	return room
}

func (env *bookingTestEnv) seedBooking(t *testing.T, roomID uint, checkin, checkout time.Time) models.Booking {
	t.Helper()

	cust := models.Customer{Name: "Chapp Test", Email: "asd@as.es"}
	require.NoError(t, env.db.Create(&cust).Error)

	code, err := utils.GenerateReservationCode(8)
	require.NoError(t, err)

	b := models.Booking{
		RoomID:     roomID,
		CustomerID: cust.ID,
		Checkin:    checkin,
		Checkout:   checkout,
		Guests:     1,
		Total:      20,
		Code:       code,
		State:      models.StateConfirmed,
	}
	require.NoError(t, env.db.Create(&b).Error)
	return b
}

func isoDay(offset int) string {
	return utils.DateOnly(time.Now()).AddDate(0, 0, offset).Format(utils.DateLayout)
}

func TestEditBookingDatesEndpoint(t *testing.T) {
	env := newBookingTestEnv(t)
	room := env.seedRoom(t, "Room 1.1", 20, 1)
	booking := env.seedBooking(t, room.ID, utils.DateOnly(time.Now()), utils.DateOnly(time.Now()).AddDate(0, 0, 1))
	env.seedBooking(t, room.ID, utils.DateOnly(time.Now()).AddDate(0, 0, 5), utils.DateOnly(time.Now()).AddDate(0, 0, 7))

	path := fmt.Sprintf("/api/bookings/%d/dates", booking.ID)

	t.Run("success", func(t *testing.T) {
		w := env.do(t, http.MethodPut, path, gin.H{"checkin": isoDay(2), "checkout": isoDay(4)})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decodeBody(t, w)
		assert.Equal(t, "success", body["status"])
	})

	t.Run("invalid range", func(t *testing.T) {
		w := env.do(t, http.MethodPut, path, gin.H{"checkin": isoDay(4), "checkout": isoDay(4)})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "checkout must be after checkin", errorMessage(t, w))
	})

	t.Run("conflict", func(t *testing.T) {
		w := env.do(t, http.MethodPut, path, gin.H{"checkin": isoDay(6), "checkout": isoDay(8)})
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "no availability for the selected dates", errorMessage(t, w))
	})

	t.Run("not found", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/bookings/9999/dates", gin.H{"checkin": isoDay(1), "checkout": isoDay(2)})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("not found beats invalid range", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/bookings/9999/dates", gin.H{"checkin": isoDay(2), "checkout": isoDay(1)})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad date format", func(t *testing.T) {
		w := env.do(t, http.MethodPut, path, gin.H{"checkin": "01/02/2026", "checkout": isoDay(2)})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCheckAvailabilityEndpoint(t *testing.T) {
	env := newBookingTestEnv(t)
	room := env.seedRoom(t, "Room 1.1", 20, 1)
	booking := env.seedBooking(t, room.ID, utils.DateOnly(time.Now()), utils.DateOnly(time.Now()).AddDate(0, 0, 1))
	env.seedBooking(t, room.ID, utils.DateOnly(time.Now()).AddDate(0, 0, 5), utils.DateOnly(time.Now()).AddDate(0, 0, 7))

	path := fmt.Sprintf("/api/bookings/%d/availability", booking.ID)

	t.Run("free dates", func(t *testing.T) {
		w := env.do(t, http.MethodPost, path, gin.H{"checkin": isoDay(2), "checkout": isoDay(4)})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decodeBody(t, w)["available"])
	})

	t.Run("own dates do not conflict", func(t *testing.T) {
		w := env.do(t, http.MethodPost, path, gin.H{"checkin": isoDay(0), "checkout": isoDay(1)})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decodeBody(t, w)["available"])
	})

	t.Run("conflicting dates", func(t *testing.T) {
		w := env.do(t, http.MethodPost, path, gin.H{"checkin": isoDay(6), "checkout": isoDay(8)})
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, false, body["available"])
		assert.Equal(t, "no availability for the selected dates", body["error"])
	})

	t.Run("inverted dates", func(t *testing.T) {
		w := env.do(t, http.MethodPost, path, gin.H{"checkin": isoDay(4), "checkout": isoDay(2)})
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, false, body["available"])
		assert.Equal(t, "checkout must be after checkin", body["error"])
	})

	t.Run("missing dates", func(t *testing.T) {
		w := env.do(t, http.MethodPost, path, gin.H{"checkin": "", "checkout": ""})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decodeBody(t, w)["available"])
	})

	t.Run("unknown booking", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/bookings/9999/availability", gin.H{"checkin": isoDay(1), "checkout": isoDay(2)})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreateBookingEndpoint(t *testing.T) {
	env := newBookingTestEnv(t)
	room := env.seedRoom(t, "Room 2.1", 30, 2)

	cust := models.Customer{Name: "Walk In", Email: "walkin@example.com"}
	require.NoError(t, env.db.Create(&cust).Error)

	t.Run("created", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/bookings", gin.H{
			"customer_id": cust.ID,
			"room_id":     room.ID,
			"checkin":     isoDay(1),
			"checkout":    isoDay(3),
			"guests":      2,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		body := decodeBody(t, w)
		assert.Equal(t, "Booking created successfully", body["message"])
		data, ok := body["data"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, 60.0, data["total"])
		assert.Equal(t, models.StateConfirmed, data["state"])
	})

	t.Run("search flow gets NEW state", func(t *testing.T) {
		room2 := env.seedRoom(t, "Room 2.2", 30, 2)
		w := env.do(t, http.MethodPost, "/api/bookings", gin.H{
			"customer_id": cust.ID,
			"room_id":     room2.ID,
			"checkin":     isoDay(1),
			"checkout":    isoDay(3),
			"source":      "search",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, models.StateNew, data["state"])
	})

	t.Run("conflict", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/bookings", gin.H{
			"customer_id": cust.ID,
			"room_id":     room.ID,
			"checkin":     isoDay(2),
			"checkout":    isoDay(4),
		})
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "no availability for the selected dates", errorMessage(t, w))
	})

	t.Run("unknown customer", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/bookings", gin.H{
			"customer_id": 9999,
			"room_id":     room.ID,
			"checkin":     isoDay(10),
			"checkout":    isoDay(11),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteBookingEndpoint(t *testing.T) {
	env := newBookingTestEnv(t)
	room := env.seedRoom(t, "Room 1.1", 20, 1)
	booking := env.seedBooking(t, room.ID, utils.DateOnly(time.Now()), utils.DateOnly(time.Now()).AddDate(0, 0, 1))

	w := env.do(t, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", booking.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Booking
	require.NoError(t, env.db.First(&stored, booking.ID).Error)
	assert.Equal(t, models.StateDeleted, stored.State)

	w = env.do(t, http.MethodDelete, "/api/bookings/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchAvailableRoomsEndpoint(t *testing.T) {
	env := newBookingTestEnv(t)
	free := env.seedRoom(t, "Room 3.1", 50, 4)
	taken := env.seedRoom(t, "Room 3.2", 50, 4)
	env.seedBooking(t, taken.ID, utils.DateOnly(time.Now()).AddDate(0, 0, 1), utils.DateOnly(time.Now()).AddDate(0, 0, 3))

	w := env.do(t, http.MethodPost, "/api/rooms/search", gin.H{
		"checkin":  isoDay(1),
		"checkout": isoDay(3),
		"guests":   3,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	rooms, ok := body["rooms"].([]interface{})
	require.True(t, ok)
	require.Len(t, rooms, 1)

	entry := rooms[0].(map[string]interface{})
	assert.Equal(t, 2.0, entry["nights"])
	assert.Equal(t, 100.0, entry["total"])
	roomObj := entry["room"].(map[string]interface{})
	assert.Equal(t, float64(free.ID), roomObj["ID"])

	w = env.do(t, http.MethodPost, "/api/rooms/search", gin.H{
		"checkin":  isoDay(3),
		"checkout": isoDay(3),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "checkout must be after checkin", errorMessage(t, w))
}
