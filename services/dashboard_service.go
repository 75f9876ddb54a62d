// services/dashboard_service.go
package services

import (
	"fmt"
	"math"
	"time"

	"hotel-pms/models"
	"hotel-pms/utils"

	"gorm.io/gorm"
)

// DashboardSnapshot holds the occupancy metrics for one day. All fields are
// derived by read-only aggregation over rooms and bookings.
type DashboardSnapshot struct {
	Date            string  `json:"date"`
	NewBookings     int64   `json:"new_bookings"`
	IncomingGuests  int64   `json:"incoming_guests"`
	OutcomingGuests int64   `json:"outcoming_guests"`
	Invoiced        float64 `json:"invoiced"`
	OccupiedRooms   int64   `json:"occupied_rooms"`
	TotalRooms      int64   `json:"total_rooms"`
	OccupancyRate   float64 `json:"occupancy_rate"`
}

type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

// Compute aggregates the snapshot for asOf (time of day is ignored).
// new_bookings counts every state, matching the legacy dashboard; the other
// booking metrics skip soft-deleted rows. A booking occupies its room on days
// where checkin <= asOf < checkout, so the checkout day itself is free.
func (s *DashboardService) Compute(asOf time.Time) (DashboardSnapshot, error) {
	day := utils.DateOnly(asOf)
	dayEnd := day.Add(24 * time.Hour)

	snap := DashboardSnapshot{Date: day.Format("2006-01-02")}

	if err := s.DB.Model(&models.Booking{}).
		Where("created_at >= ? AND created_at < ?", day, dayEnd).
		Count(&snap.NewBookings).Error; err != nil {
		return snap, fmt.Errorf("failed to count new bookings: %w", err)
	}

	active := func() *gorm.DB {
		return s.DB.Model(&models.Booking{}).Where("state <> ?", models.StateDeleted)
	}

	if err := active().Where("checkin = ?", day).Count(&snap.IncomingGuests).Error; err != nil {
		return snap, fmt.Errorf("failed to count arrivals: %w", err)
	}
	if err := active().Where("checkout = ?", day).Count(&snap.OutcomingGuests).Error; err != nil {
		return snap, fmt.Errorf("failed to count departures: %w", err)
	}

	if err := active().
		Where("created_at >= ? AND created_at < ?", day, dayEnd).
		Select("COALESCE(SUM(total), 0)").
		Scan(&snap.Invoiced).Error; err != nil {
		return snap, fmt.Errorf("failed to sum invoiced total: %w", err)
	}

	if err := active().
		Where("checkin <= ? AND checkout > ?", day, day).
		Count(&snap.OccupiedRooms).Error; err != nil {
		return snap, fmt.Errorf("failed to count occupied rooms: %w", err)
	}

	if err := s.DB.Model(&models.Room{}).Count(&snap.TotalRooms).Error; err != nil {
		return snap, fmt.Errorf("failed to count rooms: %w", err)
	}

	if snap.TotalRooms > 0 {
		rate := float64(snap.OccupiedRooms) / float64(snap.TotalRooms) * 100
		snap.OccupancyRate = math.Round(rate*100) / 100
	}

	return snap, nil
}
