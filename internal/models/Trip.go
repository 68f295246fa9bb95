package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TripPlanned    = "planned"
	TripInProgress = "in_progress"
	TripCompleted  = "completed"
	TripCancelled  = "cancelled"
)

var TripStatuses = []string{TripPlanned, TripInProgress, TripCompleted, TripCancelled}

// Trip is a journey made by a driver in a vehicle. Distance and FuelUsed are
// pointers because a planned trip has neither yet; TripDate is a date-only
// value normalized to midnight UTC so calendar grouping stays exact.
type Trip struct {
	gorm.Model
	VehicleID   uint       `json:"vehicle_id" gorm:"index;not null"`
	DriverID    uint       `json:"driver_id" gorm:"index;not null"`
	Vehicle     Vehicle    `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Driver      Driver     `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Source      string     `json:"source" gorm:"not null"`
	Destination string     `json:"destination" gorm:"not null"`
	Distance    *float64   `json:"distance"`  // kilometers
	FuelUsed    *float64   `json:"fuel_used"` // liters
	TripDate    time.Time  `json:"trip_date" gorm:"index;not null"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Status      string     `json:"status" gorm:"default:planned"`
	Notes       string     `json:"notes"`
}

func IsTripStatus(status string) bool {
	for _, s := range TripStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CanStart reports whether the dedicated start action is legal: only a
// planned trip may be started.
func (t *Trip) CanStart() bool {
	return t.Status == TripPlanned
}

// CanComplete reports whether the dedicated complete action is legal: a trip
// may be completed from planned or in_progress, never from a terminal state.
func (t *Trip) CanComplete() bool {
	return t.Status == TripPlanned || t.Status == TripInProgress
}

// DurationHours returns end−start in hours, or nil unless both are set.
func (t *Trip) DurationHours() *float64 {
	if t.StartTime == nil || t.EndTime == nil {
		return nil
	}
	h := t.EndTime.Sub(*t.StartTime).Hours()
	return &h
}

// FuelEfficiency returns distance/fuel in km per liter, or nil unless both
// distance and positive fuel usage are recorded.
func (t *Trip) FuelEfficiency() *float64 {
	if t.Distance == nil || t.FuelUsed == nil || *t.FuelUsed <= 0 {
		return nil
	}
	e := *t.Distance / *t.FuelUsed
	return &e
}

// DateOnly truncates ts to midnight UTC, the canonical form for date columns.
func DateOnly(ts time.Time) time.Time {
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
