package models

import (
	"time"

	"gorm.io/gorm"
)

var (
	MaintenanceTypes    = []string{"routine", "repair", "emergency"}
	MaintenanceStatuses = []string{"scheduled", "in_progress", "completed"}
)

// Maintenance is a service event tied to a vehicle.
type Maintenance struct {
	gorm.Model
	VehicleID       uint       `json:"vehicle_id" gorm:"index;not null"`
	Vehicle         Vehicle    `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Date            time.Time  `json:"date" gorm:"index;not null"`
	Cost            float64    `json:"cost" gorm:"default:0"`
	Description     string     `json:"description" gorm:"not null"`
	MaintenanceType string     `json:"maintenance_type" gorm:"not null"`
	ServiceProvider string     `json:"service_provider"`
	Mileage         *int       `json:"mileage"` // odometer reading at service time
	NextServiceDate *time.Time `json:"next_service_date"`
	Status          string     `json:"status" gorm:"default:completed"`
}

func IsMaintenanceType(maintenanceType string) bool {
	for _, m := range MaintenanceTypes {
		if m == maintenanceType {
			return true
		}
	}
	return false
}

func IsMaintenanceStatus(status string) bool {
	for _, s := range MaintenanceStatuses {
		if s == status {
			return true
		}
	}
	return false
}
