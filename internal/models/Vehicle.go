package models

import (
	"gorm.io/gorm"
)

var (
	VehicleFuelTypes = []string{"petrol", "diesel", "electric"}
	VehicleStatuses  = []string{"active", "maintenance", "inactive"}
)

// Vehicle is a fleet asset. Trips and maintenance records hang off it via
// foreign keys; a vehicle cannot be deleted while trips still reference it.
type Vehicle struct {
	gorm.Model
	RegNo     string `json:"reg_no" gorm:"unique;not null"`
	ModelName string `json:"model" gorm:"column:model;not null"`
	FuelType  string `json:"fuel_type" gorm:"not null"`
	Status    string `json:"status" gorm:"default:active"`
}

func IsVehicleFuelType(fuelType string) bool {
	for _, f := range VehicleFuelTypes {
		if f == fuelType {
			return true
		}
	}
	return false
}

func IsVehicleStatus(status string) bool {
	for _, s := range VehicleStatuses {
		if s == status {
			return true
		}
	}
	return false
}
