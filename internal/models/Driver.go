package models

import (
	"gorm.io/gorm"
)

var DriverStatuses = []string{"active", "inactive"}

// Driver is a personnel record. It may optionally be linked to a User account
// via UserID when the driver also logs into the system.
type Driver struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	LicenseNo string `json:"license_no" gorm:"unique;not null"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Status    string `json:"status" gorm:"default:active"`
	UserID    *uint  `json:"user_id" gorm:"index"`
}

func IsDriverStatus(status string) bool {
	for _, s := range DriverStatuses {
		if s == status {
			return true
		}
	}
	return false
}
