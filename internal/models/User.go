package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Valid roles for a user account.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleDriver  = "driver"
)

var UserRoles = []string{RoleAdmin, RoleManager, RoleDriver}

type User struct {
	gorm.Model
	Username string `json:"username" gorm:"unique;not null"`
	Email    string `json:"email" gorm:"unique;not null"`
	Password string `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	Role     string `json:"role" gorm:"default:driver"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}

// IsUserRole reports whether role belongs to the closed role set.
// Shared by the register and admin-update paths.
func IsUserRole(role string) bool {
	for _, r := range UserRoles {
		if r == role {
			return true
		}
	}
	return false
}

// SetPassword hashes the plaintext password with bcrypt and stores the hash.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword compares a plaintext password against the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
