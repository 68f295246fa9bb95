package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_manager/internal/config"
	"fleet_manager/internal/middleware"
	"fleet_manager/internal/models"
)

type registerInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// RegisterUser creates a new user account and issues a token for it.
func RegisterUser(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
		return
	}

	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role == "" {
		role = models.RoleDriver
	}
	if !models.IsUserRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role. Must be one of: " + strings.Join(models.UserRoles, ", ")})
		return
	}

	// Best-effort duplicate pre-check for a friendly message; the unique
	// constraint below is what actually guarantees it.
	count, err := countWhere(&models.User{}, "username = ?", input.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error checking username: " + err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username already exists"})
		return
	}
	count, err = countWhere(&models.User{}, "email = ?", input.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error checking email: " + err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already exists"})
		return
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Role:     role,
		IsActive: true,
	}
	if err := user.SetPassword(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not hash password"})
		return
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	}); err != nil {
		if isDuplicateErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username or email already exists"})
			return
		}
		logrus.WithError(err).Error("registering user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error registering user: " + err.Error()})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"data":    gin.H{"user": user, "token": token},
	})
}

// LoginUser verifies credentials and returns a fresh token.
func LoginUser(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username and password are required"})
		return
	}

	var user models.User
	if err := config.DB.Where("username = ?", body.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid username or password"})
		} else {
			logrus.WithError(err).Error("login lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error during login: " + err.Error()})
		}
		return
	}

	if !user.CheckPassword(body.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid username or password"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Account is deactivated"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data":    gin.H{"user": user, "token": token},
	})
}

// GetCurrentUser returns the user resolved from the request token.
func GetCurrentUser(c *gin.Context) {
	user := middleware.MustCurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// ChangePassword lets the authenticated user rotate their own password.
func ChangePassword(c *gin.Context) {
	user := middleware.MustCurrentUser(c)

	var body struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Current password and new password are required"})
		return
	}

	if !user.CheckPassword(body.CurrentPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Current password is incorrect"})
		return
	}

	if err := user.SetPassword(body.NewPassword); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not hash password"})
		return
	}
	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(user).Update("password", user.Password).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error changing password: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}
