package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_manager/internal/config"
	"fleet_manager/internal/models"
)

// ListDrivers returns all drivers, optionally filtered by status.
func ListDrivers(c *gin.Context) {
	query := config.DB.Model(&models.Driver{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var drivers []models.Driver
	if err := query.Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching drivers: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": drivers, "count": len(drivers)})
}

func GetDriver(c *gin.Context) {
	var driver models.Driver
	if err := config.DB.First(&driver, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Driver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching driver: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": driver})
}

type createDriverInput struct {
	Name      string `json:"name" binding:"required"`
	LicenseNo string `json:"license_no" binding:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	UserID    *uint  `json:"user_id"`
}

func CreateDriver(c *gin.Context) {
	var input createDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid driver input: " + err.Error()})
		return
	}

	if input.Status == "" {
		input.Status = "active"
	}
	if !models.IsDriverStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status. Must be one of: " + strings.Join(models.DriverStatuses, ", ")})
		return
	}

	if input.UserID != nil {
		count, err := countWhere(&models.User{}, "id = ?", *input.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error checking user: " + err.Error()})
			return
		}
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User with the provided user_id does not exist"})
			return
		}
	}

	count, err := countWhere(&models.Driver{}, "license_no = ?", input.LicenseNo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error checking license number: " + err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Driver with this license number already exists"})
		return
	}

	driver := models.Driver{
		Name:      input.Name,
		LicenseNo: input.LicenseNo,
		Phone:     input.Phone,
		Email:     input.Email,
		Status:    input.Status,
		UserID:    input.UserID,
	}
	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&driver).Error
	}); err != nil {
		if isDuplicateErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Driver with this license number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating driver: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Driver created successfully", "data": driver})
}

type updateDriverInput struct {
	Name      *string `json:"name"`
	LicenseNo *string `json:"license_no"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Status    *string `json:"status"`
	UserID    *uint   `json:"user_id"`
}

func UpdateDriver(c *gin.Context) {
	var driver models.Driver
	if err := config.DB.First(&driver, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Driver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching driver: " + err.Error()})
		}
		return
	}

	var input updateDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid update: " + err.Error()})
		return
	}

	if input.Status != nil && !models.IsDriverStatus(*input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status. Must be one of: " + strings.Join(models.DriverStatuses, ", ")})
		return
	}
	if input.LicenseNo != nil && *input.LicenseNo != driver.LicenseNo {
		count, err := countWhere(&models.Driver{}, "license_no = ?", *input.LicenseNo)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error checking license number: " + err.Error()})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Driver with this license number already exists"})
			return
		}
		driver.LicenseNo = *input.LicenseNo
	}
	if input.UserID != nil {
		count, err := countWhere(&models.User{}, "id = ?", *input.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error checking user: " + err.Error()})
			return
		}
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User with the provided user_id does not exist"})
			return
		}
		driver.UserID = input.UserID
	}
	if input.Name != nil {
		driver.Name = *input.Name
	}
	if input.Phone != nil {
		driver.Phone = *input.Phone
	}
	if input.Email != nil {
		driver.Email = *input.Email
	}
	if input.Status != nil {
		driver.Status = *input.Status
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&driver).Error
	}); err != nil {
		if isDuplicateErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Driver with this license number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating driver: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Driver updated successfully", "data": driver})
}

// DeleteDriver removes a driver unless trips still reference them.
func DeleteDriver(c *gin.Context) {
	var driver models.Driver
	if err := config.DB.First(&driver, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Driver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching driver: " + err.Error()})
		}
		return
	}

	var tripCount int64
	if err := config.DB.Model(&models.Trip{}).Where("driver_id = ?", driver.ID).Count(&tripCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error checking trips: " + err.Error()})
		return
	}
	if tripCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot delete driver with associated trips"})
		return
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Unscoped().Delete(&driver).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting driver: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Driver deleted successfully"})
}

// GetDriverStats aggregates trip figures for one driver.
func GetDriverStats(c *gin.Context) {
	var driver models.Driver
	if err := config.DB.First(&driver, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Driver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching driver: " + err.Error()})
		}
		return
	}

	var totals struct {
		TotalTrips    int64   `json:"total_trips"`
		TotalDistance float64 `json:"total_distance"`
		TotalFuelUsed float64 `json:"total_fuel_used"`
	}
	if err := config.DB.Model(&models.Trip{}).
		Select("COUNT(*) AS total_trips, COALESCE(SUM(distance), 0) AS total_distance, COALESCE(SUM(fuel_used), 0) AS total_fuel_used").
		Where("driver_id = ?", driver.ID).
		Scan(&totals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching driver stats: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": totals})
}
