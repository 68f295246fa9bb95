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

// ListVehicles returns all vehicles, optionally filtered by status and
// fuel_type.
func ListVehicles(c *gin.Context) {
	query := config.DB.Model(&models.Vehicle{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if fuelType := c.Query("fuel_type"); fuelType != "" {
		query = query.Where("fuel_type = ?", fuelType)
	}

	var vehicles []models.Vehicle
	if err := query.Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching vehicles: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": vehicles, "count": len(vehicles)})
}

func GetVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching vehicle: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": vehicle})
}

type createVehicleInput struct {
	RegNo    string `json:"reg_no" binding:"required"`
	Model    string `json:"model" binding:"required"`
	FuelType string `json:"fuel_type" binding:"required"`
	Status   string `json:"status"`
}

func CreateVehicle(c *gin.Context) {
	var input createVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid vehicle input: " + err.Error()})
		return
	}

	if !models.IsVehicleFuelType(input.FuelType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid fuel_type. Must be one of: " + strings.Join(models.VehicleFuelTypes, ", ")})
		return
	}
	if input.Status == "" {
		input.Status = "active"
	}
	if !models.IsVehicleStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status. Must be one of: " + strings.Join(models.VehicleStatuses, ", ")})
		return
	}

	count, err := countWhere(&models.Vehicle{}, "reg_no = ?", input.RegNo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error checking registration number: " + err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Vehicle with this registration number already exists"})
		return
	}

	vehicle := models.Vehicle{
		RegNo:     input.RegNo,
		ModelName: input.Model,
		FuelType:  input.FuelType,
		Status:    input.Status,
	}
	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&vehicle).Error
	}); err != nil {
		if isDuplicateErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Vehicle with this registration number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating vehicle: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Vehicle created successfully", "data": vehicle})
}

type updateVehicleInput struct {
	RegNo    *string `json:"reg_no"`
	Model    *string `json:"model"`
	FuelType *string `json:"fuel_type"`
	Status   *string `json:"status"`
}

func UpdateVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching vehicle: " + err.Error()})
		}
		return
	}

	var input updateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid update: " + err.Error()})
		return
	}

	if input.FuelType != nil && !models.IsVehicleFuelType(*input.FuelType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid fuel_type. Must be one of: " + strings.Join(models.VehicleFuelTypes, ", ")})
		return
	}
	if input.Status != nil && !models.IsVehicleStatus(*input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status. Must be one of: " + strings.Join(models.VehicleStatuses, ", ")})
		return
	}
	if input.RegNo != nil && *input.RegNo != vehicle.RegNo {
		count, err := countWhere(&models.Vehicle{}, "reg_no = ?", *input.RegNo)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error checking registration number: " + err.Error()})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Vehicle with this registration number already exists"})
			return
		}
		vehicle.RegNo = *input.RegNo
	}
	if input.Model != nil {
		vehicle.ModelName = *input.Model
	}
	if input.FuelType != nil {
		vehicle.FuelType = *input.FuelType
	}
	if input.Status != nil {
		vehicle.Status = *input.Status
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&vehicle).Error
	}); err != nil {
		if isDuplicateErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Vehicle with this registration number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating vehicle: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Vehicle updated successfully", "data": vehicle})
}

// DeleteVehicle removes a vehicle unless trips still reference it.
func DeleteVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching vehicle: " + err.Error()})
		}
		return
	}

	var tripCount int64
	if err := config.DB.Model(&models.Trip{}).Where("vehicle_id = ?", vehicle.ID).Count(&tripCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error checking trips: " + err.Error()})
		return
	}
	if tripCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot delete vehicle with associated trips"})
		return
	}

	// Hard delete so the registration number can be reused.
	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Unscoped().Delete(&vehicle).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting vehicle: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Vehicle deleted successfully"})
}

// GetVehicleStats aggregates trip and maintenance figures for one vehicle.
func GetVehicleStats(c *gin.Context) {
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching vehicle: " + err.Error()})
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
		Where("vehicle_id = ?", vehicle.ID).
		Scan(&totals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching vehicle stats: " + err.Error()})
		return
	}

	var maint struct {
		MaintenanceCount     int64   `json:"maintenance_count"`
		TotalMaintenanceCost float64 `json:"total_maintenance_cost"`
	}
	if err := config.DB.Model(&models.Maintenance{}).
		Select("COUNT(*) AS maintenance_count, COALESCE(SUM(cost), 0) AS total_maintenance_cost").
		Where("vehicle_id = ?", vehicle.ID).
		Scan(&maint).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching vehicle stats: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"total_trips":            totals.TotalTrips,
		"total_distance":         totals.TotalDistance,
		"total_fuel_used":        totals.TotalFuelUsed,
		"maintenance_count":      maint.MaintenanceCount,
		"total_maintenance_cost": maint.TotalMaintenanceCost,
	}})
}
