package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_manager/internal/config"
	"fleet_manager/internal/models"
)

// ListTrips returns trips newest-first, with optional equality and date-range
// filters.
func ListTrips(c *gin.Context) {
	query := config.DB.Model(&models.Trip{})
	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}
	if driverID := c.Query("driver_id"); driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		from, err := parseDate(startDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid start_date format. Use YYYY-MM-DD"})
			return
		}
		query = query.Where("trip_date >= ?", from)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		to, err := parseDate(endDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid end_date format. Use YYYY-MM-DD"})
			return
		}
		query = query.Where("trip_date <= ?", to)
	}

	var trips []models.Trip
	if err := query.Preload("Vehicle").Preload("Driver").Order("trip_date DESC").Find(&trips).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching trips: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": trips, "count": len(trips)})
}

func GetTrip(c *gin.Context) {
	var trip models.Trip
	if err := config.DB.Preload("Vehicle").Preload("Driver").First(&trip, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Trip not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching trip: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": trip})
}

type createTripInput struct {
	VehicleID   uint     `json:"vehicle_id" binding:"required"`
	DriverID    uint     `json:"driver_id" binding:"required"`
	Source      string   `json:"source" binding:"required"`
	Destination string   `json:"destination" binding:"required"`
	Distance    *float64 `json:"distance"`
	FuelUsed    *float64 `json:"fuel_used"`
	TripDate    string   `json:"trip_date"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Status      string   `json:"status"`
	Notes       string   `json:"notes"`
}

func CreateTrip(c *gin.Context) {
	var input createTripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid trip input: " + err.Error()})
		return
	}

	count, err := countWhere(&models.Vehicle{}, "id = ?", input.VehicleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error checking vehicle: " + err.Error()})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Vehicle not found"})
		return
	}
	count, err = countWhere(&models.Driver{}, "id = ?", input.DriverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error checking driver: " + err.Error()})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Driver not found"})
		return
	}

	if input.Status == "" {
		input.Status = models.TripPlanned
	}
	if !models.IsTripStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status. Must be one of: " + strings.Join(models.TripStatuses, ", ")})
		return
	}
	if input.Distance != nil && *input.Distance < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "distance must be non-negative"})
		return
	}
	if input.FuelUsed != nil && *input.FuelUsed < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "fuel_used must be non-negative"})
		return
	}

	tripDate := models.DateOnly(time.Now())
	if input.TripDate != "" {
		parsed, err := parseDate(input.TripDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid trip_date format. Use YYYY-MM-DD"})
			return
		}
		tripDate = parsed
	}

	var startTime, endTime *time.Time
	if input.StartTime != "" {
		parsed, err := time.Parse(time.RFC3339, input.StartTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid start_time format. Use RFC 3339"})
			return
		}
		startTime = &parsed
	}
	if input.EndTime != "" {
		parsed, err := time.Parse(time.RFC3339, input.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid end_time format. Use RFC 3339"})
			return
		}
		endTime = &parsed
	}

	trip := models.Trip{
		VehicleID:   input.VehicleID,
		DriverID:    input.DriverID,
		Source:      input.Source,
		Destination: input.Destination,
		Distance:    input.Distance,
		FuelUsed:    input.FuelUsed,
		TripDate:    tripDate,
		StartTime:   startTime,
		EndTime:     endTime,
		Status:      input.Status,
		Notes:       input.Notes,
	}
	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&trip).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating trip: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Trip created successfully", "data": trip})
}

type updateTripInput struct {
	VehicleID   *uint    `json:"vehicle_id"`
	DriverID    *uint    `json:"driver_id"`
	Source      *string  `json:"source"`
	Destination *string  `json:"destination"`
	Distance    *float64 `json:"distance"`
	FuelUsed    *float64 `json:"fuel_used"`
	TripDate    *string  `json:"trip_date"`
	StartTime   *string  `json:"start_time"`
	EndTime     *string  `json:"end_time"`
	Status      *string  `json:"status"`
	Notes       *string  `json:"notes"`
}

// UpdateTrip applies a partial update. The generic update may set any status
// directly; the transition preconditions only bind the dedicated start and
// complete actions.
func UpdateTrip(c *gin.Context) {
	var trip models.Trip
	if err := config.DB.First(&trip, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Trip not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching trip: " + err.Error()})
		}
		return
	}

	var input updateTripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid update: " + err.Error()})
		return
	}

	if input.VehicleID != nil {
		count, err := countWhere(&models.Vehicle{}, "id = ?", *input.VehicleID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error checking vehicle: " + err.Error()})
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Vehicle not found"})
			return
		}
		trip.VehicleID = *input.VehicleID
	}
	if input.DriverID != nil {
		count, err := countWhere(&models.Driver{}, "id = ?", *input.DriverID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error checking driver: " + err.Error()})
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Driver not found"})
			return
		}
		trip.DriverID = *input.DriverID
	}
	if input.Status != nil {
		if !models.IsTripStatus(*input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status. Must be one of: " + strings.Join(models.TripStatuses, ", ")})
			return
		}
		trip.Status = *input.Status
	}
	if input.Distance != nil {
		if *input.Distance < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "distance must be non-negative"})
			return
		}
		trip.Distance = input.Distance
	}
	if input.FuelUsed != nil {
		if *input.FuelUsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "fuel_used must be non-negative"})
			return
		}
		trip.FuelUsed = input.FuelUsed
	}
	if input.TripDate != nil {
		parsed, err := parseDate(*input.TripDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid trip_date format. Use YYYY-MM-DD"})
			return
		}
		trip.TripDate = parsed
	}
	if input.StartTime != nil {
		if *input.StartTime == "" {
			trip.StartTime = nil
		} else {
			parsed, err := time.Parse(time.RFC3339, *input.StartTime)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid start_time format. Use RFC 3339"})
				return
			}
			trip.StartTime = &parsed
		}
	}
	if input.EndTime != nil {
		if *input.EndTime == "" {
			trip.EndTime = nil
		} else {
			parsed, err := time.Parse(time.RFC3339, *input.EndTime)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid end_time format. Use RFC 3339"})
				return
			}
			trip.EndTime = &parsed
		}
	}
	if input.Source != nil {
		trip.Source = *input.Source
	}
	if input.Destination != nil {
		trip.Destination = *input.Destination
	}
	if input.Notes != nil {
		trip.Notes = *input.Notes
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&trip).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating trip: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Trip updated successfully", "data": trip})
}

func DeleteTrip(c *gin.Context) {
	var trip models.Trip
	if err := config.DB.First(&trip, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Trip not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching trip: " + err.Error()})
		}
		return
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Unscoped().Delete(&trip).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting trip: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Trip deleted successfully"})
}

// StartTrip moves a planned trip to in_progress and stamps its start time.
func StartTrip(c *gin.Context) {
	var trip models.Trip
	if err := config.DB.First(&trip, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Trip not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching trip: " + err.Error()})
		}
		return
	}

	if !trip.CanStart() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Trip can only be started if it is in planned status"})
		return
	}

	now := time.Now().UTC()
	trip.Status = models.TripInProgress
	trip.StartTime = &now

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&trip).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error starting trip: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Trip started successfully", "data": trip})
}

type completeTripInput struct {
	Distance *float64 `json:"distance"`
	FuelUsed *float64 `json:"fuel_used"`
	Notes    *string  `json:"notes"`
}

// CompleteTrip moves a planned or in_progress trip to completed, stamps its
// end time and optionally records distance, fuel and notes.
func CompleteTrip(c *gin.Context) {
	var trip models.Trip
	if err := config.DB.First(&trip, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Trip not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching trip: " + err.Error()})
		}
		return
	}

	if !trip.CanComplete() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Trip can only be completed if it is in planned or in_progress status"})
		return
	}

	// Body is optional for this action.
	var input completeTripInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}
	}
	if input.Distance != nil && *input.Distance < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "distance must be non-negative"})
		return
	}
	if input.FuelUsed != nil && *input.FuelUsed < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "fuel_used must be non-negative"})
		return
	}

	now := time.Now().UTC()
	trip.Status = models.TripCompleted
	trip.EndTime = &now
	if input.Distance != nil {
		trip.Distance = input.Distance
	}
	if input.FuelUsed != nil {
		trip.FuelUsed = input.FuelUsed
	}
	if input.Notes != nil {
		trip.Notes = *input.Notes
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&trip).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error completing trip: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Trip completed successfully", "data": trip})
}
