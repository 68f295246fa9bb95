package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_manager/internal/config"
	"fleet_manager/internal/models"
)

// ListMaintenance returns maintenance records newest-first, with optional
// filters.
func ListMaintenance(c *gin.Context) {
	query := config.DB.Model(&models.Maintenance{})
	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}
	if maintenanceType := c.Query("maintenance_type"); maintenanceType != "" {
		query = query.Where("maintenance_type = ?", maintenanceType)
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
		query = query.Where("date >= ?", from)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		to, err := parseDate(endDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid end_date format. Use YYYY-MM-DD"})
			return
		}
		query = query.Where("date <= ?", to)
	}

	var records []models.Maintenance
	if err := query.Preload("Vehicle").Order("date DESC").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching maintenance records: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": records, "count": len(records)})
}

func GetMaintenance(c *gin.Context) {
	var record models.Maintenance
	if err := config.DB.Preload("Vehicle").First(&record, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Maintenance record not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching maintenance record: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

type createMaintenanceInput struct {
	VehicleID       uint     `json:"vehicle_id" binding:"required"`
	Date            string   `json:"date"`
	Cost            *float64 `json:"cost"`
	Description     string   `json:"description" binding:"required"`
	MaintenanceType string   `json:"maintenance_type" binding:"required"`
	ServiceProvider string   `json:"service_provider"`
	Mileage         *int     `json:"mileage"`
	NextServiceDate string   `json:"next_service_date"`
	Status          string   `json:"status"`
}

func CreateMaintenance(c *gin.Context) {
	var input createMaintenanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid maintenance input: " + err.Error()})
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

	if !models.IsMaintenanceType(input.MaintenanceType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid maintenance_type. Must be one of: " + strings.Join(models.MaintenanceTypes, ", ")})
		return
	}
	if input.Status == "" {
		input.Status = "completed"
	}
	if !models.IsMaintenanceStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status. Must be one of: " + strings.Join(models.MaintenanceStatuses, ", ")})
		return
	}

	cost := 0.0
	if input.Cost != nil {
		if *input.Cost < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "cost must be non-negative"})
			return
		}
		cost = *input.Cost
	}

	date := models.DateOnly(time.Now())
	if input.Date != "" {
		parsed, err := parseDate(input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format. Use YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	var nextService *time.Time
	if input.NextServiceDate != "" {
		parsed, err := parseDate(input.NextServiceDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid next_service_date format. Use YYYY-MM-DD"})
			return
		}
		nextService = &parsed
	}

	record := models.Maintenance{
		VehicleID:       input.VehicleID,
		Date:            date,
		Cost:            cost,
		Description:     input.Description,
		MaintenanceType: input.MaintenanceType,
		ServiceProvider: input.ServiceProvider,
		Mileage:         input.Mileage,
		NextServiceDate: nextService,
		Status:          input.Status,
	}
	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&record).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating maintenance record: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Maintenance record created successfully", "data": record})
}

type updateMaintenanceInput struct {
	VehicleID       *uint    `json:"vehicle_id"`
	Date            *string  `json:"date"`
	Cost            *float64 `json:"cost"`
	Description     *string  `json:"description"`
	MaintenanceType *string  `json:"maintenance_type"`
	ServiceProvider *string  `json:"service_provider"`
	Mileage         *int     `json:"mileage"`
	NextServiceDate *string  `json:"next_service_date"`
	Status          *string  `json:"status"`
}

func UpdateMaintenance(c *gin.Context) {
	var record models.Maintenance
	if err := config.DB.First(&record, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Maintenance record not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching maintenance record: " + err.Error()})
		}
		return
	}

	var input updateMaintenanceInput
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
		record.VehicleID = *input.VehicleID
	}
	if input.MaintenanceType != nil {
		if !models.IsMaintenanceType(*input.MaintenanceType) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid maintenance_type. Must be one of: " + strings.Join(models.MaintenanceTypes, ", ")})
			return
		}
		record.MaintenanceType = *input.MaintenanceType
	}
	if input.Status != nil {
		if !models.IsMaintenanceStatus(*input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status. Must be one of: " + strings.Join(models.MaintenanceStatuses, ", ")})
			return
		}
		record.Status = *input.Status
	}
	if input.Cost != nil {
		if *input.Cost < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "cost must be non-negative"})
			return
		}
		record.Cost = *input.Cost
	}
	if input.Date != nil {
		parsed, err := parseDate(*input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format. Use YYYY-MM-DD"})
			return
		}
		record.Date = parsed
	}
	if input.NextServiceDate != nil {
		if *input.NextServiceDate == "" {
			record.NextServiceDate = nil
		} else {
			parsed, err := parseDate(*input.NextServiceDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid next_service_date format. Use YYYY-MM-DD"})
				return
			}
			record.NextServiceDate = &parsed
		}
	}
	if input.Description != nil {
		record.Description = *input.Description
	}
	if input.ServiceProvider != nil {
		record.ServiceProvider = *input.ServiceProvider
	}
	if input.Mileage != nil {
		record.Mileage = input.Mileage
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&record).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating maintenance record: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Maintenance record updated successfully", "data": record})
}

func DeleteMaintenance(c *gin.Context) {
	var record models.Maintenance
	if err := config.DB.First(&record, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Maintenance record not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching maintenance record: " + err.Error()})
		}
		return
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Unscoped().Delete(&record).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting maintenance record: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Maintenance record deleted successfully"})
}

type maintenanceGroupStat struct {
	Count int64   `json:"count"`
	Cost  float64 `json:"cost"`
}

// GetMaintenanceStats summarizes maintenance spend across the fleet, or for a
// single vehicle when vehicle_id is given. Breakdowns are keyed by maintenance
// type and by YYYY-MM month.
func GetMaintenanceStats(c *gin.Context) {
	var vehicleID int
	if raw := c.Query("vehicle_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid vehicle_id"})
			return
		}
		vehicleID = id
	}

	// Fresh query per aggregate so conditions do not accumulate.
	scoped := func() *gorm.DB {
		q := config.DB.Model(&models.Maintenance{})
		if vehicleID != 0 {
			q = q.Where("vehicle_id = ?", vehicleID)
		}
		return q
	}

	var totals struct {
		TotalRecords int64
		TotalCost    float64
	}
	if err := scoped().
		Select("COUNT(*) AS total_records, COALESCE(SUM(cost), 0) AS total_cost").
		Scan(&totals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching maintenance stats: " + err.Error()})
		return
	}

	var typeRows []struct {
		MaintenanceType string
		Count           int64
		Cost            float64
	}
	if err := scoped().
		Select("maintenance_type, COUNT(*) AS count, COALESCE(SUM(cost), 0) AS cost").
		Group("maintenance_type").
		Scan(&typeRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching maintenance stats: " + err.Error()})
		return
	}
	byType := make(map[string]maintenanceGroupStat, len(typeRows))
	for _, row := range typeRows {
		byType[row.MaintenanceType] = maintenanceGroupStat{Count: row.Count, Cost: row.Cost}
	}

	// Month bucketing happens here rather than in SQL so it works the same
	// across drivers.
	var dateRows []struct {
		Date time.Time
		Cost float64
	}
	if err := scoped().Select("date, cost").Scan(&dateRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching maintenance stats: " + err.Error()})
		return
	}
	byMonth := make(map[string]maintenanceGroupStat)
	for _, row := range dateRows {
		key := row.Date.Format("2006-01")
		stat := byMonth[key]
		stat.Count++
		stat.Cost += row.Cost
		byMonth[key] = stat
	}

	averageCost := 0.0
	if totals.TotalRecords > 0 {
		averageCost = totals.TotalCost / float64(totals.TotalRecords)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"total_cost":    totals.TotalCost,
		"total_records": totals.TotalRecords,
		"average_cost":  averageCost,
		"by_type":       byType,
		"by_month":      byMonth,
	}})
}
