package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fleet_manager/internal/analytics"
	"fleet_manager/internal/config"
)

// windowParam reads an integer query parameter like days=N or months=N,
// falling back to def when absent or unparseable.
func windowParam(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func GetDashboardStats(c *gin.Context) {
	stats, err := analytics.Dashboard(config.DB, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching dashboard stats: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

func GetFuelConsumptionTrend(c *gin.Context) {
	days := windowParam(c, "days", 30)
	series, err := analytics.FuelConsumptionTrend(config.DB, days, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching fuel consumption trends: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": series})
}

func GetTripsPerVehicle(c *gin.Context) {
	series, err := analytics.TripsPerVehicle(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching trips per vehicle: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": series})
}

func GetTripsPerDriver(c *gin.Context) {
	series, err := analytics.TripsPerDriver(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching trips per driver: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": series})
}

func GetMaintenanceCostTrend(c *gin.Context) {
	months := windowParam(c, "months", 12)
	series, err := analytics.MaintenanceCostTrend(config.DB, months, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching maintenance cost trends: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": series})
}

func GetVehicleUtilization(c *gin.Context) {
	days := windowParam(c, "days", 30)
	data, err := analytics.VehicleUtilizationRates(config.DB, days, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching vehicle utilization: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func GetFuelEfficiency(c *gin.Context) {
	data, err := analytics.FuelEfficiencyRanking(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching fuel efficiency: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}
