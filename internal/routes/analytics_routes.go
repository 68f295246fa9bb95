package routes

import (
	"fleet_manager/internal/controllers"
	"fleet_manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AnalyticsRoutes(api *gin.RouterGroup) {
	a := api.Group("/analytics")
	a.Use(middleware.RequireAuth())
	{
		a.GET("/dashboard", controllers.GetDashboardStats)
		a.GET("/fuel-consumption", controllers.GetFuelConsumptionTrend)
		a.GET("/trips-per-vehicle", controllers.GetTripsPerVehicle)
		a.GET("/trips-per-driver", controllers.GetTripsPerDriver)
		a.GET("/maintenance-costs", controllers.GetMaintenanceCostTrend)
		a.GET("/vehicle-utilization", controllers.GetVehicleUtilization)
		a.GET("/fuel-efficiency", controllers.GetFuelEfficiency)
	}
}
