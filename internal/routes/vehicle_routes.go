package routes

import (
	"fleet_manager/internal/controllers"
	"fleet_manager/internal/middleware"
	"fleet_manager/internal/models"

	"github.com/gin-gonic/gin"
)

func VehicleRoutes(api *gin.RouterGroup) {
	vehicles := api.Group("/vehicles")
	{
		vehicles.GET("", middleware.RequireAuth(), controllers.ListVehicles)
		vehicles.GET("/:id", middleware.RequireAuth(), controllers.GetVehicle)
		vehicles.GET("/:id/stats", middleware.RequireAuth(), controllers.GetVehicleStats)
		vehicles.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleManager), controllers.CreateVehicle)
		vehicles.PUT("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleManager), controllers.UpdateVehicle)
		vehicles.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), controllers.DeleteVehicle)
	}
}
