package routes

import (
	"fleet_manager/internal/controllers"
	"fleet_manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func MaintenanceRoutes(api *gin.RouterGroup) {
	maintenance := api.Group("/maintenance")
	maintenance.Use(middleware.RequireAuth())
	{
		maintenance.GET("", controllers.ListMaintenance)
		maintenance.GET("/stats", controllers.GetMaintenanceStats)
		maintenance.GET("/:id", controllers.GetMaintenance)
		maintenance.POST("", controllers.CreateMaintenance)
		maintenance.PUT("/:id", controllers.UpdateMaintenance)
		maintenance.DELETE("/:id", controllers.DeleteMaintenance)
	}
}
