package routes

import (
	"fleet_manager/internal/controllers"
	"fleet_manager/internal/middleware"
	"fleet_manager/internal/models"

	"github.com/gin-gonic/gin"
)

func DriverRoutes(api *gin.RouterGroup) {
	drivers := api.Group("/drivers")
	{
		drivers.GET("", middleware.RequireAuth(), controllers.ListDrivers)
		drivers.GET("/:id", middleware.RequireAuth(), controllers.GetDriver)
		drivers.GET("/:id/stats", middleware.RequireAuth(), controllers.GetDriverStats)
		drivers.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleManager), controllers.CreateDriver)
		drivers.PUT("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleManager), controllers.UpdateDriver)
		drivers.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), controllers.DeleteDriver)
	}
}
