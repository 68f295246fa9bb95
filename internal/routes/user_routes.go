package routes

import (
	"fleet_manager/internal/controllers"
	"fleet_manager/internal/middleware"
	"fleet_manager/internal/models"

	"github.com/gin-gonic/gin"
)

func UserRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	users.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		users.GET("", controllers.ListUsers)
		users.GET("/:id", controllers.GetUser)
		users.PUT("/:id", controllers.UpdateUser)
		users.DELETE("/:id", controllers.DeleteUser)
	}
}
