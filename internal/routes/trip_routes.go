package routes

import (
	"fleet_manager/internal/controllers"
	"fleet_manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func TripRoutes(api *gin.RouterGroup) {
	trips := api.Group("/trips")
	trips.Use(middleware.RequireAuth())
	{
		trips.GET("", controllers.ListTrips)
		trips.GET("/:id", controllers.GetTrip)
		trips.POST("", controllers.CreateTrip)
		trips.PUT("/:id", controllers.UpdateTrip)
		trips.DELETE("/:id", controllers.DeleteTrip)
		trips.POST("/:id/start", controllers.StartTrip)
		trips.POST("/:id/complete", controllers.CompleteTrip)
	}
}
