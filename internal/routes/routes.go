package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	// Recovery and request logging apply to every route, so they must be
	// attached before the groups register.
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	api := r.Group("/api")

	AuthRoutes(api)
	UserRoutes(api)
	VehicleRoutes(api)
	DriverRoutes(api)
	TripRoutes(api)
	MaintenanceRoutes(api)
	AnalyticsRoutes(api)

	return r
}
