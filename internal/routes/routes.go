package routes

import (
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(ginlogger.SetLogger())
	r.Use(gin.Recovery())

	AuthRoutes(r)
	UserRoutes(r)
	TeamRoutes(r)
	CollectionPointRoutes(r)
	TruckRoutes(r)
	ReportRoutes(r)
	ScheduleRoutes(r)
	ScheduleRouteRoutes(r)
	IncidentRoutes(r)
	StatisticsRoutes(r)
	AdminRoutes(r)

	return r
}
