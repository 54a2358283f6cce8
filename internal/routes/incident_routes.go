package routes

import (
	"dechets_ko/internal/controllers"
	"dechets_ko/internal/middleware"

	"github.com/gin-gonic/gin"
)

func IncidentRoutes(r *gin.Engine) {
	incidents := r.Group("/incidents")
	{
		incidents.GET("", middleware.RequireAuth(), controllers.ListIncidents)
		incidents.GET("/:id", middleware.RequireAuth(), controllers.GetIncident)
		incidents.POST("", middleware.Authorize(middleware.OpIncidentWrite), controllers.CreateIncident)
		incidents.PUT("/:id", middleware.Authorize(middleware.OpIncidentWrite), controllers.UpdateIncident)
		incidents.PATCH("/:id", middleware.Authorize(middleware.OpIncidentWrite), controllers.UpdateIncident)
		incidents.DELETE("/:id", middleware.Authorize(middleware.OpIncidentWrite), controllers.DeleteIncident)
		incidents.PATCH("/:id/resolve", middleware.Authorize(middleware.OpIncidentWrite), controllers.ResolveIncident)
	}
}
