package routes

import (
	"dechets_ko/internal/controllers"
	"dechets_ko/internal/middleware"

	"github.com/gin-gonic/gin"
)

func TeamRoutes(r *gin.Engine) {
	teams := r.Group("/teams")
	{
		teams.GET("", middleware.RequireAuth(), controllers.ListTeams)
		teams.GET("/:id", middleware.RequireAuth(), controllers.GetTeam)
		teams.POST("", middleware.Authorize(middleware.OpTeamWrite), controllers.CreateTeam)
		teams.PUT("/:id", middleware.Authorize(middleware.OpTeamWrite), controllers.UpdateTeam)
		teams.PATCH("/:id", middleware.Authorize(middleware.OpTeamWrite), controllers.UpdateTeam)
		teams.DELETE("/:id", middleware.Authorize(middleware.OpTeamWrite), controllers.DeleteTeam)
	}
}
