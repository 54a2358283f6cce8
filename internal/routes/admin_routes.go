package routes

import (
	"dechets_ko/internal/controllers"
	"dechets_ko/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	{
		admin.POST("/reset", middleware.Authorize(middleware.OpAdmin), controllers.ResetData)
	}
}
