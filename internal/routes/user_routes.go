package routes

import (
	"dechets_ko/internal/controllers"
	"dechets_ko/internal/middleware"

	"github.com/gin-gonic/gin"
)

func UserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	{
		users.GET("", controllers.ListUsers)
		users.GET("/:id", controllers.GetUser)
		users.DELETE("/:id", middleware.Authorize(middleware.OpAdmin), controllers.DeleteUser)
	}
}
