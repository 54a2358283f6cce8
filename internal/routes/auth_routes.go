package routes

import (
	"dechets_ko/internal/controllers"
	"dechets_ko/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.RegisterUser)
		auth.POST("/login", controllers.LoginUser)
		auth.POST("/logout", middleware.RequireAuth(), controllers.LogoutUser)
		auth.GET("/profile", middleware.RequireAuth(), controllers.Profile)
	}
}
