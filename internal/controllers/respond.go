package controllers

import "github.com/gin-gonic/gin"

// Every response follows the frontend contract: {success, data|errors, message}.

func respondData(c *gin.Context, status int, data interface{}, message string) {
	body := gin.H{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func respondErrors(c *gin.Context, status int, errs interface{}, message string) {
	c.JSON(status, gin.H{"success": false, "errors": errs, "message": message})
}
