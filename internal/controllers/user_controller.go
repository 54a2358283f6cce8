package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dechets_ko/internal/config"
	"dechets_ko/internal/models"
)

// ListUsers returns every account. Read-only and public, mirroring the
// roster the dashboard shows.
func ListUsers(c *gin.Context) {
	var users []models.User
	query := config.DB.Order("id")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Find(&users).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error listing users: "+err.Error())
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse(u))
	}
	respondData(c, http.StatusOK, out, "")
}

// GetUser returns a single account by id.
func GetUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	respondData(c, http.StatusOK, userResponse(user), "")
}

// DeleteUser removes an account. Teams led by the user and trucks driven by
// them keep their rows with the reference nulled.
func DeleteUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		respondError(c, http.StatusInternalServerError, "Failed to start transaction")
		return
	}
	if err := tx.Model(&models.Team{}).Where("leader_id = ?", user.ID).
		Update("leader_id", nil).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to detach led teams: "+err.Error())
		return
	}
	if err := tx.Model(&models.Truck{}).Where("driver_id = ?", user.ID).
		Update("driver_id", nil).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to detach driven trucks: "+err.Error())
		return
	}
	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to delete user: "+err.Error())
		return
	}
	if err := tx.Commit().Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Transaction commit failed: "+err.Error())
		return
	}
	respondMessage(c, http.StatusOK, "User deleted successfully")
}
