package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dechets_ko/internal/config"
	"dechets_ko/internal/models"
)

func ListScheduleRoutes(c *gin.Context) {
	query := config.DB.Preload("CollectionPoint").Order("stop_order ASC, id ASC")
	if schedule := c.Query("schedule"); schedule != "" {
		query = query.Where("schedule_id = ?", schedule)
	}
	if completed := c.Query("completed"); completed != "" {
		query = query.Where("completed = ?", completed == "true")
	}

	var stops []models.ScheduleRoute
	if err := query.Find(&stops).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error listing schedule routes: "+err.Error())
		return
	}
	out := make([]gin.H, 0, len(stops))
	for _, stop := range stops {
		out = append(out, stopResponse(stop))
	}
	respondData(c, http.StatusOK, out, "")
}

func GetScheduleRoute(c *gin.Context) {
	var stop models.ScheduleRoute
	if err := config.DB.Preload("CollectionPoint").First(&stop, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Schedule route not found")
		return
	}
	respondData(c, http.StatusOK, stopResponse(stop), "")
}

func CreateScheduleRoute(c *gin.Context) {
	var input struct {
		ScheduleID        uint `json:"schedule_id" binding:"required"`
		CollectionPointID uint `json:"collection_point_id" binding:"required"`
		Order             int  `json:"order"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error(), "Error creating schedule route")
		return
	}
	var schedule models.Schedule
	if err := config.DB.First(&schedule, input.ScheduleID).Error; err != nil {
		respondError(c, http.StatusBadRequest, "Schedule does not exist")
		return
	}
	var point models.CollectionPoint
	if err := config.DB.First(&point, input.CollectionPointID).Error; err != nil {
		respondError(c, http.StatusBadRequest, "Collection point does not exist")
		return
	}

	stop := models.ScheduleRoute{
		ScheduleID:        schedule.ID,
		CollectionPointID: point.ID,
		Order:             input.Order,
	}
	if err := config.DB.Create(&stop).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Create schedule route failed: "+err.Error())
		return
	}
	stop.CollectionPoint = point
	respondData(c, http.StatusCreated, stopResponse(stop), "Schedule route created successfully")
}

func UpdateScheduleRoute(c *gin.Context) {
	var stop models.ScheduleRoute
	if err := config.DB.Preload("CollectionPoint").First(&stop, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Schedule route not found")
		return
	}

	var input struct {
		Order             *int  `json:"order"`
		CollectionPointID *uint `json:"collection_point_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error(), "Error updating schedule route")
		return
	}
	if input.Order != nil {
		stop.Order = *input.Order
	}
	if input.CollectionPointID != nil {
		var point models.CollectionPoint
		if err := config.DB.First(&point, *input.CollectionPointID).Error; err != nil {
			respondError(c, http.StatusBadRequest, "Collection point does not exist")
			return
		}
		stop.CollectionPointID = point.ID
		stop.CollectionPoint = point
	}

	if err := config.DB.Save(&stop).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Update failed: "+err.Error())
		return
	}
	respondData(c, http.StatusOK, stopResponse(stop), "Schedule route updated successfully")
}

func DeleteScheduleRoute(c *gin.Context) {
	var stop models.ScheduleRoute
	if err := config.DB.First(&stop, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Schedule route not found")
		return
	}
	if err := config.DB.Delete(&stop).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete schedule route: "+err.Error())
		return
	}
	respondMessage(c, http.StatusOK, "Schedule route deleted successfully")
}

// MarkStopCompleted marks the stop done and stamps completed_at. Calling it
// on an already-completed stop succeeds without touching the timestamp.
func MarkStopCompleted(c *gin.Context) {
	setStopCompleted(c, true)
}

// MarkStopIncomplete reverts the stop and clears completed_at.
func MarkStopIncomplete(c *gin.Context) {
	setStopCompleted(c, false)
}

func setStopCompleted(c *gin.Context, completed bool) {
	var stop models.ScheduleRoute
	if err := config.DB.Preload("CollectionPoint").First(&stop, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Schedule route not found")
		return
	}

	if stop.Completed != completed {
		updates := map[string]interface{}{"completed": completed}
		if completed {
			now := time.Now()
			stop.CompletedAt = &now
			updates["completed_at"] = &now
		} else {
			stop.CompletedAt = nil
			updates["completed_at"] = nil
		}
		stop.Completed = completed
		if err := config.DB.Model(&models.ScheduleRoute{}).Where("id = ?", stop.ID).
			Updates(updates).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Update failed: "+err.Error())
			return
		}
	}

	respondData(c, http.StatusOK, stopResponse(stop), "")
}
