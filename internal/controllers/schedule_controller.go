package controllers

import (
	"encoding/binary"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dechets_ko/internal/config"
	"dechets_ko/internal/models"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

type scheduleCreateInput struct {
	Team             uint   `json:"team" binding:"required"`
	Truck            uint   `json:"truck" binding:"required"`
	Date             string `json:"date" binding:"required"`
	StartTime        string `json:"start_time" binding:"required"`
	EstimatedEndTime string `json:"estimated_end_time" binding:"required"`
	Route            []uint `json:"route"`
	Geometry         string `json:"geometry"`
}

// CreateSchedule creates the schedule row plus one stop per referenced
// collection point. Unknown point ids are skipped on purpose: the frontend
// may submit stale ids and the planner still wants the rest of the route.
// Stop order is the 1-based position in the filtered sequence.
func CreateSchedule(c *gin.Context) {
	var input scheduleCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error(), "Error creating schedule")
		return
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	if !isValidClock(input.StartTime) || !isValidClock(input.EstimatedEndTime) {
		respondError(c, http.StatusBadRequest, "Invalid time, expected HH:MM")
		return
	}

	var team models.Team
	if err := config.DB.First(&team, input.Team).Error; err != nil {
		respondError(c, http.StatusBadRequest, "Team does not exist")
		return
	}
	var truck models.Truck
	if err := config.DB.First(&truck, input.Truck).Error; err != nil {
		respondError(c, http.StatusBadRequest, "Truck does not exist")
		return
	}

	wkbGeom, err := parseAndConvertGeometry(input.Geometry)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid geometry: "+err.Error())
		return
	}

	schedule := models.Schedule{
		TeamID:           &team.ID,
		TruckID:          &truck.ID,
		Date:             input.Date,
		StartTime:        input.StartTime,
		EstimatedEndTime: input.EstimatedEndTime,
		Status:           models.ScheduleStatusPlanned,
		Geometry:         wkbGeom,
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		respondError(c, http.StatusInternalServerError, "Failed to start transaction")
		return
	}
	if err := tx.Create(&schedule).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Create schedule failed: "+err.Error())
		return
	}

	order := 0
	for _, pointID := range input.Route {
		var point models.CollectionPoint
		if err := tx.First(&point, pointID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			tx.Rollback()
			respondError(c, http.StatusInternalServerError, "Create stop failed: "+err.Error())
			return
		}
		order++
		stop := models.ScheduleRoute{
			ScheduleID:        schedule.ID,
			CollectionPointID: point.ID,
			Order:             order,
		}
		if err := tx.Create(&stop).Error; err != nil {
			tx.Rollback()
			respondError(c, http.StatusInternalServerError, "Create stop failed: "+err.Error())
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Transaction commit failed: "+err.Error())
		return
	}

	respondData(c, http.StatusCreated, loadScheduleResponse(schedule.ID), "Schedule created successfully")
}

func ListSchedules(c *gin.Context) {
	query := scheduleQuery().Order("date DESC, start_time DESC, id DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if team := c.Query("team"); team != "" {
		query = query.Where("team_id = ?", team)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	var schedules []models.Schedule
	if err := query.Find(&schedules).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error listing schedules: "+err.Error())
		return
	}
	out := make([]gin.H, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, scheduleResponse(s))
	}
	respondData(c, http.StatusOK, out, "")
}

func GetSchedule(c *gin.Context) {
	var schedule models.Schedule
	if err := scheduleQuery().First(&schedule, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Schedule not found")
		return
	}
	respondData(c, http.StatusOK, scheduleResponse(schedule), "")
}

func UpdateSchedule(c *gin.Context) {
	var schedule models.Schedule
	if err := config.DB.First(&schedule, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Schedule not found")
		return
	}

	var input struct {
		Team             *uint   `json:"team"`
		Truck            *uint   `json:"truck"`
		Date             *string `json:"date"`
		StartTime        *string `json:"start_time"`
		EstimatedEndTime *string `json:"estimated_end_time"`
		Status           *string `json:"status"`
		Geometry         *string `json:"geometry"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error(), "Error updating schedule")
		return
	}
	if input.Team != nil {
		var team models.Team
		if err := config.DB.First(&team, *input.Team).Error; err != nil {
			respondError(c, http.StatusBadRequest, "Team does not exist")
			return
		}
		schedule.TeamID = input.Team
	}
	if input.Truck != nil {
		var truck models.Truck
		if err := config.DB.First(&truck, *input.Truck).Error; err != nil {
			respondError(c, http.StatusBadRequest, "Truck does not exist")
			return
		}
		schedule.TruckID = input.Truck
	}
	if input.Date != nil {
		if _, err := time.Parse("2006-01-02", *input.Date); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		schedule.Date = *input.Date
	}
	if input.StartTime != nil {
		if !isValidClock(*input.StartTime) {
			respondError(c, http.StatusBadRequest, "Invalid time, expected HH:MM")
			return
		}
		schedule.StartTime = *input.StartTime
	}
	if input.EstimatedEndTime != nil {
		if !isValidClock(*input.EstimatedEndTime) {
			respondError(c, http.StatusBadRequest, "Invalid time, expected HH:MM")
			return
		}
		schedule.EstimatedEndTime = *input.EstimatedEndTime
	}
	if input.Status != nil {
		if !models.IsValidScheduleStatus(*input.Status) {
			respondError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		schedule.Status = *input.Status
	}
	if input.Geometry != nil {
		if *input.Geometry == "" {
			schedule.Geometry = nil
		} else {
			wkbGeom, err := parseAndConvertGeometry(*input.Geometry)
			if err != nil {
				respondError(c, http.StatusBadRequest, "Invalid geometry: "+err.Error())
				return
			}
			schedule.Geometry = wkbGeom
		}
	}

	if err := config.DB.Save(&schedule).Error; err != nil {
		logrus.WithError(err).Error("UpdateSchedule: failed to save")
		respondError(c, http.StatusInternalServerError, "Update failed: "+err.Error())
		return
	}
	respondData(c, http.StatusOK, loadScheduleResponse(schedule.ID), "Schedule updated successfully")
}

// DeleteSchedule removes a schedule and its stops in one transaction.
func DeleteSchedule(c *gin.Context) {
	var schedule models.Schedule
	if err := config.DB.First(&schedule, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Schedule not found")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		respondError(c, http.StatusInternalServerError, "Failed to start transaction")
		return
	}
	if err := tx.Where("schedule_id = ?", schedule.ID).Delete(&models.ScheduleRoute{}).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to delete stops: "+err.Error())
		return
	}
	if err := tx.Delete(&schedule).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to delete schedule: "+err.Error())
		return
	}
	if err := tx.Commit().Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Transaction commit failed: "+err.Error())
		return
	}
	respondMessage(c, http.StatusOK, "Schedule deleted successfully")
}

// StartSchedule moves the schedule to in_progress. Transitions are
// deliberately unrestricted: dispatchers restart and re-complete schedules
// in the field, so any status can move to any other.
func StartSchedule(c *gin.Context) {
	setScheduleStatus(c, models.ScheduleStatusInProgress, "Schedule started")
}

// CompleteSchedule moves the schedule to completed.
func CompleteSchedule(c *gin.Context) {
	setScheduleStatus(c, models.ScheduleStatusCompleted, "Schedule completed")
}

func setScheduleStatus(c *gin.Context, status, message string) {
	var schedule models.Schedule
	if err := config.DB.First(&schedule, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Schedule not found")
		return
	}
	schedule.Status = status
	if err := config.DB.Save(&schedule).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Update failed: "+err.Error())
		return
	}
	respondData(c, http.StatusOK, loadScheduleResponse(schedule.ID), message)
}

func scheduleQuery() *gorm.DB {
	return config.DB.
		Preload("Team").
		Preload("Truck").
		Preload("RoutePoints", func(db *gorm.DB) *gorm.DB {
			return db.Order("stop_order ASC, id ASC")
		}).
		Preload("RoutePoints.CollectionPoint")
}

func loadScheduleResponse(id uint) gin.H {
	var schedule models.Schedule
	if err := scheduleQuery().First(&schedule, id).Error; err != nil {
		return gin.H{"id": id}
	}
	return scheduleResponse(schedule)
}

func scheduleResponse(s models.Schedule) gin.H {
	teamName := ""
	if s.Team != nil {
		teamName = s.Team.Name
	}
	// truck_id carries the plate number on the wire; the dashboard displays
	// it directly
	plate := ""
	if s.Truck != nil {
		plate = s.Truck.PlateNumber
	}
	route := make([]gin.H, 0, len(s.RoutePoints))
	for _, stop := range s.RoutePoints {
		route = append(route, stopResponse(stop))
	}
	geometry, err := convertWKBToGeoJSON(s.Geometry)
	if err != nil {
		logrus.WithError(err).Warn("scheduleResponse: bad stored geometry")
	}

	return gin.H{
		"id":                 s.ID,
		"team_id":            s.TeamID,
		"team_name":          teamName,
		"truck_id":           plate,
		"date":               s.Date,
		"start_time":         s.StartTime,
		"estimated_end_time": s.EstimatedEndTime,
		"status":             s.Status,
		"geometry":           geometry,
		"route":              route,
	}
}

func stopResponse(stop models.ScheduleRoute) gin.H {
	return gin.H{
		"id":               stop.ID,
		"schedule_id":      stop.ScheduleID,
		"collection_point": pointResponse(stop.CollectionPoint),
		"order":            stop.Order,
		"completed":        stop.Completed,
		"completed_at":     stop.CompletedAt,
	}
}

func isValidClock(v string) bool {
	_, err := time.Parse("15:04", v)
	return err == nil
}

// parseAndConvertGeometry parses a GeoJSON string into WKB bytes for storage.
func parseAndConvertGeometry(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// convertWKBToGeoJSON converts stored WKB bytes back into a GeoJSON string.
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
