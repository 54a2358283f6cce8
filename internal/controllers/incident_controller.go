package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dechets_ko/internal/config"
	"dechets_ko/internal/models"
)

type incidentCreateInput struct {
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
	Location    *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Address   string   `json:"address"`
	} `json:"location" binding:"required"`
	ReportedBy     string `json:"reported_by"`
	Severity       string `json:"severity"`
	Impact         string `json:"impact"`
	EstimatedDelay int    `json:"estimated_delay"`
}

func CreateIncident(c *gin.Context) {
	var input incidentCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error(), "Error creating incident")
		return
	}
	if !models.IsValidIncidentType(input.Type) {
		respondError(c, http.StatusBadRequest, "Invalid type")
		return
	}
	if input.Location.Latitude == nil || input.Location.Longitude == nil {
		respondError(c, http.StatusBadRequest, "location requires latitude and longitude")
		return
	}
	if input.Severity == "" {
		input.Severity = "medium"
	}
	if !models.IsValidSeverity(input.Severity) {
		respondError(c, http.StatusBadRequest, "Invalid severity")
		return
	}
	if input.EstimatedDelay < 0 {
		respondError(c, http.StatusBadRequest, "Estimated delay must be positive")
		return
	}

	incident := models.Incident{
		Type:           input.Type,
		Description:    input.Description,
		Latitude:       *input.Location.Latitude,
		Longitude:      *input.Location.Longitude,
		Address:        input.Location.Address,
		ReportedBy:     input.ReportedBy,
		Severity:       input.Severity,
		Impact:         input.Impact,
		EstimatedDelay: input.EstimatedDelay,
		Status:         models.IncidentStatusActive,
	}
	if err := config.DB.Create(&incident).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Create incident failed: "+err.Error())
		return
	}
	respondData(c, http.StatusCreated, incidentResponse(incident), "Incident created successfully")
}

func ListIncidents(c *gin.Context) {
	query := config.DB.Order("created_at DESC, id DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if severity := c.Query("severity"); severity != "" {
		query = query.Where("severity = ?", severity)
	}
	if typ := c.Query("type"); typ != "" {
		query = query.Where("type = ?", typ)
	}

	var incidents []models.Incident
	if err := query.Find(&incidents).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error listing incidents: "+err.Error())
		return
	}
	out := make([]gin.H, 0, len(incidents))
	for _, in := range incidents {
		out = append(out, incidentResponse(in))
	}
	respondData(c, http.StatusOK, out, "")
}

func GetIncident(c *gin.Context) {
	var incident models.Incident
	if err := config.DB.First(&incident, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Incident not found")
		return
	}
	respondData(c, http.StatusOK, incidentResponse(incident), "")
}

func UpdateIncident(c *gin.Context) {
	var incident models.Incident
	if err := config.DB.First(&incident, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Incident not found")
		return
	}

	var input struct {
		Type           *string `json:"type"`
		Description    *string `json:"description"`
		Severity       *string `json:"severity"`
		Impact         *string `json:"impact"`
		EstimatedDelay *int    `json:"estimated_delay"`
		Status         *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error(), "Error updating incident")
		return
	}
	if input.Type != nil {
		if !models.IsValidIncidentType(*input.Type) {
			respondError(c, http.StatusBadRequest, "Invalid type")
			return
		}
		incident.Type = *input.Type
	}
	if input.Description != nil {
		incident.Description = *input.Description
	}
	if input.Severity != nil {
		if !models.IsValidSeverity(*input.Severity) {
			respondError(c, http.StatusBadRequest, "Invalid severity")
			return
		}
		incident.Severity = *input.Severity
	}
	if input.Impact != nil {
		incident.Impact = *input.Impact
	}
	if input.EstimatedDelay != nil {
		if *input.EstimatedDelay < 0 {
			respondError(c, http.StatusBadRequest, "Estimated delay must be positive")
			return
		}
		incident.EstimatedDelay = *input.EstimatedDelay
	}
	if input.Status != nil {
		if !models.IsValidIncidentStatus(*input.Status) {
			respondError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		incident.Status = *input.Status
	}

	if err := config.DB.Save(&incident).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Update failed: "+err.Error())
		return
	}
	respondData(c, http.StatusOK, incidentResponse(incident), "Incident updated successfully")
}

func DeleteIncident(c *gin.Context) {
	var incident models.Incident
	if err := config.DB.First(&incident, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Incident not found")
		return
	}
	if err := config.DB.Delete(&incident).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete incident: "+err.Error())
		return
	}
	respondMessage(c, http.StatusOK, "Incident deleted successfully")
}

func ResolveIncident(c *gin.Context) {
	var incident models.Incident
	if err := config.DB.First(&incident, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Incident not found")
		return
	}

	incident.Status = models.IncidentStatusResolved
	if err := config.DB.Save(&incident).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Update failed: "+err.Error())
		return
	}
	respondData(c, http.StatusOK, incidentResponse(incident), "Incident resolved")
}

func incidentResponse(in models.Incident) gin.H {
	return gin.H{
		"id":          in.ID,
		"type":        in.Type,
		"description": in.Description,
		"location": gin.H{
			"latitude":  in.Latitude,
			"longitude": in.Longitude,
			"address":   in.Address,
		},
		"reported_by":     in.ReportedBy,
		"severity":        in.Severity,
		"impact":          in.Impact,
		"estimated_delay": in.EstimatedDelay,
		"status":          in.Status,
		"created_at":      in.CreatedAt,
	}
}
