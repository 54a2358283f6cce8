package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"dechets_ko/internal/config"
	"dechets_ko/internal/models"
)

type reportCreateInput struct {
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
	Location    *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Address   string   `json:"address"`
	} `json:"location" binding:"required"`
	ReportedBy      string `json:"reported_by"`
	ReporterContact *struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	} `json:"reporter_contact"`
	ReporterType string `json:"reporter_type"`
	Priority     string `json:"priority"`
}

// CreateReport is the public submission endpoint. The caller gets a tracking
// reference back so anonymous reporters can follow up.
func CreateReport(c *gin.Context) {
	var input reportCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error(), "Error creating report")
		return
	}
	if !models.IsValidReportType(input.Type) {
		respondError(c, http.StatusBadRequest, "Invalid type")
		return
	}
	if input.Location.Latitude == nil || input.Location.Longitude == nil {
		respondError(c, http.StatusBadRequest, "location requires latitude and longitude")
		return
	}
	if input.ReporterType == "" {
		input.ReporterType = "citizen"
	}
	if !models.IsValidReporterType(input.ReporterType) {
		respondError(c, http.StatusBadRequest, "Invalid reporter_type")
		return
	}
	if input.Priority == "" {
		input.Priority = "medium"
	}
	if !models.IsValidPriority(input.Priority) {
		respondError(c, http.StatusBadRequest, "Invalid priority")
		return
	}

	report := models.Report{
		Reference:    uuid.NewString(),
		Type:         input.Type,
		Description:  input.Description,
		Latitude:     *input.Location.Latitude,
		Longitude:    *input.Location.Longitude,
		Address:      input.Location.Address,
		ReportedBy:   input.ReportedBy,
		ReporterType: input.ReporterType,
		Status:       models.ReportStatusPending,
		Priority:     input.Priority,
	}
	if input.ReporterContact != nil {
		report.ReporterName = input.ReporterContact.Name
		report.ReporterPhone = input.ReporterContact.Phone
		report.ReporterEmail = input.ReporterContact.Email
	}

	if err := config.DB.Create(&report).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Create report failed: "+err.Error())
		return
	}
	respondData(c, http.StatusCreated, reportResponse(report), "Report created successfully")
}

func ListReports(c *gin.Context) {
	var reports []models.Report
	if err := filteredReports(c).Find(&reports).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error listing reports: "+err.Error())
		return
	}
	out := make([]gin.H, 0, len(reports))
	for _, r := range reports {
		out = append(out, reportResponse(r))
	}
	respondData(c, http.StatusOK, out, "")
}

func GetReport(c *gin.Context) {
	var report models.Report
	if err := config.DB.First(&report, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Report not found")
		return
	}
	respondData(c, http.StatusOK, reportResponse(report), "")
}

func UpdateReport(c *gin.Context) {
	var report models.Report
	if err := config.DB.First(&report, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Report not found")
		return
	}

	var input struct {
		Type        *string `json:"type"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		Priority    *string `json:"priority"`
		AssignedTo  *string `json:"assigned_to"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error(), "Error updating report")
		return
	}
	if input.Type != nil {
		if !models.IsValidReportType(*input.Type) {
			respondError(c, http.StatusBadRequest, "Invalid type")
			return
		}
		report.Type = *input.Type
	}
	if input.Description != nil {
		report.Description = *input.Description
	}
	if input.Status != nil {
		if !models.IsValidReportStatus(*input.Status) {
			respondError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		report.Status = *input.Status
	}
	if input.Priority != nil {
		if !models.IsValidPriority(*input.Priority) {
			respondError(c, http.StatusBadRequest, "Invalid priority")
			return
		}
		report.Priority = *input.Priority
	}
	if input.AssignedTo != nil {
		report.AssignedTo = *input.AssignedTo
	}

	if err := config.DB.Save(&report).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Update failed: "+err.Error())
		return
	}
	respondData(c, http.StatusOK, reportResponse(report), "Report updated successfully")
}

func DeleteReport(c *gin.Context) {
	var report models.Report
	if err := config.DB.First(&report, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Report not found")
		return
	}
	if err := config.DB.Delete(&report).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete report: "+err.Error())
		return
	}
	respondMessage(c, http.StatusOK, "Report deleted successfully")
}

// AssignReport hands the report to a team or agent and moves it to
// in_progress. assigned_to must be non-empty; nothing else is validated.
func AssignReport(c *gin.Context) {
	var report models.Report
	if err := config.DB.First(&report, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Report not found")
		return
	}

	var body struct {
		AssignedTo string `json:"assigned_to"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.AssignedTo == "" {
		respondError(c, http.StatusBadRequest, "Team not specified")
		return
	}

	report.AssignedTo = body.AssignedTo
	report.Status = models.ReportStatusInProgress
	if err := config.DB.Save(&report).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Update failed: "+err.Error())
		return
	}
	respondData(c, http.StatusOK, reportResponse(report), "Report assigned successfully")
}

func ResolveReport(c *gin.Context) {
	var report models.Report
	if err := config.DB.First(&report, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Report not found")
		return
	}

	report.Status = models.ReportStatusResolved
	if err := config.DB.Save(&report).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Update failed: "+err.Error())
		return
	}
	respondData(c, http.StatusOK, reportResponse(report), "Report marked as resolved")
}

// filteredReports applies the list filters the dashboard uses.
func filteredReports(c *gin.Context) *gorm.DB {
	query := config.DB.Order("created_at DESC, id DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if typ := c.Query("type"); typ != "" {
		query = query.Where("type = ?", typ)
	}
	if rt := c.Query("reporter_type"); rt != "" {
		query = query.Where("reporter_type = ?", rt)
	}
	return query
}

func reportResponse(r models.Report) gin.H {
	var contact interface{}
	if r.ReporterName != "" || r.ReporterPhone != "" || r.ReporterEmail != "" {
		contact = gin.H{
			"name":  r.ReporterName,
			"phone": r.ReporterPhone,
			"email": r.ReporterEmail,
		}
	}
	return gin.H{
		"id":          r.ID,
		"reference":   r.Reference,
		"type":        r.Type,
		"description": r.Description,
		"location": gin.H{
			"latitude":  r.Latitude,
			"longitude": r.Longitude,
			"address":   r.Address,
		},
		"reported_by":      r.ReportedBy,
		"reporter_contact": contact,
		"reporter_type":    r.ReporterType,
		"status":           r.Status,
		"priority":         r.Priority,
		"assigned_to":      r.AssignedTo,
		"created_at":       r.CreatedAt,
	}
}
