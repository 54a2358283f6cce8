package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"dechets_ko/internal/models"
)

var reportExportHeader = []string{
	"ID", "Reference", "Type", "Description", "Address", "Latitude", "Longitude",
	"Reported by", "Reporter type", "Status", "Priority", "Assigned to", "Created at",
}

// ExportReports streams the (filtered) report list as an .xlsx download for
// municipality record-keeping.
func ExportReports(c *gin.Context) {
	var reports []models.Report
	if err := filteredReports(c).Find(&reports).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error listing reports: "+err.Error())
		return
	}

	f, err := createReportsWorkbook(reports)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate Excel file")
		return
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to write Excel file")
		return
	}

	filename := fmt.Sprintf("reports_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buffer.Bytes())
}

func createReportsWorkbook(reports []models.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Reports"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	for col, title := range reportExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, r := range reports {
		row := []interface{}{
			r.ID, r.Reference, r.Type, r.Description, r.Address, r.Latitude, r.Longitude,
			r.ReportedBy, r.ReporterType, r.Status, r.Priority, r.AssignedTo,
			r.CreatedAt.Format(time.RFC3339),
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	// Drop the default sheet so the workbook opens on the data
	f.DeleteSheet("Sheet1")
	return f, nil
}
