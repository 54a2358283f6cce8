package models

import "gorm.io/gorm"

// Report is a citizen or field-crew signalement about a collection problem.
// Reference is a public tracking code handed back on submission so anonymous
// reporters can follow up without an account.
type Report struct {
	gorm.Model
	Reference     string  `json:"reference" gorm:"uniqueIndex;size:36"`
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Address       string  `json:"address"`
	ReportedBy    string  `json:"reported_by"`
	ReporterName  string  `json:"reporter_name"`
	ReporterPhone string  `json:"reporter_phone"`
	ReporterEmail string  `json:"reporter_email"`
	ReporterType  string  `json:"reporter_type"`
	Status        string  `json:"status"`
	Priority      string  `json:"priority"`
	AssignedTo    string  `json:"assigned_to"`
}

const (
	ReportStatusPending    = "pending"
	ReportStatusInProgress = "in_progress"
	ReportStatusResolved   = "resolved"
	ReportStatusClosed     = "closed"
)

func IsValidReportType(t string) bool {
	switch t {
	case "overflow", "damage", "illegal_dump", "missed_collection", "other":
		return true
	}
	return false
}

func IsValidReportStatus(s string) bool {
	switch s {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusResolved, ReportStatusClosed:
		return true
	}
	return false
}

func IsValidPriority(p string) bool {
	switch p {
	case "low", "medium", "high", "urgent":
		return true
	}
	return false
}

func IsValidReporterType(t string) bool {
	switch t {
	case "citizen", "collector", "agent":
		return true
	}
	return false
}
