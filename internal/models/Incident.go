package models

import "gorm.io/gorm"

// Incident is an operational disruption reported by a crew (breakdown,
// traffic, weather...). EstimatedDelay is in minutes.
type Incident struct {
	gorm.Model
	Type           string  `json:"type"`
	Description    string  `json:"description"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Address        string  `json:"address"`
	ReportedBy     string  `json:"reported_by"`
	Severity       string  `json:"severity"`
	Impact         string  `json:"impact"`
	EstimatedDelay int     `json:"estimated_delay"`
	Status         string  `json:"status"`
}

const (
	IncidentStatusActive   = "active"
	IncidentStatusResolved = "resolved"
)

func IsValidIncidentType(t string) bool {
	switch t {
	case "traffic", "breakdown", "accident", "weather", "other":
		return true
	}
	return false
}

func IsValidSeverity(s string) bool {
	switch s {
	case "low", "medium", "high":
		return true
	}
	return false
}

func IsValidIncidentStatus(s string) bool {
	return s == IncidentStatusActive || s == IncidentStatusResolved
}
