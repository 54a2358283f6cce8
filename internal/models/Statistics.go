package models

import "gorm.io/gorm"

// Statistics is a periodic aggregate snapshot populated by an external
// reporting job; this API only reads it.
type Statistics struct {
	gorm.Model
	Period              string  `json:"period"`
	TotalCollections    int     `json:"total_collections"`
	TotalWaste          float64 `json:"total_waste"`           // tonnes
	RecyclingRate       float64 `json:"recycling_rate"`        // percent
	Efficiency          float64 `json:"efficiency"`            // percent
	ReportsResolved     int     `json:"reports_resolved"`
	AverageResponseTime float64 `json:"average_response_time"` // hours
}
