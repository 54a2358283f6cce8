package models

import "gorm.io/gorm"

// Schedule assigns a team and a truck to an ordered list of collection
// points on a given date. Team and truck references are nulled when the
// referenced row is deleted so the planning history survives.
//
// Date is "2006-01-02" and the times are "15:04"; the wire format matches
// what the frontend sends, and string comparison on Date keeps the
// route-of-the-day query portable.
type Schedule struct {
	gorm.Model
	TeamID  *uint  `json:"team_id" gorm:"index"`
	Team    *Team  `gorm:"foreignKey:TeamID" json:"-"`
	TruckID *uint  `json:"truck_id" gorm:"index"`
	Truck   *Truck `gorm:"foreignKey:TruckID" json:"-"`

	Date             string `json:"date" gorm:"size:10;index"`
	StartTime        string `json:"start_time" gorm:"size:5"`
	EstimatedEndTime string `json:"estimated_end_time" gorm:"size:5"`
	Status           string `json:"status"`

	// Optional planned path drawn by the coordinator, stored as WKB;
	// the API speaks GeoJSON LineString.
	Geometry []byte `gorm:"type:bytea" json:"-"`

	RoutePoints []ScheduleRoute `gorm:"foreignKey:ScheduleID" json:"route,omitempty"`
}

const (
	ScheduleStatusPlanned    = "planned"
	ScheduleStatusInProgress = "in_progress"
	ScheduleStatusCompleted  = "completed"
	ScheduleStatusCancelled  = "cancelled"
)

func IsValidScheduleStatus(s string) bool {
	switch s {
	case ScheduleStatusPlanned, ScheduleStatusInProgress, ScheduleStatusCompleted, ScheduleStatusCancelled:
		return true
	}
	return false
}
