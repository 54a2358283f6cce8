package models

import "gorm.io/gorm"

type Truck struct {
	gorm.Model
	PlateNumber      string  `json:"plate_number" gorm:"unique" binding:"required"`
	DriverID         *uint   `json:"driver_id" gorm:"index"`
	Driver           *User   `gorm:"foreignKey:DriverID" json:"-"`
	CurrentLatitude  float64 `json:"current_latitude"`
	CurrentLongitude float64 `json:"current_longitude"`
	Status           string  `json:"status"`

	// Minutes to the next collection point; nil when unknown
	EstimatedTime *int `json:"estimated_time"`
}

const (
	TruckStatusAvailable   = "available"
	TruckStatusCollecting  = "collecting"
	TruckStatusMaintenance = "maintenance"
	TruckStatusOffline     = "offline"
	TruckStatusUnavailable = "unavailable"
)

func IsValidTruckStatus(s string) bool {
	switch s {
	case TruckStatusAvailable, TruckStatusCollecting, TruckStatusMaintenance,
		TruckStatusOffline, TruckStatusUnavailable:
		return true
	}
	return false
}
