package models

import (
	"time"

	"gorm.io/gorm"
)

// TruckLocation is an append-only position sample, written each time a truck
// reports its location. DistanceFromLast is the great-circle distance in
// meters to the previous sample for the same truck.
type TruckLocation struct {
	gorm.Model
	TruckID          uint      `json:"truck_id" gorm:"index"`
	Truck            Truck     `gorm:"foreignKey:TruckID" json:"-"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	DistanceFromLast float64   `json:"distance_from_last"`
	RecordedAt       time.Time `json:"recorded_at"`
}
