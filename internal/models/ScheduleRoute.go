package models

import (
	"time"

	"gorm.io/gorm"
)

// ScheduleRoute is one stop of a schedule: a collection point plus its
// 1-based position in the traversal. Stops are owned by their schedule and
// deleted with it; the collection point itself must keep existing while any
// stop references it.
type ScheduleRoute struct {
	gorm.Model
	ScheduleID        uint            `json:"schedule_id" gorm:"index"`
	CollectionPointID uint            `json:"collection_point_id" gorm:"index"`
	CollectionPoint   CollectionPoint `gorm:"foreignKey:CollectionPointID" json:"collection_point"`

	// "order" is reserved in SQL, hence the column name
	Order       int        `json:"order" gorm:"column:stop_order"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
}
