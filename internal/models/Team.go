package models

import "gorm.io/gorm"

// Team represents a collection crew. A user may lead at most one team at a
// time; the leader is always implicitly a member (their TeamID is corrected
// on assignment). Both rules live in the team controller, backed by a partial
// unique index on leader_id.
type Team struct {
	gorm.Model
	Name           string `json:"name" binding:"required"`
	LeaderID       *uint  `json:"leader" gorm:"index"`
	Leader         *User  `gorm:"foreignKey:LeaderID" json:"-"`
	Specialization string `json:"specialization"`
	Status         string `json:"status"`

	Members []User `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

const (
	TeamStatusActive   = "active"
	TeamStatusInactive = "inactive"
)

func IsValidTeamStatus(s string) bool {
	return s == TeamStatusActive || s == TeamStatusInactive
}

func IsValidSpecialization(s string) bool {
	switch s {
	case "general", "recycling", "organic", "hazardous":
		return true
	}
	return false
}
