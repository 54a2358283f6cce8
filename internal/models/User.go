package models

import "gorm.io/gorm"

// User roles. Staff roles (coordinator, municipality, admin) get write access
// to planning resources; collectors get field actions; citizens only report.
const (
	RoleCitizen      = "citizen"
	RoleCollector    = "collector"
	RoleCoordinator  = "coordinator"
	RoleMunicipality = "municipality"
	RoleAdmin        = "admin"
	RolePRNAgent     = "prn_agent"
)

type User struct {
	gorm.Model
	Username  string `json:"username" gorm:"unique"`
	Email     string `json:"email" gorm:"unique"`
	Password  string `json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`

	// Membership; nulled when the team is deleted
	TeamID *uint `json:"team_id" gorm:"index"`
}

// Name returns the display name: full name when set, username otherwise.
func (u *User) Name() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func IsValidRole(role string) bool {
	switch role {
	case RoleCitizen, RoleCollector, RoleCoordinator, RoleMunicipality, RoleAdmin, RolePRNAgent:
		return true
	}
	return false
}
