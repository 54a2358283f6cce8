package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dechets_ko/internal/config"
	"dechets_ko/internal/models"
)

// resetTargets enumerates every entity the reset operation may wipe,
// children before parents so foreign keys never dangle mid-transaction.
// Deliberately a hand-written list: discovering tables dynamically could
// wipe tables this API does not own.
var resetTargets = []struct {
	name  string
	model interface{}
}{
	{"schedule_routes", &models.ScheduleRoute{}},
	{"schedules", &models.Schedule{}},
	{"truck_locations", &models.TruckLocation{}},
	{"incidents", &models.Incident{}},
	{"reports", &models.Report{}},
	{"statistics", &models.Statistics{}},
	{"trucks", &models.Truck{}},
	{"teams", &models.Team{}},
	{"users", &models.User{}},
}

// ResetData hard-deletes all rows of every enumerated entity. Admin only;
// used to clear staging environments between demo runs.
func ResetData(c *gin.Context) {
	deleted := gin.H{}

	tx := config.DB.Begin()
	if tx.Error != nil {
		respondError(c, http.StatusInternalServerError, "Failed to start transaction")
		return
	}
	for _, target := range resetTargets {
		// teams reference users (leader) and users reference teams
		// (membership); break the cycle before rows disappear
		if target.name == "teams" {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
				Model(&models.User{}).Update("team_id", nil).Error; err != nil {
				tx.Rollback()
				respondError(c, http.StatusInternalServerError, "Reset failed: "+err.Error())
				return
			}
		}
		result := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(target.model)
		if result.Error != nil {
			tx.Rollback()
			respondError(c, http.StatusInternalServerError, "Reset failed: "+result.Error.Error())
			return
		}
		deleted[target.name] = result.RowsAffected
	}
	if err := tx.Commit().Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Transaction commit failed: "+err.Error())
		return
	}

	logrus.WithField("deleted", deleted).Warn("data reset executed")
	respondData(c, http.StatusOK, deleted, "All data deleted")
}
