package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dechets_ko/internal/config"
	"dechets_ko/internal/models"
)

func TestResetDataIsAdminOnly(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/admin/reset", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	staff := roleToken(t, "coord", "coordinator")
	w = doJSON(t, r, http.MethodPost, "/admin/reset", nil, staff)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestResetDataWipesEverything(t *testing.T) {
	r := setupTest(t)
	admin := roleToken(t, "root", "admin")

	team := createTeam(t, "Equipe Alpha")
	member := createUser(t, "binta", "collector")
	require.NoError(t, config.DB.Model(&member).Update("team_id", team.ID).Error)
	require.NoError(t, config.DB.Model(&team).Update("leader_id", member.ID).Error)

	driver := createUser(t, "driver1", "collector")
	truck := createTruck(t, "DK-300-CC", driver.ID)
	point := createPoint(t, "P1", models.PointStatusFull)
	createSchedule(t, team.ID, truck.ID, "2025-01-16", models.ScheduleStatusPlanned, point.ID)
	require.NoError(t, config.DB.Create(&models.Report{Reference: "ref-1", Type: "overflow"}).Error)
	require.NoError(t, config.DB.Create(&models.Incident{Type: "traffic"}).Error)

	w := doJSON(t, r, http.MethodPost, "/admin/reset", nil, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	deleted := dataOf(t, w)
	assert.Equal(t, float64(1), deleted["teams"])
	assert.Equal(t, float64(1), deleted["schedule_routes"])
	assert.Equal(t, float64(3), deleted["users"], "admin, member and driver all go")

	for name, model := range map[string]interface{}{
		"users":           &models.User{},
		"teams":           &models.Team{},
		"trucks":          &models.Truck{},
		"schedules":       &models.Schedule{},
		"schedule_routes": &models.ScheduleRoute{},
		"reports":         &models.Report{},
		"incidents":       &models.Incident{},
	} {
		var count int64
		require.NoError(t, config.DB.Unscoped().Model(model).Count(&count).Error)
		assert.Zero(t, count, "table %s should be empty", name)
	}
}
