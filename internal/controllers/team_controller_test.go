package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dechets_ko/internal/config"
	"dechets_ko/internal/models"
)

func TestCreateTeamLeaderBecomesMember(t *testing.T) {
	r := setupTest(t)
	staff := roleToken(t, "coord", "coordinator")
	mohamed := createUser(t, "mohamed", "collector")

	w := doJSON(t, r, http.MethodPost, "/teams", gin.H{
		"name":   "Equipe Alpha",
		"leader": mohamed.ID,
	}, staff)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := dataOf(t, w)
	assert.Equal(t, float64(mohamed.ID), data["leader"])
	assert.Equal(t, "mohamed", data["leader_name"])

	var reloaded models.User
	require.NoError(t, config.DB.First(&reloaded, mohamed.ID).Error)
	require.NotNil(t, reloaded.TeamID, "leader must be pulled into the team")
	assert.Equal(t, uint(data["id"].(float64)), *reloaded.TeamID)
}

func TestLeaderCannotLeadTwoTeams(t *testing.T) {
	r := setupTest(t)
	staff := roleToken(t, "coord", "coordinator")
	mohamed := createUser(t, "mohamed", "collector")

	w := doJSON(t, r, http.MethodPost, "/teams", gin.H{
		"name":   "Equipe Alpha",
		"leader": mohamed.ID,
	}, staff)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/teams", gin.H{
		"name":   "Equipe Beta",
		"leader": mohamed.ID,
	}, staff)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// The conflicting team must not survive the rolled-back transaction
	var count int64
	require.NoError(t, config.DB.Model(&models.Team{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateTeamCannotStealLeader(t *testing.T) {
	r := setupTest(t)
	staff := roleToken(t, "coord", "coordinator")
	mohamed := createUser(t, "mohamed", "collector")

	alpha := createTeam(t, "Equipe Alpha")
	require.NoError(t, config.DB.Model(&alpha).Update("leader_id", mohamed.ID).Error)
	beta := createTeam(t, "Equipe Beta")

	w := doJSON(t, r, http.MethodPatch, "/teams/"+itoa(beta.ID), gin.H{
		"leader": mohamed.ID,
	}, staff)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	var reloaded models.Team
	require.NoError(t, config.DB.First(&reloaded, beta.ID).Error)
	assert.Nil(t, reloaded.LeaderID, "beta keeps no leader after the conflict")
}

func TestUpdateTeamClearLeaderWithNull(t *testing.T) {
	r := setupTest(t)
	staff := roleToken(t, "coord", "coordinator")
	mohamed := createUser(t, "mohamed", "collector")

	w := doJSON(t, r, http.MethodPost, "/teams", gin.H{
		"name":   "Equipe Alpha",
		"leader": mohamed.ID,
	}, staff)
	require.Equal(t, http.StatusCreated, w.Code)
	teamID := uint(dataOf(t, w)["id"].(float64))

	w = doJSON(t, r, http.MethodPatch, "/teams/"+itoa(teamID), gin.H{
		"leader": nil,
	}, staff)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded models.Team
	require.NoError(t, config.DB.First(&reloaded, teamID).Error)
	assert.Nil(t, reloaded.LeaderID)

	// Clearing the leader does not evict them from the team
	var leader models.User
	require.NoError(t, config.DB.First(&leader, mohamed.ID).Error)
	require.NotNil(t, leader.TeamID)
	assert.Equal(t, teamID, *leader.TeamID)
}

func TestUnknownLeaderRejectedBeforeWrite(t *testing.T) {
	r := setupTest(t)
	staff := roleToken(t, "coord", "coordinator")

	w := doJSON(t, r, http.MethodPost, "/teams", gin.H{
		"name":   "Equipe Fantome",
		"leader": 9999,
	}, staff)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Leader user does not exist")

	// No row may be written for the rejected create
	var count int64
	require.NoError(t, config.DB.Model(&models.Team{}).Count(&count).Error)
	assert.Zero(t, count)

	team := createTeam(t, "Equipe Alpha")
	w = doJSON(t, r, http.MethodPatch, "/teams/"+itoa(team.ID), gin.H{
		"leader": 9999,
	}, staff)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Leader user does not exist")

	var reloaded models.Team
	require.NoError(t, config.DB.First(&reloaded, team.ID).Error)
	assert.Nil(t, reloaded.LeaderID)
}

func TestDeleteTeamDetachesMembersAndSchedules(t *testing.T) {
	r := setupTest(t)
	staff := roleToken(t, "coord", "coordinator")

	team := createTeam(t, "Equipe Alpha")
	member := createUser(t, "binta", "collector")
	require.NoError(t, config.DB.Model(&member).Update("team_id", team.ID).Error)

	driver := createUser(t, "driver1", "collector")
	truck := createTruck(t, "DK-100-AA", driver.ID)
	schedule := createSchedule(t, team.ID, truck.ID, "2025-01-16", models.ScheduleStatusPlanned)

	w := doJSON(t, r, http.MethodDelete, "/teams/"+itoa(team.ID), nil, staff)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloadedUser models.User
	require.NoError(t, config.DB.First(&reloadedUser, member.ID).Error)
	assert.Nil(t, reloadedUser.TeamID)

	var reloadedSchedule models.Schedule
	require.NoError(t, config.DB.First(&reloadedSchedule, schedule.ID).Error)
	assert.Nil(t, reloadedSchedule.TeamID, "schedule survives with the team nulled")

	w = doJSON(t, r, http.MethodGet, "/teams/"+itoa(team.ID), nil, staff)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTeamValidationAndFilters(t *testing.T) {
	r := setupTest(t)
	staff := roleToken(t, "coord", "coordinator")

	w := doJSON(t, r, http.MethodPost, "/teams", gin.H{
		"name":           "Equipe Tri",
		"specialization": "recycling",
	}, staff)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "active", dataOf(t, w)["status"], "status defaults to active")

	w = doJSON(t, r, http.MethodPost, "/teams", gin.H{
		"name":           "Equipe X",
		"specialization": "nuclear",
	}, staff)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	createTeam(t, "Equipe Generale")
	w = doJSON(t, r, http.MethodGet, "/teams?specialization=recycling", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, listOf(t, w), 1)
}

func TestTeamRoutesRequireAuth(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodGet, "/teams", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	citizen := roleToken(t, "awa", "citizen")
	w = doJSON(t, r, http.MethodPost, "/teams", gin.H{"name": "Equipe Z"}, citizen)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
