package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dechets_ko/internal/config"
	"dechets_ko/internal/models"
)

var (
	errLeaderConflict = errors.New("user already leads another team")
	errLeaderNotFound = errors.New("leader user does not exist")
)

// ensureLeaderExists validates the leader reference before any row is
// written, so a bad id surfaces as a 400 instead of a foreign-key failure
// inside the transaction.
func ensureLeaderExists(db *gorm.DB, id uint) error {
	var leader models.User
	if err := db.First(&leader, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errLeaderNotFound
		}
		return err
	}
	return nil
}

// applyLeaderRule enforces the team-leadership invariants inside the caller's
// transaction: a user leads at most one team, and a leader is always a member
// of the team they lead. Must run on every create and update that can touch
// the leader, not just a dedicated assign endpoint.
func applyLeaderRule(tx *gorm.DB, team *models.Team) error {
	if team.LeaderID == nil {
		return nil
	}

	var leader models.User
	if err := tx.First(&leader, *team.LeaderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errLeaderNotFound
		}
		return err
	}

	var others int64
	err := tx.Model(&models.Team{}).
		Where("leader_id = ? AND id <> ?", *team.LeaderID, team.ID).
		Count(&others).Error
	if err != nil {
		return err
	}
	if others > 0 {
		return errLeaderConflict
	}

	if leader.TeamID == nil || *leader.TeamID != team.ID {
		if err := tx.Model(&leader).Update("team_id", team.ID).Error; err != nil {
			return err
		}
	}
	return nil
}

type createTeamInput struct {
	Name           string `json:"name" binding:"required"`
	Leader         *uint  `json:"leader"`
	Specialization string `json:"specialization"`
	Status         string `json:"status"`
}

func CreateTeam(c *gin.Context) {
	var input createTeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error(), "Error creating team")
		return
	}
	if input.Specialization == "" {
		input.Specialization = "general"
	}
	if input.Status == "" {
		input.Status = models.TeamStatusActive
	}
	if !models.IsValidSpecialization(input.Specialization) {
		respondError(c, http.StatusBadRequest, "Invalid specialization")
		return
	}
	if !models.IsValidTeamStatus(input.Status) {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	team := models.Team{
		Name:           input.Name,
		LeaderID:       input.Leader,
		Specialization: input.Specialization,
		Status:         input.Status,
	}
	if team.LeaderID != nil {
		if err := ensureLeaderExists(config.DB, *team.LeaderID); err != nil {
			renderLeaderRuleError(c, err)
			return
		}
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		respondError(c, http.StatusInternalServerError, "Failed to start transaction")
		return
	}
	if err := tx.Create(&team).Error; err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			respondError(c, http.StatusConflict, "This user is already leader of another team")
			return
		}
		respondError(c, http.StatusInternalServerError, "Create team failed: "+err.Error())
		return
	}
	if err := applyLeaderRule(tx, &team); err != nil {
		tx.Rollback()
		renderLeaderRuleError(c, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, http.StatusConflict, "This user is already leader of another team")
			return
		}
		respondError(c, http.StatusInternalServerError, "Transaction commit failed: "+err.Error())
		return
	}

	respondData(c, http.StatusCreated, loadTeamResponse(team.ID), "Team created successfully")
}

// updateTeamInput uses raw JSON for the leader so "leader": null (clear the
// leader) can be told apart from the field being absent.
type updateTeamInput struct {
	Name           *string         `json:"name"`
	Leader         json.RawMessage `json:"leader"`
	Specialization *string         `json:"specialization"`
	Status         *string         `json:"status"`
}

func UpdateTeam(c *gin.Context) {
	var team models.Team
	if err := config.DB.First(&team, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Team not found")
		return
	}

	var input updateTeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error(), "Error updating team")
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		team.Name = *input.Name
		updates["name"] = *input.Name
	}
	if input.Specialization != nil {
		if !models.IsValidSpecialization(*input.Specialization) {
			respondError(c, http.StatusBadRequest, "Invalid specialization")
			return
		}
		team.Specialization = *input.Specialization
		updates["specialization"] = *input.Specialization
	}
	if input.Status != nil {
		if !models.IsValidTeamStatus(*input.Status) {
			respondError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		team.Status = *input.Status
		updates["status"] = *input.Status
	}
	if len(input.Leader) > 0 {
		leaderID, err := parseLeaderField(input.Leader)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid leader reference")
			return
		}
		if leaderID != nil {
			if err := ensureLeaderExists(config.DB, *leaderID); err != nil {
				renderLeaderRuleError(c, err)
				return
			}
		}
		team.LeaderID = leaderID
		updates["leader_id"] = leaderID
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		respondError(c, http.StatusInternalServerError, "Failed to start transaction")
		return
	}
	if len(updates) > 0 {
		if err := tx.Model(&models.Team{}).Where("id = ?", team.ID).Updates(updates).Error; err != nil {
			tx.Rollback()
			if isUniqueViolation(err) {
				respondError(c, http.StatusConflict, "This user is already leader of another team")
				return
			}
			respondError(c, http.StatusInternalServerError, "Update failed: "+err.Error())
			return
		}
	}
	if err := applyLeaderRule(tx, &team); err != nil {
		tx.Rollback()
		renderLeaderRuleError(c, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, http.StatusConflict, "This user is already leader of another team")
			return
		}
		respondError(c, http.StatusInternalServerError, "Transaction commit failed: "+err.Error())
		return
	}

	respondData(c, http.StatusOK, loadTeamResponse(team.ID), "Team updated successfully")
}

func ListTeams(c *gin.Context) {
	query := config.DB.Preload("Members").Preload("Leader").Order("id")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if spec := c.Query("specialization"); spec != "" {
		query = query.Where("specialization = ?", spec)
	}

	var teams []models.Team
	if err := query.Find(&teams).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error listing teams: "+err.Error())
		return
	}

	out := make([]gin.H, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamResponse(t))
	}
	respondData(c, http.StatusOK, out, "")
}

func GetTeam(c *gin.Context) {
	var team models.Team
	if err := config.DB.Preload("Members").Preload("Leader").First(&team, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Team not found")
		return
	}
	respondData(c, http.StatusOK, teamResponse(team), "")
}

// DeleteTeam removes a team. Members and schedules keep their rows with the
// team reference nulled so history survives.
func DeleteTeam(c *gin.Context) {
	var team models.Team
	if err := config.DB.First(&team, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Team not found")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		respondError(c, http.StatusInternalServerError, "Failed to start transaction")
		return
	}
	if err := tx.Model(&models.User{}).Where("team_id = ?", team.ID).
		Update("team_id", nil).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to detach members: "+err.Error())
		return
	}
	if err := tx.Model(&models.Schedule{}).Where("team_id = ?", team.ID).
		Update("team_id", nil).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to detach schedules: "+err.Error())
		return
	}
	if err := tx.Delete(&team).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to delete team: "+err.Error())
		return
	}
	if err := tx.Commit().Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Transaction commit failed: "+err.Error())
		return
	}

	respondMessage(c, http.StatusOK, "Team deleted successfully")
}

func renderLeaderRuleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errLeaderConflict):
		respondError(c, http.StatusConflict, "This user is already leader of another team")
	case errors.Is(err, errLeaderNotFound):
		respondError(c, http.StatusBadRequest, "Leader user does not exist")
	default:
		logrus.WithError(err).Error("team leader rule check failed")
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}

func parseLeaderField(raw json.RawMessage) (*uint, error) {
	s := string(raw)
	if s == "null" {
		return nil, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil, err
	}
	id := uint(n)
	return &id, nil
}

func loadTeamResponse(id uint) gin.H {
	var team models.Team
	if err := config.DB.Preload("Members").Preload("Leader").First(&team, id).Error; err != nil {
		return gin.H{"id": id}
	}
	return teamResponse(team)
}

func teamResponse(team models.Team) gin.H {
	leaderName := ""
	if team.Leader != nil {
		leaderName = team.Leader.Name()
	}
	members := make([]gin.H, 0, len(team.Members))
	for _, m := range team.Members {
		members = append(members, userResponse(m))
	}
	return gin.H{
		"id":             team.ID,
		"name":           team.Name,
		"leader":         team.LeaderID,
		"leader_name":    leaderName,
		"members":        members,
		"specialization": team.Specialization,
		"status":         team.Status,
		"created_at":     team.CreatedAt,
	}
}
