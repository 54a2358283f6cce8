package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"dechets_ko/internal/config"
	"dechets_ko/internal/middleware"
	"dechets_ko/internal/models"
	"dechets_ko/internal/routes"
)

// setupTest gives each test a fresh in-memory database and a fully wired
// router. The sqlite pool is pinned to a single connection so every query
// sees the same :memory: database.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	config.DB = db

	return routes.SetupRouter()
}

func createUser(t *testing.T, username, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Username: username,
		Email:    username + "@ville.test",
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)
	return token
}

// roleToken creates a throwaway user with the given role and returns a token
// for it.
func roleToken(t *testing.T, username, role string) string {
	t.Helper()
	return tokenFor(t, createUser(t, username, role))
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := parseBody(t, w)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "expected object data, body: %s", w.Body.String())
	return data
}

func listOf(t *testing.T, w *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	body := parseBody(t, w)
	data, ok := body["data"].([]interface{})
	require.True(t, ok, "expected array data, body: %s", w.Body.String())
	return data
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func createPoint(t *testing.T, name, status string) models.CollectionPoint {
	t.Helper()
	point := models.CollectionPoint{
		Name:      name,
		Address:   "Rue " + name,
		Latitude:  14.6928,
		Longitude: -17.4467,
		Type:      "container",
		Status:    status,
	}
	require.NoError(t, config.DB.Create(&point).Error)
	return point
}

func createTeam(t *testing.T, name string) models.Team {
	t.Helper()
	team := models.Team{Name: name, Specialization: "general", Status: models.TeamStatusActive}
	require.NoError(t, config.DB.Create(&team).Error)
	return team
}

func createTruck(t *testing.T, plate string, driverID uint) models.Truck {
	t.Helper()
	truck := models.Truck{
		PlateNumber: plate,
		DriverID:    &driverID,
		Status:      models.TruckStatusAvailable,
	}
	require.NoError(t, config.DB.Create(&truck).Error)
	return truck
}

func createSchedule(t *testing.T, teamID, truckID uint, date, status string, pointIDs ...uint) models.Schedule {
	t.Helper()
	schedule := models.Schedule{
		TeamID:           &teamID,
		TruckID:          &truckID,
		Date:             date,
		StartTime:        "08:00",
		EstimatedEndTime: "12:00",
		Status:           status,
	}
	require.NoError(t, config.DB.Create(&schedule).Error)
	for i, pointID := range pointIDs {
		stop := models.ScheduleRoute{
			ScheduleID:        schedule.ID,
			CollectionPointID: pointID,
			Order:             i + 1,
		}
		require.NoError(t, config.DB.Create(&stop).Error)
	}
	return schedule
}
