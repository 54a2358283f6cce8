package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReportIsPublic(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/reports", gin.H{
		"type":        "overflow",
		"description": "Conteneur qui deborde",
		"location": gin.H{
			"latitude":  14.6928,
			"longitude": -17.4467,
			"address":   "Rue 10, Medina",
		},
		"reporter_contact": gin.H{
			"name":  "Awa Diop",
			"phone": "77 123 45 67",
		},
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := dataOf(t, w)

	reference, _ := data["reference"].(string)
	_, err := uuid.Parse(reference)
	assert.NoError(t, err, "reference is a tracking uuid")

	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "medium", data["priority"], "priority defaults to medium")
	assert.Equal(t, "citizen", data["reporter_type"])

	contact := data["reporter_contact"].(map[string]interface{})
	assert.Equal(t, "Awa Diop", contact["name"])

	location := data["location"].(map[string]interface{})
	assert.Equal(t, "Rue 10, Medina", location["address"])
}

func TestCreateReportWithoutContact(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/reports", gin.H{
		"type":     "damage",
		"location": gin.H{"latitude": 14.69, "longitude": -17.44},
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Nil(t, dataOf(t, w)["reporter_contact"])
}

func TestCreateReportValidation(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/reports", gin.H{
		"type": "overflow",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "location is required")

	w = doJSON(t, r, http.MethodPost, "/reports", gin.H{
		"type":     "overflow",
		"location": gin.H{"latitude": 14.69},
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "longitude is required")

	w = doJSON(t, r, http.MethodPost, "/reports", gin.H{
		"type":     "gossip",
		"location": gin.H{"latitude": 14.69, "longitude": -17.44},
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown type rejected")
}

func TestAssignAndResolveReport(t *testing.T) {
	r := setupTest(t)
	staff := roleToken(t, "coord", "coordinator")

	w := doJSON(t, r, http.MethodPost, "/reports", gin.H{
		"type":     "missed_collection",
		"location": gin.H{"latitude": 14.69, "longitude": -17.44},
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	id := itoa(uint(dataOf(t, w)["id"].(float64)))

	w = doJSON(t, r, http.MethodPatch, "/reports/"+id+"/assign", gin.H{}, staff)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Team not specified")

	w = doJSON(t, r, http.MethodPatch, "/reports/"+id+"/assign", gin.H{
		"assigned_to": "Equipe Alpha",
	}, staff)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataOf(t, w)
	assert.Equal(t, "in_progress", data["status"], "assignment moves the report to in_progress")
	assert.Equal(t, "Equipe Alpha", data["assigned_to"])

	w = doJSON(t, r, http.MethodPatch, "/reports/"+id+"/resolve", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "resolved", dataOf(t, w)["status"])
}

func TestListReportsFilters(t *testing.T) {
	r := setupTest(t)
	staff := roleToken(t, "coord", "coordinator")

	for _, typ := range []string{"overflow", "damage"} {
		w := doJSON(t, r, http.MethodPost, "/reports", gin.H{
			"type":     typ,
			"location": gin.H{"latitude": 14.69, "longitude": -17.44},
		}, "")
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := doJSON(t, r, http.MethodGet, "/reports", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	id := itoa(uint(listOf(t, w)[0].(map[string]interface{})["id"].(float64)))
	w = doJSON(t, r, http.MethodPatch, "/reports/"+id+"/resolve", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/reports?status=pending", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, listOf(t, w), 1)

	w = doJSON(t, r, http.MethodGet, "/reports?type=damage", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, listOf(t, w), 1)
}

func TestReportManagementIsStaffOnly(t *testing.T) {
	r := setupTest(t)
	citizen := roleToken(t, "awa", "citizen")

	w := doJSON(t, r, http.MethodPost, "/reports", gin.H{
		"type":     "overflow",
		"location": gin.H{"latitude": 14.69, "longitude": -17.44},
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	id := itoa(uint(dataOf(t, w)["id"].(float64)))

	w = doJSON(t, r, http.MethodDelete, "/reports/"+id, nil, citizen)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/reports/"+id+"/resolve", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExportReportsAsXLSX(t *testing.T) {
	r := setupTest(t)
	staff := roleToken(t, "coord", "coordinator")

	w := doJSON(t, r, http.MethodPost, "/reports", gin.H{
		"type":     "overflow",
		"location": gin.H{"latitude": 14.69, "longitude": -17.44},
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/reports/export", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, w.Body.Len())

	w = doJSON(t, r, http.MethodGet, "/reports/export", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	citizen := roleToken(t, "awa", "citizen")
	w = doJSON(t, r, http.MethodGet, "/reports/export", nil, citizen)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
