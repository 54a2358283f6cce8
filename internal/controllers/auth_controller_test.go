package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginProfile(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"username":   "awa",
		"email":      "awa@ville.test",
		"password":   "s3cret",
		"first_name": "Awa",
		"last_name":  "Diop",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := dataOf(t, w)
	assert.Equal(t, "citizen", data["role"], "role defaults to citizen")
	assert.Equal(t, "Awa Diop", data["name"])
	assert.NotContains(t, w.Body.String(), "s3cret")

	w = doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"email":    "awa@ville.test",
		"password": "s3cret",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data = dataOf(t, w)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	w = doJSON(t, r, http.MethodGet, "/auth/profile", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "awa", dataOf(t, w)["username"])
}

func TestLoginRejectsBadPassword(t *testing.T) {
	r := setupTest(t)
	createUser(t, "moussa", "collector")

	w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"email":    "moussa@ville.test",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"email":    "nobody@ville.test",
		"password": "s3cret",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setupTest(t)
	createUser(t, "fatou", "citizen")

	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"username": "fatou2",
		"email":    "fatou@ville.test",
		"password": "s3cret",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestRegisterInvalidRole(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"username": "x",
		"email":    "x@ville.test",
		"password": "s3cret",
		"role":     "mayor",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterNormalizesRole(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"username": "chef",
		"email":    "chef@ville.test",
		"password": "s3cret",
		"role":     "  Coordinator ",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "coordinator", dataOf(t, w)["role"])
}

func TestLogoutRequiresAuth(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/auth/logout", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := roleToken(t, "ouma", "citizen")
	w = doJSON(t, r, http.MethodPost, "/auth/logout", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}
