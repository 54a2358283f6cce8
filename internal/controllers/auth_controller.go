package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dechets_ko/internal/config"
	"dechets_ko/internal/middleware"
	"dechets_ko/internal/models"
)

type registerInput struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
}

// RegisterUser creates a new account and returns its public representation.
func RegisterUser(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error(), "Error creating user")
		return
	}

	role, err := validateAndNormalizeRole(input.Role)
	if err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error(), "Error creating user")
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not hash password")
		return
	}

	user := models.User{
		Username:  input.Username,
		Email:     input.Email,
		Password:  hashed,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      role,
		Phone:     input.Phone,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, http.StatusConflict, "username or email already in use")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not create user: "+err.Error())
		return
	}

	respondData(c, http.StatusCreated, userResponse(user), "User created successfully")
}

// LoginUser authenticates by email and issues a bearer token.
func LoginUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error(), "Login error")
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusUnauthorized, "incorrect email or password")
		} else {
			respondError(c, http.StatusInternalServerError, "database error: "+err.Error())
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "incorrect email or password")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not generate token")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"token": token,
		"user":  userResponse(user),
	}, "Login successful")
}

// LogoutUser acknowledges the logout. Tokens are stateless; revocation is the
// auth collaborator's concern, the client just discards its copy.
func LogoutUser(c *gin.Context) {
	respondMessage(c, http.StatusOK, "Logout successful")
}

// Profile returns the authenticated user's account.
func Profile(c *gin.Context) {
	userID := uint(c.MustGet("user_id").(float64))

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	respondData(c, http.StatusOK, userResponse(user), "")
}

func validateAndNormalizeRole(roleInput string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(roleInput))
	if role == "" {
		role = models.RoleCitizen
	}
	if !models.IsValidRole(role) {
		return "", errors.New("invalid role")
	}
	return role, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// isUniqueViolation recognizes duplicate-key failures from Postgres (23505)
// and from the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// userResponse shapes a user the way the frontend expects it, password
// excluded, team reference under teamId.
func userResponse(user models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"name":       user.Name(),
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"role":       user.Role,
		"phone":      user.Phone,
		"teamId":     user.TeamID,
	}
}
