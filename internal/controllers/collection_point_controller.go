package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dechets_ko/internal/config"
	"dechets_ko/internal/models"
)

type collectionPointInput struct {
	Name      string   `json:"name" binding:"required"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Type      string   `json:"type" binding:"required"`
	Status    string   `json:"status"`
}

func CreateCollectionPoint(c *gin.Context) {
	var input collectionPointInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error(), "Error creating collection point")
		return
	}
	if !models.IsValidPointType(input.Type) {
		respondError(c, http.StatusBadRequest, "Invalid type")
		return
	}
	if input.Status == "" {
		input.Status = models.PointStatusEmpty
	}
	if !models.IsValidPointStatus(input.Status) {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	point := models.CollectionPoint{
		Name:      input.Name,
		Address:   input.Address,
		Latitude:  *input.Latitude,
		Longitude: *input.Longitude,
		Type:      input.Type,
		Status:    input.Status,
	}
	if err := config.DB.Create(&point).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Create collection point failed: "+err.Error())
		return
	}
	respondData(c, http.StatusCreated, pointResponse(point), "Collection point created successfully")
}

func ListCollectionPoints(c *gin.Context) {
	query := config.DB.Order("id")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if typ := c.Query("type"); typ != "" {
		query = query.Where("type = ?", typ)
	}

	var points []models.CollectionPoint
	if err := query.Find(&points).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error listing collection points: "+err.Error())
		return
	}
	out := make([]gin.H, 0, len(points))
	for _, p := range points {
		out = append(out, pointResponse(p))
	}
	respondData(c, http.StatusOK, out, "")
}

func GetCollectionPoint(c *gin.Context) {
	var point models.CollectionPoint
	if err := config.DB.First(&point, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Collection point not found")
		return
	}
	respondData(c, http.StatusOK, pointResponse(point), "")
}

func UpdateCollectionPoint(c *gin.Context) {
	var point models.CollectionPoint
	if err := config.DB.First(&point, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Collection point not found")
		return
	}

	var input struct {
		Name      *string  `json:"name"`
		Address   *string  `json:"address"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Type      *string  `json:"type"`
		Status    *string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error(), "Error updating collection point")
		return
	}
	if input.Name != nil {
		point.Name = *input.Name
	}
	if input.Address != nil {
		point.Address = *input.Address
	}
	if input.Latitude != nil {
		point.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		point.Longitude = *input.Longitude
	}
	if input.Type != nil {
		if !models.IsValidPointType(*input.Type) {
			respondError(c, http.StatusBadRequest, "Invalid type")
			return
		}
		point.Type = *input.Type
	}
	if input.Status != nil {
		if !models.IsValidPointStatus(*input.Status) {
			respondError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		// Every write to "empty" records a collection, even empty→empty:
		// crews empty a point that was already marked empty
		if *input.Status == models.PointStatusEmpty {
			now := time.Now()
			point.LastCollection = &now
		}
		point.Status = *input.Status
	}

	if err := config.DB.Save(&point).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Update failed: "+err.Error())
		return
	}
	respondData(c, http.StatusOK, pointResponse(point), "Collection point updated successfully")
}

// UpdateCollectionPointStatus handles PATCH .../update-status. Moving a point
// to "empty" records the collection time, whatever the previous status was.
func UpdateCollectionPointStatus(c *gin.Context) {
	var point models.CollectionPoint
	if err := config.DB.First(&point, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Collection point not found")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || !models.IsValidPointStatus(body.Status) {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	point.Status = body.Status
	if body.Status == models.PointStatusEmpty {
		now := time.Now()
		point.LastCollection = &now
	}
	if err := config.DB.Save(&point).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Update failed: "+err.Error())
		return
	}
	respondData(c, http.StatusOK, pointResponse(point), "Status updated successfully")
}

// DeleteCollectionPoint refuses to remove a point that is still referenced by
// schedule stops: route history must not lose its target.
func DeleteCollectionPoint(c *gin.Context) {
	var point models.CollectionPoint
	if err := config.DB.First(&point, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Collection point not found")
		return
	}

	var refs int64
	if err := config.DB.Model(&models.ScheduleRoute{}).
		Where("collection_point_id = ?", point.ID).Count(&refs).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if refs > 0 {
		respondError(c, http.StatusConflict, "Collection point is referenced by schedule routes")
		return
	}

	if err := config.DB.Delete(&point).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete collection point: "+err.Error())
		return
	}
	respondMessage(c, http.StatusOK, "Collection point deleted successfully")
}

func pointResponse(p models.CollectionPoint) gin.H {
	return gin.H{
		"id":              p.ID,
		"name":            p.Name,
		"address":         p.Address,
		"latitude":        p.Latitude,
		"longitude":       p.Longitude,
		"type":            p.Type,
		"status":          p.Status,
		"last_collection": p.LastCollection,
		"next_collection": p.NextCollection,
	}
}
