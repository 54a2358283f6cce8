package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dechets_ko/internal/config"
	"dechets_ko/internal/models"
)

// truckInput accepts both the snake_case fields and the camelCase aliases the
// frontend sends (driverId, plateNumber, estimatedTime), plus a nested
// current_location object.
type truckInput struct {
	PlateNumber      string   `json:"plate_number"`
	PlateNumberAlias string   `json:"plateNumber"`
	Driver           *uint    `json:"driver"`
	DriverAlias      *uint    `json:"driverId"`
	Status           string   `json:"status"`
	CurrentLatitude  *float64 `json:"current_latitude"`
	CurrentLongitude *float64 `json:"current_longitude"`
	EstimatedTime    *int     `json:"estimated_time"`
	EstimatedAlias   *int     `json:"estimatedTime"`
	CurrentLocation  *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"current_location"`
}

func (in *truckInput) normalize() {
	if in.PlateNumber == "" {
		in.PlateNumber = in.PlateNumberAlias
	}
	if in.Driver == nil {
		in.Driver = in.DriverAlias
	}
	if in.EstimatedTime == nil {
		in.EstimatedTime = in.EstimatedAlias
	}
	if in.CurrentLocation != nil {
		if in.CurrentLocation.Latitude != nil {
			in.CurrentLatitude = in.CurrentLocation.Latitude
		}
		if in.CurrentLocation.Longitude != nil {
			in.CurrentLongitude = in.CurrentLocation.Longitude
		}
	}
}

func CreateTruck(c *gin.Context) {
	var input truckInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error(), "Error creating truck")
		return
	}
	input.normalize()

	if input.PlateNumber == "" {
		respondError(c, http.StatusBadRequest, "plate_number is required")
		return
	}
	if input.Driver == nil {
		respondError(c, http.StatusBadRequest, "driver is required")
		return
	}
	if !models.IsValidTruckStatus(input.Status) {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}
	if input.EstimatedTime != nil && *input.EstimatedTime < 0 {
		respondError(c, http.StatusBadRequest, "Estimated time must be positive")
		return
	}
	var driver models.User
	if err := config.DB.First(&driver, *input.Driver).Error; err != nil {
		respondError(c, http.StatusBadRequest, "Driver user does not exist")
		return
	}

	truck := models.Truck{
		PlateNumber:   input.PlateNumber,
		DriverID:      input.Driver,
		Status:        input.Status,
		EstimatedTime: input.EstimatedTime,
	}
	if input.CurrentLatitude != nil {
		truck.CurrentLatitude = *input.CurrentLatitude
	}
	if input.CurrentLongitude != nil {
		truck.CurrentLongitude = *input.CurrentLongitude
	}

	if err := config.DB.Create(&truck).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, http.StatusConflict, "plate_number already in use")
			return
		}
		respondError(c, http.StatusInternalServerError, "Create truck failed: "+err.Error())
		return
	}
	respondData(c, http.StatusCreated, truckResponse(truck), "Truck created successfully")
}

func ListTrucks(c *gin.Context) {
	query := config.DB.Order("id")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var trucks []models.Truck
	if err := query.Find(&trucks).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error listing trucks: "+err.Error())
		return
	}
	out := make([]gin.H, 0, len(trucks))
	for _, t := range trucks {
		out = append(out, truckResponse(t))
	}
	respondData(c, http.StatusOK, out, "")
}

func GetTruck(c *gin.Context) {
	var truck models.Truck
	if err := config.DB.First(&truck, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Truck not found")
		return
	}
	respondData(c, http.StatusOK, truckResponse(truck), "")
}

func UpdateTruck(c *gin.Context) {
	var truck models.Truck
	if err := config.DB.First(&truck, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Truck not found")
		return
	}

	var input truckInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErrors(c, http.StatusBadRequest, err.Error(), "Error updating truck")
		return
	}
	input.normalize()

	if input.PlateNumber != "" {
		truck.PlateNumber = input.PlateNumber
	}
	if input.Driver != nil {
		var driver models.User
		if err := config.DB.First(&driver, *input.Driver).Error; err != nil {
			respondError(c, http.StatusBadRequest, "Driver user does not exist")
			return
		}
		truck.DriverID = input.Driver
	}
	if input.Status != "" {
		if !models.IsValidTruckStatus(input.Status) {
			respondError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		truck.Status = input.Status
	}
	if input.EstimatedTime != nil {
		if *input.EstimatedTime < 0 {
			respondError(c, http.StatusBadRequest, "Estimated time must be positive")
			return
		}
		truck.EstimatedTime = input.EstimatedTime
	}
	if input.CurrentLatitude != nil {
		truck.CurrentLatitude = *input.CurrentLatitude
	}
	if input.CurrentLongitude != nil {
		truck.CurrentLongitude = *input.CurrentLongitude
	}

	if err := config.DB.Save(&truck).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, http.StatusConflict, "plate_number already in use")
			return
		}
		respondError(c, http.StatusInternalServerError, "Update failed: "+err.Error())
		return
	}
	respondData(c, http.StatusOK, truckResponse(truck), "Truck updated successfully")
}

// DeleteTruck nulls the truck reference on its schedules instead of
// cascading, so planning history keeps its rows.
func DeleteTruck(c *gin.Context) {
	var truck models.Truck
	if err := config.DB.First(&truck, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Truck not found")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		respondError(c, http.StatusInternalServerError, "Failed to start transaction")
		return
	}
	if err := tx.Model(&models.Schedule{}).Where("truck_id = ?", truck.ID).
		Update("truck_id", nil).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to detach schedules: "+err.Error())
		return
	}
	if err := tx.Delete(&truck).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to delete truck: "+err.Error())
		return
	}
	if err := tx.Commit().Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Transaction commit failed: "+err.Error())
		return
	}
	respondMessage(c, http.StatusOK, "Truck deleted successfully")
}

// UpdateTruckLocation updates the truck position and appends a history
// sample with the distance covered since the previous one.
func UpdateTruckLocation(c *gin.Context) {
	var truck models.Truck
	if err := config.DB.First(&truck, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Truck not found")
		return
	}

	var body struct {
		CurrentLocation struct {
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
		} `json:"current_location"`
	}
	if err := c.ShouldBindJSON(&body); err != nil ||
		body.CurrentLocation.Latitude == nil || body.CurrentLocation.Longitude == nil {
		respondError(c, http.StatusBadRequest, "Invalid coordinates")
		return
	}

	lat := *body.CurrentLocation.Latitude
	lng := *body.CurrentLocation.Longitude

	var distance float64
	var last models.TruckLocation
	err := config.DB.Where("truck_id = ?", truck.ID).Order("recorded_at DESC, id DESC").
		First(&last).Error
	switch {
	case err == nil:
		distance = haversineMeters(last.Latitude, last.Longitude, lat, lng)
	case errors.Is(err, gorm.ErrRecordNotFound):
		distance = 0
	default:
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		respondError(c, http.StatusInternalServerError, "Failed to start transaction")
		return
	}
	truck.CurrentLatitude = lat
	truck.CurrentLongitude = lng
	if err := tx.Save(&truck).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Update failed: "+err.Error())
		return
	}
	sample := models.TruckLocation{
		TruckID:          truck.ID,
		Latitude:         lat,
		Longitude:        lng,
		DistanceFromLast: distance,
		RecordedAt:       time.Now(),
	}
	if err := tx.Create(&sample).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Failed to record location: "+err.Error())
		return
	}
	if err := tx.Commit().Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Transaction commit failed: "+err.Error())
		return
	}

	respondData(c, http.StatusOK, truckResponse(truck), "Location updated successfully")
}

func UpdateTruckStatus(c *gin.Context) {
	var truck models.Truck
	if err := config.DB.First(&truck, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Truck not found")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || !models.IsValidTruckStatus(body.Status) {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	truck.Status = body.Status
	if err := config.DB.Save(&truck).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Update failed: "+err.Error())
		return
	}
	respondData(c, http.StatusOK, truckResponse(truck), "Status updated successfully")
}

// UpdateTruckEstimatedTime accepts {"estimated_time": 15} (or "15") and
// rejects anything that is not a non-negative integer.
func UpdateTruckEstimatedTime(c *gin.Context) {
	var truck models.Truck
	if err := config.DB.First(&truck, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Truck not found")
		return
	}

	var body struct {
		EstimatedTime interface{} `json:"estimated_time"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid payload")
		return
	}
	if body.EstimatedTime == nil {
		respondError(c, http.StatusBadRequest, "estimated_time field is required")
		return
	}

	minutes, err := parseEstimatedTime(body.EstimatedTime)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid estimated time. Please provide an integer.")
		return
	}
	if minutes < 0 {
		respondError(c, http.StatusBadRequest, "Estimated time must be positive")
		return
	}

	truck.EstimatedTime = &minutes
	if err := config.DB.Save(&truck).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Update failed: "+err.Error())
		return
	}
	respondData(c, http.StatusOK, truckResponse(truck), "Estimated time updated successfully")
}

// GetTruckRoute returns the truck's stops for the given date (today by
// default): the ordered union across its planned and in-progress schedules.
func GetTruckRoute(c *gin.Context) {
	var truck models.Truck
	if err := config.DB.First(&truck, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Truck not found")
		return
	}

	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	points, err := buildTruckRoute(config.DB, truck.ID, date)
	if err != nil {
		logrus.WithError(err).Error("GetTruckRoute: route query failed")
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]gin.H, 0, len(points))
	for _, p := range points {
		out = append(out, pointResponse(p))
	}
	respondData(c, http.StatusOK, out, "")
}

// ListTruckLocations returns the recorded position history, newest first.
func ListTruckLocations(c *gin.Context) {
	var truck models.Truck
	if err := config.DB.First(&truck, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Truck not found")
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	var samples []models.TruckLocation
	if err := config.DB.Where("truck_id = ?", truck.ID).
		Order("recorded_at DESC, id DESC").Limit(limit).Find(&samples).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondData(c, http.StatusOK, samples, "")
}

// buildTruckRoute derives the route of the day: stops of every planned or
// in-progress schedule for the truck on the date, each schedule's stops in
// stop order, schedules concatenated in id order. Pure read-side projection,
// nothing is cached.
func buildTruckRoute(db *gorm.DB, truckID uint, date string) ([]models.CollectionPoint, error) {
	var schedules []models.Schedule
	err := db.
		Where("truck_id = ? AND date = ? AND status IN ?",
			truckID, date, []string{models.ScheduleStatusPlanned, models.ScheduleStatusInProgress}).
		Order("id").
		Preload("RoutePoints", func(db *gorm.DB) *gorm.DB {
			return db.Order("stop_order ASC, id ASC")
		}).
		Preload("RoutePoints.CollectionPoint").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}

	var points []models.CollectionPoint
	for _, schedule := range schedules {
		for _, stop := range schedule.RoutePoints {
			points = append(points, stop.CollectionPoint)
		}
	}
	return points, nil
}

func parseEstimatedTime(v interface{}) (int, error) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) {
			return 0, errors.New("not an integer")
		}
		return int(t), nil
	case string:
		return strconv.Atoi(t)
	default:
		return 0, errors.New("not an integer")
	}
}

// haversineMeters is the great-circle distance between two WGS84 points.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000.0
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func truckResponse(truck models.Truck) gin.H {
	driverName := ""
	if truck.DriverID != nil {
		var driver models.User
		if err := config.DB.First(&driver, *truck.DriverID).Error; err == nil {
			driverName = driver.Name()
		}
	}

	today := time.Now().Format("2006-01-02")
	route, err := buildTruckRoute(config.DB, truck.ID, today)
	if err != nil {
		logrus.WithError(err).Warn("truckResponse: could not derive route")
	}
	routeOut := make([]gin.H, 0, len(route))
	for _, p := range route {
		routeOut = append(routeOut, pointResponse(p))
	}

	return gin.H{
		"id":           truck.ID,
		"plate_number": truck.PlateNumber,
		"driver":       truck.DriverID,
		"driver_name":  driverName,
		"current_location": gin.H{
			"latitude":  truck.CurrentLatitude,
			"longitude": truck.CurrentLongitude,
		},
		"status":            truck.Status,
		"estimated_time":    truck.EstimatedTime,
		"route":             routeOut,
		"current_latitude":  truck.CurrentLatitude,
		"current_longitude": truck.CurrentLongitude,
	}
}
