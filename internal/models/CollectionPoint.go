package models

import (
	"time"

	"gorm.io/gorm"
)

// CollectionPoint is a bin, container or recycling drop-off site. Status is
// driven by field crews; moving it to "empty" stamps LastCollection.
type CollectionPoint struct {
	gorm.Model
	Name           string     `json:"name" binding:"required"`
	Address        string     `json:"address"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	LastCollection *time.Time `json:"last_collection"`
	NextCollection *time.Time `json:"next_collection"`
}

const (
	PointStatusEmpty    = "empty"
	PointStatusHalf     = "half"
	PointStatusFull     = "full"
	PointStatusOverflow = "overflow"
)

func IsValidPointStatus(s string) bool {
	switch s {
	case PointStatusEmpty, PointStatusHalf, PointStatusFull, PointStatusOverflow:
		return true
	}
	return false
}

func IsValidPointType(t string) bool {
	switch t {
	case "bin", "container", "recycling":
		return true
	}
	return false
}
