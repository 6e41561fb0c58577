package models

import "github.com/google/uuid"

// Officer is never hard-deleted; deactivation clears IsActive so that
// historical deployment records can still resolve their verifying officer.
type Officer struct {
	Model
	Name            string         `json:"name" gorm:"not null;index"`
	BadgeNumber     string         `json:"badgeNumber" gorm:"uniqueIndex;not null"`
	Rank            string         `json:"rank"`
	Photo           string         `json:"photo,omitempty"`
	ZoneID          uuid.UUID      `json:"zoneId" gorm:"type:uuid;not null;index"`
	Zone            *Zone          `json:"zone,omitempty" gorm:"foreignKey:ZoneID"`
	UnitID          *uuid.UUID     `json:"unitId,omitempty" gorm:"type:uuid;index"`
	Unit            *Unit          `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
	PoliceStationID *uuid.UUID     `json:"policeStationId,omitempty" gorm:"type:uuid;index"`
	PoliceStation   *PoliceStation `json:"policeStation,omitempty" gorm:"foreignKey:PoliceStationID"`
	ContactNumber   string         `json:"contactNumber,omitempty"`
	Email           string         `json:"email,omitempty"`
	IsActive        bool           `json:"isActive" gorm:"not null;default:true"`
}

type OfficerRequest struct {
	Name            string `json:"name" form:"name" binding:"required" conform:"trim"`
	BadgeNumber     string `json:"badgeNumber" form:"badgeNumber" binding:"required" conform:"trim,upper"`
	Rank            string `json:"rank" form:"rank" binding:"required" conform:"trim"`
	ZoneID          string `json:"zoneId" form:"zoneId" binding:"required,uuid" conform:"trim"`
	UnitID          string `json:"unitId" form:"unitId" binding:"omitempty,uuid" conform:"trim"`
	PoliceStationID string `json:"policeStationId" form:"policeStationId" binding:"omitempty,uuid" conform:"trim"`
	ContactNumber   string `json:"contactNumber" form:"contactNumber" conform:"trim"`
	Email           string `json:"email" form:"email" binding:"omitempty,email" conform:"trim,lower"`
}
