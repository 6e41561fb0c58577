package models

import "github.com/google/uuid"

// Zone is the top of the administrative hierarchy.
type Zone struct {
	Model
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

// Unit belongs to exactly one zone.
type Unit struct {
	Model
	Name   string    `json:"name" gorm:"not null;index"`
	Type   string    `json:"type"`
	ZoneID uuid.UUID `json:"zoneId" gorm:"type:uuid;not null;index"`
	Zone   *Zone     `json:"zone,omitempty" gorm:"foreignKey:ZoneID"`
}

type PoliceStation struct {
	Model
	Name    string     `json:"name" gorm:"not null;index"`
	Address string     `json:"address"`
	UnitID  *uuid.UUID `json:"unitId" gorm:"type:uuid;index"`
	Unit    *Unit      `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
}

type ZoneRequest struct {
	Name string `json:"name" form:"name" binding:"required" conform:"trim"`
}

type UnitRequest struct {
	Name   string `json:"name" form:"name" binding:"required" conform:"trim"`
	Type   string `json:"type" form:"type" conform:"trim"`
	ZoneID string `json:"zoneId" form:"zoneId" binding:"required,uuid" conform:"trim"`
}

type PoliceStationRequest struct {
	Name    string `json:"name" form:"name" binding:"required" conform:"trim"`
	Address string `json:"address" form:"address" conform:"trim"`
	UnitID  string `json:"unitId" form:"unitId" binding:"omitempty,uuid" conform:"trim"`
}
