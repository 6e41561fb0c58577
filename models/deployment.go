package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeploymentRecord is one station's headcount submission for a date. It is
// never updated after creation.
type DeploymentRecord struct {
	Model
	Date               time.Time      `json:"date" gorm:"not null;index"`
	ZoneID             uuid.UUID      `json:"zoneId" gorm:"type:uuid;not null;index"`
	Zone               *Zone          `json:"zone,omitempty" gorm:"foreignKey:ZoneID"`
	UnitID             uuid.UUID      `json:"unitId" gorm:"type:uuid;not null;index"`
	Unit               *Unit          `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
	PoliceStationID    uuid.UUID      `json:"policeStationId" gorm:"type:uuid;not null"`
	PoliceStation      *PoliceStation `json:"policeStation,omitempty" gorm:"foreignKey:PoliceStationID"`
	DutyTypeID         uuid.UUID      `json:"dutyTypeId" gorm:"type:uuid;not null"`
	DutyType           *DutyType      `json:"dutyType,omitempty" gorm:"foreignKey:DutyTypeID"`
	ArrangementID      *uuid.UUID     `json:"arrangementId,omitempty" gorm:"type:uuid"`
	Arrangement        *Arrangement   `json:"arrangement,omitempty" gorm:"foreignKey:ArrangementID"`
	DayDutyCount       int            `json:"dayDutyCount"`
	NightDutyCount     int            `json:"nightDutyCount"`
	DayTotalPhotos     int            `json:"dayTotalPhotos"`
	NightTotalPhotos   int            `json:"nightTotalPhotos"`
	VerifyingOfficerID uuid.UUID      `json:"verifyingOfficerId" gorm:"type:uuid;not null"`
	VerifyingOfficer   *Officer       `json:"verifyingOfficer,omitempty" gorm:"foreignKey:VerifyingOfficerID"`
	Remarks            string         `json:"remarks,omitempty"`
	Images             StringList     `json:"images" gorm:"type:text"`
	DutyCount          int            `json:"dutyCount"`
}

func (d *DeploymentRecord) BeforeSave(tx *gorm.DB) error {
	d.DutyCount = d.DayDutyCount + d.NightDutyCount
	return nil
}

// StringList is stored as a JSON array in a text column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringList) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*s = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
	if len(raw) == 0 {
		*s = StringList{}
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(s))
}

type DeploymentRequest struct {
	Date               string   `json:"date" form:"date" binding:"required" conform:"trim"`
	ZoneID             string   `json:"zoneId" form:"zoneId" binding:"required,uuid" conform:"trim"`
	UnitID             string   `json:"unitId" form:"unitId" binding:"required,uuid" conform:"trim"`
	PoliceStationID    string   `json:"policeStationId" form:"policeStationId" binding:"required,uuid" conform:"trim"`
	DutyTypeID         string   `json:"dutyTypeId" form:"dutyTypeId" binding:"required,uuid" conform:"trim"`
	ArrangementID      string   `json:"arrangementId" form:"arrangementId" binding:"omitempty,uuid" conform:"trim"`
	DayDutyCount       int      `json:"dayDutyCount" form:"dayDutyCount" binding:"min=0"`
	NightDutyCount     int      `json:"nightDutyCount" form:"nightDutyCount" binding:"min=0"`
	DayTotalPhotos     int      `json:"dayTotalPhotos" form:"dayTotalPhotos" binding:"min=0"`
	NightTotalPhotos   int      `json:"nightTotalPhotos" form:"nightTotalPhotos" binding:"min=0"`
	VerifyingOfficerID string   `json:"verifyingOfficerId" form:"verifyingOfficerId" binding:"required,uuid" conform:"trim"`
	Remarks            string   `json:"remarks" form:"remarks" conform:"trim"`
	Images             []string `json:"images" form:"-"`
}
