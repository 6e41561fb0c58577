// Package summary reduces the deployment records of one day into the
// zone → unit → station report with grand totals.
package summary

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/techagentng/dutyreport/models"
)

// UnknownName groups records whose zone, unit or station did not resolve.
const UnknownName = "Unknown"

// PersonnelAllocation is the configured reference block reported alongside
// every summary. It is not derived from records.
type PersonnelAllocation struct {
	StaffOfficers   int `json:"staffOfficers"`
	MalePersonnel   int `json:"malePersonnel"`
	FemalePersonnel int `json:"femalePersonnel"`
	Total           int `json:"total"`
}

func NewPersonnelAllocation(staff, male, female int) PersonnelAllocation {
	return PersonnelAllocation{
		StaffOfficers:   staff,
		MalePersonnel:   male,
		FemalePersonnel: female,
		Total:           staff + male + female,
	}
}

type Counts struct {
	DayDuty     int `json:"dayDuty"`
	NightDuty   int `json:"nightDuty"`
	DayPhotos   int `json:"dayPhotos"`
	NightPhotos int `json:"nightPhotos"`
}

func (c *Counts) addRecord(r *models.DeploymentRecord) {
	c.DayDuty += r.DayDutyCount
	c.NightDuty += r.NightDutyCount
	c.DayPhotos += r.DayTotalPhotos
	c.NightPhotos += r.NightTotalPhotos
}

// StationRow is one record's contribution. Rows are never merged, so a
// station reported twice shows up twice.
type StationRow struct {
	Name string `json:"name"`
	Counts
	VerifyingOfficer string `json:"verifyingOfficer"`
}

type UnitSummary struct {
	Counts
	TotalPersonnel int          `json:"totalPersonnel"`
	Stations       []StationRow `json:"stations"`
}

type ZoneSummary struct {
	Counts
	TotalPersonnel int                                          `json:"totalPersonnel"`
	Units          *orderedmap.OrderedMap[string, *UnitSummary] `json:"units"`
}

// GrandTotals sums the zone summaries. The duty-category counters have no
// source in the records and stay zero.
type GrandTotals struct {
	Counts
	TotalPersonnel  int `json:"totalPersonnel"`
	VIPDuty         int `json:"vipDuty"`
	TrafficDuty     int `json:"trafficDuty"`
	RailwayDuty     int `json:"railwayDuty"`
	OtherDuty       int `json:"otherDuty"`
	OnLeave         int `json:"onLeave"`
	CourtDuty       int `json:"courtDuty"`
	LongTermAbsent  int `json:"longTermAbsent"`
	ShortTermAbsent int `json:"shortTermAbsent"`
}

type Summary struct {
	Date                string                                       `json:"date"`
	ZoneWiseSummary     *orderedmap.OrderedMap[string, *ZoneSummary] `json:"zoneWiseSummary"`
	GrandTotals         GrandTotals                                  `json:"grandTotals"`
	PersonnelAllocation PersonnelAllocation                          `json:"personnelAllocation"`
}

// Build aggregates records in scan order. Zones and units keep the order in
// which they were first seen; stations keep record order.
func Build(date time.Time, records []models.DeploymentRecord, alloc PersonnelAllocation) *Summary {
	s := &Summary{
		Date:                date.Format(DateLayout),
		ZoneWiseSummary:     orderedmap.New[string, *ZoneSummary](),
		PersonnelAllocation: alloc,
	}

	for i := range records {
		r := &records[i]
		personnel := r.DayDutyCount + r.NightDutyCount

		zoneName := ZoneName(r)
		zone, ok := s.ZoneWiseSummary.Get(zoneName)
		if !ok {
			zone = &ZoneSummary{Units: orderedmap.New[string, *UnitSummary]()}
			s.ZoneWiseSummary.Set(zoneName, zone)
		}
		zone.addRecord(r)
		zone.TotalPersonnel += personnel

		unitName := UnitName(r)
		unit, ok := zone.Units.Get(unitName)
		if !ok {
			unit = &UnitSummary{Stations: []StationRow{}}
			zone.Units.Set(unitName, unit)
		}
		unit.addRecord(r)
		unit.TotalPersonnel += personnel

		row := StationRow{Name: StationName(r), VerifyingOfficer: OfficerName(r)}
		row.addRecord(r)
		unit.Stations = append(unit.Stations, row)
	}

	for pair := s.ZoneWiseSummary.Oldest(); pair != nil; pair = pair.Next() {
		zone := pair.Value
		s.GrandTotals.DayDuty += zone.DayDuty
		s.GrandTotals.NightDuty += zone.NightDuty
		s.GrandTotals.DayPhotos += zone.DayPhotos
		s.GrandTotals.NightPhotos += zone.NightPhotos
		s.GrandTotals.TotalPersonnel += zone.TotalPersonnel
	}
	return s
}

func ZoneName(r *models.DeploymentRecord) string {
	if r.Zone == nil {
		return UnknownName
	}
	return orUnknown(r.Zone.Name)
}

func UnitName(r *models.DeploymentRecord) string {
	if r.Unit == nil {
		return UnknownName
	}
	return orUnknown(r.Unit.Name)
}

func StationName(r *models.DeploymentRecord) string {
	if r.PoliceStation == nil {
		return UnknownName
	}
	return orUnknown(r.PoliceStation.Name)
}

// OfficerName is empty when the verifying officer did not resolve.
func OfficerName(r *models.DeploymentRecord) string {
	if r.VerifyingOfficer == nil {
		return ""
	}
	return r.VerifyingOfficer.Name
}

func orUnknown(name string) string {
	if name == "" {
		return UnknownName
	}
	return name
}
