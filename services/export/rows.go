// Package export renders the deployment records of one day as an Excel
// workbook or a PDF document.
package export

import (
	"github.com/techagentng/dutyreport/models"
	"github.com/techagentng/dutyreport/services/summary"
)

var headings = []string{
	"S/N", "Zone", "Unit", "Police Station", "Duty Type", "Arrangement",
	"Day Duty", "Night Duty", "Day Photos", "Night Photos", "Total", "Verifying Officer", "Remarks",
}

type row struct {
	zone, unit, station, dutyType, arrangement string
	dayDuty, nightDuty, dayPhotos, nightPhotos int
	officer, remarks                           string
}

func (r row) total() int {
	return r.dayDuty + r.nightDuty
}

type totals struct {
	dayDuty, nightDuty, dayPhotos, nightPhotos int
}

func (t totals) total() int {
	return t.dayDuty + t.nightDuty
}

func buildRows(records []models.DeploymentRecord) ([]row, totals) {
	rows := make([]row, 0, len(records))
	var sum totals
	for i := range records {
		r := &records[i]
		out := row{
			zone:        summary.ZoneName(r),
			unit:        summary.UnitName(r),
			station:     summary.StationName(r),
			dutyType:    summary.UnknownName,
			dayDuty:     r.DayDutyCount,
			nightDuty:   r.NightDutyCount,
			dayPhotos:   r.DayTotalPhotos,
			nightPhotos: r.NightTotalPhotos,
			officer:     summary.OfficerName(r),
			remarks:     r.Remarks,
		}
		if r.DutyType != nil && r.DutyType.Name != "" {
			out.dutyType = r.DutyType.Name
		}
		if r.Arrangement != nil {
			out.arrangement = r.Arrangement.Name
		}
		rows = append(rows, out)

		sum.dayDuty += out.dayDuty
		sum.nightDuty += out.nightDuty
		sum.dayPhotos += out.dayPhotos
		sum.nightPhotos += out.nightPhotos
	}
	return rows, sum
}
