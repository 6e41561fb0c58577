package export

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/techagentng/dutyreport/models"
)

const (
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheetName        = "Deployment"
)

// Workbook lays out one row per record followed by a totals row.
func Workbook(date string, records []models.DeploymentRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, errors.Wrap(err, "naming sheet")
	}

	title := fmt.Sprintf("Daily Deployment Report - %s", date)
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return nil, errors.Wrap(err, "writing title")
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "creating style")
	}

	header := make([]interface{}, len(headings))
	for i, h := range headings {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A2", &header); err != nil {
		return nil, errors.Wrap(err, "writing header")
	}

	rows, sum := buildRows(records)
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			i + 1, r.zone, r.unit, r.station, r.dutyType, r.arrangement,
			r.dayDuty, r.nightDuty, r.dayPhotos, r.nightPhotos, r.total(), r.officer, r.remarks,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, errors.Wrapf(err, "writing row %d", i+1)
		}
	}

	totalRow := len(rows) + 3
	totalCell, _ := excelize.CoordinatesToCellName(1, totalRow)
	totalValues := []interface{}{
		"", "Total", "", "", "", "",
		sum.dayDuty, sum.nightDuty, sum.dayPhotos, sum.nightPhotos, sum.total(), "", "",
	}
	if err := f.SetSheetRow(sheetName, totalCell, &totalValues); err != nil {
		return nil, errors.Wrap(err, "writing totals")
	}

	headerEnd, _ := excelize.CoordinatesToCellName(len(headings), 2)
	lastCell, _ := excelize.CoordinatesToCellName(len(headings), totalRow)
	if err := f.SetCellStyle(sheetName, "A1", headerEnd, bold); err != nil {
		return nil, errors.Wrap(err, "styling header")
	}
	if err := f.SetCellStyle(sheetName, totalCell, lastCell, bold); err != nil {
		return nil, errors.Wrap(err, "styling totals")
	}
	if err := f.SetColWidth(sheetName, "B", "F", 18); err != nil {
		return nil, errors.Wrap(err, "sizing columns")
	}
	if err := f.SetColWidth(sheetName, "L", "M", 24); err != nil {
		return nil, errors.Wrap(err, "sizing columns")
	}
	return f, nil
}
