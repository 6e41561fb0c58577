package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/techagentng/dutyreport/models"
)

func testRecords() []models.DeploymentRecord {
	return []models.DeploymentRecord{
		{
			Zone:             &models.Zone{Name: "North"},
			Unit:             &models.Unit{Name: "A"},
			PoliceStation:    &models.PoliceStation{Name: "S1"},
			DutyType:         &models.DutyType{Name: "Patrol"},
			Arrangement:      &models.Arrangement{Name: "Static"},
			VerifyingOfficer: &models.Officer{Name: "Insp. Rao"},
			DayDutyCount:     3,
			DayTotalPhotos:   2,
		},
		{
			Zone:           &models.Zone{Name: "North"},
			DayDutyCount:   2,
			NightDutyCount: 1,
			Remarks:        "station renamed since",
		},
	}
}

func TestWorkbookRowsAndTotals(t *testing.T) {
	f, err := Workbook("2024-03-01", testRecords())
	require.NoError(t, err)

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	// title, header, two records, totals
	require.Len(t, rows, 5)
	assert.Equal(t, "Daily Deployment Report - 2024-03-01", rows[0][0])
	assert.Equal(t, headings, rows[1])
	assert.Equal(t, []string{"1", "North", "A", "S1", "Patrol", "Static", "3", "0", "2", "0", "3", "Insp. Rao"}, rows[2])
	assert.Equal(t, "Unknown", rows[3][2])
	assert.Equal(t, "Unknown", rows[3][4])
	assert.Equal(t, "station renamed since", rows[3][12])
	assert.Equal(t, "Total", rows[4][1])
	assert.Equal(t, "5", rows[4][6])
	assert.Equal(t, "1", rows[4][7])
	assert.Equal(t, "6", rows[4][10])

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	reopened, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{sheetName}, reopened.GetSheetList())
}

func TestWorkbookEmpty(t *testing.T) {
	f, err := Workbook("2024-03-01", nil)
	require.NoError(t, err)
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "0", rows[2][10])
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, "2024-03-01", testRecords()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}

func TestBuildRows(t *testing.T) {
	rows, sum := buildRows(testRecords())
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[1].officer)
	assert.Equal(t, "", rows[1].arrangement)
	assert.Equal(t, totals{dayDuty: 5, nightDuty: 1, dayPhotos: 2}, sum)
	assert.Equal(t, 6, sum.total())
}
