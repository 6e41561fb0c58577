package summary

import (
	"strings"
	"time"

	errs "github.com/techagentng/dutyreport/errors"
)

const DateLayout = "2006-01-02"

// DayBounds returns local midnight and 23:59:59.999 of date. A record
// belongs to the day when start <= record.Date <= end.
func DayBounds(date string) (time.Time, time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, time.Time{}, errs.InvalidArgument("date is required")
	}
	start, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, errs.InvalidArgument("date must be in YYYY-MM-DD format")
	}
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end, nil
}
