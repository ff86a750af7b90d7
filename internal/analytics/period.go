package analytics

import (
	"time"

	"problem-analytics-service/internal/model"
)

const periodLabelLayout = "01/2006"

// DerivePeriods returns the calendar month containing reference and the month before it,
// both expressed in reference's location.
func DerivePeriods(reference time.Time) (current, previous model.Period) {
	loc := reference.Location()
	year, month, _ := reference.Date()

	prevYear, prevMonth := year, month-1
	if month == time.January {
		prevYear, prevMonth = year-1, time.December
	}

	return MonthWindow(year, month, loc), MonthWindow(prevYear, prevMonth, loc)
}

// MonthWindow builds the inclusive [day 1 00:00:00, last day 23:59:59] window of a month.
func MonthWindow(year int, month time.Month, loc *time.Location) model.Period {
	if loc == nil {
		loc = time.Local
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	// day 0 of the next month normalises to the last day of this one
	end := time.Date(year, month+1, 0, 23, 59, 59, 0, loc)

	return model.Period{
		Year:        year,
		Month:       month,
		WindowStart: start,
		WindowEnd:   end,
		Label:       start.Format(periodLabelLayout),
	}
}
