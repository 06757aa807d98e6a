package report

import (
	"math"
	"sort"
	"time"

	"github.com/campushq/attendance-backend-go/internal/domain/attendance"
)

// missingValue is rendered for fields a record never received, such as
// the punch-out of a worker who forgot to close their day.
const missingValue = "N/A"

// Row is one exported line of the attendance summary. All values are
// pre-rendered strings or display-rounded numbers so every export format
// (CSV, XLSX) shows identical content.
type Row struct {
	WorkerID          string
	WorkerName        string
	Date              string
	PunchIn           string
	PunchOut          string
	WorkedHours       float64
	Status            string
	OutOfBoundMinutes float64
}

// Headers are the column titles, in Row field order.
func Headers() []string {
	return []string{
		"Worker ID", "Name", "Date", "Punch In", "Punch Out",
		"Worked Hours", "Status", "Out of Bound Minutes",
	}
}

// Summarize renders attendance records into export rows, sorted by date
// then worker name. Open records report hours worked so far against now;
// their punch-out column shows N/A.
func Summarize(records []attendance.Attendance, now time.Time) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := Row{
			WorkerID:          rec.WorkerID,
			WorkerName:        rec.WorkerName,
			Date:              rec.Day.Format("2006-01-02"),
			PunchIn:           missingValue,
			PunchOut:          missingValue,
			WorkedHours:       round2(rec.WorkedHours(now)),
			Status:            string(rec.Status),
			OutOfBoundMinutes: round2(rec.OutOfBoundMinutes),
		}
		// Absent and on-leave rows never punched in.
		if !rec.PunchInAt.IsZero() {
			row.PunchIn = rec.PunchInAt.Format("15:04:05")
		}
		if rec.PunchOutAt != nil {
			row.PunchOut = rec.PunchOutAt.Format("15:04:05")
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].WorkerName < rows[j].WorkerName
	})

	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
