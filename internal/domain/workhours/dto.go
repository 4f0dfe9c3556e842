package workhours

import "time"

// DayWork is one attendance day's worked and break minutes, as read from the
// store.
type DayWork struct {
	Date          time.Time
	WorkedMinutes int
	BreakMinutes  int
}

// WindowStats compares worked hours against the tenant-configured
// expectation for one window.
type WindowStats struct {
	WorkedHours   float64 `json:"worked_hours"`
	ExpectedHours float64 `json:"expected_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	BreakMinutes  int     `json:"break_minutes"`
	DaysRecorded  int     `json:"days_recorded"`
}

type StatsResponse struct {
	Year  int         `json:"year"`
	Today WindowStats `json:"today"`
	Week  WindowStats `json:"week"`
	Month WindowStats `json:"month"`
}
