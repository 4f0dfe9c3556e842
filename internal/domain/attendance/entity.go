package attendance

import (
	"time"
)

const (
	StatusOnTime = "on_time"
	StatusLate   = "late"
)

// Attendance is one record per (employee, local day) in the tenant's
// configured time zone. Punch instants are stored in UTC; Date is the local
// calendar day that keys the record.
type Attendance struct {
	ID                    string
	CompanyID             string
	EmployeeID            string
	Date                  time.Time
	PunchIn               time.Time
	PunchOut              *time.Time
	Status                string
	LateMinutes           int
	TotalBreakMinutes     int
	ProductiveHours       *float64
	OvertimeApprovedHours *float64
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// DTO
	EmployeeName *string
	Breaks       []BreakInterval
}

// BreakInterval is one break within an attendance record. BreakEnd is nil
// while the break is open; at most one interval per record may be open.
type BreakInterval struct {
	ID           string
	AttendanceID string
	BreakStart   time.Time
	BreakEnd     *time.Time
	CreatedAt    time.Time
}

// ClosedMinutes returns the interval's whole-minute duration, or 0 while open.
func (b BreakInterval) ClosedMinutes() int {
	if b.BreakEnd == nil {
		return 0
	}
	return int(b.BreakEnd.Sub(b.BreakStart).Minutes())
}

// SumBreakMinutes accumulates the whole-minute durations of all closed
// intervals.
func SumBreakMinutes(breaks []BreakInterval) int {
	total := 0
	for _, b := range breaks {
		total += b.ClosedMinutes()
	}
	return total
}

// OpenBreak returns the currently open interval, or nil.
func OpenBreak(breaks []BreakInterval) *BreakInterval {
	for i := range breaks {
		if breaks[i].BreakEnd == nil {
			return &breaks[i]
		}
	}
	return nil
}
