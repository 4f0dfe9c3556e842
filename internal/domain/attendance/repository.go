package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. Every
// method takes companyID to keep tenants isolated.
type AttendanceRepository interface {
	// Create inserts a new record. The (company, employee, date) uniqueness
	// is enforced by the database; a conflict surfaces as ErrAlreadyPunchedIn.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns the record for the local day, or nil when
	// none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Attendance, error)

	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// ClosePunch sets punch-out and the derived totals, guarded by
	// punch_out IS NULL. A record already closed surfaces as
	// ErrAlreadyPunchedOut.
	ClosePunch(ctx context.Context, id string, companyID string, punchOut time.Time, breakMinutes int, productiveHours float64) error

	// OpenBreak appends a break interval, guarded against an existing open
	// interval (ErrBreakAlreadyOpen).
	OpenBreak(ctx context.Context, attendanceID string, start time.Time) (BreakInterval, error)

	// CloseOpenBreak ends the open interval (ErrNoOpenBreak when none).
	CloseOpenBreak(ctx context.Context, attendanceID string, end time.Time) (BreakInterval, error)

	GetBreaks(ctx context.Context, attendanceID string) ([]BreakInterval, error)

	// SetBreakMinutes persists the recomputed closed-interval total.
	SetBreakMinutes(ctx context.Context, attendanceID string, minutes int) error

	SetOvertimeApproved(ctx context.Context, id string, companyID string, hours float64) error

	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)

	// GetStaleOpenSessions returns records punched in before the given
	// instant that still have no punch-out, across all tenants.
	GetStaleOpenSessions(ctx context.Context, punchedInBefore time.Time) ([]Attendance, error)
}
