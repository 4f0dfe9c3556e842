package attendance

import (
	"time"

	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/validator"
)

// PunchInRequest carries an optional explicit punch instant. When omitted
// the server clock is used.
type PunchInRequest struct {
	Timestamp *string `json:"timestamp,omitempty"`
}

func (r PunchInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Timestamp != nil {
		if _, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "must be a valid ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// At returns the parsed timestamp, or the zero time when none was supplied.
// Validate must have passed first.
func (r PunchInRequest) At() time.Time {
	if r.Timestamp == nil {
		return time.Time{}
	}
	t, _ := validator.IsValidDateTime(*r.Timestamp)
	return t
}

type ApproveOvertimeRequest struct {
	Hours float64 `json:"hours"`
}

func (r ApproveOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Hours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "must be greater than zero",
		})
	}
	if r.Hours > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "must not exceed 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BreakResponse struct {
	ID         string  `json:"id"`
	BreakStart string  `json:"break_start"`
	BreakEnd   *string `json:"break_end,omitempty"`
}

type AttendanceResponse struct {
	ID                    string          `json:"id"`
	EmployeeID            string          `json:"employee_id"`
	EmployeeName          string          `json:"employee_name,omitempty"`
	Date                  string          `json:"date"`
	PunchInTime           string          `json:"punch_in_time"`
	PunchOutTime          *string         `json:"punch_out_time,omitempty"`
	Status                string          `json:"status"`
	LateMinutes           int             `json:"late_minutes"`
	TotalBreakMinutes     int             `json:"total_break_minutes"`
	ProductiveHours       *float64        `json:"productive_hours,omitempty"`
	OvertimeApprovedHours *float64        `json:"overtime_approved_hours,omitempty"`
	Breaks                []BreakResponse `json:"breaks,omitempty"`
}

// PunchInResponse pairs the created record with the signed offset from the
// scheduled shift start, rounded to whole minutes.
type PunchInResponse struct {
	Attendance  AttendanceResponse `json:"attendance"`
	DiffMinutes int                `json:"diff_minutes"`
}

// AttendanceFilter narrows the admin listing.
type AttendanceFilter struct {
	EmployeeID *string
	Date       *string
	StartDate  *string
	EndDate    *string
	Status     *string
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}
