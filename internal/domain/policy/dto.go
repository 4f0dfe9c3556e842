package policy

import (
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/validator"
)

type UpdatePolicyRequest struct {
	Timezone               *string  `json:"timezone,omitempty"`
	PunchInTime            *string  `json:"punch_in_time,omitempty"`
	PunchOutTime           *string  `json:"punch_out_time,omitempty"`
	LateBufferMinutes      *int     `json:"late_buffer_minutes,omitempty"`
	AbsentCutoffMinutes    *int     `json:"absent_cutoff_minutes,omitempty"`
	HoursPerDay            *float64 `json:"hours_per_day,omitempty"`
	HoursPerWeek           *float64 `json:"hours_per_week,omitempty"`
	HoursPerMonth          *float64 `json:"hours_per_month,omitempty"`
	OvertimeAllowanceHours *float64 `json:"overtime_allowance_hours,omitempty"`
	TotalAllowedLeaves     *int     `json:"total_allowed_leaves,omitempty"`
	TotalWorkingDays       *int     `json:"total_working_days,omitempty"`
}

func (r UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Timezone != nil && !validator.IsValidTimezone(*r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "must be a valid IANA time zone name",
		})
	}
	if r.PunchInTime != nil && !validator.IsValidClockTime(*r.PunchInTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_in_time",
			Message: "must be a wall-clock time (HH:MM)",
		})
	}
	if r.PunchOutTime != nil && *r.PunchOutTime != "" && !validator.IsValidClockTime(*r.PunchOutTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_out_time",
			Message: "must be a wall-clock time (HH:MM) or empty",
		})
	}
	if r.LateBufferMinutes != nil && *r.LateBufferMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_buffer_minutes",
			Message: "must not be negative",
		})
	}
	if r.AbsentCutoffMinutes != nil && *r.AbsentCutoffMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "absent_cutoff_minutes",
			Message: "must not be negative",
		})
	}
	if r.HoursPerDay != nil && (*r.HoursPerDay <= 0 || *r.HoursPerDay > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_per_day",
			Message: "must be between 0 and 24",
		})
	}
	if r.TotalAllowedLeaves != nil && *r.TotalAllowedLeaves < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_allowed_leaves",
			Message: "must not be negative",
		})
	}
	if r.TotalWorkingDays != nil && (*r.TotalWorkingDays <= 0 || *r.TotalWorkingDays > 366) {
		errs = append(errs, validator.ValidationError{
			Field:   "total_working_days",
			Message: "must be between 1 and 366",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PolicyResponse struct {
	Timezone               string   `json:"timezone"`
	PunchInTime            string   `json:"punch_in_time"`
	PunchOutTime           string   `json:"punch_out_time"`
	LateBufferMinutes      int      `json:"late_buffer_minutes"`
	AbsentCutoffMinutes    int      `json:"absent_cutoff_minutes"`
	HoursPerDay            float64  `json:"hours_per_day"`
	HoursPerWeek           *float64 `json:"hours_per_week,omitempty"`
	HoursPerMonth          *float64 `json:"hours_per_month,omitempty"`
	OvertimeAllowanceHours float64  `json:"overtime_allowance_hours"`
	TotalAllowedLeaves     int      `json:"total_allowed_leaves"`
	TotalWorkingDays       int      `json:"total_working_days"`
}
