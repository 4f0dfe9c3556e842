package policy

import (
	"time"
)

// CompanyPolicy is the per-tenant attendance and leave configuration. It is
// loaded once per operation and passed into the calculators.
type CompanyPolicy struct {
	CompanyID string

	// Attendance
	Timezone            string // IANA zone name
	PunchInTime         string // scheduled shift start, "15:04"
	PunchOutTime        string // scheduled shift end, "15:04"; empty disables the early-leave check
	LateBufferMinutes   int
	AbsentCutoffMinutes int

	// Working hours
	HoursPerDay   float64
	HoursPerWeek  *float64 // derived as HoursPerDay * 5 when unset
	HoursPerMonth *float64 // derived from HoursPerDay when unset

	// Leave
	OvertimeAllowanceHours float64
	TotalAllowedLeaves     int
	TotalWorkingDays       int

	UpdatedAt time.Time
}

// Default returns the policy applied to tenants that have not configured one.
func Default(companyID string) CompanyPolicy {
	return CompanyPolicy{
		CompanyID:              companyID,
		Timezone:               "UTC",
		PunchInTime:            "09:00",
		PunchOutTime:           "17:00",
		LateBufferMinutes:      15,
		AbsentCutoffMinutes:    240,
		HoursPerDay:            8,
		OvertimeAllowanceHours: 20,
		TotalAllowedLeaves:     12,
		TotalWorkingDays:       240,
	}
}
