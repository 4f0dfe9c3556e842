package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/workpulse-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/employee"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/policy"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/sse"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/tenanttime"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	policy.PolicyRepository
	hub *sse.Hub
	now func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	policyRepo policy.PolicyRepository,
	hub *sse.Hub,
	now func() time.Time,
) attendance.AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		PolicyRepository:     policyRepo,
		hub:                  hub,
		now:                  now,
	}
}

// loadPolicy returns the tenant's policy, falling back to defaults for
// tenants that never configured one.
func (a *AttendanceServiceImpl) loadPolicy(ctx context.Context, companyID string) (policy.CompanyPolicy, error) {
	pol, err := a.PolicyRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		if err == policy.ErrPolicyNotFound {
			return policy.Default(companyID), nil
		}
		return policy.CompanyPolicy{}, fmt.Errorf("failed to load company policy: %w", err)
	}
	return pol, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toBreakResponse(b attendance.BreakInterval) attendance.BreakResponse {
	resp := attendance.BreakResponse{
		ID:         b.ID,
		BreakStart: b.BreakStart.UTC().Format(time.RFC3339),
	}
	if b.BreakEnd != nil {
		end := b.BreakEnd.UTC().Format(time.RFC3339)
		resp.BreakEnd = &end
	}
	return resp
}

func toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:                    att.ID,
		EmployeeID:            att.EmployeeID,
		Date:                  att.Date.Format("2006-01-02"),
		PunchInTime:           att.PunchIn.UTC().Format(time.RFC3339),
		Status:                att.Status,
		LateMinutes:           att.LateMinutes,
		TotalBreakMinutes:     att.TotalBreakMinutes,
		ProductiveHours:       att.ProductiveHours,
		OvertimeApprovedHours: att.OvertimeApprovedHours,
	}
	if att.PunchOut != nil {
		out := att.PunchOut.UTC().Format(time.RFC3339)
		resp.PunchOutTime = &out
	}
	if att.EmployeeName != nil {
		resp.EmployeeName = *att.EmployeeName
	}
	for _, b := range att.Breaks {
		resp.Breaks = append(resp.Breaks, toBreakResponse(b))
	}
	return resp
}

// PunchIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PunchIn(ctx context.Context, companyID, employeeID string, req attendance.PunchInRequest) (attendance.PunchInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchInResponse{}, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, employeeID, companyID); err != nil {
		return attendance.PunchInResponse{}, err
	}

	pol, err := a.loadPolicy(ctx, companyID)
	if err != nil {
		return attendance.PunchInResponse{}, err
	}

	at := a.now().UTC()
	if req.Timestamp != nil {
		at = req.At().UTC()
	}

	loc := tenanttime.Location(pol.Timezone)
	day := tenanttime.LocalDay(at, loc)

	// An existing record wins over any window classification; the unique
	// index on (company, employee, date) still backstops concurrent inserts.
	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day, companyID)
	if err != nil {
		return attendance.PunchInResponse{}, err
	}
	if existing != nil {
		return attendance.PunchInResponse{}, attendance.ErrAlreadyPunchedIn
	}

	schedHour, schedMin, err := tenanttime.ParseClock(pol.PunchInTime)
	if err != nil {
		return attendance.PunchInResponse{}, fmt.Errorf("invalid punch_in_time in policy: %w", err)
	}
	scheduled := tenanttime.At(day, schedHour, schedMin, loc)

	diff := int(math.Round(at.Sub(scheduled).Minutes()))

	switch {
	case diff < -15:
		return attendance.PunchInResponse{}, attendance.ErrTooEarly
	case diff > pol.AbsentCutoffMinutes:
		return attendance.PunchInResponse{}, attendance.ErrPunchWindowClosed
	}

	status := attendance.StatusOnTime
	lateMinutes := 0
	if diff > pol.LateBufferMinutes {
		status = attendance.StatusLate
		lateMinutes = diff
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		CompanyID:   companyID,
		EmployeeID:  employeeID,
		Date:        day,
		PunchIn:     at,
		Status:      status,
		LateMinutes: lateMinutes,
	})
	if err != nil {
		return attendance.PunchInResponse{}, err
	}

	resp := attendance.PunchInResponse{
		Attendance:  toResponse(created),
		DiffMinutes: diff,
	}

	a.hub.Publish(companyID, "attendance.punched_in", resp.Attendance)

	return resp, nil
}

// PunchOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PunchOut(ctx context.Context, companyID, employeeID string) (attendance.AttendanceResponse, error) {
	pol, err := a.loadPolicy(ctx, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	at := a.now().UTC()
	loc := tenanttime.Location(pol.Timezone)
	day := tenanttime.LocalDay(at, loc)

	att, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if att == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotPunchedIn
	}
	if att.PunchOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedOut
	}

	if pol.PunchOutTime != "" {
		outHour, outMin, err := tenanttime.ParseClock(pol.PunchOutTime)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("invalid punch_out_time in policy: %w", err)
		}
		scheduledOut := tenanttime.At(day, outHour, outMin, loc)

		if at.Before(scheduledOut) {
			return attendance.AttendanceResponse{}, attendance.ErrTooEarlyToLeave
		}
		if att.OvertimeApprovedHours != nil {
			windowEnd := scheduledOut.Add(time.Duration(*att.OvertimeApprovedHours * float64(time.Hour)))
			if at.Before(windowEnd) {
				return attendance.AttendanceResponse{}, attendance.ErrOvertimeWindowNotElapsed
			}
		}
	}

	breaks, err := a.AttendanceRepository.GetBreaks(ctx, att.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// A break left open is ended at the punch-out instant so its minutes
	// still count against productive time.
	if attendance.OpenBreak(breaks) != nil {
		if _, err := a.AttendanceRepository.CloseOpenBreak(ctx, att.ID, at); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		breaks, err = a.AttendanceRepository.GetBreaks(ctx, att.ID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}
	breakMinutes := attendance.SumBreakMinutes(breaks)

	elapsed := at.Sub(att.PunchIn)
	productive := round2(math.Max(0, elapsed.Hours()-float64(breakMinutes)/60))

	if err := a.AttendanceRepository.ClosePunch(ctx, att.ID, companyID, at, breakMinutes, productive); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att.PunchOut = &at
	att.TotalBreakMinutes = breakMinutes
	att.ProductiveHours = &productive
	att.Breaks = breaks

	resp := toResponse(*att)
	a.hub.Publish(companyID, "attendance.punched_out", resp)

	return resp, nil
}

// StartBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) StartBreak(ctx context.Context, companyID, employeeID string) (attendance.AttendanceResponse, error) {
	att, err := a.openRecord(ctx, companyID, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := a.AttendanceRepository.OpenBreak(ctx, att.ID, a.now().UTC()); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att.Breaks, err = a.AttendanceRepository.GetBreaks(ctx, att.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	resp := toResponse(*att)
	a.hub.Publish(companyID, "attendance.break_started", resp)

	return resp, nil
}

// EndBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EndBreak(ctx context.Context, companyID, employeeID string) (attendance.AttendanceResponse, error) {
	att, err := a.openRecord(ctx, companyID, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := a.AttendanceRepository.CloseOpenBreak(ctx, att.ID, a.now().UTC()); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att.Breaks, err = a.AttendanceRepository.GetBreaks(ctx, att.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att.TotalBreakMinutes = attendance.SumBreakMinutes(att.Breaks)
	if err := a.AttendanceRepository.SetBreakMinutes(ctx, att.ID, att.TotalBreakMinutes); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	resp := toResponse(*att)
	a.hub.Publish(companyID, "attendance.break_ended", resp)

	return resp, nil
}

// openRecord returns today's still-open record for the employee.
func (a *AttendanceServiceImpl) openRecord(ctx context.Context, companyID, employeeID string) (*attendance.Attendance, error) {
	pol, err := a.loadPolicy(ctx, companyID)
	if err != nil {
		return nil, err
	}

	loc := tenanttime.Location(pol.Timezone)
	day := tenanttime.LocalDay(a.now().UTC(), loc)

	att, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day, companyID)
	if err != nil {
		return nil, err
	}
	if att == nil {
		return nil, attendance.ErrNotPunchedIn
	}
	if att.PunchOut != nil {
		return nil, attendance.ErrAlreadyPunchedOut
	}

	return att, nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, companyID, employeeID string) (attendance.AttendanceResponse, error) {
	pol, err := a.loadPolicy(ctx, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	loc := tenanttime.Location(pol.Timezone)
	day := tenanttime.LocalDay(a.now().UTC(), loc)

	att, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if att == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}

	att.Breaks, err = a.AttendanceRepository.GetBreaks(ctx, att.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(*att), nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, companyID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	attendances, total, err := a.AttendanceRepository.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	resp := attendance.ListAttendanceResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
	}
	for _, att := range attendances {
		resp.Attendances = append(resp.Attendances, toResponse(att))
	}

	return resp, nil
}

// ApproveOvertime implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ApproveOvertime(ctx context.Context, companyID, attendanceID string, req attendance.ApproveOvertimeRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.AttendanceRepository.SetOvertimeApproved(ctx, attendanceID, companyID, req.Hours); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, attendanceID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(att), nil
}
