package attendance

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/employee"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/policy"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/sse"
)

type fakeAttendanceRepo struct {
	records map[string]*attendance.Attendance // keyed by company|employee|date
	byID    map[string]*attendance.Attendance
	breaks  map[string][]attendance.BreakInterval
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		records: map[string]*attendance.Attendance{},
		byID:    map[string]*attendance.Attendance{},
		breaks:  map[string][]attendance.BreakInterval{},
	}
}

func (f *fakeAttendanceRepo) key(companyID, employeeID string, date time.Time) string {
	return companyID + "|" + employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	k := f.key(att.CompanyID, att.EmployeeID, att.Date)
	if _, exists := f.records[k]; exists {
		return attendance.Attendance{}, attendance.ErrAlreadyPunchedIn
	}
	f.nextID++
	att.ID = strconv.Itoa(f.nextID)
	stored := att
	f.records[k] = &stored
	f.byID[att.ID] = &stored
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	att, ok := f.records[f.key(companyID, employeeID, date)]
	if !ok {
		return nil, nil
	}
	cp := *att
	return &cp, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string, companyID string) (attendance.Attendance, error) {
	att, ok := f.byID[id]
	if !ok || att.CompanyID != companyID {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return *att, nil
}

func (f *fakeAttendanceRepo) ClosePunch(_ context.Context, id string, companyID string, punchOut time.Time, breakMinutes int, productiveHours float64) error {
	att, ok := f.byID[id]
	if !ok || att.CompanyID != companyID || att.PunchOut != nil {
		return attendance.ErrAlreadyPunchedOut
	}
	att.PunchOut = &punchOut
	att.TotalBreakMinutes = breakMinutes
	att.ProductiveHours = &productiveHours
	return nil
}

func (f *fakeAttendanceRepo) OpenBreak(_ context.Context, attendanceID string, start time.Time) (attendance.BreakInterval, error) {
	for _, b := range f.breaks[attendanceID] {
		if b.BreakEnd == nil {
			return attendance.BreakInterval{}, attendance.ErrBreakAlreadyOpen
		}
	}
	br := attendance.BreakInterval{
		ID:           fmt.Sprintf("%s-b%d", attendanceID, len(f.breaks[attendanceID])+1),
		AttendanceID: attendanceID,
		BreakStart:   start,
	}
	f.breaks[attendanceID] = append(f.breaks[attendanceID], br)
	return br, nil
}

func (f *fakeAttendanceRepo) CloseOpenBreak(_ context.Context, attendanceID string, end time.Time) (attendance.BreakInterval, error) {
	breaks := f.breaks[attendanceID]
	for i := range breaks {
		if breaks[i].BreakEnd == nil {
			breaks[i].BreakEnd = &end
			return breaks[i], nil
		}
	}
	return attendance.BreakInterval{}, attendance.ErrNoOpenBreak
}

func (f *fakeAttendanceRepo) GetBreaks(_ context.Context, attendanceID string) ([]attendance.BreakInterval, error) {
	return append([]attendance.BreakInterval(nil), f.breaks[attendanceID]...), nil
}

func (f *fakeAttendanceRepo) SetBreakMinutes(_ context.Context, attendanceID string, minutes int) error {
	if att, ok := f.byID[attendanceID]; ok {
		att.TotalBreakMinutes = minutes
	}
	return nil
}

func (f *fakeAttendanceRepo) SetOvertimeApproved(_ context.Context, id string, companyID string, hours float64) error {
	att, ok := f.byID[id]
	if !ok || att.CompanyID != companyID {
		return attendance.ErrAttendanceNotFound
	}
	att.OvertimeApprovedHours = &hours
	return nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, att := range f.byID {
		if att.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && att.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, *att)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) GetStaleOpenSessions(_ context.Context, before time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.byID {
		if att.PunchOut == nil && att.PunchIn.Before(before) {
			out = append(out, *att)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok || emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmployeeCode(_ context.Context, companyID string, code string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.CompanyID == companyID && emp.EmployeeCode == code {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

type fakePolicyRepo struct {
	policies map[string]policy.CompanyPolicy
}

func (f *fakePolicyRepo) GetByCompanyID(_ context.Context, companyID string) (policy.CompanyPolicy, error) {
	pol, ok := f.policies[companyID]
	if !ok {
		return policy.CompanyPolicy{}, policy.ErrPolicyNotFound
	}
	return pol, nil
}

func (f *fakePolicyRepo) Upsert(_ context.Context, pol policy.CompanyPolicy) (policy.CompanyPolicy, error) {
	f.policies[pol.CompanyID] = pol
	return pol, nil
}

const (
	testCompanyID  = "11111111-1111-7111-8111-111111111111"
	testEmployeeID = "22222222-2222-7222-8222-222222222222"
)

type fixture struct {
	repo    *fakeAttendanceRepo
	now     time.Time
	service attendance.AttendanceService
}

// newFixture wires the service against in-memory repositories with the
// default policy (UTC, 09:00 shift start, 17:00 end, 15 min buffer,
// 240 min cutoff).
func newFixture(t *testing.T, at time.Time) *fixture {
	t.Helper()

	f := &fixture{repo: newFakeAttendanceRepo(), now: at}
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		testEmployeeID: {ID: testEmployeeID, CompanyID: testCompanyID, FullName: "Dina Putri", EmployeeCode: "EMP-001", IsActive: true},
	}}
	polRepo := &fakePolicyRepo{policies: map[string]policy.CompanyPolicy{}}

	f.service = NewAttendanceService(f.repo, empRepo, polRepo, sse.NewHub(), func() time.Time { return f.now })
	return f
}

func utc(hour, minute int) time.Time {
	return time.Date(2026, 3, 9, hour, minute, 0, 0, time.UTC)
}

func TestPunchInTooEarly(t *testing.T) {
	f := newFixture(t, utc(8, 40))

	_, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	assert.ErrorIs(t, err, attendance.ErrTooEarly)
	assert.Empty(t, f.repo.byID)
}

func TestPunchInOnTime(t *testing.T) {
	f := newFixture(t, utc(9, 0))

	resp, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnTime, resp.Attendance.Status)
	assert.Equal(t, 0, resp.DiffMinutes)
	assert.Equal(t, 0, resp.Attendance.LateMinutes)
}

func TestPunchInWithinBufferIsOnTime(t *testing.T) {
	f := newFixture(t, utc(9, 15))

	resp, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnTime, resp.Attendance.Status)
	assert.Equal(t, 15, resp.DiffMinutes)
}

func TestPunchInPastBufferIsLate(t *testing.T) {
	f := newFixture(t, utc(9, 16))

	resp, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, resp.Attendance.Status)
	assert.Equal(t, 16, resp.DiffMinutes)
	assert.Equal(t, 16, resp.Attendance.LateMinutes)
}

func TestPunchInPastCutoffRejected(t *testing.T) {
	f := newFixture(t, utc(13, 1)) // 241 minutes after shift start

	_, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	assert.ErrorIs(t, err, attendance.ErrPunchWindowClosed)
	assert.Empty(t, f.repo.byID, "nothing may be written past the cutoff")
}

func TestPunchInTwiceSameDay(t *testing.T) {
	f := newFixture(t, utc(9, 0))

	_, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	require.NoError(t, err)

	f.now = utc(9, 30)
	_, err = f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedIn)
}

func TestPunchInTwiceReportsDuplicateEvenPastCutoff(t *testing.T) {
	f := newFixture(t, utc(9, 0))

	_, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	require.NoError(t, err)

	// The existing record wins over the closed-window classification.
	f.now = utc(13, 1)
	_, err = f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedIn)
}

func TestPunchInExplicitTimestamp(t *testing.T) {
	f := newFixture(t, utc(12, 0))

	ts := utc(9, 5).Format(time.RFC3339)
	resp, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{Timestamp: &ts})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.DiffMinutes)
	assert.Equal(t, attendance.StatusOnTime, resp.Attendance.Status)
}

func TestPunchInInvalidTimestamp(t *testing.T) {
	f := newFixture(t, utc(9, 0))

	ts := "not-a-time"
	_, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{Timestamp: &ts})
	assert.Error(t, err)
	assert.Empty(t, f.repo.byID)
}

func TestPunchOutWithoutPunchIn(t *testing.T) {
	f := newFixture(t, utc(17, 0))

	_, err := f.service.PunchOut(context.Background(), testCompanyID, testEmployeeID)
	assert.ErrorIs(t, err, attendance.ErrNotPunchedIn)
}

func TestPunchOutBeforeScheduledEnd(t *testing.T) {
	f := newFixture(t, utc(9, 0))
	_, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	require.NoError(t, err)

	f.now = utc(16, 59)
	_, err = f.service.PunchOut(context.Background(), testCompanyID, testEmployeeID)
	assert.ErrorIs(t, err, attendance.ErrTooEarlyToLeave)
}

func TestPunchOutComputesProductiveHours(t *testing.T) {
	f := newFixture(t, utc(9, 0))
	_, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	require.NoError(t, err)

	// 30 minute break
	f.now = utc(12, 0)
	_, err = f.service.StartBreak(context.Background(), testCompanyID, testEmployeeID)
	require.NoError(t, err)
	f.now = utc(12, 30)
	_, err = f.service.EndBreak(context.Background(), testCompanyID, testEmployeeID)
	require.NoError(t, err)

	f.now = utc(18, 0)
	resp, err := f.service.PunchOut(context.Background(), testCompanyID, testEmployeeID)
	require.NoError(t, err)

	require.NotNil(t, resp.ProductiveHours)
	assert.Equal(t, 8.5, *resp.ProductiveHours)
	assert.Equal(t, 30, resp.TotalBreakMinutes)
	require.NotNil(t, resp.PunchOutTime)
}

func TestPunchOutClosesForgottenOpenBreak(t *testing.T) {
	f := newFixture(t, utc(9, 0))
	_, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	require.NoError(t, err)

	// Break started but never ended before punching out.
	f.now = utc(16, 30)
	_, err = f.service.StartBreak(context.Background(), testCompanyID, testEmployeeID)
	require.NoError(t, err)

	f.now = utc(17, 30)
	resp, err := f.service.PunchOut(context.Background(), testCompanyID, testEmployeeID)
	require.NoError(t, err)

	// The open break is ended at the punch-out instant: 60 minutes of
	// break leave 7.5 productive hours from the 8.5 elapsed.
	assert.Equal(t, 60, resp.TotalBreakMinutes)
	require.NotNil(t, resp.ProductiveHours)
	assert.Equal(t, 7.5, *resp.ProductiveHours)
	require.Len(t, resp.Breaks, 1)
	assert.NotNil(t, resp.Breaks[0].BreakEnd)
}

func TestPunchOutTwice(t *testing.T) {
	f := newFixture(t, utc(9, 0))
	_, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	require.NoError(t, err)

	f.now = utc(17, 0)
	_, err = f.service.PunchOut(context.Background(), testCompanyID, testEmployeeID)
	require.NoError(t, err)

	_, err = f.service.PunchOut(context.Background(), testCompanyID, testEmployeeID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedOut)
}

func TestPunchOutWaitsForOvertimeWindow(t *testing.T) {
	f := newFixture(t, utc(9, 0))
	resp, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	require.NoError(t, err)

	_, err = f.service.ApproveOvertime(context.Background(), testCompanyID, resp.Attendance.ID, attendance.ApproveOvertimeRequest{Hours: 2})
	require.NoError(t, err)

	// 17:00 end + 2h overtime window: 18:00 is too soon.
	f.now = utc(18, 0)
	_, err = f.service.PunchOut(context.Background(), testCompanyID, testEmployeeID)
	assert.ErrorIs(t, err, attendance.ErrOvertimeWindowNotElapsed)

	f.now = utc(19, 0)
	out, err := f.service.PunchOut(context.Background(), testCompanyID, testEmployeeID)
	require.NoError(t, err)
	require.NotNil(t, out.ProductiveHours)
	assert.Equal(t, 10.0, *out.ProductiveHours)
}

func TestStartBreakTwice(t *testing.T) {
	f := newFixture(t, utc(9, 0))
	_, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	require.NoError(t, err)

	f.now = utc(11, 0)
	_, err = f.service.StartBreak(context.Background(), testCompanyID, testEmployeeID)
	require.NoError(t, err)

	_, err = f.service.StartBreak(context.Background(), testCompanyID, testEmployeeID)
	assert.ErrorIs(t, err, attendance.ErrBreakAlreadyOpen)
}

func TestEndBreakWithoutOpen(t *testing.T) {
	f := newFixture(t, utc(9, 0))
	_, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	require.NoError(t, err)

	_, err = f.service.EndBreak(context.Background(), testCompanyID, testEmployeeID)
	assert.ErrorIs(t, err, attendance.ErrNoOpenBreak)
}

func TestBreakMinutesAccumulate(t *testing.T) {
	f := newFixture(t, utc(9, 0))
	_, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	require.NoError(t, err)

	f.now = utc(11, 0)
	_, err = f.service.StartBreak(context.Background(), testCompanyID, testEmployeeID)
	require.NoError(t, err)
	f.now = utc(11, 10)
	_, err = f.service.EndBreak(context.Background(), testCompanyID, testEmployeeID)
	require.NoError(t, err)

	f.now = utc(14, 0)
	_, err = f.service.StartBreak(context.Background(), testCompanyID, testEmployeeID)
	require.NoError(t, err)
	f.now = utc(14, 15)
	resp, err := f.service.EndBreak(context.Background(), testCompanyID, testEmployeeID)
	require.NoError(t, err)

	assert.Equal(t, 25, resp.TotalBreakMinutes)
	assert.Len(t, resp.Breaks, 2)
}

func TestBreakAfterPunchOut(t *testing.T) {
	f := newFixture(t, utc(9, 0))
	_, err := f.service.PunchIn(context.Background(), testCompanyID, testEmployeeID, attendance.PunchInRequest{})
	require.NoError(t, err)

	f.now = utc(17, 0)
	_, err = f.service.PunchOut(context.Background(), testCompanyID, testEmployeeID)
	require.NoError(t, err)

	_, err = f.service.StartBreak(context.Background(), testCompanyID, testEmployeeID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedOut)
}

func TestApproveOvertimeValidation(t *testing.T) {
	f := newFixture(t, utc(9, 0))

	_, err := f.service.ApproveOvertime(context.Background(), testCompanyID, "any", attendance.ApproveOvertimeRequest{Hours: 0})
	assert.Error(t, err)

	_, err = f.service.ApproveOvertime(context.Background(), testCompanyID, "any", attendance.ApproveOvertimeRequest{Hours: 13})
	assert.Error(t, err)
}

func TestGetTodayNoRecord(t *testing.T) {
	f := newFixture(t, utc(10, 0))

	_, err := f.service.GetToday(context.Background(), testCompanyID, testEmployeeID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}
