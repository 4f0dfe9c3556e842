package cron

import (
	"context"
	"time"

	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/policy"
)

type stubAttendanceRepo struct {
	sessions map[string]*attendance.Attendance
	breaks   map[string][]attendance.BreakInterval
}

func (s *stubAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (s *stubAttendanceRepo) GetByEmployeeAndDate(_ context.Context, _ string, _ time.Time, _ string) (*attendance.Attendance, error) {
	return nil, nil
}

func (s *stubAttendanceRepo) GetByID(_ context.Context, id string, _ string) (attendance.Attendance, error) {
	att, ok := s.sessions[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return *att, nil
}

func (s *stubAttendanceRepo) ClosePunch(_ context.Context, id string, _ string, punchOut time.Time, breakMinutes int, productiveHours float64) error {
	att, ok := s.sessions[id]
	if !ok || att.PunchOut != nil {
		return attendance.ErrAlreadyPunchedOut
	}
	att.PunchOut = &punchOut
	att.TotalBreakMinutes = breakMinutes
	att.ProductiveHours = &productiveHours
	return nil
}

func (s *stubAttendanceRepo) OpenBreak(_ context.Context, _ string, _ time.Time) (attendance.BreakInterval, error) {
	return attendance.BreakInterval{}, nil
}

func (s *stubAttendanceRepo) CloseOpenBreak(_ context.Context, _ string, _ time.Time) (attendance.BreakInterval, error) {
	return attendance.BreakInterval{}, attendance.ErrNoOpenBreak
}

func (s *stubAttendanceRepo) GetBreaks(_ context.Context, attendanceID string) ([]attendance.BreakInterval, error) {
	return s.breaks[attendanceID], nil
}

func (s *stubAttendanceRepo) SetBreakMinutes(_ context.Context, _ string, _ int) error { return nil }

func (s *stubAttendanceRepo) SetOvertimeApproved(_ context.Context, _ string, _ string, _ float64) error {
	return nil
}

func (s *stubAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter, _ string) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (s *stubAttendanceRepo) GetStaleOpenSessions(_ context.Context, before time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range s.sessions {
		if att.PunchOut == nil && att.PunchIn.Before(before) {
			out = append(out, *att)
		}
	}
	return out, nil
}

type stubPolicyRepo struct{}

func (stubPolicyRepo) GetByCompanyID(_ context.Context, _ string) (policy.CompanyPolicy, error) {
	return policy.CompanyPolicy{}, policy.ErrPolicyNotFound
}

func (stubPolicyRepo) Upsert(_ context.Context, pol policy.CompanyPolicy) (policy.CompanyPolicy, error) {
	return pol, nil
}

func TestAutoCloseStaleAttendances(t *testing.T) {
	punchIn := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)
	breakEnd := punchIn.Add(3*time.Hour + 30*time.Minute)

	repo := &stubAttendanceRepo{
		sessions: map[string]*attendance.Attendance{
			"stale": {
				ID:         "stale",
				CompanyID:  "c1",
				EmployeeID: "e1",
				Date:       time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
				PunchIn:    punchIn,
			},
			"fresh": {
				ID:         "fresh",
				CompanyID:  "c1",
				EmployeeID: "e2",
				Date:       time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
				PunchIn:    time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC),
			},
		},
		breaks: map[string][]attendance.BreakInterval{
			"stale": {{ID: "b1", AttendanceID: "stale", BreakStart: punchIn.Add(3 * time.Hour), BreakEnd: &breakEnd}},
		},
	}

	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	jobs := NewAttendanceJobs(repo, stubPolicyRepo{}, func() time.Time { return now })

	require.NoError(t, jobs.AutoCloseStaleAttendances(context.Background()))

	stale := repo.sessions["stale"]
	require.NotNil(t, stale.PunchOut)
	// Default policy punches out at 17:00 on the session's day.
	assert.Equal(t, time.Date(2026, 3, 8, 17, 0, 0, 0, time.UTC), stale.PunchOut.UTC())
	assert.Equal(t, 30, stale.TotalBreakMinutes)
	require.NotNil(t, stale.ProductiveHours)
	assert.Equal(t, 7.5, *stale.ProductiveHours)

	// Sessions newer than the cutoff stay open.
	assert.Nil(t, repo.sessions["fresh"].PunchOut)
}
