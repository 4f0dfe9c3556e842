package workhours

import (
	"context"
	"time"

	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/policy"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/workhours"
)

type fakeWorkHoursRepo struct {
	days []workhours.DayWork
}

func (f *fakeWorkHoursRepo) GetDailyWork(_ context.Context, _, _ string, from, to time.Time) ([]workhours.DayWork, error) {
	var out []workhours.DayWork
	for _, d := range f.days {
		if !d.Date.Before(from) && d.Date.Before(to) {
			out = append(out, d)
		}
	}
	return out, nil
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

// Monday March 9 2026, mid-afternoon UTC.
var testNow = time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d, workedMinutes, breakMinutes int) workhours.DayWork {
	return workhours.DayWork{
		Date:          time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		WorkedMinutes: workedMinutes,
		BreakMinutes:  breakMinutes,
	}
}

func newService(repo *fakeWorkHoursRepo) workhours.WorkHoursService {
	polRepo := &fakePolicyRepo{policies: map[string]policy.CompanyPolicy{}}
	return NewWorkHoursService(repo, polRepo, func() time.Time { return testNow })
}

func TestGetStatsNoOvertimeUnderExpected(t *testing.T) {
	repo := &fakeWorkHoursRepo{days: []workhours.DayWork{
		day(2026, 3, 9, 450, 30), // 7.5h worked today
	}}

	stats, err := newService(repo).GetStats(context.Background(), testCompanyID, testEmployeeID, nil)
	require.NoError(t, err)

	assert.Equal(t, 2026, stats.Year)
	assert.Equal(t, 7.5, stats.Today.WorkedHours)
	assert.Equal(t, 8.0, stats.Today.ExpectedHours)
	assert.Equal(t, 0.0, stats.Today.OvertimeHours)
	assert.Equal(t, 30, stats.Today.BreakMinutes)
	assert.Equal(t, 1, stats.Today.DaysRecorded)
}

func TestGetStatsTodayExpectedWithoutRecord(t *testing.T) {
	repo := &fakeWorkHoursRepo{}

	stats, err := newService(repo).GetStats(context.Background(), testCompanyID, testEmployeeID, nil)
	require.NoError(t, err)

	// Today's expectation comes from configuration, not from whether a
	// record exists yet.
	assert.Equal(t, 8.0, stats.Today.ExpectedHours)
	assert.Equal(t, 0.0, stats.Today.WorkedHours)
	assert.Equal(t, 0.0, stats.Today.OvertimeHours)
	assert.Equal(t, 0, stats.Today.DaysRecorded)
}

func TestGetStatsOvertimePastExpected(t *testing.T) {
	repo := &fakeWorkHoursRepo{days: []workhours.DayWork{
		day(2026, 3, 9, 540, 0), // 9h worked today
	}}

	stats, err := newService(repo).GetStats(context.Background(), testCompanyID, testEmployeeID, nil)
	require.NoError(t, err)

	assert.Equal(t, 9.0, stats.Today.WorkedHours)
	assert.Equal(t, 1.0, stats.Today.OvertimeHours)
}

func TestGetStatsWeekScalesByRecordedDays(t *testing.T) {
	repo := &fakeWorkHoursRepo{days: []workhours.DayWork{
		// Monday only so far this ISO week.
		day(2026, 3, 9, 480, 0),
		// Previous week, must not count.
		day(2026, 3, 6, 480, 0),
	}}

	stats, err := newService(repo).GetStats(context.Background(), testCompanyID, testEmployeeID, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Week.DaysRecorded)
	assert.Equal(t, 8.0, stats.Week.WorkedHours)
	assert.Equal(t, 8.0, stats.Week.ExpectedHours, "expected scales with days recorded, not the full week")
	assert.Equal(t, 0.0, stats.Week.OvertimeHours)
}

func TestGetStatsMonthWindow(t *testing.T) {
	repo := &fakeWorkHoursRepo{days: []workhours.DayWork{
		day(2026, 3, 2, 480, 0),
		day(2026, 3, 3, 510, 15),
		day(2026, 3, 9, 480, 0),
		// February, outside the month window.
		day(2026, 2, 27, 480, 0),
	}}

	stats, err := newService(repo).GetStats(context.Background(), testCompanyID, testEmployeeID, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Month.DaysRecorded)
	assert.Equal(t, 24.5, stats.Month.WorkedHours)
	assert.Equal(t, 24.0, stats.Month.ExpectedHours)
	assert.Equal(t, 0.5, stats.Month.OvertimeHours)
	assert.Equal(t, 15, stats.Month.BreakMinutes)
}

func TestGetStatsConfiguredWeeklyHours(t *testing.T) {
	weekly := 37.5
	repo := &fakeWorkHoursRepo{days: []workhours.DayWork{
		day(2026, 3, 9, 480, 0),
	}}
	polRepo := &fakePolicyRepo{policies: map[string]policy.CompanyPolicy{}}
	pol := policy.Default(testCompanyID)
	pol.HoursPerWeek = &weekly
	polRepo.policies[testCompanyID] = pol

	svc := NewWorkHoursService(repo, polRepo, func() time.Time { return testNow })
	stats, err := svc.GetStats(context.Background(), testCompanyID, testEmployeeID, nil)
	require.NoError(t, err)

	// 37.5 / 5 = 7.5 expected per recorded day.
	assert.Equal(t, 7.5, stats.Week.ExpectedHours)
	assert.Equal(t, 0.5, stats.Week.OvertimeHours)
}

func TestGetStatsOtherYearHasNoOverlap(t *testing.T) {
	repo := &fakeWorkHoursRepo{days: []workhours.DayWork{
		day(2026, 3, 9, 480, 0),
	}}

	year := 2025
	stats, err := newService(repo).GetStats(context.Background(), testCompanyID, testEmployeeID, &year)
	require.NoError(t, err)

	assert.Equal(t, 2025, stats.Year)
	assert.Equal(t, 0, stats.Today.DaysRecorded)
	assert.Equal(t, 0.0, stats.Today.WorkedHours)
	assert.Equal(t, 0, stats.Month.DaysRecorded)
}
