package workhours

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/workpulse-hq/hrms-backend-go/internal/domain/policy"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/workhours"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/tenanttime"
)

// workingDaysPerMonth approximates a month's working days when the tenant
// has not configured monthly hours.
const workingDaysPerMonth = 22

type WorkHoursServiceImpl struct {
	workhours.WorkHoursRepository
	policy.PolicyRepository
	now func() time.Time
}

func NewWorkHoursService(
	workHoursRepo workhours.WorkHoursRepository,
	policyRepo policy.PolicyRepository,
	now func() time.Time,
) workhours.WorkHoursService {
	if now == nil {
		now = time.Now
	}
	return &WorkHoursServiceImpl{
		WorkHoursRepository: workHoursRepo,
		PolicyRepository:    policyRepo,
		now:                 now,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// clampToYear intersects [from, to) with the requested calendar year.
func clampToYear(from, to time.Time, year int, loc *time.Location) (time.Time, time.Time) {
	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, loc)
	yearEnd := yearStart.AddDate(1, 0, 0)
	if from.Before(yearStart) {
		from = yearStart
	}
	if to.After(yearEnd) {
		to = yearEnd
	}
	return from, to
}

// windowStats aggregates one window's worked minutes against the expected
// per-day hours. When scaleByRecorded is set the expectation grows with the
// number of days that actually have records; today's window instead carries
// the fixed daily expectation even when no record exists yet.
func windowStats(days []workhours.DayWork, perDayHours float64, scaleByRecorded bool) workhours.WindowStats {
	var stats workhours.WindowStats
	workedMinutes := 0
	for _, d := range days {
		workedMinutes += d.WorkedMinutes
		stats.BreakMinutes += d.BreakMinutes
		stats.DaysRecorded++
	}
	stats.WorkedHours = round2(float64(workedMinutes) / 60)
	if scaleByRecorded {
		stats.ExpectedHours = round2(perDayHours * float64(stats.DaysRecorded))
	} else {
		stats.ExpectedHours = round2(perDayHours)
	}
	stats.OvertimeHours = round2(math.Max(0, stats.WorkedHours-stats.ExpectedHours))
	return stats
}

// GetStats implements workhours.WorkHoursService.
func (w *WorkHoursServiceImpl) GetStats(ctx context.Context, companyID, employeeID string, year *int) (workhours.StatsResponse, error) {
	pol, err := w.PolicyRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		if err == policy.ErrPolicyNotFound {
			pol = policy.Default(companyID)
		} else {
			return workhours.StatsResponse{}, fmt.Errorf("failed to load company policy: %w", err)
		}
	}

	loc := tenanttime.Location(pol.Timezone)
	now := w.now().UTC()

	statsYear := now.In(loc).Year()
	if year != nil && *year > 0 {
		statsYear = *year
	}

	today := tenanttime.LocalDay(now, loc)
	windows := []struct {
		from, to time.Time
		perDay   float64
		scale    bool
	}{
		{today, today.AddDate(0, 0, 1), pol.HoursPerDay, false},
		{tenanttime.WeekStart(now, loc), tenanttime.WeekStart(now, loc).AddDate(0, 0, 7), weekPerDay(pol), true},
		{tenanttime.MonthStart(now, loc), tenanttime.MonthStart(now, loc).AddDate(0, 1, 0), monthPerDay(pol), true},
	}

	results := make([]workhours.WindowStats, len(windows))

	g, gctx := errgroup.WithContext(ctx)
	for i, win := range windows {
		i, win := i, win
		g.Go(func() error {
			from, to := clampToYear(win.from, win.to, statsYear, loc)
			if !from.Before(to) {
				return nil // window has no overlap with the requested year
			}
			days, err := w.WorkHoursRepository.GetDailyWork(gctx, employeeID, companyID, from, to)
			if err != nil {
				return err
			}
			results[i] = windowStats(days, win.perDay, win.scale)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return workhours.StatsResponse{}, err
	}

	return workhours.StatsResponse{
		Year:  statsYear,
		Today: results[0],
		Week:  results[1],
		Month: results[2],
	}, nil
}

func weekPerDay(pol policy.CompanyPolicy) float64 {
	if pol.HoursPerWeek != nil && *pol.HoursPerWeek > 0 {
		return *pol.HoursPerWeek / 5
	}
	return pol.HoursPerDay
}

func monthPerDay(pol policy.CompanyPolicy) float64 {
	if pol.HoursPerMonth != nil && *pol.HoursPerMonth > 0 {
		return *pol.HoursPerMonth / workingDaysPerMonth
	}
	return pol.HoursPerDay
}
