package cron

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/workpulse-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/policy"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/tenanttime"
)

// staleAfter is how long past punch-in a still-open session is considered
// forgotten.
const staleAfter = 18 * time.Hour

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	policyRepo     policy.PolicyRepository
	now            func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	policyRepo policy.PolicyRepository,
	now func() time.Time,
) *AttendanceJobs {
	if now == nil {
		now = time.Now
	}
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		policyRepo:     policyRepo,
		now:            now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_attendances", 1*time.Hour, j.AutoCloseStaleAttendances)
}

// AutoCloseStaleAttendances closes sessions whose owner forgot to punch out.
// The session is closed at the tenant's scheduled punch-out time, or at the
// punch-in instant when the schedule cannot be resolved.
func (j *AttendanceJobs) AutoCloseStaleAttendances(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-staleAfter)

	staleSessions, err := j.attendanceRepo.GetStaleOpenSessions(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to get stale sessions: %w", err)
	}

	if len(staleSessions) == 0 {
		return nil
	}

	policies := map[string]policy.CompanyPolicy{}

	closedCount := 0
	for _, session := range staleSessions {
		pol, ok := policies[session.CompanyID]
		if !ok {
			pol, err = j.policyRepo.GetByCompanyID(ctx, session.CompanyID)
			if err != nil {
				if err != policy.ErrPolicyNotFound {
					slog.Error("Cron: failed to load policy", "company_id", session.CompanyID, "error", err)
					continue
				}
				pol = policy.Default(session.CompanyID)
			}
			policies[session.CompanyID] = pol
		}

		punchOut := session.PunchIn
		if pol.PunchOutTime != "" {
			if hour, minute, err := tenanttime.ParseClock(pol.PunchOutTime); err == nil {
				loc := tenanttime.Location(pol.Timezone)
				scheduledOut := tenanttime.At(session.Date, hour, minute, loc).UTC()
				if scheduledOut.After(session.PunchIn) {
					punchOut = scheduledOut
				}
			}
		}

		breaks, err := j.attendanceRepo.GetBreaks(ctx, session.ID)
		if err != nil {
			slog.Error("Cron: failed to load breaks", "attendance_id", session.ID, "error", err)
			continue
		}
		breakMinutes := attendance.SumBreakMinutes(breaks)
		productive := math.Round(math.Max(0, punchOut.Sub(session.PunchIn).Hours()-float64(breakMinutes)/60)*100) / 100

		if err := j.attendanceRepo.ClosePunch(ctx, session.ID, session.CompanyID, punchOut, breakMinutes, productive); err != nil {
			slog.Error("Cron: failed to auto-close attendance", "attendance_id", session.ID, "error", err)
			continue
		}
		closedCount++
	}

	slog.Info("Cron: auto-closed stale attendances", "closed", closedCount, "stale", len(staleSessions))
	return nil
}
