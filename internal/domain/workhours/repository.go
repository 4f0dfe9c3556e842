package workhours

import (
	"context"
	"time"
)

type WorkHoursRepository interface {
	// GetDailyWork returns one row per closed attendance day in [from, to),
	// ordered by date ascending. Open sessions are excluded.
	GetDailyWork(ctx context.Context, employeeID, companyID string, from, to time.Time) ([]DayWork, error)
}
