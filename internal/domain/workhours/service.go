package workhours

import "context"

type WorkHoursService interface {
	// GetStats aggregates worked versus expected hours for today, the current
	// ISO week and the current calendar month, clamped to the requested year.
	GetStats(ctx context.Context, companyID, employeeID string, year *int) (StatsResponse, error)
}
