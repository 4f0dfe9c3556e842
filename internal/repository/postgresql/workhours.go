package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/workpulse-hq/hrms-backend-go/internal/domain/workhours"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/database"
)

type workHoursRepository struct {
	db *database.DB
}

// NewWorkHoursRepository creates a new instance of WorkHoursRepository.
func NewWorkHoursRepository(db *database.DB) workhours.WorkHoursRepository {
	return &workHoursRepository{db: db}
}

// GetDailyWork implements workhours.WorkHoursRepository. Worked minutes are
// derived from the stored punches minus recorded break minutes, floored at
// zero.
func (w *workHoursRepository) GetDailyWork(ctx context.Context, employeeID, companyID string, from, to time.Time) ([]workhours.DayWork, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT date,
			   GREATEST(0, FLOOR(EXTRACT(EPOCH FROM (punch_out - punch_in)) / 60) - total_break_minutes)::int,
			   total_break_minutes
		FROM attendances
		WHERE employee_id = $1
		  AND company_id = $2
		  AND date >= $3
		  AND date < $4
		  AND punch_out IS NOT NULL
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily work: %w", err)
	}
	defer rows.Close()

	var days []workhours.DayWork
	for rows.Next() {
		var d workhours.DayWork
		if err := rows.Scan(&d.Date, &d.WorkedMinutes, &d.BreakMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan daily work: %w", err)
		}
		days = append(days, d)
	}

	return days, rows.Err()
}
