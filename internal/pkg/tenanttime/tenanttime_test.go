package tenanttime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_FallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, time.UTC, Location("Not/AZone"))
}

func TestLocalDay_CrossesDateLine(t *testing.T) {
	jakarta := Location("Asia/Jakarta")
	require.NotEqual(t, time.UTC, jakarta)

	// 18:30 UTC is already the next day in Jakarta (UTC+7).
	instant := time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)
	day := LocalDay(instant, jakarta)

	assert.Equal(t, 2025, day.Year())
	assert.Equal(t, time.March, day.Month())
	assert.Equal(t, 11, day.Day())
	assert.Equal(t, 0, day.Hour())
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("09:00")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 0, m)

	h, m, err = ParseClock("17:30:00")
	require.NoError(t, err)
	assert.Equal(t, 17, h)
	assert.Equal(t, 30, m)

	_, _, err = ParseClock("9 o'clock")
	assert.Error(t, err)
}

func TestWeekStart_IsMonday(t *testing.T) {
	// 2025-03-12 is a Wednesday.
	wednesday := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)
	start := WeekStart(wednesday, time.UTC)
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, 10, start.Day())

	// Sunday belongs to the week that started the previous Monday.
	sunday := time.Date(2025, 3, 16, 8, 0, 0, 0, time.UTC)
	start = WeekStart(sunday, time.UTC)
	assert.Equal(t, 10, start.Day())
}

func TestMonthStart(t *testing.T) {
	instant := time.Date(2025, 7, 19, 23, 0, 0, 0, time.UTC)
	start := MonthStart(instant, time.UTC)
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, time.July, start.Month())
}
