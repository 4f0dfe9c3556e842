package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jane.doe@example.com"))
	assert.False(t, IsValidEmail("jane.doe@"))
	assert.False(t, IsValidEmail("not-an-email"))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2025-02-28")
	assert.True(t, ok)

	_, ok = IsValidDate("28-02-2025")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	_, ok := IsValidDateTime("2025-02-28T09:30:00Z")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2025-02-28T09:30:00+07:00")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2025-02-28 09:30")
	assert.False(t, ok)
}

func TestIsValidClockTime(t *testing.T) {
	assert.True(t, IsValidClockTime("09:00"))
	assert.True(t, IsValidClockTime("17:30:00"))
	assert.False(t, IsValidClockTime("25:00"))
	assert.False(t, IsValidClockTime("nine"))
}

func TestIsValidEmployeeCode(t *testing.T) {
	assert.True(t, IsValidEmployeeCode("1234-5678"))
	assert.False(t, IsValidEmployeeCode("12345678"))
}

func TestIsValidTimezone(t *testing.T) {
	assert.True(t, IsValidTimezone("Asia/Jakarta"))
	assert.False(t, IsValidTimezone(""))
	assert.False(t, IsValidTimezone("Mars/Olympus"))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "is required"},
		{Field: "no_of_days", Message: "must be greater than zero"},
	}

	assert.Contains(t, errs.Error(), "start_date: is required")
	m := errs.ToMap()
	assert.Equal(t, "must be greater than zero", m["no_of_days"])
}
