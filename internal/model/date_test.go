package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOfUsesCalendarDayOfLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 2024-01-10 23:30 UTC is already the 11th in UTC+9.
	ts := time.Date(2024, 1, 10, 23, 30, 0, 0, time.UTC).In(loc)

	assert.Equal(t, "2024-01-11", FormatDate(DateOf(ts)))
	assert.Equal(t, time.UTC, time.Time(DateOf(ts)).Location())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(d))

	for _, raw := range []string{"", "2024-13-01", "10/01/2024", "2023-02-29"} {
		_, err := ParseDate(raw)
		assert.Error(t, err, raw)
	}
}

func TestAddDaysAndSameDate(t *testing.T) {
	d, err := ParseDate("2024-12-31")
	require.NoError(t, err)

	next := AddDays(d, 1)
	assert.Equal(t, "2025-01-01", FormatDate(next))
	assert.True(t, SameDate(AddDays(next, -1), d))
	assert.False(t, SameDate(next, d))
}
