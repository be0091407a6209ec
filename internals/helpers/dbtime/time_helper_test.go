package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateInUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Port-au-Prince")
	require.NoError(t, err)

	instant := time.Date(2024, time.April, 1, 2, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-31", FormatDate(DateIn(instant, loc)))
	assert.Equal(t, "2024-04-01", FormatDate(DateIn(instant, time.UTC)))
}

func TestParseMonth(t *testing.T) {
	from, to, err := ParseMonth("2024-12")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-01", FormatDate(from))
	assert.Equal(t, "2025-01-01", FormatDate(to))

	_, _, err = ParseMonth("2024/12")
	assert.Error(t, err)
}

func TestAtCombinesDateAndTod(t *testing.T) {
	loc, err := time.LoadLocation("America/Port-au-Prince")
	require.NoError(t, err)
	d, err := ParseDate("2024-03-12")
	require.NoError(t, err)

	at := At(d, NewTod(9, 0), loc)
	assert.Equal(t, "2024-03-12T09:00:00-04:00", at.Format(time.RFC3339))
}

func TestTodScanAndValue(t *testing.T) {
	var tod Tod
	require.NoError(t, tod.Scan("07:45"))
	assert.Equal(t, "07:45:00", tod.String())

	require.NoError(t, tod.Scan([]byte("18:05:30.123")))
	assert.Equal(t, "18:05:30", tod.String())

	v, err := NewTod(9, 15).Value()
	require.NoError(t, err)
	assert.Equal(t, "09:15:00", v)

	assert.Error(t, tod.Scan(42))
}
