package calendar_test

import (
	"testing"
	"time"

	"github.com/skylift/workforce/internal/calendar"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkDays(t *testing.T) {
	t.Run("monday through friday is five workdays", func(t *testing.T) {
		got := calendar.WorkDays(date(2025, 6, 2), date(2025, 6, 6), nil)
		assert.Equal(t, 5, got)
	})

	t.Run("weekend only is zero workdays", func(t *testing.T) {
		got := calendar.WorkDays(date(2025, 6, 7), date(2025, 6, 8), nil)
		assert.Equal(t, 0, got)
	})

	t.Run("national holiday inside the range is skipped", func(t *testing.T) {
		holidays := []calendar.PublicHoliday{
			{Date: date(2025, 6, 5), Name: "Constitution Day", IsNational: true},
		}
		got := calendar.WorkDays(date(2025, 6, 2), date(2025, 6, 6), holidays)
		assert.Equal(t, 4, got)
	})

	t.Run("non national holiday does not reduce the count", func(t *testing.T) {
		holidays := []calendar.PublicHoliday{
			{Date: date(2025, 6, 5), Name: "Company picnic", IsNational: false},
		}
		got := calendar.WorkDays(date(2025, 6, 2), date(2025, 6, 6), holidays)
		assert.Equal(t, 5, got)
	})

	t.Run("single day range counts itself", func(t *testing.T) {
		got := calendar.WorkDays(date(2025, 6, 4), date(2025, 6, 4), nil)
		assert.Equal(t, 1, got)
	})

	t.Run("inverted range is empty", func(t *testing.T) {
		got := calendar.WorkDays(date(2025, 6, 6), date(2025, 6, 2), nil)
		assert.Equal(t, 0, got)
	})

	t.Run("range spanning two weeks skips both weekends", func(t *testing.T) {
		got := calendar.WorkDays(date(2025, 6, 2), date(2025, 6, 15), nil)
		assert.Equal(t, 10, got)
	})

	t.Run("holiday on a weekend changes nothing", func(t *testing.T) {
		holidays := []calendar.PublicHoliday{
			{Date: date(2025, 6, 7), Name: "Saturday holiday", IsNational: true},
		}
		got := calendar.WorkDays(date(2025, 6, 2), date(2025, 6, 8), holidays)
		assert.Equal(t, 5, got)
	})

	t.Run("timestamps are compared by UTC calendar date", func(t *testing.T) {
		start := time.Date(2025, 6, 2, 23, 59, 0, 0, time.UTC)
		end := time.Date(2025, 6, 6, 0, 1, 0, 0, time.UTC)
		got := calendar.WorkDays(start, end, nil)
		assert.Equal(t, 5, got)
	})
}

func TestIsWorkday(t *testing.T) {
	holidays := []calendar.PublicHoliday{
		{Date: date(2025, 12, 25), Name: "Christmas Day", IsNational: true},
	}

	assert.True(t, calendar.IsWorkday(date(2025, 6, 4), nil))
	assert.False(t, calendar.IsWorkday(date(2025, 6, 7), nil))
	assert.False(t, calendar.IsWorkday(date(2025, 12, 25), holidays))
}

func TestMidnight(t *testing.T) {
	got := calendar.Midnight(time.Date(2025, 6, 4, 17, 30, 12, 0, time.UTC))
	assert.Equal(t, date(2025, 6, 4), got)
}
