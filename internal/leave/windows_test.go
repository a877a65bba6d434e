package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var windowNow = time.Date(2025, 6, 10, 11, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestParseLeaveType(t *testing.T) {
	for _, valid := range []string{"VACATION", "SICK", "PERSONAL", "PARENTAL", "COMPENSATORY", "EMERGENCY"} {
		parsed, ok := ParseLeaveType(valid)
		assert.True(t, ok)
		assert.Equal(t, LeaveType(valid), parsed)
	}

	_, ok := ParseLeaveType("SABBATICAL")
	assert.False(t, ok)
}

func TestCanBeHalfDay(t *testing.T) {
	for _, allowed := range []LeaveType{TypeVacation, TypePersonal, TypeCompensatory} {
		assert.True(t, allowed.CanBeHalfDay(), string(allowed))
	}
	for _, wholeDay := range []LeaveType{TypeSick, TypeParental, TypeEmergency} {
		assert.False(t, wholeDay.CanBeHalfDay(), string(wholeDay))
	}
}

func TestVacationWindow(t *testing.T) {
	rule := ruleFor(TypeVacation)

	t.Run("less than fourteen days of notice is rejected", func(t *testing.T) {
		err := rule.Validate(day(5), windowNow, false)
		assert.NotNil(t, err)
	})

	t.Run("thirteen days of notice is rejected", func(t *testing.T) {
		err := rule.Validate(day(13), windowNow, false)
		assert.NotNil(t, err)
	})

	t.Run("exactly fourteen days of notice is accepted", func(t *testing.T) {
		err := rule.Validate(day(14), windowNow, false)
		assert.Nil(t, err)
	})

	t.Run("more notice than required is accepted", func(t *testing.T) {
		err := rule.Validate(day(60), windowNow, false)
		assert.Nil(t, err)
	})
}

func TestSickWindow(t *testing.T) {
	rule := ruleFor(TypeSick)

	t.Run("three days back is accepted", func(t *testing.T) {
		err := rule.Validate(day(-3), windowNow, false)
		assert.Nil(t, err)
	})

	t.Run("four days back is rejected", func(t *testing.T) {
		err := rule.Validate(day(-4), windowNow, false)
		assert.NotNil(t, err)
	})

	t.Run("three days ahead is accepted", func(t *testing.T) {
		err := rule.Validate(day(3), windowNow, false)
		assert.Nil(t, err)
	})

	t.Run("five days ahead is rejected", func(t *testing.T) {
		err := rule.Validate(day(5), windowNow, false)
		assert.NotNil(t, err)
	})

	t.Run("emergency today is accepted", func(t *testing.T) {
		err := rule.Validate(day(0), windowNow, true)
		assert.Nil(t, err)
	})

	t.Run("emergency in the past is accepted", func(t *testing.T) {
		err := rule.Validate(day(-2), windowNow, true)
		assert.Nil(t, err)
	})

	t.Run("emergency in the future is rejected", func(t *testing.T) {
		err := rule.Validate(day(1), windowNow, true)
		assert.NotNil(t, err)
	})
}

func TestPersonalWindow(t *testing.T) {
	rule := ruleFor(TypePersonal)

	t.Run("same day is rejected", func(t *testing.T) {
		err := rule.Validate(day(0), windowNow, false)
		assert.NotNil(t, err)
	})

	t.Run("two days ahead is accepted", func(t *testing.T) {
		err := rule.Validate(day(2), windowNow, false)
		assert.Nil(t, err)
	})

	t.Run("emergency bypasses the notice requirement", func(t *testing.T) {
		err := rule.Validate(day(0), windowNow, true)
		assert.Nil(t, err)
	})
}

func TestUnrestrictedWindows(t *testing.T) {
	for _, typ := range []LeaveType{TypeParental, TypeCompensatory, TypeEmergency} {
		err := ruleFor(typ).Validate(day(-30), windowNow, false)
		assert.Nil(t, err, "type %s should have no window", typ)
	}
}
